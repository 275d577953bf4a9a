package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const (
	// commentFanout bounds how many child comments one item may fetch
	// concurrently, independent of how many kids it has.
	commentFanout = 3

	excerptSeparator = " | "
	excerptMaxRunes  = 200
)

// aggregateExcerpt fetches up to maxComments child comments concurrently,
// sanitizes the usable ones and joins them, in requested order, into a
// single excerpt of at most excerptMaxRunes runes. Every per-comment
// failure mode (network error, missing record, deleted, dead, empty
// body) is absorbed as "one fewer comment"; this function never fails.
func aggregateExcerpt(ctx context.Context, src itemSource, ids []int, maxComments int) string {
	if len(ids) == 0 {
		return ""
	}
	if maxComments > 0 && len(ids) > maxComments {
		ids = ids[:maxComments]
	}

	// One slot per requested ID so the joined result keeps request
	// order regardless of completion order.
	parts := make([]string, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			rec, err := src.Item(ctx, id)
			if err != nil {
				slog.Debug("Comment fetch failed", "id", id, "error", err)
				return
			}
			if !rec.usable() {
				return
			}
			parts[i] = sanitizeHTML(rec.Text)
		}(i, id)
	}
	wg.Wait()

	usable := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return ""
	}

	return truncateExcerpt(strings.Join(usable, excerptSeparator), excerptMaxRunes)
}

// truncateExcerpt caps s at max runes, replacing the tail with a
// three-character ellipsis so the result is exactly max runes long.
func truncateExcerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
