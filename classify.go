package main

import "strings"

// Keyword groups for heuristic signal detection. Matching is
// case-insensitive substring containment; partial stems like "frustrat"
// cover the whole word family.
var (
	painWords = []string{
		"pain", "stuck", "frustrat", "hate", "broken", "can't", "cannot",
		"problem", "issue",
	}
	workaroundWords = []string{
		"workaround", "hack", "duct tape", "script", "automate",
		"i built", "we built", "solution",
	}
	requestWords = []string{
		"looking for", "anyone know", "recommend", "need a tool",
		"wish there was", "does anyone",
	}
)

// classifySignal maps arbitrary text (typically a post title) to one
// label from the signal taxonomy. Rules are checked in precedence order
// and the first match wins: the HN title prefixes outrank all keyword
// groups, pain outranks workaround, workaround outranks request.
func classifySignal(text string) SignalType {
	t := strings.ToLower(text)

	switch {
	case strings.HasPrefix(t, "show hn"):
		return SignalLaunch
	case strings.HasPrefix(t, "ask hn"):
		return SignalRequest
	case containsAny(t, painWords):
		return SignalPain
	case containsAny(t, workaroundWords):
		return SignalWorkaround
	case containsAny(t, requestWords):
		return SignalRequest
	}

	return SignalUnknown
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
