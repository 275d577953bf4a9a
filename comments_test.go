package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestAggregateExcerpt_EmptyIDsNoFetch(t *testing.T) {
	src := &fakeSource{}

	got := aggregateExcerpt(context.Background(), src, nil, commentFanout)

	if got != "" {
		t.Errorf("expected empty excerpt, got %q", got)
	}
	if calls := src.itemCalls.Load(); calls != 0 {
		t.Errorf("expected zero fetches for empty id list, got %d", calls)
	}
}

func TestAggregateExcerpt_FanoutCap(t *testing.T) {
	src := &fakeSource{
		items: map[int]*hnItem{
			1: {ID: 1, Text: "one"},
			2: {ID: 2, Text: "two"},
			3: {ID: 3, Text: "three"},
			4: {ID: 4, Text: "four"},
		},
	}

	got := aggregateExcerpt(context.Background(), src, []int{1, 2, 3, 4}, 3)

	if got != "one | two | three" {
		t.Errorf("expected first three comments joined, got %q", got)
	}
	if calls := src.itemCalls.Load(); calls != 3 {
		t.Errorf("expected 3 fetches, got %d", calls)
	}
}

func TestAggregateExcerpt_UnusableExcluded(t *testing.T) {
	src := &fakeSource{
		items: map[int]*hnItem{
			1: {ID: 1, Text: "kept"},
			2: {ID: 2, Text: "gone", Deleted: true},
			3: {ID: 3, Text: "", Dead: false}, // no body
		},
		itemErr: map[int]error{4: errors.New("timeout")},
	}

	testCases := []struct {
		name     string
		ids      []int
		expected string
	}{
		{"deleted excluded", []int{1, 2}, "kept"},
		{"missing body excluded", []int{1, 3}, "kept"},
		{"fetch error excluded", []int{1, 4}, "kept"},
		{"absent record excluded", []int{1, 99}, "kept"},
		{"all unusable", []int{2, 3, 4}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := aggregateExcerpt(context.Background(), src, tc.ids, commentFanout); got != tc.expected {
				t.Errorf("aggregateExcerpt(%v) = %q, want %q", tc.ids, got, tc.expected)
			}
		})
	}
}

func TestAggregateExcerpt_PreservesRequestOrder(t *testing.T) {
	src := &fakeSource{
		items: map[int]*hnItem{
			1: {ID: 1, Text: "first"},
			2: {ID: 2, Text: "second"},
			3: {ID: 3, Text: "third"},
		},
		// The first comment completes last; order must still hold.
		delay: map[int]time.Duration{1: 30 * time.Millisecond},
	}

	got := aggregateExcerpt(context.Background(), src, []int{1, 2, 3}, commentFanout)
	if got != "first | second | third" {
		t.Errorf("expected request order preserved, got %q", got)
	}
}

func TestAggregateExcerpt_SanitizesBodies(t *testing.T) {
	src := &fakeSource{
		items: map[int]*hnItem{
			1: {ID: 1, Text: "<p>it&#x27;s   <b>bold</b></p>"},
		},
	}

	got := aggregateExcerpt(context.Background(), src, []int{1}, commentFanout)
	if got != "it's bold" {
		t.Errorf("expected sanitized body, got %q", got)
	}
}

func TestAggregateExcerpt_Truncation(t *testing.T) {
	src := &fakeSource{
		items: map[int]*hnItem{
			1: {ID: 1, Text: strings.Repeat("a", 300)},
		},
	}

	got := aggregateExcerpt(context.Background(), src, []int{1}, commentFanout)

	if n := utf8.RuneCountInString(got); n != excerptMaxRunes {
		t.Errorf("expected exactly %d runes, got %d", excerptMaxRunes, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
	if want := strings.Repeat("a", 197) + "..."; got != want {
		t.Errorf("unexpected truncation result")
	}
}

func TestTruncateExcerpt(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"under limit", "short", 200, "short"},
		{"exactly at limit", strings.Repeat("x", 200), 200, strings.Repeat("x", 200)},
		{"over limit", strings.Repeat("x", 201), 200, strings.Repeat("x", 197) + "..."},
		{"multibyte runes counted as one", strings.Repeat("é", 250), 200, strings.Repeat("é", 197) + "..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncateExcerpt(tc.input, tc.max)
			if got != tc.expected {
				t.Errorf("truncateExcerpt length %d, want %d", utf8.RuneCountInString(got), utf8.RuneCountInString(tc.expected))
			}
		})
	}
}
