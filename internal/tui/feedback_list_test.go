package tui

import (
	"testing"
	"time"

	"github.com/kingrea/feedback/internal/feedback"
)

func TestStatsLine(t *testing.T) {
	cases := []struct {
		stats feedback.Stats
		want  string
	}{
		{feedback.Stats{}, "No feedback yet"},
		{feedback.Stats{Count: 1, Average: 9}, "1 Review · Average Rating: 9"},
		{feedback.Stats{Count: 3, Average: 26.0 / 3}, "3 Reviews · Average Rating: 8.7"},
	}
	for _, tc := range cases {
		if got := statsLine(tc.stats); got != tc.want {
			t.Fatalf("statsLine(%+v) = %q, want %q", tc.stats, got, tc.want)
		}
	}
}

func TestFeedbackItemRendering(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	item := feedbackItem{
		record: feedback.Record{ID: "0123456789abcdef", Text: "Lovely", Rating: 8, CreatedAt: created},
		now:    func() time.Time { return created.Add(5 * time.Minute) },
	}
	if got := item.Title(); got != "★  8 · Lovely" {
		t.Fatalf("title = %q", got)
	}
	if got := item.Description(); got != "01234567 · 5m ago" {
		t.Fatalf("description = %q", got)
	}
	fresh := feedbackItem{record: feedback.Record{ID: "abc", CreatedAt: created}, now: func() time.Time { return created }}
	if got := fresh.Description(); got != "abc · just now" {
		t.Fatalf("description = %q", got)
	}
}
