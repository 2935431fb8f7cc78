package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/feedback/internal/feedback"
)

// feedbackItem implements list.Item for one stored record.
type feedbackItem struct {
	record feedback.Record
	now    func() time.Time
}

func (i feedbackItem) Title() string {
	return fmt.Sprintf("★ %2d · %s", i.record.Rating, i.record.Text)
}

func (i feedbackItem) Description() string {
	age := "just now"
	if !i.record.CreatedAt.IsZero() && i.now != nil {
		if d := i.now().Sub(i.record.CreatedAt); d >= time.Second {
			age = humanizeDuration(d) + " ago"
		}
	}
	return fmt.Sprintf("%s · %s", shortID(i.record.ID), age)
}

func (i feedbackItem) FilterValue() string { return i.record.Text }

func buildFeedbackItems(records []feedback.Record, now func() time.Time) []list.Item {
	items := make([]list.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, feedbackItem{record: rec, now: now})
	}
	return items
}

func newFeedbackList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Feedback"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF"))
	return l
}

// statsLine renders "N Reviews · Average Rating: X".
func statsLine(stats feedback.Stats) string {
	if stats.Count == 0 {
		return "No feedback yet"
	}
	noun := "Reviews"
	if stats.Count == 1 {
		noun = "Review"
	}
	return fmt.Sprintf("%d %s · Average Rating: %s", stats.Count, noun, stats.AverageLabel())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
