package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ratingSelect is a row of numbered bubbles, 1..max. Every user-driven
// change is reported through onSelect.
type ratingSelect struct {
	selected int
	max      int
	focused  bool
	onSelect func(int)
}

func newRatingSelect(maxRating, selected int, onSelect func(int)) ratingSelect {
	if maxRating < 1 {
		maxRating = 1
	}
	r := ratingSelect{max: maxRating, onSelect: onSelect}
	r.SetSelected(selected)
	return r
}

// Selected returns the highlighted rating.
func (r *ratingSelect) Selected() int { return r.selected }

// SetSelected moves the highlight without notifying the listener.
func (r *ratingSelect) SetSelected(rating int) {
	r.selected = clamp(rating, 1, r.max)
}

func (r *ratingSelect) Focus() { r.focused = true }

func (r *ratingSelect) Blur() { r.focused = false }

// choose moves the highlight and notifies the listener.
func (r *ratingSelect) choose(rating int) {
	rating = clamp(rating, 1, r.max)
	if rating == r.selected {
		return
	}
	r.selected = rating
	if r.onSelect != nil {
		r.onSelect(rating)
	}
}

// HandleKey reacts to navigation and digit keys. It reports whether the key
// was consumed.
func (r *ratingSelect) HandleKey(msg tea.KeyMsg) bool {
	switch key := msg.String(); key {
	case "left", "h":
		r.choose(r.selected - 1)
		return true
	case "right", "l":
		r.choose(r.selected + 1)
		return true
	case "home":
		r.choose(1)
		return true
	case "end":
		r.choose(r.max)
		return true
	case "0":
		if r.max >= 10 {
			r.choose(10)
			return true
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '0')
			if n <= r.max {
				r.choose(n)
				return true
			}
		}
	}
	return false
}

func (r ratingSelect) View() string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#AAAAAA"))
	active := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color("#FF6B6B"))
	if r.focused {
		active = active.Background(lipgloss.Color("#5B8DEF"))
	}
	cells := make([]string, 0, r.max)
	for i := 1; i <= r.max; i++ {
		label := fmt.Sprintf("%d", i)
		if i == r.selected {
			cells = append(cells, active.Render(label))
			continue
		}
		cells = append(cells, base.Render(label))
	}
	return strings.Join(cells, " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
