// internal/tui/app.go
//
// This is the terminal UI for the feedback form.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// The validation rules live in internal/feedback; this package only turns
// key presses into form events and renders the result.

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kingrea/feedback/internal/config"
	"github.com/kingrea/feedback/internal/feedback"
	"github.com/kingrea/feedback/internal/logbook"
)

// focusArea is the part of the screen that receives key presses.
type focusArea int

const (
	focusRating focusArea = iota // rating selector
	focusText                    // review text input
	focusList                    // stored feedback list
)

const focusCount = 3

const (
	logPanelLines = 6
	chromeHeight  = 18 // header, card, stats, log panel and footer
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLogbook attaches the activity journal shown in the log panel.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithCollection injects a pre-built collection. Seed items from the
// config are only loaded into collections the App creates itself.
func WithCollection(c *feedback.Collection) AppOption {
	return func(a *App) {
		if c != nil {
			a.collection = c
		}
	}
}

// WithClock overrides the time source used for list ages.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config     *config.Config
	form       *feedback.Form
	collection *feedback.Collection
	logger     *zap.Logger
	logbook    *logbook.Logbook
	now        func() time.Time

	// UI components
	rating    ratingSelect
	input     textinput.Model
	list      list.Model
	focus     focusArea
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		config: cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.collection == nil {
		a.collection = feedback.NewCollection(feedback.WithLogger(a.logger), feedback.WithClock(a.now))
		a.collection.Seed(cfg.SeedDrafts())
	}

	a.form = feedback.NewForm(a.addFeedback,
		feedback.WithRules(cfg.Rules()),
		feedback.WithUpdateFunc(a.updateFeedback),
	)
	rules := a.form.Rules()
	a.rating = newRatingSelect(rules.MaxRating, a.form.Rating(), a.selectRating)

	a.input = textinput.New()
	a.input.Placeholder = cfg.Project.Form.Placeholder
	a.input.Prompt = "› "
	a.input.CharLimit = 0 // unlimited; records of any length must round-trip through edit
	a.input.Width = 50

	a.list = newFeedbackList(buildFeedbackItems(a.collection.List(), a.now))
	a.setFocus(focusText)

	a.logInfo("Session opened · %s", statsLine(a.collection.Stats()))
	return a
}

// Form exposes the underlying form state.
func (a *App) Form() *feedback.Form { return a.form }

// Collection exposes the feedback list owner.
func (a *App) Collection() *feedback.Collection { return a.collection }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, msg.Width-20)
		a.list.SetSize(max(0, msg.Width-6), max(4, msg.Height-chromeHeight))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			return a, a.setFocus((a.focus + 1) % focusCount)
		case "shift+tab":
			return a, a.setFocus((a.focus + focusCount - 1) % focusCount)
		case "esc":
			if _, editing := a.form.Editing(); editing {
				a.cancelEdit()
				return a, nil
			}
			if a.focus != focusText {
				return a, a.setFocus(focusText)
			}
			return a, nil
		case "q":
			if a.focus != focusText {
				a.logInfo("Session closed")
				return a, tea.Quit
			}
		}

		switch a.focus {
		case focusRating:
			if msg.Type == tea.KeyEnter {
				return a, a.setFocus(focusText)
			}
			a.rating.HandleKey(msg)
			return a, nil
		case focusText:
			if msg.Type == tea.KeyEnter {
				return a.submit()
			}
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			a.syncText()
			return a, cmd
		case focusList:
			switch msg.String() {
			case "d", "delete":
				return a.deleteSelected()
			case "e", "enter":
				return a.editSelected()
			}
			var cmd tea.Cmd
			a.list, cmd = a.list.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// syncText feeds the input value into the form as a text-change event.
func (a *App) syncText() {
	if value := a.input.Value(); value != a.form.Text() {
		a.form.SetText(value)
	}
}

func (a *App) selectRating(rating int) {
	a.form.SelectRating(rating)
	a.logger.Debug("rating selected", zap.Int("rating", rating))
}

// addFeedback is the add capability handed to the form.
func (a *App) addFeedback(d feedback.Draft) {
	rec := a.collection.Add(d)
	a.logInfo("Feedback added · ★%d · %s", rec.Rating, shortID(rec.ID))
	a.refreshList()
}

// updateFeedback is the update capability handed to the form.
func (a *App) updateFeedback(id string, d feedback.Draft) error {
	rec, err := a.collection.Update(id, d)
	if err != nil {
		return err
	}
	a.logInfo("Feedback updated · ★%d · %s", rec.Rating, shortID(rec.ID))
	a.refreshList()
	return nil
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	_, editing := a.form.Editing()
	ok, err := a.form.Submit()
	if err != nil {
		a.statusMsg = fmt.Sprintf("Could not save feedback: %v", err)
		a.logError("Submit failed: %v", err)
		if errors.Is(err, feedback.ErrNotFound) {
			a.cancelEdit()
		}
		return a, nil
	}
	if !ok {
		return a, nil
	}
	a.input.Reset()
	a.rating.SetSelected(a.form.Rating())
	if editing {
		a.statusMsg = "Feedback updated"
	} else {
		a.statusMsg = "Thanks for your feedback!"
	}
	return a, nil
}

func (a *App) selectedRecord() (feedback.Record, bool) {
	item, ok := a.list.SelectedItem().(feedbackItem)
	if !ok {
		return feedback.Record{}, false
	}
	return item.record, true
}

func (a *App) deleteSelected() (tea.Model, tea.Cmd) {
	rec, ok := a.selectedRecord()
	if !ok {
		return a, nil
	}
	if err := a.collection.Delete(rec.ID); err != nil {
		a.statusMsg = fmt.Sprintf("Delete failed: %v", err)
		a.logError("Delete failed: %v", err)
		return a, nil
	}
	if id, editing := a.form.Editing(); editing && id == rec.ID {
		a.cancelEdit()
	}
	a.logInfo("Feedback deleted · %s", shortID(rec.ID))
	a.statusMsg = "Feedback deleted"
	a.refreshList()
	return a, nil
}

func (a *App) editSelected() (tea.Model, tea.Cmd) {
	rec, ok := a.selectedRecord()
	if !ok {
		return a, nil
	}
	if err := a.form.BeginEdit(rec); err != nil {
		a.statusMsg = fmt.Sprintf("Edit unavailable: %v", err)
		return a, nil
	}
	a.input.SetValue(rec.Text)
	a.input.CursorEnd()
	a.rating.SetSelected(a.form.Rating())
	a.statusMsg = fmt.Sprintf("Editing %s · Esc to cancel", shortID(rec.ID))
	return a, a.setFocus(focusText)
}

func (a *App) cancelEdit() {
	a.form.CancelEdit()
	a.input.Reset()
	a.rating.SetSelected(a.form.Rating())
	a.statusMsg = "Edit cancelled"
}

func (a *App) refreshList() {
	a.list.SetItems(buildFeedbackItems(a.collection.List(), a.now))
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	a.rating.Blur()
	a.input.Blur()
	switch f {
	case focusRating:
		a.rating.Focus()
	case focusText:
		return a.input.Focus()
	}
	return nil
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	a.logger.Error("tui", zap.String("detail", fmt.Sprintf(format, args...)))
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("★ FEEDBACK")

	sections := []string{
		header,
		a.renderFormCard(width),
		a.renderStats(),
		a.renderListPanel(width),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderFormCard(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Render(a.config.Project.Form.Prompt)
	if _, editing := a.form.Editing(); editing {
		title += lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A623")).
			Render("  (editing)")
	}

	button := lipgloss.NewStyle().Padding(0, 2).Bold(true)
	if a.form.SubmitEnabled() {
		button = button.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF"))
	} else {
		button = button.
			Foreground(lipgloss.Color("#666666")).
			Background(lipgloss.Color("#2A2A2A"))
	}
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center, a.input.View(), "  ", button.Render("Send"))

	lines := []string{title, "", a.rating.View(), "", inputRow}
	if msg := a.form.Message(); msg != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Render(msg))
	}

	border := lipgloss.Color("#444444")
	if a.focus != focusList {
		border = lipgloss.Color("#5B8DEF")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderStats() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render(statsLine(a.collection.Stats()))
}

func (a *App) renderListPanel(width int) string {
	if a.collection.Len() == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("Nothing here yet. Your review will show up in this list.")
	}
	if a.height == 0 {
		a.list.SetSize(max(20, width-6), 10)
	}
	border := lipgloss.Color("#444444")
	if a.focus == focusList {
		border = lipgloss.Color("#5B8DEF")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(a.list.View())
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter() string {
	var hint string
	switch a.focus {
	case focusRating:
		hint = "←/→ or 1-9,0 → rate    Tab → next    q → quit"
	case focusText:
		hint = "Enter → send    Tab → next    Ctrl+C → quit"
	case focusList:
		hint = "↑/↓ → move    e → edit    d → delete    Tab → next    q → quit"
	}
	lines := []string{}
	if a.statusMsg != "" {
		lines = append(lines, a.statusMsg)
	}
	lines = append(lines, hint)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(strings.Join(lines, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
