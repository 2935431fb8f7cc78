package feedback

import (
	"errors"
	"fmt"
)

// ErrNoAddFunc is returned by Submit when the form was built without an
// add capability.
var ErrNoAddFunc = errors.New("feedback: form has no add capability")

// ErrEditUnsupported is returned by BeginEdit when no UpdateFunc was injected.
var ErrEditUnsupported = errors.New("feedback: form cannot edit without an update capability")

// Draft is the text/rating pair held by the form and handed to the collection.
type Draft struct {
	Text   string
	Rating int
}

// AddFunc receives a new draft. Identity is assigned by the receiver.
type AddFunc func(Draft)

// UpdateFunc replaces the text and rating of an existing record.
type UpdateFunc func(id string, d Draft) error

// FormOption customizes Form construction.
type FormOption func(*Form)

// WithRules overrides the default validation rules.
func WithRules(rules Rules) FormOption {
	return func(f *Form) {
		f.rules = rules.withDefaults()
	}
}

// WithUpdateFunc enables edit mode by injecting an update capability.
func WithUpdateFunc(fn UpdateFunc) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.update = fn
		}
	}
}

// Form is the local state of the feedback form. It is not safe for
// concurrent use; the UI update loop owns it.
type Form struct {
	rules  Rules
	add    AddFunc
	update UpdateFunc

	text       string
	rating     int
	validation Validation
	editingID  string
	prevRating int // rating before BeginEdit, restored by CancelEdit
}

// NewForm returns an empty form that forwards accepted drafts to add.
func NewForm(add AddFunc, opts ...FormOption) *Form {
	f := &Form{
		rules: DefaultRules(),
		add:   add,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.rating = f.rules.DefaultRating
	f.validation = Evaluate("", f.rules)
	return f
}

// Rules returns the rules the form validates against.
func (f *Form) Rules() Rules { return f.rules }

// Text returns the current raw text.
func (f *Form) Text() string { return f.text }

// Rating returns the currently selected rating.
func (f *Form) Rating() int { return f.rating }

// Validation returns the derived validation state for the current text.
func (f *Form) Validation() Validation { return f.validation }

// SubmitEnabled reports whether Submit would forward the draft.
func (f *Form) SubmitEnabled() bool { return f.validation.SubmitEnabled }

// Message returns the inline hint, empty when there is nothing to show.
func (f *Form) Message() string { return f.validation.Message }

// Draft returns a snapshot of the current text and rating.
func (f *Form) Draft() Draft {
	return Draft{Text: f.text, Rating: f.rating}
}

// SetText handles a text-change event.
func (f *Form) SetText(text string) Validation {
	f.text = text
	f.validation = Evaluate(text, f.rules)
	return f.validation
}

// SelectRating handles a rating-selection event. Text and validation are
// left untouched.
func (f *Form) SelectRating(rating int) {
	f.rating = f.rules.ClampRating(rating)
}

// Editing returns the id of the record being edited, if any.
func (f *Form) Editing() (string, bool) {
	return f.editingID, f.editingID != ""
}

// BeginEdit loads an existing record into the form. The next accepted
// submission goes to the update capability instead of add.
func (f *Form) BeginEdit(rec Record) error {
	if f.update == nil {
		return ErrEditUnsupported
	}
	if rec.ID == "" {
		return fmt.Errorf("feedback: edit requires a record id")
	}
	if f.editingID == "" {
		f.prevRating = f.rating
	}
	f.editingID = rec.ID
	f.SelectRating(rec.Rating)
	f.SetText(rec.Text)
	return nil
}

// CancelEdit drops edit mode, clears the text and restores the rating that
// was selected before the edit began.
func (f *Form) CancelEdit() {
	if f.editingID != "" {
		f.rating = f.prevRating
	}
	f.editingID = ""
	f.reset()
}

// Submit forwards the draft when the gate passes and resets the text.
// It reports whether a draft was handed off. Text that fails the gate is
// a silent no-op.
func (f *Form) Submit() (bool, error) {
	if !f.rules.Passes(TrimmedLength(f.text)) {
		return false, nil
	}
	draft := f.Draft()
	if id, ok := f.Editing(); ok {
		if err := f.update(id, draft); err != nil {
			return false, fmt.Errorf("feedback: update %s: %w", id, err)
		}
		f.editingID = ""
		f.reset()
		return true, nil
	}
	if f.add == nil {
		return false, ErrNoAddFunc
	}
	f.add(draft)
	f.reset()
	return true, nil
}

func (f *Form) reset() {
	f.text = ""
	f.validation = Evaluate("", f.rules)
}
