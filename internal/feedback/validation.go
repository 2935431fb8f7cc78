package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMinLength is the trimmed length a draft needs before it can be sent.
	DefaultMinLength = 10
	// DefaultRating is the rating a fresh form starts with.
	DefaultRating = 10
	// DefaultMaxRating is the highest selectable rating.
	DefaultMaxRating = 10
)

// State is the validation state of the form text.
type State int

const (
	StateEmpty    State = iota // no text after trimming
	StateTooShort              // some text, below the gate
	StateValid                 // passes the gate
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateTooShort:
		return "too-short"
	case StateValid:
		return "valid"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Rules configures the minimum-length gate and the rating range.
//
// With LegacyGuard unset the gate is trimmed length >= MinLength, so the
// hint message and the submit guard agree. LegacyGuard restores the strict
// trimmed length > MinLength guard, under which a draft of exactly
// MinLength characters stays disabled and reads "0 to go".
type Rules struct {
	MinLength     int
	DefaultRating int
	MaxRating     int
	LegacyGuard   bool
}

// DefaultRules returns the stock form rules.
func DefaultRules() Rules {
	return Rules{
		MinLength:     DefaultMinLength,
		DefaultRating: DefaultRating,
		MaxRating:     DefaultMaxRating,
	}
}

func (r Rules) withDefaults() Rules {
	if r.MinLength <= 0 {
		r.MinLength = DefaultMinLength
	}
	if r.MaxRating <= 0 {
		r.MaxRating = DefaultMaxRating
	}
	if r.DefaultRating <= 0 || r.DefaultRating > r.MaxRating {
		r.DefaultRating = r.MaxRating
	}
	return r
}

// ClampRating forces a rating into 1..MaxRating.
func (r Rules) ClampRating(rating int) int {
	r = r.withDefaults()
	if rating < 1 {
		return 1
	}
	if rating > r.MaxRating {
		return r.MaxRating
	}
	return rating
}

// Passes reports whether a trimmed length clears the submit gate.
func (r Rules) Passes(length int) bool {
	r = r.withDefaults()
	if r.LegacyGuard {
		return length > r.MinLength
	}
	return length >= r.MinLength
}

// Validation is the derived UI state for a piece of text.
type Validation struct {
	State         State
	Message       string
	SubmitEnabled bool
}

// Evaluate runs the text through the validation state machine.
func Evaluate(text string, rules Rules) Validation {
	rules = rules.withDefaults()
	n := TrimmedLength(text)
	switch {
	case n == 0:
		return Validation{State: StateEmpty}
	case rules.Passes(n):
		return Validation{State: StateValid, SubmitEnabled: true}
	default:
		return Validation{
			State:   StateTooShort,
			Message: fmt.Sprintf("Must be at least %d characters, %d to go", rules.MinLength, rules.MinLength-n),
		}
	}
}

// TrimmedLength counts code points after surrounding whitespace is removed.
func TrimmedLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}
