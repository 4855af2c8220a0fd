package compiler

import (
	"errors"

	bf "github.com/mikiasgoitom/better-form"
)

// SubmissionError groups submission issues by field so every invalid field
// can be reported at once.
type SubmissionError struct {
	Fields map[string]bf.Issues
	// Order lists failing fields in declaration order.
	Order []string
}

// add records issues for name and returns the (possibly new) error.
func (e *SubmissionError) add(name string, iss ...bf.Issue) *SubmissionError {
	if e == nil {
		e = &SubmissionError{Fields: map[string]bf.Issues{}}
	}
	if _, seen := e.Fields[name]; !seen {
		e.Order = append(e.Order, name)
	}
	e.Fields[name] = append(e.Fields[name], iss...)
	return e
}

// Issues flattens the per-field issues in declaration order.
func (e *SubmissionError) Issues() bf.Issues {
	var out bf.Issues
	for _, name := range e.Order {
		out = append(out, e.Fields[name]...)
	}
	return out
}

// Messages returns the first message of every failing field.
func (e *SubmissionError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for name, iss := range e.Fields {
		if len(iss) > 0 {
			out[name] = iss[0].Message
		}
	}
	return out
}

func (e *SubmissionError) Error() string {
	return "invalid submission: " + e.Issues().Error()
}

func (e *SubmissionError) Unwrap() error { return e.Issues() }

// AsSubmissionError extracts a *SubmissionError from err.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
