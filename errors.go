package betterform

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed taxonomy of issue kinds.
type Kind string

const (
	// Configuration-time kinds.
	KindMalformedInput      Kind = "MalformedInput"
	KindStructuralViolation Kind = "StructuralViolation"
	KindDuplicateName       Kind = "DuplicateName"
	KindDanglingReference   Kind = "DanglingReference"
	KindMembershipViolation Kind = "MembershipViolation"
	KindEmptyStepSet        Kind = "EmptyStepSet"
	KindInvalidPattern      Kind = "InvalidPattern"
	// Submission-time only.
	KindFieldMismatch Kind = "FieldMismatch"
)

// Issue codes refine a Kind for callers that need machine-readable detail.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodePattern       = "pattern"
	CodeNotMultipleOf = "not_multiple_of"
	CodeParseError    = "parse_error"
	CodeCustom        = "custom"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    Path
	Kind    Kind
	Code    string
	Message string
	// Params carries structured parameters (e.g. {"min": 8}) for i18n and
	// observability.
	Params map[string]any
}

func (i Issue) String() string {
	return fmt.Sprintf("%s at %s: %s", i.Kind, i.Path.Pointer(), i.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Kind, iss[i].Path.Pointer())
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// OfKind returns the issues whose kind is k.
func (iss Issues) OfKind(k Kind) Issues {
	var out Issues
	for _, it := range iss {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// FormConfigError is the aggregate failure returned whenever a configuration
// does not validate. It never accompanies a partially normalized config.
type FormConfigError struct {
	Message string
	Issues  Issues
}

func (e *FormConfigError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Issues.Error()
}

func (e *FormConfigError) Unwrap() error { return e.Issues }

// AsFormConfigError extracts a *FormConfigError from err.
func AsFormConfigError(err error) (*FormConfigError, bool) {
	var fe *FormConfigError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
