package flow

import (
	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
)

// Navigator walks the steps of a compiled form. It holds the current step
// index and is not safe for concurrent use.
type Navigator struct {
	v     *compiler.SubmissionValidator
	steps []bf.FormStep
	multi bool
	index int
}

// NewNavigator starts at the first step of v's configuration.
func NewNavigator(v *compiler.SubmissionValidator) *Navigator {
	cfg := v.Config()
	return &Navigator{v: v, steps: PartitionSteps(cfg), multi: IsMultiStep(cfg)}
}

func (n *Navigator) Steps() []bf.FormStep { return n.steps }
func (n *Navigator) Index() int           { return n.index }
func (n *Navigator) IsMultiStep() bool    { return n.multi }
func (n *Navigator) IsLast() bool         { return n.index == len(n.steps)-1 }
func (n *Navigator) Current() bf.FormStep { return n.steps[n.index] }

// Progress labels the current step.
func (n *Navigator) Progress() string { return ProgressLabel(n.steps, n.index) }

// Fields returns the definitions of the current step's fields.
func (n *Navigator) Fields() []bf.FormField {
	return StepFields(n.v.Config(), n.Current())
}

// VisibleFields lists the current step's fields shown for values.
func (n *Navigator) VisibleFields(values map[string]any) []string {
	return VisibleFields(n.Fields(), values)
}

// Targets returns the fields Advance validates: the visible fields of the
// current step, or all of its fields when none is visible.
func (n *Navigator) Targets(values map[string]any) []string {
	if visible := n.VisibleFields(values); len(visible) > 0 {
		return visible
	}
	return append([]string(nil), n.Current().Fields...)
}

// Advance validates the current step and moves to the next one when it
// passes. Hidden fields are not checked. On the last step it only validates.
func (n *Navigator) Advance(values map[string]any) error {
	if err := n.v.ValidateFields(values, n.Targets(values)); err != nil {
		return err
	}
	if n.index < len(n.steps)-1 {
		n.index++
	}
	return nil
}

// Back moves to the previous step.
func (n *Navigator) Back() {
	if n.index > 0 {
		n.index--
	}
}

// Submit validates the whole record.
func (n *Navigator) Submit(values map[string]any) (map[string]any, error) {
	return n.v.Validate(values)
}
