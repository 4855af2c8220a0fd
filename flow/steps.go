package flow

import (
	"fmt"

	bf "github.com/mikiasgoitom/better-form"
)

// AllFieldsStepID names the implicit step holding every field.
const AllFieldsStepID = "__all__"

// PartitionSteps returns the steps a renderer walks through. Unknown field
// references are dropped, steps left empty are removed, and when nothing
// remains (or no steps are declared) a single implicit step carries all
// fields in declaration order.
func PartitionSteps(cfg *bf.FormConfig) []bf.FormStep {
	known := make(map[string]struct{}, len(cfg.Fields))
	for _, f := range cfg.Fields {
		known[f.Name] = struct{}{}
	}

	out := make([]bf.FormStep, 0, len(cfg.Steps))
	for _, s := range cfg.Steps {
		fields := make([]string, 0, len(s.Fields))
		for _, name := range s.Fields {
			if _, ok := known[name]; ok {
				fields = append(fields, name)
			}
		}
		if len(fields) == 0 {
			continue
		}
		s.Fields = fields
		out = append(out, s)
	}
	if len(out) > 0 {
		return out
	}
	return []bf.FormStep{{
		ID:          AllFieldsStepID,
		Title:       cfg.Title,
		Description: cfg.Description,
		Fields:      cfg.FieldNames(),
	}}
}

// IsMultiStep reports whether cfg declares steps that partition into more
// than one page.
func IsMultiStep(cfg *bf.FormConfig) bool {
	return len(cfg.Steps) > 0 && len(PartitionSteps(cfg)) > 1
}

// ProgressLabel is the step's own progressLabel or "Step i of n" for the
// zero-based index i.
func ProgressLabel(steps []bf.FormStep, i int) string {
	n := len(steps)
	if i >= 0 && i < n && steps[i].ProgressLabel != nil && *steps[i].ProgressLabel != "" {
		return *steps[i].ProgressLabel
	}
	return fmt.Sprintf("Step %d of %d", min(i+1, n), n)
}

// StepFields resolves the field definitions of a step, skipping unknown names.
func StepFields(cfg *bf.FormConfig, step bf.FormStep) []bf.FormField {
	out := make([]bf.FormField, 0, len(step.Fields))
	for _, name := range step.Fields {
		if f, ok := cfg.FieldByName(name); ok {
			out = append(out, *f)
		}
	}
	return out
}

// InitialValues seeds a form: defaultValue when set, false for checkbox and
// toggle, an empty list for multiselect.
func InitialValues(cfg *bf.FormConfig) map[string]any {
	out := make(map[string]any, len(cfg.Fields))
	for _, f := range cfg.Fields {
		switch {
		case f.DefaultValue != nil:
			out[f.Name] = f.DefaultValue
		case f.Type == bf.FieldCheckbox || f.Type == bf.FieldToggle:
			out[f.Name] = false
		case f.Type == bf.FieldMultiselect:
			out[f.Name] = []any{}
		}
	}
	return out
}

// ColumnSpan resolves a field's grid width out of 12 columns: layout.colSpan,
// else half (6) or third (4) width, else the full row.
func ColumnSpan(f *bf.FormField) int {
	if f.Layout == nil {
		return 12
	}
	if f.Layout.ColSpan != nil {
		return *f.Layout.ColSpan
	}
	if f.Layout.Width != nil {
		switch *f.Layout.Width {
		case "half":
			return 6
		case "third":
			return 4
		}
	}
	return 12
}
