// Package flow decides which fields a multi-step form currently shows and
// which of them must validate before moving to the next step.
package flow

import (
	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/dsl"
	"github.com/mikiasgoitom/better-form/source"
)

// EvaluateVisibility reports whether every rule holds for values. No rules
// means visible. Rules with an unknown operator never hold.
func EvaluateVisibility(rules []bf.VisibilityRule, values map[string]any) bool {
	for _, r := range rules {
		if !holds(r, values) {
			return false
		}
	}
	return true
}

func holds(r bf.VisibilityRule, values map[string]any) bool {
	target, present := values[r.Field]
	switch r.Operator {
	case bf.OpEquals:
		return dsl.Equal(target, r.Value)
	case bf.OpNotEquals:
		return !dsl.Equal(target, r.Value)
	case bf.OpIn:
		list, ok := asList(r.Value)
		return ok && present && includes(list, target)
	case bf.OpNotIn:
		list, ok := asList(r.Value)
		return !ok || !present || !includes(list, target)
	case bf.OpExists:
		return present && target != nil && target != ""
	case bf.OpGreaterThan, bf.OpLessThan:
		a, aok := source.ToFloat(target)
		b, bok := source.ToFloat(r.Value)
		if !present || !aok || !bok {
			return false
		}
		if r.Operator == bf.OpGreaterThan {
			return a > b
		}
		return a < b
	}
	return false
}

func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	list, ok := source.Normalize(v).([]any)
	return list, ok
}

func includes(list []any, v any) bool {
	for _, item := range list {
		if dsl.Equal(item, v) {
			return true
		}
	}
	return false
}

// VisibleFields returns the names of fields whose rules hold, in order.
func VisibleFields(fields []bf.FormField, values map[string]any) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if EvaluateVisibility(f.VisibleWhen, values) {
			out = append(out, f.Name)
		}
	}
	return out
}
