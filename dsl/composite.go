package dsl

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// Array accepts a list. Items, when set, checks every element at its index.
type Array struct {
	Items    Node
	MinItems *Length
	MaxItems *Length
	// Cap is a second upper bound with its own message (maxSelections).
	Cap *Length
}

func (Array) Variant() Variant { return VariantArray }

func (a Array) Check(p bf.Path, v any) (any, bf.Issues) {
	arr, ok := v.([]any)
	if !ok {
		arr, ok = asList(v)
	}
	if !ok {
		return nil, bf.Issues{typeIssue(p, "array", v, "")}
	}
	var iss bf.Issues
	out := make([]any, len(arr))
	for i, item := range arr {
		if a.Items == nil {
			out[i] = source.Normalize(item)
			continue
		}
		cv, ii := a.Items.Check(p.Index(i), item)
		iss = append(iss, ii...)
		out[i] = cv
	}
	n := len(arr)
	if a.MinItems != nil && n < a.MinItems.N {
		iss = append(iss, issue(p, bf.CodeTooSmall,
			msgOr(a.MinItems.Message, i18n.FieldSelectMin, map[string]string{"n": itoa(a.MinItems.N)}), "minimum", a.MinItems.N))
	}
	if a.MaxItems != nil && n > a.MaxItems.N {
		iss = append(iss, issue(p, bf.CodeTooBig,
			msgOr(a.MaxItems.Message, i18n.FieldSelectMax, map[string]string{"n": itoa(a.MaxItems.N)}), "maximum", a.MaxItems.N))
	}
	if a.Cap != nil && n > a.Cap.N {
		iss = append(iss, issue(p, bf.CodeTooBig,
			msgOr(a.Cap.Message, i18n.FieldSelectCap, map[string]string{"n": itoa(a.Cap.N)}), "maximum", a.Cap.N))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// asList accepts typed Go slices ([]string, ...) handed in by callers.
func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	arr, ok := source.Normalize(v).([]any)
	return arr, ok
}

func (a Array) OpenAPI() *openapi3.Schema {
	items := openapi3.NewSchema()
	if a.Items != nil {
		items = a.Items.OpenAPI()
	}
	sch := openapi3.NewArraySchema().WithItems(items)
	if a.MinItems != nil {
		sch = sch.WithMinItems(int64(a.MinItems.N))
	}
	upper := -1
	for _, l := range []*Length{a.MaxItems, a.Cap} {
		if l != nil && (upper < 0 || l.N < upper) {
			upper = l.N
		}
	}
	if upper >= 0 {
		sch = sch.WithMaxItems(int64(upper))
	}
	return sch
}

// Object accepts any keyed mapping and passes its content through.
type Object struct{}

func (Object) Variant() Variant { return VariantObject }

func (Object) Check(p bf.Path, v any) (any, bf.Issues) {
	m, ok := source.Normalize(v).(map[string]any)
	if !ok {
		return nil, bf.Issues{typeIssue(p, "object", v, "")}
	}
	return m, nil
}

func (Object) OpenAPI() *openapi3.Schema {
	return openapi3.NewObjectSchema().WithAnyAdditionalProperties()
}

// Any accepts every value, including absence.
type Any struct{}

func (Any) Variant() Variant { return VariantAny }

func (Any) Check(_ bf.Path, v any) (any, bf.Issues) { return source.Normalize(v), nil }

func (Any) OpenAPI() *openapi3.Schema { return openapi3.NewSchema() }

// OneOf accepts exactly one of a closed set of literal values (string, number
// or boolean), compared without coercion.
type OneOf struct {
	Values []any
}

func (OneOf) Variant() Variant { return VariantOneOf }

// Literals keeps the values of vals usable as literals, numbers as float64.
func Literals(vals []any) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		switch t := v.(type) {
		case string, bool:
			out = append(out, t)
		default:
			if f, ok := source.ToFloat(v); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

func (o OneOf) Check(p bf.Path, v any) (any, bf.Issues) {
	for _, want := range o.Values {
		if Equal(want, v) {
			return want, nil
		}
	}
	msg := i18n.T(i18n.FieldOneOf, map[string]string{"options": renderLiterals(o.Values), "received": renderLiteral(v)})
	return nil, bf.Issues{issue(p, bf.CodeInvalidEnum, msg, "options", o.Values, "received", v)}
}

func renderLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := source.ToFloat(v); ok {
		return i18n.Number(f)
	}
	return source.TypeName(v)
}

func renderLiterals(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = renderLiteral(v)
	}
	return strings.Join(parts, " | ")
}

func (o OneOf) OpenAPI() *openapi3.Schema {
	var sch *openapi3.Schema
	switch sameKind(o.Values) {
	case "string":
		sch = openapi3.NewStringSchema()
	case "number":
		sch = openapi3.NewFloat64Schema()
	case "boolean":
		sch = openapi3.NewBoolSchema()
	default:
		sch = openapi3.NewSchema()
	}
	return sch.WithEnum(o.Values...)
}

func sameKind(vals []any) string {
	kind := ""
	for _, v := range vals {
		k := source.TypeName(v)
		if kind != "" && k != kind {
			return ""
		}
		kind = k
	}
	return kind
}
