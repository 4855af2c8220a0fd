package dsl

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// String accepts text. Length is counted in runes.
type String struct {
	MinLength *Length
	MaxLength *Length
	// Pattern must match somewhere in the value (unanchored).
	Pattern *regexp.Regexp
	Email   bool
	URL     bool
	// NonEmpty, when set, rejects "" with this message.
	NonEmpty string
}

func (String) Variant() Variant { return VariantString }

var emailRe = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+\-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)

func validEmail(s string) bool {
	return !strings.HasPrefix(s, ".") && !strings.Contains(s, "..") && emailRe.MatchString(s)
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "" || u.Path != "")
}

func (s String) Check(p bf.Path, v any) (any, bf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, bf.Issues{typeIssue(p, "string", v, "")}
	}
	var iss bf.Issues
	n := utf8.RuneCountInString(str)
	if s.MinLength != nil && n < s.MinLength.N {
		iss = append(iss, issue(p, bf.CodeTooSmall,
			msgOr(s.MinLength.Message, i18n.FieldMinLength, map[string]string{"n": itoa(s.MinLength.N)}), "minimum", s.MinLength.N))
	}
	if s.MaxLength != nil && n > s.MaxLength.N {
		iss = append(iss, issue(p, bf.CodeTooBig,
			msgOr(s.MaxLength.Message, i18n.FieldMaxLength, map[string]string{"n": itoa(s.MaxLength.N)}), "maximum", s.MaxLength.N))
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		iss = append(iss, issue(p, bf.CodePattern, i18n.T(i18n.FieldPattern, nil), "pattern", s.Pattern.String()))
	}
	if s.Email && !validEmail(str) {
		iss = append(iss, issue(p, bf.CodeInvalidFormat, i18n.T(i18n.FieldEmail, nil), "format", "email"))
	}
	if s.URL && !validURL(str) {
		iss = append(iss, issue(p, bf.CodeInvalidFormat, i18n.T(i18n.FieldURL, nil), "format", "url"))
	}
	if s.NonEmpty != "" && str == "" {
		iss = append(iss, issue(p, bf.CodeRequired, s.NonEmpty, "minimum", 1))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return str, nil
}

func (s String) OpenAPI() *openapi3.Schema {
	sch := openapi3.NewStringSchema()
	minLen := 0
	if s.MinLength != nil {
		minLen = s.MinLength.N
	}
	if s.NonEmpty != "" && minLen < 1 {
		minLen = 1
	}
	if minLen > 0 {
		sch = sch.WithMinLength(int64(minLen))
	}
	if s.MaxLength != nil {
		sch = sch.WithMaxLength(int64(s.MaxLength.N))
	}
	if s.Pattern != nil {
		sch = sch.WithPattern(s.Pattern.String())
	}
	switch {
	case s.Email:
		sch = sch.WithFormat("email")
	case s.URL:
		sch = sch.WithFormat("uri")
	}
	return sch
}

// Number accepts any Go numeric kind and yields float64.
type Number struct {
	Min *Limit
	Max *Limit
	// Step, when positive, requires (value - StepBase) to be a whole multiple
	// of Step.
	Step     float64
	StepBase float64
	// TypeMessage replaces the default type mismatch message.
	TypeMessage string
}

func (Number) Variant() Variant { return VariantNumber }

func (n Number) Check(p bf.Path, v any) (any, bf.Issues) {
	f, ok := source.ToFloat(v)
	if !ok || math.IsNaN(f) {
		return nil, bf.Issues{typeIssue(p, "number", v, n.TypeMessage)}
	}
	var iss bf.Issues
	if n.Min != nil && f < n.Min.Value {
		iss = append(iss, issue(p, bf.CodeTooSmall,
			msgOr(n.Min.Message, i18n.FieldMin, map[string]string{"n": i18n.Number(n.Min.Value)}), "minimum", n.Min.Value))
	}
	if n.Max != nil && f > n.Max.Value {
		iss = append(iss, issue(p, bf.CodeTooBig,
			msgOr(n.Max.Message, i18n.FieldMax, map[string]string{"n": i18n.Number(n.Max.Value)}), "maximum", n.Max.Value))
	}
	if n.Step > 0 && !aligned(f, n.StepBase, n.Step) {
		iss = append(iss, issue(p, bf.CodeNotMultipleOf,
			i18n.T(i18n.FieldStep, map[string]string{"step": i18n.Number(n.Step)}), "step", n.Step, "base", n.StepBase))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

// epsilon is the gap between 1 and the next float64.
const epsilon = 2.220446049250313e-16

func aligned(v, base, step float64) bool {
	q := (v - base) / step
	return math.Abs(q-math.Round(q)) < epsilon
}

func (n Number) OpenAPI() *openapi3.Schema {
	sch := openapi3.NewFloat64Schema()
	if n.Min != nil {
		sch = sch.WithMin(n.Min.Value)
	}
	if n.Max != nil {
		sch = sch.WithMax(n.Max.Value)
	}
	if n.Step > 0 {
		if n.StepBase == 0 {
			step := n.Step
			sch.MultipleOf = &step
		} else {
			sch.Extensions = map[string]any{"x-step": n.Step, "x-step-base": n.StepBase}
		}
	}
	return sch
}

// Bool accepts true and false only.
type Bool struct {
	TypeMessage string
}

func (Bool) Variant() Variant { return VariantBool }

func (b Bool) Check(p bf.Path, v any) (any, bf.Issues) {
	bv, ok := v.(bool)
	if !ok {
		return nil, bf.Issues{typeIssue(p, "boolean", v, b.TypeMessage)}
	}
	return bv, nil
}

func (Bool) OpenAPI() *openapi3.Schema { return openapi3.NewBoolSchema() }

func itoa(n int) string { return i18n.Number(float64(n)) }
