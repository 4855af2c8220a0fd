package schema

import (
	"maps"
	"math"
	"slices"
	"strings"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// walker accumulates structural issues while reading a decoded tree. Unknown
// keys are ignored.
type walker struct {
	issues bf.Issues
}

func (w *walker) add(p bf.Path, code, msg string, kv ...any) {
	w.issues = append(w.issues, p.Issue(bf.KindStructuralViolation, code, msg, kv...))
}

func (w *walker) typeMismatch(p bf.Path, expected string, got any) {
	received := source.TypeName(got)
	w.add(p, bf.CodeInvalidType,
		i18n.T(i18n.InvalidType, map[string]string{"expected": expected, "received": received}),
		"expected", expected, "received", received)
}

func (w *walker) missing(p bf.Path) {
	w.add(p, bf.CodeRequired, i18n.T(i18n.Required, nil))
}

func (w *walker) asObject(v any, p bf.Path) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		w.typeMismatch(p, "object", v)
		return nil, false
	}
	return m, true
}

// object reads an optional nested object. present reports whether the key
// exists at all.
func (w *walker) object(obj map[string]any, key string, p bf.Path) (m map[string]any, present bool) {
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	m, _ = w.asObject(v, p.Key(key))
	return m, true
}

func (w *walker) array(obj map[string]any, key string, p bf.Path) (arr []any, present bool) {
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	a, isArr := v.([]any)
	if !isArr {
		w.typeMismatch(p.Key(key), "array", v)
		return nil, true
	}
	return a, true
}

func (w *walker) str(obj map[string]any, key string, p bf.Path) *string {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		w.typeMismatch(p.Key(key), "string", v)
		return nil
	}
	return &s
}

// reqStr reads a required, non-empty string. emptyID overrides the default
// too-short message.
func (w *walker) reqStr(obj map[string]any, key string, p bf.Path, emptyID string) string {
	if _, ok := obj[key]; !ok {
		w.missing(p.Key(key))
		return ""
	}
	s := w.str(obj, key, p)
	if s == nil {
		return ""
	}
	if *s == "" {
		w.tooShort(p.Key(key), emptyID)
	}
	return *s
}

func (w *walker) tooShort(p bf.Path, msgID string) {
	msg := i18n.T(i18n.StringTooShort, map[string]string{"min": "1"})
	if msgID != "" {
		msg = i18n.T(msgID, nil)
	}
	w.add(p, bf.CodeTooSmall, msg, "minimum", 1)
}

func (w *walker) boolean(obj map[string]any, key string, p bf.Path) *bool {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	b, isBool := v.(bool)
	if !isBool {
		w.typeMismatch(p.Key(key), "boolean", v)
		return nil
	}
	return &b
}

func (w *walker) number(obj map[string]any, key string, p bf.Path) *float64 {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	f, isNum := source.ToFloat(v)
	if !isNum || math.IsNaN(f) {
		w.typeMismatch(p.Key(key), "number", v)
		return nil
	}
	return &f
}

// intRule bounds an integer attribute.
type intRule struct {
	min       float64
	exclusive bool // min itself is rejected
	max       float64
	hasMax    bool
}

var (
	nonNegative = intRule{min: 0}
	positive    = intRule{min: 0, exclusive: true}
)

// integer reads an integer constrained by r. All failing checks are reported.
func (w *walker) integer(obj map[string]any, key string, p bf.Path, r intRule) *int {
	f := w.number(obj, key, p)
	if f == nil {
		return nil
	}
	at := p.Key(key)
	ok := true
	if *f != math.Trunc(*f) || math.IsInf(*f, 0) {
		w.add(at, bf.CodeInvalidType, i18n.T(i18n.NotInteger, nil), "expected", "integer", "received", "float")
		ok = false
	}
	if r.exclusive && *f <= r.min {
		w.add(at, bf.CodeTooSmall, i18n.T(i18n.NumberNotPositive, map[string]string{"min": i18n.Number(r.min)}), "minimum", r.min, "inclusive", false)
		ok = false
	} else if !r.exclusive && *f < r.min {
		w.add(at, bf.CodeTooSmall, i18n.T(i18n.NumberTooSmall, map[string]string{"min": i18n.Number(r.min)}), "minimum", r.min, "inclusive", true)
		ok = false
	}
	if r.hasMax && *f > r.max {
		w.add(at, bf.CodeTooBig, i18n.T(i18n.NumberTooBig, map[string]string{"max": i18n.Number(r.max)}), "maximum", r.max)
		ok = false
	}
	if !ok {
		return nil
	}
	n := int(*f)
	return &n
}

// enum reads an optional string restricted to allowed.
func (w *walker) enum(obj map[string]any, key string, p bf.Path, allowed []string) *string {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	return w.enumValue(v, p.Key(key), allowed)
}

func (w *walker) reqEnum(obj map[string]any, key string, p bf.Path, allowed []string) *string {
	v, ok := obj[key]
	if !ok {
		w.missing(p.Key(key))
		return nil
	}
	return w.enumValue(v, p.Key(key), allowed)
}

func (w *walker) enumValue(v any, p bf.Path, allowed []string) *string {
	s, isStr := v.(string)
	if isStr {
		for _, a := range allowed {
			if a == s {
				return &s
			}
		}
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	options := strings.Join(quoted, " | ")
	received := s
	if !isStr {
		received = source.TypeName(v)
	}
	w.add(p, bf.CodeInvalidEnum,
		i18n.T(i18n.InvalidEnum, map[string]string{"options": options, "received": received}),
		"options", allowed, "received", v)
	return nil
}

func (w *walker) stringMap(obj map[string]any, key string, p bf.Path) map[string]string {
	m, present := w.object(obj, key, p)
	if !present || m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		s, ok := v.(string)
		if !ok {
			w.typeMismatch(p.Key(key).Key(k), "string", v)
			continue
		}
		out[k] = s
	}
	return out
}

func (w *walker) anyMap(obj map[string]any, key string, p bf.Path) map[string]any {
	m, present := w.object(obj, key, p)
	if !present || m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// primitive accepts string, number or boolean values.
func (w *walker) primitive(v any, p bf.Path, expected string) (any, bool) {
	switch t := v.(type) {
	case string, bool:
		return t, true
	}
	if f, ok := source.ToFloat(v); ok {
		return f, true
	}
	w.typeMismatch(p, expected, v)
	return nil, false
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
