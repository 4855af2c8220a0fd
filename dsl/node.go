package dsl

import (
	"math"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// Variant tags a Node implementation.
type Variant string

const (
	VariantString   Variant = "string"
	VariantNumber   Variant = "number"
	VariantBool     Variant = "boolean"
	VariantDate     Variant = "date"
	VariantDateTime Variant = "datetime"
	VariantArray    Variant = "array"
	VariantObject   Variant = "object"
	VariantAny      Variant = "any"
	VariantOneOf    Variant = "oneOf"
)

// Node is a value validator description.
type Node interface {
	Variant() Variant
	// Check validates v located at p and returns the normalized value.
	Check(p bf.Path, v any) (any, bf.Issues)
	// OpenAPI projects the node to an OpenAPI 3 schema.
	OpenAPI() *openapi3.Schema
}

// Length is a count bound (characters or items) with an optional custom
// message.
type Length struct {
	N       int
	Message string
}

// Limit is a numeric bound with an optional custom message.
type Limit struct {
	Value   float64
	Message string
}

func msgOr(custom, id string, data map[string]string) string {
	if custom != "" {
		return custom
	}
	return i18n.T(id, data)
}

func issue(p bf.Path, code, msg string, kv ...any) bf.Issue {
	return p.Issue(bf.KindStructuralViolation, code, msg, kv...)
}

func typeIssue(p bf.Path, expected string, v any, custom string) bf.Issue {
	received := source.TypeName(v)
	msg := msgOr(custom, i18n.InvalidType, map[string]string{"expected": expected, "received": received})
	return issue(p, bf.CodeInvalidType, msg, "expected", expected, "received", received)
}

// Equal reports strict equality of two checked values: no coercion between
// strings, numbers and booleans. Numbers compare by value across Go numeric
// kinds; arrays and objects compare deeply.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aNum := source.ToFloat(a)
	fb, bNum := source.ToFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb && !math.IsNaN(fa)
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return reflect.DeepEqual(source.Normalize(a), source.Normalize(b))
}
