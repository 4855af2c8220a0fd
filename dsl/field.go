package dsl

import (
	"github.com/getkin/kin-openapi/openapi3"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// Field binds a Node to a record key together with its presence policy.
type Field struct {
	Name     string
	Node     Node
	Required bool
	// Default replaces an absent value when HasDefault is set. It is not
	// checked against Node.
	Default    any
	HasDefault bool
}

// Check validates the value of the field. present reports whether the key
// exists in the record. set is false when the key stays absent in the output.
func (f Field) Check(p bf.Path, v any, present bool) (out any, set bool, iss bf.Issues) {
	if !present {
		switch {
		case f.HasDefault:
			return source.Normalize(f.Default), true, nil
		case !f.Required || f.Node.Variant() == VariantAny:
			return nil, false, nil
		}
		return nil, false, bf.Issues{p.Issue(bf.KindStructuralViolation, bf.CodeRequired, i18n.T(i18n.Required, nil))}
	}
	out, iss = f.Node.Check(p, v)
	if len(iss) > 0 {
		return nil, false, iss
	}
	return out, true, nil
}

// Optional reports whether the key may be absent from a submission.
func (f Field) Optional() bool {
	return !f.Required || f.HasDefault || f.Node.Variant() == VariantAny
}

// OpenAPI projects the field's node, adding its default.
func (f Field) OpenAPI() *openapi3.Schema {
	sch := f.Node.OpenAPI()
	if f.HasDefault {
		sch = sch.WithDefault(source.Normalize(f.Default))
	}
	return sch
}
