// Package dsl describes submission-time value validators as plain data.
//
// Overview
//   - Each validator is a tagged variant implementing Node: String, Number,
//     Bool, Date, DateTime, Array, Object, Any and OneOf. Constraints are
//     exported struct fields, so a validator is built with a composite literal
//     and never mutated afterwards.
//   - Field wraps a Node with requiredness and a default value and decides how
//     an absent key is treated.
//   - Every Node projects to an OpenAPI 3 schema (kin-openapi) via OpenAPI().
//
// Error model
//   - Check returns the checked value and the issues found at the given path.
//     Checks of one node are not short-circuited: a string that is too short
//     and fails its pattern reports both.
//   - Issues use betterform.KindStructuralViolation with a finer Code
//     (too_small, pattern, invalid_format, ...). Messages come from the i18n
//     catalog unless a node carries a custom message.
//
// Example
//
//	pw := dsl.Field{
//	    Name:     "password",
//	    Required: true,
//	    Node:     dsl.String{MinLength: &dsl.Length{N: 8}, NonEmpty: "Password please"},
//	}
//	v, set, iss := pw.Check(betterform.Root().Key("password"), "abc", true)
//	_, _, _ = v, set, iss // iss: "Must be at least 8 characters"
package dsl
