// Package betterform holds the data model and error model of a declarative
// form engine.
//
// A form configuration (JSON text or an already decoded value) describes
// fields, validation rules, multi-step flows and visibility logic. It is
// checked and normalized by package schema, compiled into a per-submission
// validator by package compiler, and partitioned into steps with visibility
// evaluated by package flow.
//
// Design policy:
//   - Keep the model and the error model in the root package; put behavior in
//     subpackages (source, schema, dsl, compiler, flow, remote, watch,
//     middleware, server).
//   - Configuration-time failures are reported together as a *FormConfigError.
//   - Submission-time failures are grouped per field (compiler.SubmissionError).
//   - Everything in the core is pure and safe for concurrent use.
//
// Typical usage:
//
//	cfg, err := schema.Validate(raw)
//	v, err := compiler.Compile(cfg)
//	data, err := v.Validate(map[string]any{"email": "a@b.co"})
package betterform
