// Package compiler turns a form configuration into a submission validator.
//
// Compile re-validates its input with the schema package, derives the
// effective data type of every field, and builds one dsl.Field per field plus
// the cross-field equality pass for validation.sameAs.
package compiler

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/dsl"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/schema"
	"github.com/mikiasgoitom/better-form/source"
)

// Option configures Compile.
type Option func(*settings)

type settings struct {
	logger     zerolog.Logger
	schemaOpts []schema.Option
}

// WithLogger logs compilation details at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithSchemaOptions forwards options to the re-validation of the config.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(s *settings) { s.schemaOpts = append(s.schemaOpts, opts...) }
}

type sameAs struct {
	field  string
	target string
	label  string
}

// SubmissionValidator validates submission records against a compiled
// configuration. It is immutable and safe for concurrent use.
type SubmissionValidator struct {
	cfg    *bf.FormConfig
	fields []dsl.Field
	index  map[string]int
	pairs  []sameAs
}

// Compile validates cfg and builds its submission validator. Configuration
// problems, including patterns that do not compile, are reported as
// *betterform.FormConfigError.
func Compile(cfg *bf.FormConfig, opts ...Option) (*SubmissionValidator, error) {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	normalized, err := schema.Validate(cfg, s.schemaOpts...)
	if err != nil {
		return nil, err
	}

	v := &SubmissionValidator{
		cfg:    normalized,
		fields: make([]dsl.Field, 0, len(normalized.Fields)),
		index:  make(map[string]int, len(normalized.Fields)),
	}
	for i := range normalized.Fields {
		f := &normalized.Fields[i]
		df, dt, err := buildField(f, i)
		if err != nil {
			s.logger.Debug().Err(err).Str("field", f.Name).Msg("field compilation failed")
			return nil, err
		}
		v.index[f.Name] = len(v.fields)
		v.fields = append(v.fields, df)
		if f.Validation != nil && f.Validation.SameAs != nil && *f.Validation.SameAs != "" {
			v.pairs = append(v.pairs, sameAs{field: f.Name, target: *f.Validation.SameAs, label: f.DisplayName()})
		}
		s.logger.Debug().
			Str("field", f.Name).
			Str("type", string(f.Type)).
			Str("dataType", string(dt)).
			Str("validator", string(df.Node.Variant())).
			Bool("required", df.Required).
			Msg("compiled field")
	}
	s.logger.Debug().Int("fields", len(v.fields)).Int("sameAs", len(v.pairs)).Msg("form compiled")
	return v, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(cfg *bf.FormConfig, opts ...Option) *SubmissionValidator {
	v, err := Compile(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Config returns the normalized configuration the validator was built from.
func (v *SubmissionValidator) Config() *bf.FormConfig { return v.cfg }

// Field returns the compiled validator of the named field.
func (v *SubmissionValidator) Field(name string) (dsl.Field, bool) {
	i, ok := v.index[name]
	if !ok {
		return dsl.Field{}, false
	}
	return v.fields[i], true
}

// Fields returns the compiled field validators in declaration order.
func (v *SubmissionValidator) Fields() []dsl.Field {
	return append([]dsl.Field(nil), v.fields...)
}

// Validate checks a full submission record. On success it returns the
// validated record: numbers as float64, defaults applied, unknown keys
// dropped and absent optional fields omitted. Otherwise the error is a
// *SubmissionError holding every failing field.
func (v *SubmissionValidator) Validate(record map[string]any) (map[string]any, error) {
	out, serr := v.check(record, v.fields)
	if serr != nil {
		return nil, serr
	}
	for _, pair := range v.pairs {
		a, aok := out[pair.field]
		b, bok := out[pair.target]
		if aok != bok || (aok && !dsl.Equal(a, b)) {
			serr = serr.add(pair.field, mismatch(pair))
		}
	}
	if serr != nil {
		return nil, serr
	}
	return out, nil
}

// ValidateJSON decodes a JSON object and validates it.
func (v *SubmissionValidator) ValidateJSON(data []byte) (map[string]any, error) {
	tree, err := source.JSON(data)
	if err != nil {
		return nil, fmt.Errorf("compiler: decode submission: %w", err)
	}
	record, ok := tree.(map[string]any)
	if !ok {
		received := source.TypeName(tree)
		return nil, bf.Issues{bf.Root().Issue(bf.KindStructuralViolation, bf.CodeInvalidType,
			i18n.T(i18n.InvalidType, map[string]string{"expected": "object", "received": received}),
			"expected", "object", "received", received)}
	}
	return v.Validate(record)
}

// ValidateFields checks only the named fields, as a wizard does before moving
// to the next step. sameAs constraints of named fields are checked when their
// target value is itself valid. Unknown names are ignored.
func (v *SubmissionValidator) ValidateFields(record map[string]any, names []string) error {
	subset := make([]dsl.Field, 0, len(names))
	for _, name := range names {
		if i, ok := v.index[name]; ok {
			subset = append(subset, v.fields[i])
		}
	}
	out, serr := v.check(record, subset)
	if serr != nil {
		return serr
	}
	for _, pair := range v.pairs {
		if !contains(names, pair.field) {
			continue
		}
		a, aok := out[pair.field]
		b, bok := out[pair.target]
		if !contains(names, pair.target) {
			tv, tset, tiss := v.fields[v.index[pair.target]].Check(bf.Root().Key(pair.target), record[pair.target], has(record, pair.target))
			if len(tiss) > 0 {
				continue
			}
			b, bok = tv, tset
		}
		if aok != bok || (aok && !dsl.Equal(a, b)) {
			serr = serr.add(pair.field, mismatch(pair))
		}
	}
	if serr != nil {
		return serr
	}
	return nil
}

func (v *SubmissionValidator) check(record map[string]any, fields []dsl.Field) (map[string]any, *SubmissionError) {
	out := make(map[string]any, len(fields))
	var serr *SubmissionError
	for _, f := range fields {
		val, present := record[f.Name]
		cv, set, iss := f.Check(bf.Root().Key(f.Name), val, present)
		if len(iss) > 0 {
			serr = serr.add(f.Name, iss...)
			continue
		}
		if set {
			out[f.Name] = cv
		}
	}
	return out, serr
}

func mismatch(pair sameAs) bf.Issue {
	return bf.Root().Key(pair.field).Issue(bf.KindFieldMismatch, bf.CodeCustom,
		i18n.T(i18n.FieldSameAs, map[string]string{"field": pair.label, "target": pair.target}),
		"target", pair.target)
}

func has(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// OpenAPISchema projects the submission validator to an OpenAPI 3 object
// schema. Fields that may be absent are left out of required.
func (v *SubmissionValidator) OpenAPISchema() *openapi3.Schema {
	sch := openapi3.NewObjectSchema()
	if v.cfg.Title != nil {
		sch.Title = *v.cfg.Title
	}
	if v.cfg.Description != nil {
		sch.Description = *v.cfg.Description
	}
	for _, f := range v.fields {
		sch = sch.WithProperty(f.Name, f.OpenAPI())
		if !f.Optional() {
			sch.Required = append(sch.Required, f.Name)
		}
	}
	return sch
}
