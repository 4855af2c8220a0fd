// Package schema validates raw form configurations and normalizes them into
// typed betterform.FormConfig values.
package schema

import (
	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// Option customizes Validate.
type Option func(*options)

type options struct {
	sanitize bool
}

// WithSanitizedText strips markup from display strings of a validated config.
func WithSanitizedText() Option {
	return func(o *options) { o.sanitize = true }
}

// Validate checks raw against the configuration schema. raw is JSON text
// (string or []byte), an already decoded tree, or a typed value such as
// *betterform.FormConfig.
//
// Structural problems are all collected; cross-reference checks run only on a
// structurally valid document. Any issue fails the call with a
// *betterform.FormConfigError and no config.
func Validate(raw any, opts ...Option) (*bf.FormConfig, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tree, err := source.Tree(raw)
	if err != nil {
		return nil, &bf.FormConfigError{
			Message: i18n.T(i18n.ConfigMalformed, nil),
			Issues:  bf.Issues{bf.Root().Issue(bf.KindMalformedInput, bf.CodeParseError, err.Error())},
		}
	}

	w := &walker{}
	cfg := w.config(tree)
	if len(w.issues) == 0 {
		w.issues = crossCheck(cfg)
	}
	if len(w.issues) > 0 {
		return nil, &bf.FormConfigError{Message: i18n.T(i18n.ConfigInvalid, nil), Issues: w.issues}
	}

	if cfg.Method == "" {
		cfg.Method = bf.DefaultMethod
	}
	if o.sanitize {
		sanitize(cfg)
	}
	return cfg, nil
}

// MustValidate is like Validate but panics on error. Meant for configs
// embedded in programs and tests.
func MustValidate(raw any, opts ...Option) *bf.FormConfig {
	cfg, err := Validate(raw, opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}
