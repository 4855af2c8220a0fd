package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/dsl"
	"github.com/mikiasgoitom/better-form/flow"
	"github.com/mikiasgoitom/better-form/source"
)

// MaxAttempts bounds how often a step is re-asked after failing validation.
const MaxAttempts = 3

// Fill walks v's steps, asking every visible field, and returns the
// validated submission. A step that fails validation re-asks only the
// failing fields.
func Fill(ctx context.Context, v *compiler.SubmissionValidator, d Driver) (map[string]any, error) {
	cfg := v.Config()
	nav := flow.NewNavigator(v)
	values := flow.InitialValues(cfg)

	for {
		if nav.IsMultiStep() {
			if err := d.Info(ctx, stepHeading(nav)); err != nil {
				return nil, err
			}
		}

		fields := nav.Fields()
		pending := nameSet(fields)
		last := nav.IsLast()
		var err error
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			for i := range fields {
				f := &fields[i]
				if !pending[f.Name] || !flow.EvaluateVisibility(f.VisibleWhen, values) {
					continue
				}
				if err := ask(ctx, d, v, f, values); err != nil {
					return nil, err
				}
			}
			if err = nav.Advance(values); err == nil {
				break
			}
			se, ok := compiler.AsSubmissionError(err)
			if !ok {
				return nil, err
			}
			if err := report(ctx, d, se); err != nil {
				return nil, err
			}
			pending = failed(se)
		}
		if err != nil {
			return nil, err
		}

		if last {
			return nav.Submit(values)
		}
	}
}

func stepHeading(nav *flow.Navigator) string {
	step := nav.Current()
	if step.Title != nil {
		return fmt.Sprintf("%s: %s", nav.Progress(), *step.Title)
	}
	return nav.Progress()
}

func nameSet(fields []bf.FormField) map[string]bool {
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f.Name] = true
	}
	return out
}

func failed(se *compiler.SubmissionError) map[string]bool {
	out := make(map[string]bool, len(se.Order))
	for _, name := range se.Order {
		out[name] = true
	}
	return out
}

func report(ctx context.Context, d Driver, se *compiler.SubmissionError) error {
	msgs := se.Messages()
	for _, name := range se.Order {
		if err := d.Info(ctx, fmt.Sprintf("  %s: %s", name, msgs[name])); err != nil {
			return err
		}
	}
	return nil
}

// ask prompts for one field and stores the answer in values. A blank answer
// to an optional field removes it.
func ask(ctx context.Context, d Driver, v *compiler.SubmissionValidator, f *bf.FormField, values map[string]any) error {
	msg := f.DisplayName()
	help := ""
	if f.HelpText != nil {
		help = *f.HelpText
	} else if f.Description != nil {
		help = *f.Description
	}

	switch f.Type {
	case bf.FieldCheckbox, bf.FieldToggle:
		def, _ := values[f.Name].(bool)
		ok, err := d.Confirm(ctx, ConfirmConfig{Message: msg, Default: def, Help: help})
		if err != nil {
			return err
		}
		values[f.Name] = ok
		return nil

	case bf.FieldSelect, bf.FieldRadio:
		if len(f.Options) == 0 {
			break
		}
		i, err := d.Select(ctx, SelectConfig{
			Message:      msg,
			Options:      optionLabels(f.Options),
			DefaultIndex: optionIndex(f.Options, values[f.Name]),
			Help:         help,
		})
		if err != nil {
			return err
		}
		if i >= 0 && i < len(f.Options) {
			values[f.Name] = f.Options[i].Value
		}
		return nil

	case bf.FieldMultiselect:
		if len(f.Options) == 0 {
			break
		}
		var defaults []int
		if cur, ok := source.Normalize(values[f.Name]).([]any); ok {
			for _, c := range cur {
				if i := optionIndex(f.Options, c); i >= 0 {
					defaults = append(defaults, i)
				}
			}
		}
		idx, err := d.MultiSelect(ctx, SelectConfig{
			Message:  msg,
			Options:  optionLabels(f.Options),
			Defaults: defaults,
			Help:     help,
		})
		if err != nil {
			return err
		}
		picked := []any{}
		for _, i := range idx {
			if i >= 0 && i < len(f.Options) {
				picked = append(picked, f.Options[i].Value)
			}
		}
		values[f.Name] = picked
		return nil
	}

	in := InputConfig{Message: msg, Default: textDefault(values[f.Name]), Help: help}
	var (
		text string
		err  error
	)
	switch {
	case f.Type == bf.FieldPassword || (f.IsPassword != nil && *f.IsPassword):
		text, err = d.Password(ctx, in)
	case f.Type == bf.FieldTextarea:
		text, err = d.TextArea(ctx, in)
	default:
		text, err = d.Input(ctx, in)
	}
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		if cf, ok := v.Field(f.Name); ok && !cf.Required {
			delete(values, f.Name)
			return nil
		}
	}
	values[f.Name] = convert(compiler.EffectiveDataType(f), text)
	return nil
}

// convert turns typed text into the value kind the field's data type
// expects. Text that does not convert is kept so validation reports it.
func convert(dt bf.DataType, text string) any {
	switch dt {
	case bf.DataNumber:
		if n, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return n
		}
	case bf.DataBoolean:
		if b, err := strconv.ParseBool(strings.TrimSpace(text)); err == nil {
			return b
		}
	case bf.DataArray, bf.DataObject, bf.DataJSON:
		if tree, err := source.JSON([]byte(text)); err == nil {
			return tree
		}
	}
	return text
}

func optionLabels(opts []bf.StaticOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func optionIndex(opts []bf.StaticOption, v any) int {
	if v == nil {
		return -1
	}
	for i, o := range opts {
		if dsl.Equal(o.Value, v) {
			return i
		}
	}
	return -1
}

func textDefault(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
