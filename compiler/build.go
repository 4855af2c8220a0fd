package compiler

import (
	"regexp"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/dsl"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// baseNode maps an effective data type to its validator description.
func baseNode(dt bf.DataType, f *bf.FormField) (dsl.Node, error) {
	switch dt {
	case bf.DataNumber:
		return numberNode(f), nil
	case bf.DataBoolean:
		return dsl.Bool{TypeMessage: i18n.T(i18n.FieldBoolean, nil)}, nil
	case bf.DataDate:
		return dsl.Date{}, nil
	case bf.DataDatetime:
		return dsl.DateTime{}, nil
	case bf.DataArray:
		return dsl.Array{}, nil
	case bf.DataObject:
		return dsl.Object{}, nil
	case bf.DataJSON:
		return dsl.Any{}, nil
	case bf.DataString:
		return stringNode(f)
	}
	// enum carries no constraints of its own.
	return dsl.String{}, nil
}

func stringNode(f *bf.FormField) (dsl.Node, error) {
	s := dsl.String{}
	v := f.Validation
	if v == nil {
		return s, nil
	}
	if v.MinLength != nil {
		s.MinLength = &dsl.Length{N: *v.MinLength}
	}
	if v.MaxLength != nil {
		s.MaxLength = &dsl.Length{N: *v.MaxLength}
	}
	if v.Pattern != nil && *v.Pattern != "" {
		re, err := regexp.Compile(*v.Pattern)
		if err != nil {
			return nil, err
		}
		s.Pattern = re
	}
	s.Email = v.Email != nil && *v.Email
	s.URL = v.URL != nil && *v.URL
	return s, nil
}

func numberNode(f *bf.FormField) dsl.Number {
	n := dsl.Number{TypeMessage: i18n.T(i18n.FieldNumber, nil)}
	if v := f.Validation; v != nil {
		if v.Min != nil {
			n.Min = &dsl.Limit{Value: *v.Min}
		}
		if v.Max != nil {
			n.Max = &dsl.Limit{Value: *v.Max}
		}
	}
	if f.Step != nil && *f.Step > 0 {
		n.Step = *f.Step
		if f.Min != nil && f.Min.Number != nil {
			n.StepBase = *f.Min.Number
		}
	}
	return n
}

func optionValues(f *bf.FormField) []any {
	vals := make([]any, len(f.Options))
	for i, o := range f.Options {
		vals[i] = o.Value
	}
	return vals
}

// fallbackItem follows the first option's value type.
func fallbackItem(f *bf.FormField) dsl.Node {
	if len(f.Options) > 0 {
		switch v := f.Options[0].Value; v.(type) {
		case bool:
			return dsl.Bool{}
		default:
			if _, ok := source.ToFloat(v); ok {
				return dsl.Number{}
			}
		}
	}
	return dsl.String{}
}

func multiselectNode(f *bf.FormField, item dsl.Node) dsl.Array {
	a := dsl.Array{Items: item}
	if v := f.Validation; v != nil {
		if v.MinLength != nil {
			l := &dsl.Length{N: *v.MinLength}
			if v.Required != nil && v.Required.Message != nil {
				l.Message = *v.Required.Message
			}
			a.MinItems = l
		}
		if v.MaxLength != nil {
			a.MaxItems = &dsl.Length{N: *v.MaxLength}
		}
	}
	if f.MaxSelections != nil {
		a.Cap = &dsl.Length{N: *f.MaxSelections}
	}
	return a
}

// isRequired: only an explicit false (or empty message) makes a field optional.
func isRequired(f *bf.FormField) bool {
	if f.Validation == nil || f.Validation.Required == nil {
		return true
	}
	return f.Validation.Required.IsRequired()
}

func requiredMessage(f *bf.FormField) string {
	if f.Validation != nil && f.Validation.Required != nil && f.Validation.Required.Message != nil {
		return *f.Validation.Required.Message
	}
	return i18n.T(i18n.FieldRequired, nil)
}

// buildField compiles the validator of the field at index i. A pattern that
// does not compile aborts with a *betterform.FormConfigError.
func buildField(f *bf.FormField, i int) (dsl.Field, bf.DataType, error) {
	dt := EffectiveDataType(f)
	node, err := baseNode(dt, f)
	if err != nil {
		return dsl.Field{}, dt, &bf.FormConfigError{
			Message: i18n.T(i18n.ConfigInvalidPattern, map[string]string{"field": f.Name}),
			Issues: bf.Issues{bf.Root().Key("fields").Index(i).Key("validation").Key("pattern").
				Issue(bf.KindInvalidPattern, bf.CodePattern, err.Error(), "pattern", *f.Validation.Pattern)},
		}
	}

	lits := dsl.Literals(optionValues(f))
	switch f.Type {
	case bf.FieldSelect, bf.FieldRadio:
		if len(lits) > 0 {
			node = dsl.OneOf{Values: lits}
		}
	case bf.FieldMultiselect:
		var item dsl.Node = dsl.OneOf{Values: lits}
		if len(lits) == 0 {
			item = fallbackItem(f)
		}
		node = multiselectNode(f, item)
	case bf.FieldCheckbox, bf.FieldToggle:
		node = dsl.Bool{}
	}

	required := isRequired(f)
	if s, ok := node.(dsl.String); ok && required && dt == bf.DataString {
		s.NonEmpty = requiredMessage(f)
		node = s
	}

	return dsl.Field{
		Name:       f.Name,
		Node:       node,
		Required:   required,
		Default:    f.DefaultValue,
		HasDefault: f.DefaultValue != nil,
	}, dt, nil
}
