package schema

import (
	"maps"
	"slices"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
)

var (
	methods         = []string{"POST", "PUT", "PATCH"}
	sourceMethods   = []string{"GET", "POST"}
	paginationModes = []string{"infinite", "paged"}
	inputModes      = []string{"text", "email", "numeric", "tel", "url"}
	widths          = []string{"full", "half", "third"}
	variants        = []string{"primary", "secondary", "danger"}
)

func (w *walker) config(v any) *bf.FormConfig {
	p := bf.Root()
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	cfg := &bf.FormConfig{}
	cfg.Title = w.str(obj, "title", p)
	cfg.Description = w.str(obj, "description", p)
	cfg.Endpoint = w.reqStr(obj, "endpoint", p, i18n.EndpointRequired)
	if m := w.enum(obj, "method", p, methods); m != nil {
		cfg.Method = *m
	}
	cfg.Headers = w.stringMap(obj, "headers", p)
	cfg.AuthTokenRef = w.str(obj, "authTokenRef", p)

	if arr, present := w.array(obj, "fields", p); !present {
		w.missing(p.Key("fields"))
	} else if arr != nil {
		if len(arr) == 0 {
			w.add(p.Key("fields"), bf.CodeTooSmall, i18n.T(i18n.FieldsRequired, nil), "minimum", 1)
		}
		cfg.Fields = make([]bf.FormField, 0, len(arr))
		for i, item := range arr {
			if f := w.field(item, p.Key("fields").Index(i)); f != nil {
				cfg.Fields = append(cfg.Fields, *f)
			}
		}
	}

	if arr, _ := w.array(obj, "steps", p); len(arr) > 0 {
		cfg.Steps = make([]bf.FormStep, 0, len(arr))
		for i, item := range arr {
			if s := w.step(item, p.Key("steps").Index(i)); s != nil {
				cfg.Steps = append(cfg.Steps, *s)
			}
		}
	}

	if sv, ok := obj["submit"]; !ok {
		w.missing(p.Key("submit"))
	} else if s := w.submit(sv, p.Key("submit")); s != nil {
		cfg.Submit = *s
	}

	cfg.OnSuccessRedirect = w.str(obj, "onSuccessRedirect", p)
	cfg.OnSuccessMessage = w.str(obj, "onSuccessMessage", p)
	cfg.OnErrorMessage = w.str(obj, "onErrorMessage", p)
	if d, present := w.object(obj, "draft", p); present && d != nil {
		dp := p.Key("draft")
		cfg.Draft = &bf.DraftSettings{
			Autosave:   w.boolean(d, "autosave", dp),
			IntervalMs: w.integer(d, "intervalMs", dp, positive),
		}
	}
	return cfg
}

func (w *walker) field(v any, p bf.Path) *bf.FormField {
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	f := &bf.FormField{}
	f.Name = w.reqStr(obj, "name", p, i18n.FieldNameRequired)
	if t := w.reqEnum(obj, "type", p, enumStrings(bf.FieldTypes)); t != nil {
		f.Type = bf.FieldType(*t)
	}
	f.Label = w.str(obj, "label", p)
	f.Placeholder = w.str(obj, "placeholder", p)
	f.Description = w.str(obj, "description", p)
	f.HelpText = w.str(obj, "helpText", p)
	f.Icon = w.str(obj, "icon", p)
	f.DefaultValue = obj["defaultValue"]
	f.Disabled = w.boolean(obj, "disabled", p)
	f.ReadOnly = w.boolean(obj, "readOnly", p)
	f.IsPassword = w.boolean(obj, "isPassword", p)
	f.InputMode = w.enum(obj, "inputMode", p, inputModes)
	f.AutoComplete = w.str(obj, "autoComplete", p)
	f.Mask = w.str(obj, "mask", p)
	f.Rows = w.integer(obj, "rows", p, positive)
	f.Step = w.number(obj, "step", p)
	f.Min = w.bound(obj, "min", p)
	f.Max = w.bound(obj, "max", p)
	f.MaxSelections = w.integer(obj, "maxSelections", p, positive)
	if dt := w.enum(obj, "dataType", p, enumStrings(bf.DataTypes)); dt != nil {
		d := bf.DataType(*dt)
		f.DataType = &d
	}
	if arr, present := w.array(obj, "options", p); present && arr != nil {
		f.Options = make([]bf.StaticOption, 0, len(arr))
		for i, item := range arr {
			if o := w.option(item, p.Key("options").Index(i)); o != nil {
				f.Options = append(f.Options, *o)
			}
		}
	}
	if ds, present := w.object(obj, "dataSource", p); present && ds != nil {
		f.DataSource = w.dataSource(ds, p.Key("dataSource"))
	}
	if val, present := w.object(obj, "validation", p); present && val != nil {
		f.Validation = w.validation(val, p.Key("validation"))
	}
	if arr, present := w.array(obj, "visibleWhen", p); present && arr != nil {
		f.VisibleWhen = make([]bf.VisibilityRule, 0, len(arr))
		for i, item := range arr {
			if r := w.rule(item, p.Key("visibleWhen").Index(i)); r != nil {
				f.VisibleWhen = append(f.VisibleWhen, *r)
			}
		}
	}
	if l, present := w.object(obj, "layout", p); present && l != nil {
		lp := p.Key("layout")
		f.Layout = &bf.Layout{
			ColSpan: w.integer(l, "colSpan", lp, intRule{min: 0, exclusive: true, max: 12, hasMax: true}),
			RowSpan: w.integer(l, "rowSpan", lp, positive),
			Order:   w.integer(l, "order", lp, nonNegative),
			Width:   w.enum(l, "width", lp, widths),
		}
	}
	if attrs, present := w.object(obj, "attributes", p); present && attrs != nil {
		f.Attributes = make(map[string]any, len(attrs))
		for _, k := range slices.Sorted(maps.Keys(attrs)) {
			if pv, ok := w.primitive(attrs[k], p.Key("attributes").Key(k), "string | number | boolean"); ok {
				f.Attributes[k] = pv
			}
		}
	}
	return f
}

// bound reads a field-level min/max, a number or a string.
func (w *walker) bound(obj map[string]any, key string, p bf.Path) *bf.Bound {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		return bf.TextBound(s)
	}
	f := w.number(obj, key, p)
	if f == nil {
		return nil
	}
	return bf.NumberBound(*f)
}

func (w *walker) option(v any, p bf.Path) *bf.StaticOption {
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	o := &bf.StaticOption{}
	if val, present := obj["value"]; !present {
		w.missing(p.Key("value"))
	} else if pv, ok := w.primitive(val, p.Key("value"), "string | number | boolean"); ok {
		o.Value = pv
	}
	if _, present := obj["label"]; !present {
		w.missing(p.Key("label"))
	} else if l := w.str(obj, "label", p); l != nil {
		o.Label = *l
	}
	o.Description = w.str(obj, "description", p)
	o.Disabled = w.boolean(obj, "disabled", p)
	return o
}

func (w *walker) dataSource(obj map[string]any, p bf.Path) *bf.DataSource {
	ds := &bf.DataSource{}
	if t, present := obj["type"]; !present {
		w.missing(p.Key("type"))
	} else if s, ok := t.(string); !ok || s != "remote" {
		w.add(p.Key("type"), bf.CodeInvalidEnum,
			i18n.T(i18n.InvalidLiteral, map[string]string{"expected": `"remote"`}), "expected", "remote")
	} else {
		ds.Type = s
	}
	ds.Endpoint = w.reqStr(obj, "endpoint", p, i18n.SourceEndpointRequired)
	ds.Method = w.enum(obj, "method", p, sourceMethods)
	ds.QueryParam = w.str(obj, "queryParam", p)
	ds.PayloadTemplate = w.anyMap(obj, "payloadTemplate", p)
	ds.Headers = w.stringMap(obj, "headers", p)
	ds.AuthTokenRef = w.str(obj, "authTokenRef", p)
	ds.DebounceMs = w.integer(obj, "debounceMs", p, nonNegative)
	if pg, present := w.object(obj, "pagination", p); present && pg != nil {
		pp := p.Key("pagination")
		pag := &bf.Pagination{}
		if m := w.reqEnum(pg, "mode", pp, paginationModes); m != nil {
			pag.Mode = *m
		}
		pag.PageSize = w.integer(pg, "pageSize", pp, positive)
		pag.PageParam = w.str(pg, "pageParam", pp)
		pag.CursorParam = w.str(pg, "cursorParam", pp)
		pag.LabelKey = w.reqStr(pg, "labelKey", pp, "")
		pag.ValueKey = w.reqStr(pg, "valueKey", pp, "")
		pag.HasMoreKey = w.str(pg, "hasMoreKey", pp)
		ds.Pagination = pag
	}
	ds.CacheTTLMs = w.integer(obj, "cacheTtlMs", p, nonNegative)
	return ds
}

// validation reads the validation sub-object. The range refinements only run
// when the sub-object itself is well formed.
func (w *walker) validation(obj map[string]any, p bf.Path) *bf.FieldValidation {
	before := len(w.issues)
	val := &bf.FieldValidation{}
	if r, present := obj["required"]; present {
		switch t := r.(type) {
		case bool:
			val.Required = bf.RequiredFlag(t)
		case string:
			val.Required = bf.RequiredMessage(t)
		default:
			w.typeMismatch(p.Key("required"), "boolean | string", r)
		}
	}
	val.MinLength = w.integer(obj, "minLength", p, nonNegative)
	val.MaxLength = w.integer(obj, "maxLength", p, nonNegative)
	val.Min = w.number(obj, "min", p)
	val.Max = w.number(obj, "max", p)
	val.Pattern = w.str(obj, "pattern", p)
	val.Email = w.boolean(obj, "email", p)
	val.URL = w.boolean(obj, "url", p)
	val.SameAs = w.str(obj, "sameAs", p)
	val.CustomValidatorKey = w.str(obj, "customValidatorKey", p)
	if len(w.issues) > before {
		return val
	}
	if val.MinLength != nil && val.MaxLength != nil && *val.MinLength > *val.MaxLength {
		w.add(p.Key("maxLength"), bf.CodeCustom, i18n.T(i18n.MinLengthAboveMax, nil))
	}
	if val.Min != nil && val.Max != nil && *val.Min > *val.Max {
		w.add(p.Key("max"), bf.CodeCustom, i18n.T(i18n.MinAboveMax, nil))
	}
	return val
}

func (w *walker) rule(v any, p bf.Path) *bf.VisibilityRule {
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	r := &bf.VisibilityRule{}
	r.Field = w.reqStr(obj, "field", p, i18n.RuleFieldRequired)
	if op := w.reqEnum(obj, "operator", p, enumStrings(bf.Operators)); op != nil {
		r.Operator = bf.Operator(*op)
	}
	r.Value = obj["value"]
	return r
}

func (w *walker) step(v any, p bf.Path) *bf.FormStep {
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	s := &bf.FormStep{}
	s.ID = w.reqStr(obj, "id", p, i18n.StepIDRequired)
	s.Title = w.str(obj, "title", p)
	s.Description = w.str(obj, "description", p)
	if arr, present := w.array(obj, "fields", p); !present {
		w.missing(p.Key("fields"))
	} else if arr != nil {
		fp := p.Key("fields")
		if len(arr) == 0 {
			w.add(fp, bf.CodeTooSmall, i18n.T(i18n.StepFieldsRequired, nil), "minimum", 1)
		}
		s.Fields = make([]string, 0, len(arr))
		for i, item := range arr {
			name, isStr := item.(string)
			if !isStr {
				w.typeMismatch(fp.Index(i), "string", item)
				continue
			}
			if name == "" {
				w.tooShort(fp.Index(i), "")
			}
			s.Fields = append(s.Fields, name)
		}
	}
	s.NextLabel = w.str(obj, "nextLabel", p)
	s.PreviousLabel = w.str(obj, "previousLabel", p)
	s.ProgressLabel = w.str(obj, "progressLabel", p)
	return s
}

func (w *walker) submit(v any, p bf.Path) *bf.SubmitAction {
	obj, ok := w.asObject(v, p)
	if !ok {
		return nil
	}
	s := &bf.SubmitAction{}
	s.Label = w.reqStr(obj, "label", p, i18n.SubmitLabelRequired)
	s.Icon = w.str(obj, "icon", p)
	s.Variant = w.enum(obj, "variant", p, variants)
	s.LoadingText = w.str(obj, "loadingText", p)
	s.SuccessMessage = w.str(obj, "successMessage", p)
	s.ErrorMessage = w.str(obj, "errorMessage", p)
	if cd, present := w.object(obj, "confirmDialog", p); present && cd != nil {
		cp := p.Key("confirmDialog")
		s.ConfirmDialog = &bf.ConfirmDialog{
			Title:        w.reqStr(cd, "title", cp, ""),
			Message:      w.reqStr(cd, "message", cp, ""),
			ConfirmLabel: w.str(cd, "confirmLabel", cp),
			CancelLabel:  w.str(cd, "cancelLabel", cp),
		}
	}
	return s
}
