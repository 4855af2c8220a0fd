package betterform

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// FieldType is the UI control type of a field.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldEmail       FieldType = "email"
	FieldPassword    FieldType = "password"
	FieldTextarea    FieldType = "textarea"
	FieldNumber      FieldType = "number"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldCheckbox    FieldType = "checkbox"
	FieldRadio       FieldType = "radio"
	FieldDate        FieldType = "date"
	FieldDatetime    FieldType = "datetime"
	FieldFile        FieldType = "file"
	FieldToggle      FieldType = "toggle"
)

// FieldTypes lists every accepted FieldType in declaration order.
var FieldTypes = []FieldType{
	FieldText, FieldEmail, FieldPassword, FieldTextarea, FieldNumber, FieldSelect,
	FieldMultiselect, FieldCheckbox, FieldRadio, FieldDate, FieldDatetime, FieldFile, FieldToggle,
}

// SelectLike reports whether the type picks from a set of options.
func (t FieldType) SelectLike() bool {
	return t == FieldSelect || t == FieldMultiselect || t == FieldRadio
}

// DataType is the backend value type a field's input is validated against.
type DataType string

const (
	DataString   DataType = "string"
	DataNumber   DataType = "number"
	DataBoolean  DataType = "boolean"
	DataDate     DataType = "date"
	DataDatetime DataType = "datetime"
	DataEnum     DataType = "enum"
	DataObject   DataType = "object"
	DataArray    DataType = "array"
	DataJSON     DataType = "json"
)

// DataTypes lists every accepted DataType in declaration order.
var DataTypes = []DataType{
	DataString, DataNumber, DataBoolean, DataDate, DataDatetime, DataEnum, DataObject, DataArray, DataJSON,
}

// Operator is a visibility rule comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "notEquals"
	OpIn          Operator = "in"
	OpNotIn       Operator = "notIn"
	OpExists      Operator = "exists"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
)

// Operators lists every accepted Operator.
var Operators = []Operator{OpEquals, OpNotEquals, OpIn, OpNotIn, OpExists, OpGreaterThan, OpLessThan}

// DefaultMethod is applied when a configuration omits method.
const DefaultMethod = "POST"

// FormConfig is the root of a form configuration. Optional attributes are
// pointers, nil meaning absent.
type FormConfig struct {
	Title             *string           `json:"title,omitempty"`
	Description       *string           `json:"description,omitempty"`
	Endpoint          string            `json:"endpoint"`
	Method            string            `json:"method,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
	AuthTokenRef      *string           `json:"authTokenRef,omitempty"`
	Fields            []FormField       `json:"fields"`
	Steps             []FormStep        `json:"steps,omitempty"`
	Submit            SubmitAction      `json:"submit"`
	OnSuccessRedirect *string           `json:"onSuccessRedirect,omitempty"`
	OnSuccessMessage  *string           `json:"onSuccessMessage,omitempty"`
	OnErrorMessage    *string           `json:"onErrorMessage,omitempty"`
	Draft             *DraftSettings    `json:"draft,omitempty"`
}

// FieldByName returns the first field named name.
func (c *FormConfig) FieldByName(name string) (*FormField, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// FieldNames returns field names in declaration order.
func (c *FormConfig) FieldNames() []string {
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		out = append(out, f.Name)
	}
	return out
}

// FormField describes one data-entry point.
type FormField struct {
	Name          string           `json:"name"`
	Type          FieldType        `json:"type"`
	Label         *string          `json:"label,omitempty"`
	Placeholder   *string          `json:"placeholder,omitempty"`
	Description   *string          `json:"description,omitempty"`
	HelpText      *string          `json:"helpText,omitempty"`
	Icon          *string          `json:"icon,omitempty"`
	DefaultValue  any              `json:"defaultValue,omitempty"` // nil means no default
	Disabled      *bool            `json:"disabled,omitempty"`
	ReadOnly      *bool            `json:"readOnly,omitempty"`
	IsPassword    *bool            `json:"isPassword,omitempty"`
	InputMode     *string          `json:"inputMode,omitempty"`
	AutoComplete  *string          `json:"autoComplete,omitempty"`
	Mask          *string          `json:"mask,omitempty"`
	Rows          *int             `json:"rows,omitempty"`
	Step          *float64         `json:"step,omitempty"`
	Min           *Bound           `json:"min,omitempty"`
	Max           *Bound           `json:"max,omitempty"`
	MaxSelections *int             `json:"maxSelections,omitempty"`
	DataType      *DataType        `json:"dataType,omitempty"`
	Options       []StaticOption   `json:"options,omitempty"`
	DataSource    *DataSource      `json:"dataSource,omitempty"`
	Validation    *FieldValidation `json:"validation,omitempty"`
	VisibleWhen   []VisibilityRule `json:"visibleWhen,omitempty"`
	Layout        *Layout          `json:"layout,omitempty"`
	Attributes    map[string]any   `json:"attributes,omitempty"`
}

// DisplayName is the label when present, else the name.
func (f *FormField) DisplayName() string {
	if f.Label != nil {
		return *f.Label
	}
	return f.Name
}

// StaticOption is one entry of a select-like field. Value is a string,
// float64 or bool.
type StaticOption struct {
	Value       any     `json:"value"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Disabled    *bool   `json:"disabled,omitempty"`
}

// DataSource describes a remote option source. The core never fetches it.
type DataSource struct {
	Type            string            `json:"type"`
	Endpoint        string            `json:"endpoint"`
	Method          *string           `json:"method,omitempty"`
	QueryParam      *string           `json:"queryParam,omitempty"`
	PayloadTemplate map[string]any    `json:"payloadTemplate,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	AuthTokenRef    *string           `json:"authTokenRef,omitempty"`
	DebounceMs      *int              `json:"debounceMs,omitempty"`
	Pagination      *Pagination       `json:"pagination,omitempty"`
	CacheTTLMs      *int              `json:"cacheTtlMs,omitempty"`
}

// Pagination names the keys a remote option payload uses.
type Pagination struct {
	Mode        string  `json:"mode"`
	PageSize    *int    `json:"pageSize,omitempty"`
	PageParam   *string `json:"pageParam,omitempty"`
	CursorParam *string `json:"cursorParam,omitempty"`
	LabelKey    string  `json:"labelKey"`
	ValueKey    string  `json:"valueKey"`
	HasMoreKey  *string `json:"hasMoreKey,omitempty"`
}

// FieldValidation carries a field's data rules.
type FieldValidation struct {
	Required           *Requirement `json:"required,omitempty"`
	MinLength          *int         `json:"minLength,omitempty"`
	MaxLength          *int         `json:"maxLength,omitempty"`
	Min                *float64     `json:"min,omitempty"`
	Max                *float64     `json:"max,omitempty"`
	Pattern            *string      `json:"pattern,omitempty"`
	Email              *bool        `json:"email,omitempty"`
	URL                *bool        `json:"url,omitempty"`
	SameAs             *string      `json:"sameAs,omitempty"`
	CustomValidatorKey *string      `json:"customValidatorKey,omitempty"`
}

// Requirement is validation.required: either a flag or a custom failure
// message.
type Requirement struct {
	Flag    bool
	Message *string // set when the string form was used
}

// RequiredFlag builds the boolean form.
func RequiredFlag(b bool) *Requirement { return &Requirement{Flag: b} }

// RequiredMessage builds the message form.
func RequiredMessage(msg string) *Requirement { return &Requirement{Message: &msg} }

// IsRequired follows JavaScript truthiness: an empty message is not required.
func (r Requirement) IsRequired() bool {
	if r.Message != nil {
		return *r.Message != ""
	}
	return r.Flag
}

func (r Requirement) MarshalJSON() ([]byte, error) {
	if r.Message != nil {
		return json.Marshal(*r.Message)
	}
	return json.Marshal(r.Flag)
}

func (r *Requirement) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*r = Requirement{Flag: t}
	case string:
		*r = Requirement{Message: &t}
	default:
		return fmt.Errorf("required: expected boolean or string, got %s", bytes.TrimSpace(b))
	}
	return nil
}

// Bound is a field-level min/max hint, a number or a string (e.g. a date).
type Bound struct {
	Number *float64
	Text   *string
}

// NumberBound builds a numeric Bound.
func NumberBound(f float64) *Bound { return &Bound{Number: &f} }

// TextBound builds a string Bound.
func TextBound(s string) *Bound { return &Bound{Text: &s} }

func (b Bound) MarshalJSON() ([]byte, error) {
	if b.Number != nil {
		return json.Marshal(*b.Number)
	}
	if b.Text != nil {
		return json.Marshal(*b.Text)
	}
	return []byte("null"), nil
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*b = Bound{Number: &t}
	case string:
		*b = Bound{Text: &t}
	default:
		return fmt.Errorf("bound: expected number or string, got %s", bytes.TrimSpace(data))
	}
	return nil
}

// VisibilityRule is a predicate over another field's current value.
type VisibilityRule struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

// Layout carries grid hints for renderers.
type Layout struct {
	ColSpan *int    `json:"colSpan,omitempty"`
	RowSpan *int    `json:"rowSpan,omitempty"`
	Order   *int    `json:"order,omitempty"`
	Width   *string `json:"width,omitempty"`
}

// FormStep groups field names into one wizard page.
type FormStep struct {
	ID            string   `json:"id"`
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Fields        []string `json:"fields"`
	NextLabel     *string  `json:"nextLabel,omitempty"`
	PreviousLabel *string  `json:"previousLabel,omitempty"`
	ProgressLabel *string  `json:"progressLabel,omitempty"`
}

// SubmitAction configures the submit control and outcome messages.
type SubmitAction struct {
	Label          string         `json:"label"`
	Icon           *string        `json:"icon,omitempty"`
	Variant        *string        `json:"variant,omitempty"`
	LoadingText    *string        `json:"loadingText,omitempty"`
	SuccessMessage *string        `json:"successMessage,omitempty"`
	ErrorMessage   *string        `json:"errorMessage,omitempty"`
	ConfirmDialog  *ConfirmDialog `json:"confirmDialog,omitempty"`
}

// ConfirmDialog is shown before submission when present.
type ConfirmDialog struct {
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	ConfirmLabel *string `json:"confirmLabel,omitempty"`
	CancelLabel  *string `json:"cancelLabel,omitempty"`
}

// DraftSettings controls draft autosave.
type DraftSettings struct {
	Autosave   *bool `json:"autosave,omitempty"`
	IntervalMs *int  `json:"intervalMs,omitempty"`
}

// Ptr returns a pointer to v. Handy when building configs in Go.
func Ptr[T any](v T) *T { return &v }
