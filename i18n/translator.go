package i18n

import (
	"strconv"
	"strings"
	"sync"
)

// Translator retrieves localized messages for message ids.
// data provides values for {placeholders} in the message (for example,
// "min" or "field").
type Translator interface {
	Message(id string, data map[string]string) string
}

// Message ids. Structural ids mirror the wording of the configuration schema;
// Field* ids are submission-time messages.
const (
	Required          = "required"
	InvalidType       = "invalid_type"
	InvalidEnum       = "invalid_enum"
	InvalidLiteral    = "invalid_literal"
	NotInteger        = "not_integer"
	StringTooShort    = "too_small.string"
	ArrayTooShort     = "too_small.array"
	NumberTooSmall    = "too_small.number"
	NumberNotPositive = "too_small.number_exclusive"
	NumberTooBig      = "too_big.number"

	ConfigInvalid        = "config.invalid"
	ConfigMalformed      = "config.malformed"
	ConfigInvalidPattern = "config.invalid_pattern"

	FieldNameRequired      = "config.field_name_required"
	EndpointRequired       = "config.endpoint_required"
	FieldsRequired         = "config.fields_required"
	SourceEndpointRequired = "config.source_endpoint_required"
	RuleFieldRequired      = "config.rule_field_required"
	StepIDRequired         = "config.step_id_required"
	StepFieldsRequired     = "config.step_fields_required"
	SubmitLabelRequired    = "config.submit_label_required"
	MinLengthAboveMax      = "config.min_length_above_max"
	MinAboveMax            = "config.min_above_max"
	DuplicateField         = "config.duplicate_field"
	SameAsMissing          = "config.same_as_missing"
	SelectNeedsOptions     = "config.select_needs_options"
	MultiselectSingle      = "config.multiselect_single"
	PasswordOnly           = "config.password_only"
	PasswordNotFalse       = "config.password_not_false"
	DuplicateStep          = "config.duplicate_step"
	StepUnknownField       = "config.step_unknown_field"
	StepFieldClaimed       = "config.step_field_claimed"
	StepFieldRepeated      = "config.step_field_repeated"
	StepsEmpty             = "config.steps_empty"

	FieldRequired     = "field.required"
	FieldMinLength    = "field.min_length"
	FieldMaxLength    = "field.max_length"
	FieldPattern      = "field.pattern"
	FieldEmail        = "field.email"
	FieldURL          = "field.url"
	FieldMin          = "field.min"
	FieldMax          = "field.max"
	FieldStep         = "field.step"
	FieldNumber       = "field.number"
	FieldBoolean      = "field.boolean"
	FieldDateRequired = "field.date_required"
	FieldDate         = "field.date"
	FieldDatetime     = "field.datetime"
	FieldOneOf        = "field.one_of"
	FieldSelectMin    = "field.select_min"
	FieldSelectMax    = "field.select_max"
	FieldSelectCap    = "field.select_cap"
	FieldSameAs       = "field.same_as"
)

var catalogs = map[string]map[string]string{
	"en": {
		Required:          "Required",
		InvalidType:       "Expected {expected}, received {received}",
		InvalidEnum:       "Invalid enum value. Expected {options}, received '{received}'",
		InvalidLiteral:    "Invalid literal value, expected {expected}",
		NotInteger:        "Expected integer, received float",
		StringTooShort:    "String must contain at least {min} character(s)",
		ArrayTooShort:     "Array must contain at least {min} element(s)",
		NumberTooSmall:    "Number must be greater than or equal to {min}",
		NumberNotPositive: "Number must be greater than {min}",
		NumberTooBig:      "Number must be less than or equal to {max}",

		ConfigInvalid:        "Invalid form configuration",
		ConfigMalformed:      "Failed to parse JSON form configuration",
		ConfigInvalidPattern: "Invalid regex pattern for field '{field}'",

		FieldNameRequired:      "Field name is required",
		EndpointRequired:       "Form endpoint is required",
		FieldsRequired:         "At least one field is required",
		SourceEndpointRequired: "Endpoint is required",
		RuleFieldRequired:      "Visibility rule requires a field",
		StepIDRequired:         "Step id is required",
		StepFieldsRequired:     "Step must reference at least one field",
		SubmitLabelRequired:    "Submit button requires a label",
		MinLengthAboveMax:      "minLength cannot be greater than maxLength",
		MinAboveMax:            "min cannot be greater than max",
		DuplicateField:         "Duplicate field name: {name}",
		SameAsMissing:          "sameAs target '{target}' does not exist",
		SelectNeedsOptions:     "Select-like fields require options or a dataSource",
		MultiselectSingle:      "Use type 'select' instead of limiting multiselect to one option",
		PasswordOnly:           "Only password fields can set isPassword",
		PasswordNotFalse:       "Password fields should not explicitly set isPassword to false",
		DuplicateStep:          "Duplicate step id: {id}",
		StepUnknownField:       "Step references unknown field '{field}'",
		StepFieldClaimed:       "Field '{field}' is already assigned to a previous step",
		StepFieldRepeated:      "Field '{field}' is listed more than once in step '{step}'",
		StepsEmpty:             "Steps must reference at least one defined field",

		FieldRequired:     "This field is required",
		FieldMinLength:    "Must be at least {n} characters",
		FieldMaxLength:    "Must be at most {n} characters",
		FieldPattern:      "Value does not match required pattern",
		FieldEmail:        "Invalid email",
		FieldURL:          "Invalid url",
		FieldMin:          "Must be greater than or equal to {n}",
		FieldMax:          "Must be less than or equal to {n}",
		FieldStep:         "Must align with step {step}",
		FieldNumber:       "Must be a number",
		FieldBoolean:      "Must be a boolean",
		FieldDateRequired: "Date is required",
		FieldDate:         "Must be a valid ISO date string",
		FieldDatetime:     "Invalid datetime",
		FieldOneOf:        "Invalid option. Expected {options}, received {received}",
		FieldSelectMin:    "Select at least {n} options",
		FieldSelectMax:    "Select at most {n} options",
		FieldSelectCap:    "Select no more than {n} options",
		FieldSameAs:       "{field} must match {target}",
	},
	"ja": {
		Required:          "必須です",
		InvalidType:       "型が不正です（期待: {expected}、実際: {received}）",
		NotInteger:        "整数である必要があります",
		ConfigInvalid:     "フォーム設定が不正です",
		ConfigMalformed:   "JSON フォーム設定を解析できませんでした",
		DuplicateField:    "フィールド名が重複しています: {name}",
		SameAsMissing:     "sameAs の参照先 '{target}' が存在しません",
		DuplicateStep:     "ステップ ID が重複しています: {id}",
		StepUnknownField:  "ステップが未知のフィールド '{field}' を参照しています",
		StepsEmpty:        "ステップは定義済みのフィールドを少なくとも 1 つ参照する必要があります",
		FieldRequired:     "この項目は必須です",
		FieldMinLength:    "{n} 文字以上で入力してください",
		FieldMaxLength:    "{n} 文字以内で入力してください",
		FieldPattern:      "形式が正しくありません",
		FieldEmail:        "メールアドレスが不正です",
		FieldURL:          "URL が不正です",
		FieldMin:          "{n} 以上の値を入力してください",
		FieldMax:          "{n} 以下の値を入力してください",
		FieldStep:         "{step} 刻みの値を入力してください",
		FieldNumber:       "数値を入力してください",
		FieldDateRequired: "日付は必須です",
		FieldDate:         "有効な日付を入力してください",
		FieldSelectMin:    "{n} 個以上選択してください",
		FieldSelectMax:    "{n} 個以内で選択してください",
		FieldSameAs:       "{field} が {target} と一致しません",
	},
}

// dictTranslator is the built-in dictionary-based Translator. Ids missing from
// a language fall back to English.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(id string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][id]
	if !ok {
		tmpl, ok = catalogs["en"][id]
	}
	if !ok {
		return id
	}
	return Format(tmpl, data)
}

// Format substitutes {key} placeholders in tmpl.
func Format(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given id using the current Translator.
func T(id string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(id, data)
}

// Number renders f the way messages show numbers: 5, 0.5, -12.25.
func Number(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
