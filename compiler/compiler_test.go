package compiler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/schema"
)

func compile(t *testing.T, fields string) *compiler.SubmissionValidator {
	t.Helper()
	cfg := schema.MustValidate(`{"endpoint":"/submit","submit":{"label":"Send"},"fields":` + fields + `}`)
	v, err := compiler.Compile(cfg)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return v
}

func submissionError(t *testing.T, err error) *compiler.SubmissionError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected submission error")
	}
	se, ok := compiler.AsSubmissionError(err)
	if !ok {
		t.Fatalf("expected *SubmissionError, got %T: %v", err, err)
	}
	return se
}

func TestPasswordConfirmation(t *testing.T) {
	v := compile(t, `[
		{"name":"password","type":"password","validation":{"minLength":8,"required":true}},
		{"name":"confirmPassword","type":"password","validation":{"sameAs":"password","required":true}}
	]`)

	out, err := v.Validate(map[string]any{"password": "abcd1234", "confirmPassword": "abcd1234"})
	if err != nil {
		t.Fatalf("matching passwords should pass: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"password": "abcd1234", "confirmPassword": "abcd1234"}, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Validate(map[string]any{"password": "abcd1234", "confirmPassword": "xxxx1234"})
	se := submissionError(t, err)
	iss := se.Issues()
	if len(iss) != 1 || iss[0].Kind != bf.KindFieldMismatch {
		t.Fatalf("expected one FieldMismatch, got %v", iss)
	}
	if iss[0].Path.Pointer() != "/confirmPassword" || iss[0].Message != "confirmPassword must match password" {
		t.Fatalf("unexpected issue %+v", iss[0])
	}
}

func TestSameAs_UsesLabelAndSkipsWhenFieldsFail(t *testing.T) {
	v := compile(t, `[
		{"name":"email","type":"email","validation":{"email":true}},
		{"name":"confirm","type":"email","label":"Confirm email","validation":{"sameAs":"email"}}
	]`)
	_, err := v.Validate(map[string]any{"email": "a@example.com", "confirm": "b@example.com"})
	se := submissionError(t, err)
	if got := se.Messages()["confirm"]; got != "Confirm email must match email" {
		t.Fatalf("unexpected message %q", got)
	}

	_, err = v.Validate(map[string]any{"email": "nope", "confirm": "other"})
	se = submissionError(t, err)
	if len(se.Issues().OfKind(bf.KindFieldMismatch)) != 0 {
		t.Fatalf("cross-field pass must not run over invalid fields: %v", se.Issues())
	}
}

func TestSameAs_NoCoercion(t *testing.T) {
	v := compile(t, `[
		{"name":"pin","type":"number"},
		{"name":"pinText","type":"text","validation":{"sameAs":"pin"}}
	]`)
	_, err := v.Validate(map[string]any{"pin": 8, "pinText": "8"})
	se := submissionError(t, err)
	if len(se.Fields["pinText"]) != 1 || se.Fields["pinText"][0].Kind != bf.KindFieldMismatch {
		t.Fatalf("8 and \"8\" must not match: %v", se.Issues())
	}
}

func TestNumberStepAlignment(t *testing.T) {
	v := compile(t, `[{"name":"quantity","type":"number","step":5,"min":0}]`)

	_, err := v.Validate(map[string]any{"quantity": 12})
	se := submissionError(t, err)
	if got := se.Messages()["quantity"]; got != "Must align with step 5" {
		t.Fatalf("unexpected message %q", got)
	}

	out, err := v.Validate(map[string]any{"quantity": 15})
	if err != nil {
		t.Fatalf("15 should pass: %v", err)
	}
	if out["quantity"] != float64(15) {
		t.Fatalf("numbers come back as float64, got %#v", out["quantity"])
	}
}

func TestNumberMessages(t *testing.T) {
	v := compile(t, `[{"name":"age","type":"number","validation":{"min":18,"max":99}}]`)
	tests := []struct {
		in   any
		want string
	}{
		{"20", "Must be a number"},
		{17, "Must be greater than or equal to 18"},
		{100.5, "Must be less than or equal to 99"},
	}
	for _, tc := range tests {
		_, err := v.Validate(map[string]any{"age": tc.in})
		if got := submissionError(t, err).Messages()["age"]; got != tc.want {
			t.Errorf("age=%#v: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMultiselectBound(t *testing.T) {
	v := compile(t, `[{"name":"tags","type":"multiselect","maxSelections":2,"options":[
		{"value":"a","label":"A"},{"value":"b","label":"B"},{"value":"c","label":"C"},
		{"value":"d","label":"D"},{"value":"e","label":"E"}
	]}]`)

	_, err := v.Validate(map[string]any{"tags": []any{"a", "b", "c"}})
	se := submissionError(t, err)
	if got := se.Messages()["tags"]; got != "Select no more than 2 options" {
		t.Fatalf("unexpected message %q", got)
	}

	out, err := v.Validate(map[string]any{"tags": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("two tags should pass: %v", err)
	}
	if diff := cmp.Diff([]any{"a", "b"}, out["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Validate(map[string]any{"tags": []any{"a", "z"}})
	se = submissionError(t, err)
	if iss := se.Fields["tags"]; len(iss) != 1 || iss[0].Path.Pointer() != "/tags/1" {
		t.Fatalf("unknown option should be reported at its index, got %v", iss)
	}
}

func TestMultiselectMinUsesRequiredMessage(t *testing.T) {
	v := compile(t, `[{"name":"tags","type":"multiselect","options":[{"value":1,"label":"One"},{"value":2,"label":"Two"}],
		"validation":{"minLength":1,"maxLength":2,"required":"Pick at least one"}}]`)
	_, err := v.Validate(map[string]any{"tags": []any{}})
	if got := submissionError(t, err).Messages()["tags"]; got != "Pick at least one" {
		t.Fatalf("unexpected message %q", got)
	}
	if _, err := v.Validate(map[string]any{"tags": []any{2}}); err != nil {
		t.Fatalf("numeric options should match: %v", err)
	}
}

func TestRequiredness(t *testing.T) {
	v := compile(t, `[
		{"name":"name","type":"text"},
		{"name":"nick","type":"text","validation":{"required":"Nickname please"}},
		{"name":"bio","type":"textarea","validation":{"required":false,"maxLength":5}}
	]`)

	_, err := v.Validate(map[string]any{"name": "", "nick": ""})
	se := submissionError(t, err)
	want := map[string]string{"name": "This field is required", "nick": "Nickname please"}
	if diff := cmp.Diff(want, se.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "nick"}, se.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Validate(map[string]any{})
	se = submissionError(t, err)
	if se.Messages()["name"] != "Required" {
		t.Fatalf("absent required field should say Required, got %v", se.Messages())
	}

	out, err := v.Validate(map[string]any{"name": "Ann", "nick": "a", "extra": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ann", "nick": "a"}, out); diff != "" {
		t.Fatalf("absent optional fields and unknown keys must be dropped (-want +got):\n%s", diff)
	}
}

func TestDefaultsAndBooleans(t *testing.T) {
	v := compile(t, `[
		{"name":"country","type":"select","defaultValue":"US","options":[{"value":"US","label":"USA"},{"value":"CA","label":"Canada"}]},
		{"name":"terms","type":"checkbox","dataType":"string"},
		{"name":"newsletter","type":"toggle","validation":{"required":false}},
		{"name":"meta","type":"text","dataType":"json"}
	]`)

	out, err := v.Validate(map[string]any{"terms": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"country": "US", "terms": true}, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Validate(map[string]any{"terms": "yes", "country": "MX"})
	se := submissionError(t, err)
	if se.Messages()["terms"] != "Expected boolean, received string" {
		t.Fatalf("checkbox must validate as boolean, got %v", se.Messages())
	}
	if se.Fields["country"][0].Code != bf.CodeInvalidEnum {
		t.Fatalf("unknown option should fail: %v", se.Fields["country"])
	}
}

func TestDateFields(t *testing.T) {
	v := compile(t, `[{"name":"born","type":"date"},{"name":"at","type":"datetime"}]`)
	if _, err := v.Validate(map[string]any{"born": "1990-05-17", "at": "2024-01-01T10:00:00Z"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := v.Validate(map[string]any{"born": "", "at": "2024-01-01 10:00"})
	want := map[string]string{"born": "Date is required", "at": "Invalid datetime"}
	if diff := cmp.Diff(want, submissionError(t, err).Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidPatternAbortsCompile(t *testing.T) {
	cfg := schema.MustValidate(`{"endpoint":"/x","submit":{"label":"s"},"fields":[
		{"name":"a","type":"text"},
		{"name":"zip","type":"text","validation":{"pattern":"([0-9]"}}
	]}`)
	_, err := compiler.Compile(cfg)
	fe, ok := bf.AsFormConfigError(err)
	if !ok {
		t.Fatalf("expected *FormConfigError, got %v", err)
	}
	if fe.Message != "Invalid regex pattern for field 'zip'" {
		t.Fatalf("unexpected message %q", fe.Message)
	}
	if len(fe.Issues) != 1 || fe.Issues[0].Kind != bf.KindInvalidPattern || fe.Issues[0].Path.Pointer() != "/fields/1/validation/pattern" {
		t.Fatalf("unexpected issues %v", fe.Issues)
	}
}

func TestCompileRevalidates(t *testing.T) {
	cfg := schema.MustValidate(`{"endpoint":"/x","submit":{"label":"s"},"fields":[{"name":"a","type":"text"}]}`)
	cfg.Fields = append(cfg.Fields, bf.FormField{Name: "a", Type: bf.FieldText})
	_, err := compiler.Compile(cfg)
	fe, ok := bf.AsFormConfigError(err)
	if !ok || len(fe.Issues.OfKind(bf.KindDuplicateName)) != 1 {
		t.Fatalf("mutated config must be rejected, got %v", err)
	}
}

func TestEffectiveDataType(t *testing.T) {
	tests := []struct {
		field bf.FormField
		want  bf.DataType
	}{
		{bf.FormField{Type: bf.FieldText}, bf.DataString},
		{bf.FormField{Type: bf.FieldFile}, bf.DataString},
		{bf.FormField{Type: bf.FieldNumber}, bf.DataNumber},
		{bf.FormField{Type: bf.FieldToggle}, bf.DataBoolean},
		{bf.FormField{Type: bf.FieldDatetime}, bf.DataDatetime},
		{bf.FormField{Type: bf.FieldMultiselect}, bf.DataArray},
		{bf.FormField{Type: bf.FieldSelect}, bf.DataString},
		{bf.FormField{Type: bf.FieldRadio, Options: []bf.StaticOption{{Value: 1.0}}}, bf.DataNumber},
		{bf.FormField{Type: bf.FieldSelect, Options: []bf.StaticOption{{Value: true}}}, bf.DataBoolean},
		{bf.FormField{Type: bf.FieldText, DataType: bf.Ptr(bf.DataEnum)}, bf.DataEnum},
		{bf.FormField{Type: "slider"}, bf.DataJSON},
	}
	for _, tc := range tests {
		if got := compiler.EffectiveDataType(&tc.field); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.field.Type, got, tc.want)
		}
	}
}

func TestValidateJSON(t *testing.T) {
	v := compile(t, `[{"name":"n","type":"number"}]`)
	out, err := v.ValidateJSON([]byte(`{"n": 3}`))
	if err != nil || out["n"] != float64(3) {
		t.Fatalf("unexpected out=%v err=%v", out, err)
	}
	if _, err := v.ValidateJSON([]byte(`[1]`)); err == nil {
		t.Fatalf("array submission must fail")
	}
	if _, err := v.ValidateJSON([]byte(`{`)); err == nil || !strings.Contains(err.Error(), "decode submission") {
		t.Fatalf("malformed submission should be a decode error, got %v", err)
	}
}

func TestValidateFields(t *testing.T) {
	v := compile(t, `[
		{"name":"email","type":"email","validation":{"email":true}},
		{"name":"password","type":"password","validation":{"minLength":8}},
		{"name":"confirm","type":"password","validation":{"sameAs":"password"}}
	]`)
	if err := v.ValidateFields(map[string]any{"email": "a@example.com"}, []string{"email"}); err != nil {
		t.Fatalf("other steps must not be checked: %v", err)
	}
	err := v.ValidateFields(map[string]any{"password": "abcd1234", "confirm": "nope"}, []string{"confirm"})
	se := submissionError(t, err)
	if len(se.Fields["confirm"]) != 1 || se.Fields["confirm"][0].Kind != bf.KindFieldMismatch {
		t.Fatalf("expected mismatch on confirm, got %v", se.Issues())
	}
}

func TestOpenAPISchema(t *testing.T) {
	v := compile(t, `[
		{"name":"email","type":"email","validation":{"email":true}},
		{"name":"age","type":"number","validation":{"required":false,"min":0}},
		{"name":"plan","type":"radio","defaultValue":"free","options":[{"value":"free","label":"Free"},{"value":"pro","label":"Pro"}]}
	]`)
	sch := v.OpenAPISchema()
	if diff := cmp.Diff([]string{"email"}, sch.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := sch.Properties["email"].Value.Format; got != "email" {
		t.Fatalf("email format not projected: %q", got)
	}
	if got := sch.Properties["plan"].Value.Default; got != "free" {
		t.Fatalf("default not projected: %v", got)
	}
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := schema.MustValidate(`{"endpoint":"/x","submit":{"label":"s"},"fields":[{"name":"a","type":"text"}]}`)
	if _, err := compiler.Compile(cfg, compiler.WithLogger(zerolog.New(buf).Level(zerolog.DebugLevel))); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(buf.String(), `"field":"a"`) || !strings.Contains(buf.String(), "compiled field") {
		t.Fatalf("expected debug log, got %s", buf.String())
	}
}
