package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestValidateFile_YAML(t *testing.T) {
	path := writeFile(t, "form.yaml", `
endpoint: /api/signup
fields:
  - name: age
    type: number
    validation:
      min: 18
steps:
  - id: only
    fields: [age]
submit:
  label: Sign up
`)
	cfg, err := schema.ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if cfg.Method != "POST" || *cfg.Fields[0].Validation.Min != 18 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidateFile_Malformed(t *testing.T) {
	for _, path := range []string{
		writeFile(t, "form.json", `{"endpoint": `),
		writeFile(t, "form.yml", "fields: [\n"),
	} {
		_, err := schema.ValidateFile(path)
		fe, ok := bf.AsFormConfigError(err)
		if !ok {
			t.Fatalf("%s: expected *FormConfigError, got %v", path, err)
		}
		if len(fe.Issues) != 1 || fe.Issues[0].Kind != bf.KindMalformedInput {
			t.Fatalf("%s: expected one MalformedInput issue, got %v", path, fe.Issues)
		}
	}
}

func TestValidateFile_Missing(t *testing.T) {
	_, err := schema.ValidateFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatalf("missing file must fail")
	}
	if _, ok := bf.AsFormConfigError(err); ok {
		t.Fatalf("read errors are not configuration errors")
	}
}
