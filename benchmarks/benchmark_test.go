package benchmarks_test

import (
	"fmt"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/flow"
	"github.com/mikiasgoitom/better-form/schema"
)

// ---- Helpers ----

// wideForm returns a configuration with n text fields split over steps of
// ten fields each, plus a password confirmation pair.
func wideForm(n int) []byte {
	var fields, steps []string
	var step []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("f%d", i)
		fields = append(fields, fmt.Sprintf(`{"name":%q,"type":"text","validation":{"minLength":2,"maxLength":40,"pattern":"^[a-z ]+$"}}`, name))
		step = append(step, fmt.Sprintf("%q", name))
		if len(step) == 10 {
			steps = append(steps, fmt.Sprintf(`{"id":"s%d","fields":[%s]}`, len(steps), strings.Join(step, ",")))
			step = nil
		}
	}
	fields = append(fields,
		`{"name":"password","type":"password","validation":{"minLength":8}}`,
		`{"name":"confirm","type":"password","validation":{"sameAs":"password"}}`)
	step = append(step, `"password"`, `"confirm"`)
	steps = append(steps, fmt.Sprintf(`{"id":"s%d","fields":[%s]}`, len(steps), strings.Join(step, ",")))
	return []byte(fmt.Sprintf(`{"endpoint":"/x","fields":[%s],"steps":[%s],"submit":{"label":"Go"}}`,
		strings.Join(fields, ","), strings.Join(steps, ",")))
}

func wideRecord(n int) map[string]any {
	rec := map[string]any{"password": "long enough", "confirm": "long enough"}
	for i := 0; i < n; i++ {
		rec[fmt.Sprintf("f%d", i)] = "some words"
	}
	return rec
}

func mustCompile(tb testing.TB, raw []byte) *compiler.SubmissionValidator {
	tb.Helper()
	cfg, err := schema.Validate(raw)
	if err != nil {
		tb.Fatalf("validate: %v", err)
	}
	v, err := compiler.Compile(cfg)
	if err != nil {
		tb.Fatalf("compile: %v", err)
	}
	return v
}

// ---- Benchmarks ----

func BenchmarkValidateConfig(b *testing.B) {
	for _, n := range []int{10, 100} {
		raw := wideForm(n)
		b.Run(fmt.Sprintf("fields=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(raw)))
			for i := 0; i < b.N; i++ {
				if _, err := schema.Validate(raw); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompile(b *testing.B) {
	cfg, err := schema.Validate(wideForm(100))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := compiler.Compile(cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateSubmission(b *testing.B) {
	for _, n := range []int{10, 100} {
		v := mustCompile(b, wideForm(n))
		rec := wideRecord(n)
		data, _ := json.Marshal(rec)

		b.Run(fmt.Sprintf("record/fields=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := v.Validate(rec); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("json/fields=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := v.ValidateJSON(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkValidateSubmission_Failing(b *testing.B) {
	v := mustCompile(b, wideForm(100))
	rec := wideRecord(100)
	for k := range rec {
		rec[k] = "X"
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Validate(rec); err == nil {
			b.Fatal("expected failure")
		}
	}
}

func BenchmarkNavigatorAdvance(b *testing.B) {
	v := mustCompile(b, wideForm(100))
	rec := wideRecord(100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nav := flow.NewNavigator(v)
		for !nav.IsLast() {
			if err := nav.Advance(rec); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEvaluateVisibility(b *testing.B) {
	rules := []bf.VisibilityRule{
		{Field: "country", Operator: bf.OpIn, Value: []any{"US", "CA", "MX"}},
		{Field: "age", Operator: bf.OpGreaterThan, Value: 17.0},
		{Field: "email", Operator: bf.OpExists},
	}
	values := map[string]any{"country": "CA", "age": 30.0, "email": "a@b.co"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !flow.EvaluateVisibility(rules, values) {
			b.Fatal("expected visible")
		}
	}
}

// TestWideFormIsValid keeps the benchmark fixtures honest.
func TestWideFormIsValid(t *testing.T) {
	v := mustCompile(t, wideForm(25))
	if _, err := v.Validate(wideRecord(25)); err != nil {
		t.Fatalf("fixture record should validate: %v", err)
	}
	if got := len(flow.PartitionSteps(v.Config())); got != 3 {
		t.Fatalf("steps = %d, want 3", got)
	}
}
