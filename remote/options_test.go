package remote_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/remote"
)

func TestExtractOptions_Envelopes(t *testing.T) {
	want := []bf.StaticOption{{Label: "Tokyo", Value: "tyo"}, {Label: "42", Value: float64(7)}}
	records := []any{
		map[string]any{"name": "Tokyo", "id": "tyo"},
		map[string]any{"name": 42, "id": 7},
		map[string]any{"name": true, "id": "skip"},
		map[string]any{"name": "No value"},
		"not a record",
	}
	for _, payload := range []any{
		records,
		map[string]any{"data": records},
		map[string]any{"items": records},
		map[string]any{"results": records, "data": "not a list"},
	} {
		got := remote.ExtractOptions(payload, "name", "id")
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("options mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestExtractOptions_DefaultKeysAndEmpty(t *testing.T) {
	got := remote.ExtractOptions([]any{map[string]any{"label": "Yes", "value": true}}, "", "")
	if diff := cmp.Diff([]bf.StaticOption{{Label: "Yes", Value: true}}, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got := remote.ExtractOptions(map[string]any{"other": []any{}}, "", ""); len(got) != 0 {
		t.Fatalf("unknown envelope should yield nothing, got %v", got)
	}
}

func TestExtractJSON(t *testing.T) {
	hasMore := "more"
	ds := &bf.DataSource{Type: "remote", Endpoint: "/cities", Pagination: &bf.Pagination{
		Mode: "infinite", LabelKey: "city", ValueKey: "code", HasMoreKey: &hasMore,
	}}
	got, err := remote.ExtractJSON([]byte(`{"data":[{"city":"Osaka","code":"osa"}],"more":true}`), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]bf.StaticOption{{Label: "Osaka", Value: "osa"}}, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !remote.HasMore(map[string]any{"more": true}, ds) {
		t.Fatalf("hasMoreKey should be read")
	}
	if _, err := remote.ExtractJSON([]byte(`{`), ds); err == nil {
		t.Fatalf("malformed payload must fail")
	}
}
