package watch_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/watch"
)

const oneField = `{"endpoint": "/a", "fields": [{"name": "email", "type": "email"}], "submit": {"label": "Go"}}`

const twoFields = `
endpoint: /b
method: PUT
fields:
  - name: email
    type: email
  - name: age
    type: number
submit:
  label: Go
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestHolder_Get(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	if got := h.Get().Config().Endpoint; got != "/a" {
		t.Fatalf("endpoint = %q, want /a", got)
	}
	if !filepath.IsAbs(h.Path()) {
		t.Fatalf("path should be absolute: %s", h.Path())
	}
}

func TestHolder_InvalidInitialConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "form.json", `{"fields": []}`)

	_, err := watch.NewHolder(path, zerolog.Nop())
	if err == nil {
		t.Fatalf("invalid config must fail")
	}
	if _, ok := bf.AsFormConfigError(err); !ok {
		t.Fatalf("expected a FormConfigError in the chain, got %v", err)
	}
}

func TestHolder_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.yaml", "endpoint: /a\nfields:\n  - name: email\n    type: email\nsubmit:\n  label: Go\n")

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	writeConfig(t, dir, "form.yaml", twoFields)
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	cfg := h.Get().Config()
	if cfg.Endpoint != "/b" || cfg.Method != "PUT" || len(cfg.Fields) != 2 {
		t.Fatalf("reload not applied: %+v", cfg)
	}
}

func TestHolder_ReloadFailureKeepsOld(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()
	before := h.Get()

	writeConfig(t, dir, "form.json", `{"endpoint": "/a", "fields": [`)
	if err := h.Reload(); err == nil {
		t.Fatalf("malformed config must fail to reload")
	}
	if h.Get() != before {
		t.Fatalf("old validator must stay active")
	}
}

func TestHolder_OnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	var got *compiler.SubmissionValidator
	h.OnChange(func(v *compiler.SubmissionValidator) { got = v })

	writeConfig(t, dir, "form.json", `{"endpoint": "/c", "fields": [{"name": "email", "type": "email"}], "submit": {"label": "Go"}}`)
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got == nil || got.Config().Endpoint != "/c" {
		t.Fatalf("OnChange not called with the new validator")
	}
}

func TestHolder_WatchFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	var reloads atomic.Int32
	h.OnChange(func(*compiler.SubmissionValidator) { reloads.Add(1) })

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	writeConfig(t, dir, "other.json", `{}`)
	writeConfig(t, dir, "form.json", `{"endpoint": "/w", "fields": [{"name": "email", "type": "email"}], "submit": {"label": "Go"}}`)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if reloads.Load() > 0 && h.Get().Config().Endpoint == "/w" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("watched file change was not picked up")
}

func TestHolder_StopTwice(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "form.json", oneField)
	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	h.Stop()
	h.Stop()
}

func TestHolder_OnChangeRunsEveryListener(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	var order []string
	h.OnChange(func(*compiler.SubmissionValidator) { order = append(order, "first") })
	h.OnChange(func(v *compiler.SubmissionValidator) {
		order = append(order, "second")
		// registering from a listener must not affect the reload in progress
		h.OnChange(func(*compiler.SubmissionValidator) { order = append(order, "late") })
	})

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("listener order = %v", order)
	}
}
