//go:build unix

package watch_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikiasgoitom/better-form/watch"
)

func TestHolder_WatchSignals(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "form.json", oneField)

	h, err := watch.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	h.WatchSignals()
	writeConfig(t, dir, "form.json", `{"endpoint": "/hup", "fields": [{"name": "email", "type": "email"}], "submit": {"label": "Go"}}`)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if h.Get().Config().Endpoint == "/hup" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("SIGHUP did not reload the configuration")
}
