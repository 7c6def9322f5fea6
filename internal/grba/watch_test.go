package grba

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRerunsOnWrite(t *testing.T) {
	path := writeConfig(t, "scan.json", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan string, 16)
	run := func(p string) error {
		select {
		case runs <- p:
		default:
		}
		return errors.New("ignored")
	}
	captureLog(t)

	done := make(chan error, 1)
	go func() { done <- watch(ctx, path, run) }()

	wait := func(what string) {
		t.Helper()
		select {
		case got := <-runs:
			if got != filepath.Clean(path) {
				t.Fatalf("%s: ran %q", what, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("%s: timed out", what)
		}
	}
	wait("initial run")

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"sigma": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	wait("rerun")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := watch(context.Background(), filepath.Join(t.TempDir(), "nope", "scan.json"), func(string) error { return nil })
	if err == nil {
		t.Fatal("expected error for a missing directory")
	}
}
