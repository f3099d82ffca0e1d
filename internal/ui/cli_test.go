package ui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/session"
	"github.com/lfreitas/divan/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "divan.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	sess, err := session.Load(context.Background(), kv)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return NewApp(config.Default(), kv, sess)
}

func TestNoColorFlagDisablesColor(t *testing.T) {
	was := color.NoColor
	t.Cleanup(func() { color.NoColor = was })
	color.NoColor = false

	app := newTestApp(t)
	app.root.SetArgs([]string{"version", "--no-color"})
	if err := app.Execute(); err != nil {
		t.Fatalf("version --no-color: %v", err)
	}

	if !color.NoColor {
		t.Error("--no-color did not disable colored output")
	}
}

func TestColorStaysEnabledByDefault(t *testing.T) {
	was := color.NoColor
	t.Cleanup(func() { color.NoColor = was })
	color.NoColor = false

	app := newTestApp(t)
	app.root.SetArgs([]string{"version"})
	if err := app.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}

	if color.NoColor {
		t.Error("color disabled without --no-color")
	}
}
