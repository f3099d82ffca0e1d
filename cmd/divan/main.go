package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/session"
	"github.com/lfreitas/divan/internal/store"
	"github.com/lfreitas/divan/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	kv, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening local storage: %w", err)
	}

	sess, err := session.Load(context.Background(), kv)
	if err != nil {
		_ = kv.Close()
		return fmt.Errorf("loading session: %w", err)
	}

	app := ui.NewApp(cfg, kv, sess)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
