// Command supernova is a terminal chat client for the Gemini API.
//
// Usage:
//
//	GEMINI_API_KEY=gk-... supernova
//
// Environment:
//
//	GEMINI_API_KEY             API key (required)
//	SUPERNOVA_DATA_DIR         data directory (default ~/.supernova)
//	SUPERNOVA_MODEL            initially selected model (default gemini-2.5-pro)
//	SUPERNOVA_PAYMENT_SUCCESS  payment-completed hook: grants premium on start
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fwojciec/supernova"
	bt "github.com/fwojciec/supernova/bubbletea"
	"github.com/fwojciec/supernova/config"
	"github.com/fwojciec/supernova/gemini"
	"github.com/fwojciec/supernova/ingest"
	snjson "github.com/fwojciec/supernova/json"
	"github.com/fwojciec/supernova/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "supernova: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Logs go to a file: stderr belongs to the TUI.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "supernova.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kv, err := sqlite.Open(filepath.Join(dataDir, "supernova.db"))
	if err != nil {
		return err
	}
	defer kv.Close()

	store := supernova.NewStore(kv, snjson.Codec{}, logger)
	store.Load(ctx)

	premium, err := loadPremium(ctx, kv)
	if err != nil {
		logger.Error("read premium flag", "error", err)
	}

	client, err := gemini.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}

	// Coalescing notification channel between the engine and the TUI.
	updates := make(chan struct{}, 1)
	notify := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	engine := supernova.NewEngine(store, client, kv,
		supernova.WithLogger(logger),
		supernova.WithModel(supernova.ModelID(cfg.Model)),
		supernova.WithPremium(premium),
		supernova.WithOnUpdate(notify),
	)

	// Payment redirect hook: grant entitlement before any session logic.
	if cfg.PaymentSuccess && !premium {
		if err := engine.GrantPremium(ctx); err != nil {
			logger.Error("grant premium", "error", err)
		}
	}

	ingestor := ingest.New(logger)
	m := bt.New(engine, store, ingestor, supernova.DefaultTheme(), updates)
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// loadPremium rehydrates the entitlement flag from the KV store.
func loadPremium(ctx context.Context, kv supernova.KV) (bool, error) {
	value, err := kv.Get(ctx, supernova.KeyPremium)
	if errors.Is(err, supernova.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(value) == "true", nil
}
