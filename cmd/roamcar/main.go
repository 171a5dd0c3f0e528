// Command roamcar is the interactive console front-end of the marketplace.
// It is a thin consumer of the account and listing services: forms become
// prompts, lists become tables, and rendered state refreshes through the
// services' change streams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roamcar/roamcar/internal/config"
	"github.com/roamcar/roamcar/internal/platform/localstore"
	"github.com/roamcar/roamcar/internal/platform/logger"
	"github.com/roamcar/roamcar/internal/service"
	"github.com/roamcar/roamcar/internal/service/auth"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "roamcar:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.App, os.Stderr)
	log.Debug("configuration loaded", "storage_dir", cfg.Storage.Dir)

	kv, err := localstore.OpenKV(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}

	accountStore, err := localstore.NewAccountStore(kv, log)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	sessionStore := localstore.NewSessionStore(kv, log)
	carStore, err := localstore.NewCarStore(kv, log)
	if err != nil {
		return fmt.Errorf("failed to load cars: %w", err)
	}
	bookingStore, err := localstore.NewBookingStore(kv, log)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	accounts, err := service.NewAccountService(accountStore, sessionStore, auth.NewBase64Codec(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize account service: %w", err)
	}
	listings, err := service.NewListingService(carStore, bookingStore, log)
	if err != nil {
		return fmt.Errorf("failed to initialize listing service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(accounts, listings, os.Stdin, os.Stdout, log)
	return app.Run(ctx)
}
