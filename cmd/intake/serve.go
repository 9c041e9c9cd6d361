package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/auth"
	"github.com/alfazaa/intake/internal/db"
	"github.com/alfazaa/intake/internal/intake"
	"github.com/alfazaa/intake/internal/store"
	"github.com/alfazaa/intake/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the intake web app and API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		database := a.store.DB()
		version, _, err := db.SchemaVersion(database)
		if err != nil {
			return err
		}
		slog.Info("database ready", "path", a.cfg.DBPath, "schema", version)

		// Signing key for unlock tokens, generated on first run.
		secret, err := store.GetTokenSecret(ctx, database)
		if err != nil {
			return fmt.Errorf("loading token secret: %w", err)
		}

		hash, err := auth.SyncUnlockCode(ctx, database, a.cfg.UnlockCode)
		if errors.Is(err, auth.ErrNoUnlockCode) {
			hash, err = firstRunCode(ctx, a)
		}
		if err != nil {
			return fmt.Errorf("setting up unlock code: %w", err)
		}

		d := &api.Deps{
			Store:       a.store,
			Sessions:    intake.NewSessions(nil),
			Printer:     a.printer,
			Render:      a.renderOptions(),
			Copies:      a.cfg.Printer.ReceiptCopies,
			TokenSecret: secret,
			UnlockHash:  hash,
		}

		apiRouter := api.NewRouter(d)
		webRouter, err := web.NewRouter(d)
		if err != nil {
			return fmt.Errorf("setting up web router: %w", err)
		}

		// Combine: API routes take priority, web routes handle the rest.
		mux := http.NewServeMux()
		mux.Handle("/api/", apiRouter)
		mux.Handle("/", webRouter)

		server := &http.Server{
			Addr:              a.cfg.Addr,
			Handler:           api.LoggingMiddleware(mux),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			sig := <-quit
			slog.Info("shutdown signal received", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				slog.Error("server forced to shutdown", "error", err)
			}
		}()

		slog.Info("server started", "addr", a.cfg.Addr, "company", a.cfg.CompanyName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

		slog.Info("server stopped, closing database")
		return nil
	},
}

// firstRunCode generates and stores an unlock code when none is configured
// or stored yet, and shows it once.
func firstRunCode(ctx context.Context, a *app) (string, error) {
	code, err := generateCode(6)
	if err != nil {
		return "", fmt.Errorf("generating unlock code: %w", err)
	}
	hash, err := auth.SyncUnlockCode(ctx, a.store.DB(), code)
	if err != nil {
		return "", err
	}

	fmt.Println("No unlock code configured. Generated one:")
	fmt.Printf("  Unlock code: %s\n", code)
	fmt.Println()
	fmt.Println("Save this code, it cannot be recovered.")
	fmt.Println("Set unlock_code in the config file to change it.")
	fmt.Println()
	return hash, nil
}
