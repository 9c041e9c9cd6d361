package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfazaa/intake/internal/config"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
	"github.com/alfazaa/intake/internal/store"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "intake",
	Short:         "Vehicle intake station",
	SilenceUsage: true,
}

// app is what every command needs: the config, an open store and the printer.
type app struct {
	cfg      *config.Config
	store    *store.Store
	printer  printer.Printer
	loc      *time.Location
	closeLog func()
}

// newApp reads the config, sets up logging and opens the store.
// The caller must defer app.Close().
func newApp(cmd *cobra.Command, quiet bool) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	loc, _ := cfg.Location()

	closeLog, err := setupLogger(cfg.LogPath, quiet)
	if err != nil {
		return nil, err
	}

	p, err := printer.New(cfg.Printer.Type, cfg.Printer.SpoolDir)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("setting up printer: %w", err)
	}

	s := store.New(cfg.DBPath)
	if err := s.Initialize(cmd.Context()); err != nil {
		closeLog()
		return nil, err
	}

	return &app{cfg: cfg, store: s, printer: p, loc: loc, closeLog: closeLog}, nil
}

// Close shuts the store down and closes the log file.
func (a *app) Close() {
	a.store.Shutdown()
	a.closeLog()
}

// renderOptions returns the document options for the configured company.
func (a *app) renderOptions() render.Options {
	return render.Options{
		Company:  a.cfg.CompanyName,
		Phone:    a.cfg.CompanyPhone,
		Location: a.loc,
		Now:      time.Now(),
	}
}

// generateCode creates a random numeric unlock code of the given length.
func generateCode(length int) (string, error) {
	const charset = "0123456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "path to the TOML config file")

	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("search", "s", "", "match names, plate, color, type or damage")
	historyCmd.Flags().String("from", "", "earliest date (YYYY-MM-DD or RFC 3339)")
	historyCmd.Flags().String("to", "", "latest date (YYYY-MM-DD or RFC 3339)")

	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("xlsx", false, "write an Excel workbook instead of HTML")
	reportCmd.Flags().StringP("output", "o", "", "output file (default: generated name)")
	reportCmd.Flags().BoolP("print", "p", false, "send to the printer instead of a file")

	rootCmd.AddCommand(receiptCmd)
	receiptCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	receiptCmd.Flags().BoolP("print", "p", false, "print the configured number of copies")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
