package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alfazaa/intake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with defaults and a new unlock code",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		code, err := generateCode(6)
		if err != nil {
			return fmt.Errorf("generating unlock code: %w", err)
		}

		cfg := config.Default()
		cfg.UnlockCode = code
		if err := config.Init(path, cfg); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", path)
		fmt.Fprintf(out, "Database:    %s\n", cfg.DBPath)
		fmt.Fprintf(out, "Unlock code: %s\n", color.New(color.Bold).Sprint(code))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		code := color.New(color.FgYellow).Sprint("(not set)")
		if cfg.UnlockCode != "" {
			code = "(set)"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s:\n\n", path)
		fmt.Fprintf(out, "Database:       %s\n", cfg.DBPath)
		fmt.Fprintf(out, "Listen address: %s\n", cfg.Addr)
		fmt.Fprintf(out, "Company:        %s, %s\n", cfg.CompanyName, cfg.CompanyPhone)
		fmt.Fprintf(out, "Time zone:      %s\n", cfg.Timezone)
		fmt.Fprintf(out, "Printer:        %s %s (%d receipt copies)\n", cfg.Printer.Type, cfg.Printer.SpoolDir, cfg.Printer.ReceiptCopies)
		fmt.Fprintf(out, "Unlock code:    %s\n", code)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "\n%s %v\n", color.New(color.FgRed).Sprint("INVALID"), err)
		}
		return nil
	},
}
