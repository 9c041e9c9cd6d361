package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alfazaa/intake/internal/history"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved intakes, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		search, _ := cmd.Flags().GetString("search")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")

		from, err := history.ParseDateBound(fromStr, false, a.loc)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := history.ParseDateBound(toStr, true, a.loc)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		all, err := a.store.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		records := history.Apply(all, history.Filter{Search: search, From: from, To: to})
		writeHistory(cmd.OutOrStdout(), records, len(all), a.loc)
		return nil
	},
}

// writeHistory prints one line per record followed by a count.
func writeHistory(w io.Writer, records []model.IntakeRecord, total int, loc *time.Location) {
	if len(records) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No records found."))
		return
	}

	bold := color.New(color.Bold)
	for _, rec := range records {
		damage := color.New(color.FgGreen).Sprint("no damage")
		if n := len(rec.DamageNotes); n > 0 {
			parts := make([]string, n)
			for i, note := range rec.DamageNotes {
				parts[i] = note.Part + " (" + string(note.Damage) + ")"
			}
			damage = color.New(color.FgRed).Sprint(strings.Join(parts, ", "))
		}
		fmt.Fprintf(w, "%s  %s  %-20s %-20s %s\n",
			rec.CreatedAt.In(loc).Format(render.DisplayLayout),
			bold.Sprintf("%-7s", rec.VehiclePlate),
			rec.DriverName,
			rec.CustomerName,
			damage,
		)
	}
	fmt.Fprintf(w, "\n%d of %d records\n", len(records), total)
}

var reportCmd = &cobra.Command{
	Use:       "report today|week|full",
	Short:     "Generate an aggregate report",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.ReportToday), string(model.ReportPastWeek), string(model.ReportFull)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseReportKind(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		xlsx, _ := cmd.Flags().GetBool("xlsx")
		output, _ := cmd.Flags().GetString("output")
		toPrinter, _ := cmd.Flags().GetBool("print")

		all, err := a.store.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		records := history.ForReport(all, kind, time.Now().In(a.loc))

		if toPrinter {
			doc, err := printer.PrintReport(cmd.Context(), a.printer, records, kind, a.renderOptions(), xlsx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s sent to the printer (%s, %d records)\n", kind.Title(), doc.Name, len(records))
			return nil
		}

		doc, err := printer.ReportDocument(records, kind, a.renderOptions(), xlsx)
		if err != nil {
			return err
		}
		if output == "" {
			output = doc.Name
		}
		if err := os.WriteFile(output, doc.Body, 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		slog.Info("report written", "kind", kind, "path", output, "records", len(records))
		fmt.Fprintf(cmd.OutOrStdout(), "%s written to %s (%d records)\n", kind.Title(), output, len(records))
		return nil
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt <record-id>",
	Short: "Render or reprint the receipt of a saved intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if toPrinter, _ := cmd.Flags().GetBool("print"); toPrinter {
			copies := a.cfg.Printer.ReceiptCopies
			if err := printer.PrintReceipt(cmd.Context(), a.printer, *rec, a.renderOptions(), copies); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Receipt %s printed (%d copies)\n", rec.ID, copies)
			return nil
		}

		html, err := render.Receipt(*rec, a.renderOptions())
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err = io.WriteString(cmd.OutOrStdout(), html)
			return err
		}
		return os.WriteFile(output, []byte(html), 0644)
	},
}
