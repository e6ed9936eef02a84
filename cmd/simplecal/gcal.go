package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
	"github.com/fmizzell/simplecal/gcal"
)

var (
	gcalListen string
	gcalDate   string
)

var gcalCmd = &cobra.Command{
	Use:   "gcal",
	Short: "Export goals to Google Calendar",
}

var gcalAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize simplecal against your Google account",
	Run:   gcalAuth,
}

var gcalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Push a day's goals to Google Calendar as all-day events",
	Run:   gcalExport,
}

func init() {
	gcalAuthCmd.Flags().StringVar(&gcalListen, "listen", "localhost:8080", "Address for the OAuth redirect listener")
	gcalExportCmd.Flags().StringVar(&gcalDate, "date", "today", "Day: today, tomorrow, yesterday or yyyy-mm-dd")
	gcalCmd.AddCommand(gcalAuthCmd, gcalExportCmd)
}

func gcalAuth(cmd *cobra.Command, args []string) {
	oauthCfg, err := gcal.OAuthConfig(cfg.Calendar.CredentialsFile)
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tok, err := gcal.Authorize(ctx, oauthCfg, gcalListen, os.Stdout)
	if err != nil {
		fatal("%v", err)
	}
	if err := gcal.SaveToken(cfg.Calendar.TokenFile, tok); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("✓ Token saved to %s\n", cfg.Calendar.TokenFile)
}

func gcalExport(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	date, err := parseDate(gcalDate, store.Now())
	if err != nil {
		fatal("%v", err)
	}
	goals := store.GoalsFor(date)
	if len(goals) == 0 {
		fmt.Printf("No goals on %s\n", simplecal.DateKey(date))
		return
	}

	ctx := context.Background()
	srv, err := gcal.NewService(ctx, cfg.Calendar.CredentialsFile, cfg.Calendar.TokenFile, logger)
	if err != nil {
		fatal("%v (run 'simplecal gcal auth' first)", err)
	}
	calendarID, err := gcal.ResolveCalendarID(ctx, srv, cfg.Calendar.Name)
	if err != nil {
		fatal("%v", err)
	}

	res, err := gcal.NewExporter(srv, calendarID, logger).ExportDay(ctx, date, goals)
	if err != nil {
		fatal("Export failed: %v", err)
	}
	fmt.Printf("✓ Exported %s: %d inserted, %d updated, %d unchanged\n",
		simplecal.DateKey(date), res.Inserted, res.Updated, res.Unchanged)
}
