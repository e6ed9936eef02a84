package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal/config"
)

var (
	configFlag  string
	dataDirFlag string
	storageFlag string

	cfg    *config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "simplecal",
	Short: "Inbox, today's focus, dated goals, streaks and a Pomodoro timer",
	Long: `simplecal keeps a brain-dump inbox, a today's-focus list and goals per
calendar day, counts completions and day streaks, and can split big tasks
into subtasks with Gemini.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.simplecal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage engine: json or sqlite (overrides config)")

	rootCmd.AddCommand(inboxCmd, todayCmd, completeCmd, goalCmd, decomposeCmd,
		focusCmd, statsCmd, calendarCmd, serveCmd, configCmd, gcalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if storageFlag != "" {
		c.Storage = storageFlag
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c

	level, _ := config.ParseLevel(c.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// fatal prints a one-line error and exits
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
