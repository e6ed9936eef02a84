package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
)

var focusDuration time.Duration

// tickSource is replaced in tests
var tickSource = func() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a Pomodoro focus session",
	Long:  `Count down a focus session. A finished session is added to the focus session counter; Ctrl-C abandons it.`,
	Run:   runFocus,
}

func init() {
	focusCmd.Flags().DurationVarP(&focusDuration, "duration", "d", 0, "Session length (default from config, 25m)")
}

func runFocus(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	duration := focusDuration
	if duration <= 0 {
		duration = cfg.Focus.Duration
	}

	timer := simplecal.NewTimer(duration,
		simplecal.WithSessionCompleted(store.RecordFocusSession),
		simplecal.WithDismiss(func() { fmt.Print("\a") }),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticks, stopTicks := tickSource()
	defer stopTicks()

	// Print every tick, then hand it to the timer
	shown := make(chan time.Time)
	go func() {
		defer close(shown)
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticks:
				select {
				case shown <- t:
				case <-ctx.Done():
					return
				}
				fmt.Printf("\r⏱  %s ", simplecal.FormatRemaining(timer.Remaining()))
			}
		}
	}()

	fmt.Printf("🍅 Focus for %s\n", simplecal.FormatRemaining(duration))
	timer.Toggle()
	err := timer.Run(ctx, shown)
	stop()
	<-shown

	fmt.Println()
	if errors.Is(err, context.Canceled) {
		fmt.Println("Session abandoned.")
		return
	}
	fmt.Printf("✓ Session complete! %d focus sessions so far\n", store.Stats().TotalFocusSessions)
}
