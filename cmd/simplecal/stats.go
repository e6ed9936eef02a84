package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion counters and the day streak",
	Run:   showStats,
}

func showStats(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	stats := store.Stats()
	fmt.Println("📊 Stats:")
	fmt.Printf("  Tasks completed:  %d\n", stats.TotalTasksCompleted)
	fmt.Printf("  Focus sessions:   %d\n", stats.TotalFocusSessions)
	fmt.Printf("  Current streak:   %d day(s)\n", stats.CurrentStreak)
	if stats.LastCompletionDate != nil {
		fmt.Printf("  Last completion:  %s\n", stats.LastCompletionDate.Format("2006-01-02 15:04"))
	}
}
