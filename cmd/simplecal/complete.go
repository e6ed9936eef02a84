package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Complete a task",
	Long:  `Mark a task in today's focus, the inbox or any goal list as completed.`,
	Args:  cobra.ExactArgs(1),
	Run:   completeTask,
}

func completeTask(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	entry, err := resolveEntry(allEntries(store), args[0])
	if err != nil {
		fatal("%v", err)
	}

	if entry.IsCompleted {
		fmt.Printf("Task %s is already completed.\n", entry.ShortID())
		return
	}

	store.CompleteTask(entry.ID)

	stats := store.Stats()
	fmt.Printf("✓ Task completed: %s\n", entry.ShortID())
	fmt.Printf("  %s\n", entry.Text)
	fmt.Printf("🔥 Streak: %d day(s) · %d tasks completed\n", stats.CurrentStreak, stats.TotalTasksCompleted)
}
