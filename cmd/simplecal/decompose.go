package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// decomposer is replaced in tests
var decomposer = newDecomposer

var decomposeCmd = &cobra.Command{
	Use:   "decompose <task-id>",
	Short: "Split an inbox task into subtasks with Gemini",
	Long: `Send an inbox task to Gemini and replace it with 3 to 5 smaller subtasks.
The original is logged as done in today's focus.`,
	Args: cobra.ExactArgs(1),
	Run:  decomposeTask,
}

func decomposeTask(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	entry, err := resolveEntry(store.InboxEntries(), args[0])
	if err != nil {
		fatal("%v", err)
	}

	before := make(map[string]bool)
	for _, e := range store.InboxEntries() {
		before[e.ID] = true
	}

	fmt.Println("🤖 Asking Gemini for subtasks...")
	if err := store.Decompose(context.Background(), decomposer(), entry.ID); err != nil {
		fatal("%v", err)
	}

	fmt.Printf("✓ Split: %s\n", entry.Text)
	for _, e := range store.InboxEntries() {
		if !before[e.ID] {
			fmt.Printf("  [%s] %s\n", e.ShortID(), e.Text)
		}
	}
}
