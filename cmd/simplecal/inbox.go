package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Manage the brain-dump inbox",
}

var inboxAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to the inbox",
	Args:  cobra.MinimumNArgs(1),
	Run:   addInboxTask,
}

var inboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the inbox",
	Run:   listInbox,
}

var inboxMoveCmd = &cobra.Command{
	Use:   "move <task-id>",
	Short: "Move an inbox task to today's focus",
	Args:  cobra.ExactArgs(1),
	Run:   moveToToday,
}

var inboxDeleteCmd = &cobra.Command{
	Use:   "delete <position>...",
	Short: "Delete inbox tasks by their listed position",
	Args:  cobra.MinimumNArgs(1),
	Run:   deleteInbox,
}

func init() {
	inboxCmd.AddCommand(inboxAddCmd, inboxListCmd, inboxMoveCmd, inboxDeleteCmd)
}

func addInboxTask(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	entry, ok := store.AddInboxTask(strings.Join(args, " "))
	if !ok {
		fatal("Task text is empty")
	}

	fmt.Printf("✓ Added to inbox: %s\n", entry.ShortID())
	fmt.Printf("  %s\n", entry.Text)
	if simplecal.ShouldOfferDecomposition(entry.Text) {
		fmt.Printf("  Tip: `simplecal decompose %s` splits it into subtasks\n", entry.ShortID())
	}
}

func listInbox(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	printEntries("📥 Inbox:", store.InboxEntries())
}

func moveToToday(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	entry, err := resolveEntry(store.InboxEntries(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	store.MoveToToday(entry.ID)

	fmt.Printf("✓ Moved to today: %s\n", entry.Text)
}

func deleteInbox(cmd *cobra.Command, args []string) {
	deleteFrom(simplecal.Inbox(), args)
}

func deleteFrom(c simplecal.Collection, args []string) {
	indices, err := parseIndices(args)
	if err != nil {
		fatal("%v", err)
	}

	store, closeStore := mustOpenStore()
	defer closeStore()

	if err := store.DeleteAt(c, indices); err != nil {
		fatal("%v (list again, the positions may have changed)", err)
	}
	fmt.Printf("✓ Deleted %d task(s) from %s\n", len(indices), c)
}
