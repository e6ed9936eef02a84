package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
)

var (
	goalDate     string
	goalReminder bool
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals and reminders on a calendar day",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a goal (or with --reminder a reminder) to a day",
	Args:  cobra.MinimumNArgs(1),
	Run:   addGoal,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the goals of a day",
	Run:   listGoals,
}

var goalPriorityCmd = &cobra.Command{
	Use:   "priority <task-id>",
	Short: "Toggle the priority flag of a goal",
	Args:  cobra.ExactArgs(1),
	Run:   toggleGoalPriority,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <position>...",
	Short: "Delete goals by their listed position",
	Args:  cobra.MinimumNArgs(1),
	Run:   deleteGoals,
}

var goalDecomposeCmd = &cobra.Command{
	Use:   "decompose <text>",
	Short: "Split a goal into subtasks with Gemini and add them to the day",
	Args:  cobra.MinimumNArgs(1),
	Run:   decomposeGoal,
}

func init() {
	goalCmd.PersistentFlags().StringVar(&goalDate, "date", "today", "Day: today, tomorrow, yesterday or yyyy-mm-dd")
	goalAddCmd.Flags().BoolVarP(&goalReminder, "reminder", "r", false, "Add a ⏰ reminder instead of a 🎯 goal")
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalPriorityCmd, goalDeleteCmd, goalDecomposeCmd)
}

func addGoal(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	date, err := parseDate(goalDate, store.Now())
	if err != nil {
		fatal("%v", err)
	}
	category := simplecal.CategoryGoal
	if goalReminder {
		category = simplecal.CategoryReminder
	}

	entry, ok := store.AddGoal(date, strings.Join(args, " "), category)
	if !ok {
		fatal("Goal text is empty")
	}
	fmt.Printf("✓ Added to %s: %s\n", simplecal.DateKey(date), entry.Text)
}

func listGoals(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	date, err := parseDate(goalDate, store.Now())
	if err != nil {
		fatal("%v", err)
	}
	printEntries(fmt.Sprintf("📅 Goals for %s:", simplecal.DateKey(date)), store.GoalsFor(date))
}

func toggleGoalPriority(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	date, err := parseDate(goalDate, store.Now())
	if err != nil {
		fatal("%v", err)
	}
	entry, err := resolveEntry(store.GoalsFor(date), args[0])
	if err != nil {
		fatal("%v", err)
	}
	store.TogglePriority(date, entry.ID)

	if entry.IsPriority {
		fmt.Printf("✓ No longer a priority: %s\n", entry.Text)
	} else {
		fmt.Printf("✓ Priority: %s\n", entry.Text)
	}
}

func deleteGoals(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	date, err := parseDate(goalDate, store.Now())
	closeStore()
	if err != nil {
		fatal("%v", err)
	}
	deleteFrom(simplecal.GoalsOn(date), args)
}

func decomposeGoal(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	date, err := parseDate(goalDate, store.Now())
	if err != nil {
		fatal("%v", err)
	}
	text := strings.Join(args, " ")

	fmt.Println("🤖 Asking Gemini for subtasks...")
	if err := store.DecomposeGoal(context.Background(), decomposer(), date, text); err != nil {
		fatal("%v", err)
	}
	printEntries(fmt.Sprintf("📅 Goals for %s:", simplecal.DateKey(date)), store.GoalsFor(date))
}
