package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show and plan today's focus",
	Run:   listToday,
}

var todayScheduleCmd = &cobra.Command{
	Use:   "schedule <task-id> <HH:MM|none>",
	Short: "Set or clear the start time of a focus task",
	Args:  cobra.ExactArgs(2),
	Run:   scheduleTask,
}

var todayDeleteCmd = &cobra.Command{
	Use:   "delete <position>...",
	Short: "Delete focus tasks by their listed position",
	Args:  cobra.MinimumNArgs(1),
	Run:   deleteToday,
}

func init() {
	todayCmd.AddCommand(todayScheduleCmd, todayDeleteCmd)
}

func listToday(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	now := store.Now()
	printEntries("🎯 Today's focus:", store.TodayEntries())

	goals := store.GoalsFor(now)
	if len(goals) > 0 {
		fmt.Println()
		printEntries(fmt.Sprintf("📅 Goals for %s:", simplecal.DateKey(now)), goals)
	}
}

func scheduleTask(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	entry, err := resolveEntry(store.TodayEntries(), args[0])
	if err != nil {
		fatal("%v", err)
	}

	start, err := parseClock(args[1], store.Now())
	if err != nil {
		fatal("%v", err)
	}
	store.UpdateStartTime(entry.ID, start)

	if start == nil {
		fmt.Printf("✓ Cleared start time: %s\n", entry.Text)
		return
	}
	fmt.Printf("✓ %s @ %s\n", entry.Text, start.Format("15:04"))
}

func deleteToday(cmd *cobra.Command, args []string) {
	deleteFrom(simplecal.Today(), args)
}

// parseClock reads HH:MM on the day of now; "none" clears
func parseClock(s string, now time.Time) (*time.Time, error) {
	if strings.EqualFold(s, "none") {
		return nil, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("start time must look like 09:30")
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return &start, nil
}
