package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
)

var calendarMonday bool

var calendarCmd = &cobra.Command{
	Use:   "calendar [yyyy-mm]",
	Short: "Print a month with today and days that have goals marked",
	Args:  cobra.MaximumNArgs(1),
	Run:   showCalendar,
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarMonday, "monday", false, "Start weeks on Monday")
}

func showCalendar(cmd *cobra.Command, args []string) {
	store, closeStore := mustOpenStore()
	defer closeStore()

	month := store.Now()
	if len(args) == 1 {
		m, err := simplecal.ParseMonth(args[0], month.Location())
		if err != nil {
			fatal("Month must look like 2026-03")
		}
		month = m
	}
	first := time.Sunday
	if calendarMonday {
		first = time.Monday
	}

	fmt.Print(renderMonth(store.MonthGrid(month, first), first))
}

// renderMonth draws the grid; [dd] is today, dd* has goals
func renderMonth(grid simplecal.MonthGrid, first time.Weekday) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", grid.Title())
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, " %-4s", ((first + time.Weekday(i)) % 7).String()[:2])
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for _, d := range week {
			switch {
			case d == nil:
				b.WriteString("     ")
			case d.IsToday:
				fmt.Fprintf(&b, "[%2d]", d.Day)
				b.WriteString(marker(d.HasGoals))
			default:
				fmt.Fprintf(&b, " %2d ", d.Day)
				b.WriteString(marker(d.HasGoals))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func marker(hasGoals bool) string {
	if hasGoals {
		return "*"
	}
	return " "
}
