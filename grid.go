package simplecal

import "time"

// Day is one cell of a month grid
type Day struct {
	Day      int    `json:"day"`
	Key      string `json:"key"`
	IsToday  bool   `json:"isToday"`
	HasGoals bool   `json:"hasGoals"`
}

// MonthGrid is the layout of a calendar month
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// LeadingBlanks is the number of empty cells before day 1
	LeadingBlanks int   `json:"leadingBlanks"`
	Days          []Day `json:"days"`
}

// NewMonthGrid lays out the month containing month. Weeks start on
// firstWeekday. hasGoals may be nil.
func NewMonthGrid(month, now time.Time, firstWeekday time.Weekday, hasGoals func(key string) bool) MonthGrid {
	first := firstOfMonth(month)
	n := daysIn(first.Year(), first.Month())

	grid := MonthGrid{
		Year:          first.Year(),
		Month:         first.Month(),
		LeadingBlanks: (int(first.Weekday()) - int(firstWeekday) + 7) % 7,
		Days:          make([]Day, n),
	}

	today := DateKey(now.In(first.Location()))
	for i := 0; i < n; i++ {
		key := DateKey(first.AddDate(0, 0, i))
		grid.Days[i] = Day{
			Day:      i + 1,
			Key:      key,
			IsToday:  key == today,
			HasGoals: hasGoals != nil && hasGoals(key),
		}
	}
	return grid
}

// Title renders the grid header, e.g. "October 2026"
func (g MonthGrid) Title() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Weeks splits the grid into rows of seven; blank cells are nil
func (g MonthGrid) Weeks() [][]*Day {
	cells := make([]*Day, g.LeadingBlanks, g.LeadingBlanks+len(g.Days)+6)
	for i := range g.Days {
		cells = append(cells, &g.Days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// ShiftMonth moves n months from the first of t's month, so that
// January 31 + 1 is February and not March
func ShiftMonth(t time.Time, n int) time.Time {
	return firstOfMonth(t).AddDate(0, n, 0)
}

// ParseMonth parses "yyyy-MM" into the first of that month in loc
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01", s, loc)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
