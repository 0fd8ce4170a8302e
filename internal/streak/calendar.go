package streak

import "github.com/sadopc/dailyfloor/internal/dates"

// DefaultCalendarDays is the length of the streak strip.
const DefaultCalendarDays = 7

// Day is one cell of a calendar view.
type Day struct {
	Date      string
	Completed bool
	IsToday   bool
	// InMonth is false for the padding cells of a monthly grid.
	InMonth bool
}

// CalendarDays returns the last n days ending today, oldest first.
// n <= 0 means DefaultCalendarDays.
func (t Tracker) CalendarDays(d Data, n int) []Day {
	if n <= 0 {
		n = DefaultCalendarDays
	}
	today := dates.Today(t.clock())
	out := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := dates.AddDays(today, -i)
		out = append(out, Day{
			Date:      date,
			Completed: d.Completed(date),
			IsToday:   date == today,
			InMonth:   true,
		})
	}
	return out
}

// MonthlyGrid lays out the month offset months before the current one as
// Sunday-first weeks. Leading and trailing cells from neighbouring months
// have InMonth false.
func (t Tracker) MonthlyGrid(d Data, offset int) [][]Day {
	today := dates.Today(t.clock())
	first := dates.FirstOfMonth(today, -offset)

	day := dates.AddDays(first, -int(dates.Weekday(first)))
	var weeks [][]Day
	for {
		week := make([]Day, 7)
		for i := range week {
			week[i] = Day{
				Date:      day,
				Completed: d.Completed(day),
				IsToday:   day == today,
				InMonth:   dates.SameMonth(day, first),
			}
			day = dates.AddDays(day, 1)
		}
		weeks = append(weeks, week)
		if !dates.SameMonth(day, first) {
			break
		}
	}
	return weeks
}

// Week counts completed days in one Sunday-first week.
type Week struct {
	Start string
	Count int
}

// WeeklyCounts returns completion counts for the last n weeks including the
// current one, oldest first. Days after today are not counted.
func (t Tracker) WeeklyCounts(d Data, n int) []Week {
	if n <= 0 {
		return nil
	}
	today := dates.Today(t.clock())
	current := dates.AddDays(today, -int(dates.Weekday(today)))

	out := make([]Week, 0, n)
	for w := n - 1; w >= 0; w-- {
		start := dates.AddDays(current, -7*w)
		week := Week{Start: start}
		for i := 0; i < 7; i++ {
			date := dates.AddDays(start, i)
			if date > today {
				break
			}
			if d.Completed(date) {
				week.Count++
			}
		}
		out = append(out, week)
	}
	return out
}
