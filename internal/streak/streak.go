// Package streak tracks consecutive days of fully completed floors.
package streak

import (
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
)

const (
	// Calendar entries older than this many days are dropped on completion.
	retentionDays = 90
	// Upper bound on the backwards walk over the calendar.
	maxWalk = 365
)

// Data is the persisted streak state. CompletionCalendar maps YYYY-MM-DD
// to true for every day whose floor was fully completed.
type Data struct {
	Current            int             `json:"current"`
	Longest            int             `json:"longest"`
	GraceDaysUsed      int             `json:"graceDaysUsed"`
	LastCompletedDate  string          `json:"lastCompletedDate,omitempty"`
	CompletionCalendar map[string]bool `json:"completionCalendar"`
}

// New returns the zero streak with an empty, non-nil calendar.
func New() Data {
	return Data{CompletionCalendar: map[string]bool{}}
}

// Clone returns a copy that shares no map with d.
func (d Data) Clone() Data {
	out := d
	out.CompletionCalendar = make(map[string]bool, len(d.CompletionCalendar))
	for k, v := range d.CompletionCalendar {
		out.CompletionCalendar[k] = v
	}
	return out
}

// Completed reports whether date is marked in the calendar.
func (d Data) Completed(date string) bool {
	return d.CompletionCalendar[date]
}

// Tracker applies streak rules relative to Now. A nil Now uses the local
// system clock.
type Tracker struct {
	Now dates.Clock
}

func (t Tracker) clock() dates.Clock {
	if t.Now == nil {
		return dates.SystemClock(nil)
	}
	return t.Now
}

// Calculate recomputes Current, Longest and LastCompletedDate from the
// calendar. With neither today nor yesterday completed the streak is reset
// only when the last completion is older than yesterday; otherwise d is
// returned as is.
func (t Tracker) Calculate(d Data) Data {
	clock := t.clock()
	today, yesterday := dates.Today(clock), dates.Yesterday(clock)
	doneToday, doneYesterday := d.Completed(today), d.Completed(yesterday)

	if !doneToday && !doneYesterday {
		if d.LastCompletedDate != "" && d.LastCompletedDate < yesterday {
			out := d.Clone()
			out.Current = 0
			return out
		}
		return d
	}

	start := yesterday
	if doneToday {
		start = today
	}
	count := 1
	for day := dates.AddDays(start, -1); count < maxWalk && d.Completed(day); day = dates.AddDays(day, -1) {
		count++
	}

	out := d.Clone()
	out.Current = count
	out.Longest = max(d.Longest, count)
	if doneToday {
		out.LastCompletedDate = today
	}
	return out
}

// MarkFloorComplete records f's date in the calendar and recomputes the
// streak. A floor that is not fully completed leaves d untouched.
func (t Tracker) MarkFloorComplete(f floor.DailyFloor, d Data) Data {
	if !f.Completed {
		return d
	}

	cutoff := dates.AddDays(dates.Today(t.clock()), -retentionDays)
	out := d.Clone()
	out.CompletionCalendar[f.Date] = true
	for day := range out.CompletionCalendar {
		if day < cutoff {
			delete(out.CompletionCalendar, day)
		}
	}
	out.LastCompletedDate = f.Date
	return t.Calculate(out)
}

// Display is the read-only summary shown to the user.
type Display struct {
	Current        int
	Longest        int
	CompletedToday bool
	// IsActive means the streak is still alive: done today, or done
	// yesterday with a running count.
	IsActive bool
}

func (t Tracker) Display(d Data) Display {
	clock := t.clock()
	today := d.Completed(dates.Today(clock))
	yesterday := d.Completed(dates.Yesterday(clock))
	return Display{
		Current:        d.Current,
		Longest:        d.Longest,
		CompletedToday: today,
		IsActive:       today || (yesterday && d.Current > 0),
	}
}
