package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/floor"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewStreak
	viewLibrary
	viewSettings
)

var viewNames = []string{"Today", "Streak", "Library", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// floorMsg carries today's floor after any action that changed it.
type floorMsg struct {
	floor  floor.DailyFloor
	status string
	// completed is set when the action finished the floor.
	completed bool
	// feedback, when set, is today's latest report.
	feedback *floor.Feedback
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

// formatCountdown renders d as MM:SS, clamped at zero.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// formatTarget renders a floor exercise target as "10 reps" or "30s".
func formatTarget(ex floor.FloorExercise) string {
	switch {
	case ex.TargetReps != nil:
		return fmt.Sprintf("%d reps", *ex.TargetReps)
	case ex.TargetTime != nil:
		return fmt.Sprintf("%ds", *ex.TargetTime)
	}
	return ""
}

func formatBase(ex catalog.Exercise) string {
	v, timed := ex.Target()
	if timed {
		return fmt.Sprintf("%ds", v)
	}
	return fmt.Sprintf("%d reps", v)
}

func difficultyStars(level int) string {
	level = max(0, min(level, 5))
	return strings.Repeat("★", level) + strings.Repeat("☆", 5-level)
}

func joinMuscles(groups []catalog.MuscleGroup) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

// renderExerciseDetails is shared by the Today info panel and the Library.
func renderExerciseDetails(ex catalog.Exercise, w int) string {
	rows := []string{
		titleStyle.Render(ex.Name) + "  " + mutedStyle.Render(fmt.Sprintf("%s · %s", ex.MovementType, difficultyStars(ex.DifficultyLevel))),
		mutedStyle.Render("Muscles: " + joinMuscles(ex.MuscleGroups)),
		"",
		highlightStyle.Render("Goal") + "  " + ex.Goal,
		"",
	}
	for i, step := range ex.Instructions {
		rows = append(rows, fmt.Sprintf("  %d. %s", i+1, step))
	}
	rows = append(rows, "")
	if ex.CommonMistake != "" {
		rows = append(rows, warningStyle.Render("Avoid")+"  "+ex.CommonMistake)
	}
	if ex.EasierVariant != "" {
		rows = append(rows, successStyle.Render("Easier")+" "+ex.EasierVariant)
	}
	if ex.HarderVariant != "" {
		rows = append(rows, accentStyle.Render("Harder")+" "+ex.HarderVariant)
	}
	if len(ex.Contraindications) > 0 {
		names := make([]string, len(ex.Contraindications))
		for i, c := range ex.Contraindications {
			names[i] = string(c)
		}
		rows = append(rows, mutedStyle.Render("Not for: "+strings.Join(names, ", ")))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
