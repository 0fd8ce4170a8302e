package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/coach"
	"github.com/sadopc/dailyfloor/internal/floor"
)

type todayModel struct {
	coach  *coach.Coach
	width  int
	height int

	floor    floor.DailyFloor
	loaded   bool
	cursor   int
	showInfo bool

	hold holdTimer
	bar  progress.Model

	// feedback is today's stored report, used to prefill the form.
	feedback *floor.Feedback

	formActive bool
	form       *huh.Form

	// Feedback form values as pointers (survive value copies)
	fbDifficulty *floor.Difficulty
	fbSoreness   *floor.Soreness
	fbEnergy     *floor.Energy
	fbTime       *floor.TimePreference
}

func newTodayModel(c *coach.Coach) todayModel {
	d, s, e, tp := floor.Same, floor.SorenessNone, floor.EnergyOK, floor.TimePreference(5)
	return todayModel{
		coach:        c,
		bar:          progress.New(progress.WithDefaultGradient()),
		fbDifficulty: &d,
		fbSoreness:   &s,
		fbEnergy:     &e,
		fbTime:       &tp,
	}
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m todayModel) refresh() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		f, err := c.Today()
		if err != nil {
			return errStatus("Load floor", err)
		}
		fb, err := c.TodayFeedback()
		if err != nil {
			return errStatus("Load feedback", err)
		}
		return floorMsg{floor: f, feedback: fb}
	}
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case floorMsg:
		m.floor = msg.floor
		m.loaded = true
		if msg.feedback != nil {
			m.feedback = msg.feedback
		}
		if m.cursor >= len(m.floor.Exercises) {
			m.cursor = max(0, len(m.floor.Exercises)-1)
		}
		if m.hold.active() {
			if ex, ok := m.exercise(m.hold.exerciseID); !ok || ex.Completed {
				m.hold.cancel()
			}
		}
		return m, nil

	case tickMsg:
		if m.hold.tick(time.Time(msg)) {
			return m, m.completeHold()
		}
		return m, nil
	}

	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.floor.Exercises)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Toggle):
		return m.toggleSelected()
	case key.Matches(km, keys.Easier):
		return m, m.quickAdjust(floor.Easier)
	case key.Matches(km, keys.Harder):
		return m, m.quickAdjust(floor.Harder)
	case key.Matches(km, keys.Feedback):
		return m.showForm()
	case key.Matches(km, keys.Timer):
		return m.handleTimer(time.Now())
	case key.Matches(km, keys.Info):
		m.showInfo = !m.showInfo
	case key.Matches(km, keys.Regenerate):
		return m, m.regenerate()
	case key.Matches(km, keys.Back):
		if m.hold.active() {
			m.hold.cancel()
			return m, func() tea.Msg { return statusMsg{text: "Hold cancelled"} }
		}
		m.showInfo = false
	}
	return m, nil
}

func (m todayModel) selected() (floor.FloorExercise, bool) {
	if m.cursor < 0 || m.cursor >= len(m.floor.Exercises) {
		return floor.FloorExercise{}, false
	}
	return m.floor.Exercises[m.cursor], true
}

func (m todayModel) exercise(id string) (floor.FloorExercise, bool) {
	for _, ex := range m.floor.Exercises {
		if ex.ExerciseID == id {
			return ex, true
		}
	}
	return floor.FloorExercise{}, false
}

func (m todayModel) selectedCatalog() (catalog.Exercise, bool) {
	ex, ok := m.selected()
	if !ok {
		return catalog.Exercise{}, false
	}
	return m.coach.Catalog().ByID(ex.ExerciseID)
}

func (m todayModel) toggleSelected() (todayModel, tea.Cmd) {
	ex, ok := m.selected()
	if !ok {
		return m, nil
	}
	if m.hold.active() && m.hold.exerciseID == ex.ExerciseID {
		m.hold.cancel()
	}
	return m, m.toggle(ex.ExerciseID, nil, "")
}

func (m todayModel) toggle(id string, actual *floor.Actual, status string) tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		res, err := c.Toggle(id, actual)
		if err != nil {
			return errStatus("Toggle", err)
		}
		out := floorMsg{floor: res.Floor, status: status, completed: res.JustCompleted}
		if res.JustCompleted {
			out.status = fmt.Sprintf("Floor complete! Streak: %d %s", res.Streak.Current, plural(res.Streak.Current, "day"))
		}
		return out
	}
}

// completeHold marks the held exercise done with the held time recorded.
func (m todayModel) completeHold() tea.Cmd {
	ex, ok := m.exercise(m.hold.exerciseID)
	if !ok || ex.Completed {
		return nil
	}
	secs := m.hold.seconds
	return m.toggle(ex.ExerciseID, &floor.Actual{Time: floor.IntPtr(secs)}, ex.ExerciseName+" held")
}

func (m todayModel) handleTimer(now time.Time) (todayModel, tea.Cmd) {
	if m.hold.active() {
		m.hold.toggle(now)
		return m, nil
	}
	ex, ok := m.selected()
	if !ok {
		return m, nil
	}
	if ex.TargetTime == nil {
		return m, func() tea.Msg {
			return statusMsg{text: ex.ExerciseName + " is not a timed exercise", isError: true}
		}
	}
	if ex.Completed {
		return m, func() tea.Msg { return statusMsg{text: ex.ExerciseName + " is already done"} }
	}
	m.hold.start(ex.ExerciseID, ex.ExerciseName, *ex.TargetTime, now)
	return m, nil
}

func (m todayModel) quickAdjust(direction floor.Difficulty) tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		res, err := c.QuickAdjust(direction)
		if err != nil {
			return errStatus("Adjust", err)
		}
		status := "No changes"
		if len(res.Changes) > 0 {
			status = strings.Join(res.Changes, ", ")
		}
		return floorMsg{floor: res.Floor, status: status}
	}
}

func (m todayModel) regenerate() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		f, err := c.Regenerate()
		if errors.Is(err, coach.ErrFloorStarted) {
			return statusMsg{text: "Floor already started, undo exercises to get a new one", isError: true}
		}
		if err != nil {
			return errStatus("Regenerate", err)
		}
		return floorMsg{floor: f, status: "New floor generated"}
	}
}

func (m todayModel) showForm() (todayModel, tea.Cmd) {
	*m.fbDifficulty = floor.Same
	*m.fbSoreness = floor.SorenessNone
	*m.fbEnergy = floor.EnergyOK
	if fb := m.feedback; fb != nil && fb.Date == m.floor.Date {
		*m.fbDifficulty = fb.Difficulty
		*m.fbSoreness = fb.Soreness
		*m.fbEnergy = fb.Energy
		*m.fbTime = fb.TimeAvailable
	}

	timeOptions := make([]huh.Option[floor.TimePreference], len(floor.TimePreferences))
	for i, tp := range floor.TimePreferences {
		timeOptions[i] = huh.NewOption(fmt.Sprintf("%d min", tp), tp)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[floor.Difficulty]().Title("How did it feel?").
				Options(
					huh.NewOption("Too easy", floor.Easier),
					huh.NewOption("About right", floor.Same),
					huh.NewOption("Too hard", floor.Harder),
				).Value(m.fbDifficulty),
			huh.NewSelect[floor.Soreness]().Title("Soreness").
				Options(
					huh.NewOption("Normal", floor.SorenessNone),
					huh.NewOption("Sore", floor.Sore),
				).Value(m.fbSoreness),
			huh.NewSelect[floor.Energy]().Title("Energy").
				Options(
					huh.NewOption("Low", floor.EnergyLow),
					huh.NewOption("OK", floor.EnergyOK),
					huh.NewOption("High", floor.EnergyHigh),
				).Value(m.fbEnergy),
			huh.NewSelect[floor.TimePreference]().Title("Time available").
				Options(timeOptions...).Value(m.fbTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.submitFeedback()
	}

	return m, cmd
}

func (m todayModel) submitFeedback() tea.Cmd {
	c := m.coach
	fb := floor.Feedback{
		Difficulty:    *m.fbDifficulty,
		Soreness:      *m.fbSoreness,
		Energy:        *m.fbEnergy,
		TimeAvailable: *m.fbTime,
	}
	return func() tea.Msg {
		res, err := c.Feedback(fb)
		if err != nil {
			return errStatus("Feedback", err)
		}
		fb.Date = res.Floor.Date
		return floorMsg{floor: res.Floor, status: strings.Join(res.Changes, ", "), feedback: &fb}
	}
}

func (m todayModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Feedback"), "", m.form.View()),
		)
	}
	if !m.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading today's floor..."))
	}

	panels := []string{m.renderFloorPanel(w)}
	if m.hold.active() {
		panels = append(panels, m.renderHoldPanel(w))
	}
	if m.showInfo {
		if ex, ok := m.selectedCatalog(); ok {
			panels = append(panels, renderExerciseDetails(ex, w))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m todayModel) renderFloorPanel(w int) string {
	header := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("Today's Floor"),
		subtitleStyle.Render(m.floor.Date),
		mutedStyle.Render(fmt.Sprintf("~%d min", m.floor.EstimatedDuration)),
	)

	done, total := floor.Progress(m.floor)
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	bar := m.bar
	bar.Width = max(10, w-20)
	progressLine := bar.ViewAs(pct) + mutedStyle.Render(fmt.Sprintf("  %d/%d", done, total))

	rows := []string{header, "", progressLine, ""}
	for i, ex := range m.floor.Exercises {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "○"
		if ex.Completed {
			check = successStyle.Render("✓")
			if i != m.cursor {
				style = doneItemStyle
			}
		}

		line := fmt.Sprintf("%s%s %s  %s", cursor, check, style.Render(ex.ExerciseName), highlightStyle.Render(formatTarget(ex)))
		if ex.TargetTime != nil {
			line += mutedStyle.Render(" ⏱")
		}
		if ex.IsBonus {
			line += "  " + accentStyle.Render("bonus")
		}
		if actual := formatActual(ex); actual != "" {
			line += mutedStyle.Render("  did " + actual)
		}
		rows = append(rows, line)
	}

	panel := panelStyle
	if m.floor.Completed {
		rows = append(rows, "")
		line := successStyle.Render("✓ Floor complete")
		if m.floor.CompletedAt != nil {
			line += mutedStyle.Render(" at " + m.floor.CompletedAt.Local().Format("15:04"))
		}
		rows = append(rows, line)
		panel = activePanelStyle
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: done  +/-: harder/easier  f: feedback  t: hold  i: details  r: new floor"))

	return panel.Width(w).Render(strings.Join(rows, "\n"))
}

func (m todayModel) renderHoldPanel(w int) string {
	timeStr := formatCountdown(m.hold.remaining)
	display := holdRunningStyle.Width(w - 6).Render(timeStr)
	indicator := successStyle.Render("●  HOLDING")
	if m.hold.paused() {
		display = holdPausedStyle.Width(w - 6).Render(timeStr)
		indicator = warningStyle.Render("⏸  PAUSED")
	}

	bar := m.bar
	bar.Width = max(10, w-10)

	content := lipgloss.JoinVertical(lipgloss.Center,
		display,
		indicator,
		highlightStyle.Render(m.hold.name),
		bar.ViewAs(m.hold.fraction()),
		mutedStyle.Render("t: pause/resume  esc: cancel"),
	)
	return activePanelStyle.Width(w).Render(content)
}

func formatActual(ex floor.FloorExercise) string {
	switch {
	case ex.ActualReps != nil:
		return fmt.Sprintf("%d reps", *ex.ActualReps)
	case ex.ActualTime != nil:
		return fmt.Sprintf("%ds", *ex.ActualTime)
	}
	return ""
}
