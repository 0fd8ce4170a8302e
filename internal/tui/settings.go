package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/coach"
	"github.com/sadopc/dailyfloor/internal/floor"
	"github.com/sadopc/dailyfloor/internal/store"
)

type settingsModel struct {
	coach  *coach.Coach
	store  *store.Store
	width  int
	height int

	profile      floor.UserProfile
	includeBonus bool
	settings     []store.Setting

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formLevel       *int
	formTime        *floor.TimePreference
	formEquipment   *floor.EquipmentLevel
	formConstraints *[]catalog.Constraint
	formBonus       *bool
}

func newSettingsModel(c *coach.Coach, s *store.Store) settingsModel {
	level, tp, eq := floor.DefaultLevel, floor.TimePreference(5), floor.EquipmentNone
	var constraints []catalog.Constraint
	bonus := true
	return settingsModel{
		coach:           c,
		store:           s,
		profile:         floor.DefaultProfile(),
		formLevel:       &level,
		formTime:        &tp,
		formEquipment:   &eq,
		formConstraints: &constraints,
		formBonus:       &bonus,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	profile      floor.UserProfile
	includeBonus bool
	settings     []store.Setting
	status       string
}

func (s settingsModel) refresh() tea.Cmd {
	return s.load("")
}

func (s settingsModel) load(status string) tea.Cmd {
	c, st := s.coach, s.store
	return func() tea.Msg {
		p, err := c.Profile()
		if err != nil {
			return errStatus("Load profile", err)
		}
		bonus, err := c.IncludeBonus()
		if err != nil {
			return errStatus("Load settings", err)
		}
		settings, err := st.GetAllSettings()
		if err != nil {
			return errStatus("Load settings", err)
		}
		return settingsDataMsg{profile: p, includeBonus: bonus, settings: settings, status: status}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.profile = msg.profile
		s.includeBonus = msg.includeBonus
		s.settings = msg.settings
		if msg.status != "" {
			return s, func() tea.Msg { return statusMsg{text: msg.status} }
		}
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formLevel = s.profile.Level
	*s.formTime = s.profile.TimePreference
	*s.formEquipment = s.profile.Equipment
	*s.formConstraints = append([]catalog.Constraint(nil), s.profile.Constraints...)
	*s.formBonus = s.includeBonus

	levelOptions := make([]huh.Option[int], 10)
	for i := range levelOptions {
		levelOptions[i] = huh.NewOption(strconv.Itoa(i+1), i+1)
	}
	timeOptions := make([]huh.Option[floor.TimePreference], len(floor.TimePreferences))
	for i, tp := range floor.TimePreferences {
		timeOptions[i] = huh.NewOption(fmt.Sprintf("%d minutes", tp), tp)
	}
	constraintOptions := make([]huh.Option[catalog.Constraint], len(catalog.Constraints))
	for i, c := range catalog.Constraints {
		constraintOptions[i] = huh.NewOption(string(c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Fitness level").
				Description("1 is a beginner, 10 is very fit").
				Options(levelOptions...).Value(s.formLevel),
			huh.NewSelect[floor.TimePreference]().Title("Session length").
				Options(timeOptions...).Value(s.formTime),
			huh.NewSelect[floor.EquipmentLevel]().Title("Equipment").
				Options(
					huh.NewOption("None", floor.EquipmentNone),
					huh.NewOption("Minimal", floor.EquipmentMinimal),
					huh.NewOption("Full", floor.EquipmentFull),
				).Value(s.formEquipment),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewMultiSelect[catalog.Constraint]().Title("Areas to protect").
				Options(constraintOptions...).Value(s.formConstraints),
			huh.NewConfirm().Title("Add a bonus exercise to new floors?").Value(s.formBonus),
		).Title("Safety"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

// save persists the form values. Today's floor is left as it is.
func (s settingsModel) save() tea.Cmd {
	c := s.coach
	p := s.profile
	p.Level = *s.formLevel
	p.TimePreference = *s.formTime
	p.Equipment = *s.formEquipment
	p.Constraints = append([]catalog.Constraint(nil), (*s.formConstraints)...)
	bonus := *s.formBonus
	reload := s.load("Profile saved, applies from the next floor")

	return func() tea.Msg {
		if _, err := c.SaveProfile(p); err != nil {
			return errStatus("Save profile", err)
		}
		if err := c.SetIncludeBonus(bonus); err != nil {
			return errStatus("Save settings", err)
		}
		return reload()
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	label := lipgloss.NewStyle().Width(24)
	row := func(k, v string) string {
		return fmt.Sprintf("  %s %s", label.Render(k), highlightStyle.Render(v))
	}

	constraints := "none"
	if len(s.profile.Constraints) > 0 {
		names := make([]string, len(s.profile.Constraints))
		for i, c := range s.profile.Constraints {
			names[i] = string(c)
		}
		constraints = strings.Join(names, ", ")
	}

	rows := []string{
		title,
		"",
		subtitleStyle.Render("Profile"),
		row("level", strconv.Itoa(s.profile.Level)),
		row("session length", fmt.Sprintf("%d min", s.profile.TimePreference)),
		row("equipment", string(s.profile.Equipment)),
		row("constraints", constraints),
		"",
		subtitleStyle.Render("Preferences"),
	}
	for _, setting := range s.settings {
		rows = append(rows, row(setting.Key, formatSettingValue(setting.Key, setting.Value)))
	}
	if !hasSetting(s.settings, store.KeyIncludeBonus) {
		rows = append(rows, row(store.KeyIncludeBonus, formatSettingValue(store.KeyIncludeBonus, strconv.FormatBool(s.includeBonus))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit your profile"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func hasSetting(settings []store.Setting, k string) bool {
	for _, s := range settings {
		if s.Key == k {
			return true
		}
	}
	return false
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.KeyIncludeBonus:
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "yes"
			}
			return "no"
		}
	case store.KeyCalendarDays:
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d days", n)
		}
	case store.KeyChartWeeks:
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d weeks", n)
		}
	}
	return v
}
