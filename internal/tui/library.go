package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dailyfloor/internal/catalog"
)

type libraryModel struct {
	catalog *catalog.Catalog
	width   int
	height  int

	// filter indexes catalog.MovementTypes; -1 shows everything.
	filter      int
	cursor      int
	showDetails bool
}

func newLibraryModel(c *catalog.Catalog) libraryModel {
	return libraryModel{catalog: c, filter: -1}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l libraryModel) filterName() string {
	if l.filter < 0 {
		return "all"
	}
	return string(catalog.MovementTypes[l.filter])
}

func (l libraryModel) exercises() []catalog.Exercise {
	if l.filter < 0 {
		return l.catalog.All()
	}
	return l.catalog.ByType(catalog.MovementTypes[l.filter])
}

func (l libraryModel) selected() (catalog.Exercise, bool) {
	list := l.exercises()
	if l.cursor < 0 || l.cursor >= len(list) {
		return catalog.Exercise{}, false
	}
	return list[l.cursor], true
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	n := len(catalog.MovementTypes)
	switch {
	case key.Matches(km, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(km, keys.Down):
		if l.cursor < len(l.exercises())-1 {
			l.cursor++
		}
	case key.Matches(km, keys.Right):
		l.filter = (l.filter+2)%(n+1) - 1
		l.cursor = 0
	case key.Matches(km, keys.Left):
		l.filter = (l.filter+n+1)%(n+1) - 1
		l.cursor = 0
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Info):
		l.showDetails = !l.showDetails
	case key.Matches(km, keys.Back):
		l.showDetails = false
	}
	return l, nil
}

func (l libraryModel) view() string {
	w := l.width - 4

	var tabs []string
	for i := -1; i < len(catalog.MovementTypes); i++ {
		name := "all"
		if i >= 0 {
			name = string(catalog.MovementTypes[i])
		}
		if i == l.filter {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Exercise Library"), "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	list := l.exercises()
	rows := []string{header, ""}
	if len(list) == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises"))
	}
	for i, ex := range list {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		role := "support"
		if ex.IsPrimary {
			role = "primary"
		}
		rows = append(rows, cursor+lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(28).Render(ex.Name),
			mutedStyle.Width(10).Render(string(ex.MovementType)),
			mutedStyle.Width(9).Render(role),
			highlightStyle.Width(10).Render(formatBase(ex)),
			warningStyle.Render(difficultyStars(ex.DifficultyLevel)),
		))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d exercises (%s)  ←/→: filter  enter: details", len(list), l.filterName())))

	panels := []string{panelStyle.Width(w).Render(strings.Join(rows, "\n"))}
	if l.showDetails {
		if ex, ok := l.selected(); ok {
			panels = append(panels, renderExerciseDetails(ex, w))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
