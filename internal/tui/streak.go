package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dailyfloor/internal/coach"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/store"
	"github.com/sadopc/dailyfloor/internal/streak"
)

const (
	defaultChartWeeks = 8
	maxCalendarDays   = 30
)

type streakModel struct {
	coach  *coach.Coach
	store  *store.Store
	width  int
	height int

	data         streak.Data
	calendarDays int
	chartWeeks   int
	monthOffset  int // months back from the current one (0 = this month)

	chart barchart.Model
}

func newStreakModel(c *coach.Coach, s *store.Store) streakModel {
	return streakModel{
		coach:        c,
		store:        s,
		data:         streak.New(),
		calendarDays: streak.DefaultCalendarDays,
		chartWeeks:   defaultChartWeeks,
		chart:        barchart.New(60, 10),
	}
}

func (m *streakModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

type streakDataMsg struct {
	data         streak.Data
	calendarDays int
	chartWeeks   int
}

func (m streakModel) refresh() tea.Cmd {
	c, s := m.coach, m.store
	return func() tea.Msg {
		data, err := c.Streak()
		if err != nil {
			return errStatus("Load streak", err)
		}
		days, err := s.GetIntSetting(store.KeyCalendarDays, streak.DefaultCalendarDays)
		if err != nil {
			return errStatus("Load settings", err)
		}
		weeks, err := s.GetIntSetting(store.KeyChartWeeks, defaultChartWeeks)
		if err != nil {
			return errStatus("Load settings", err)
		}
		return streakDataMsg{data: data, calendarDays: days, chartWeeks: weeks}
	}
}

func (m streakModel) update(msg tea.Msg) (streakModel, tea.Cmd) {
	switch msg := msg.(type) {
	case streakDataMsg:
		m.data = msg.data
		m.calendarDays = max(1, min(msg.calendarDays, maxCalendarDays))
		m.chartWeeks = max(1, msg.chartWeeks)
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.monthOffset++
		case key.Matches(msg, keys.Right):
			if m.monthOffset > 0 {
				m.monthOffset--
			}
		}
	}
	return m, nil
}

func (m *streakModel) buildChart() {
	chartWidth := max(20, m.width-8)
	chartHeight := 8
	if m.height > 36 {
		chartHeight = 12
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	weeks := m.coach.Tracker().WeeklyCounts(m.data, m.chartWeeks)
	bars := make([]barchart.BarData, 0, len(weeks))
	for _, w := range weeks {
		label := w.Start
		if t, err := dates.Parse(w.Start, time.UTC); err == nil {
			label = t.Format("Jan 02")
		}
		color := colorSuccess
		if w.Count == 0 {
			color = colorSubtle
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "days",
				Value: float64(w.Count),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m streakModel) view() string {
	w := m.width - 4
	tracker := m.coach.Tracker()
	display := tracker.Display(m.data)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.renderSummary(display),
			"",
			m.renderStrip(tracker.CalendarDays(m.data, m.calendarDays)),
			"",
			m.renderMonth(tracker.MonthlyGrid(m.data, m.monthOffset)),
			"",
			titleStyle.Render("Completed days per week"),
			m.chart.View(),
			"",
			mutedStyle.Render("  ←/→: change month"),
		),
	)
}

func (m streakModel) renderSummary(d streak.Display) string {
	current := streakFlameStyle.Render(fmt.Sprintf("🔥 %d", d.Current))
	longest := highlightStyle.Render(fmt.Sprintf("%d", d.Longest))
	line := fmt.Sprintf("%s %s   %s %s",
		current, titleStyle.Render(plural(d.Current, "day")+" streak"), mutedStyle.Render("longest"), longest)

	switch {
	case d.CompletedToday:
		line += "   " + successStyle.Render("✓ done today")
	case d.IsActive:
		line += "   " + warningStyle.Render("finish today's floor to keep it")
	default:
		line += "   " + mutedStyle.Render("complete a floor to start a streak")
	}
	return line
}

func (m streakModel) renderStrip(days []streak.Day) string {
	var labels, cells []string
	for _, d := range days {
		label := "?"
		if t, err := dates.Parse(d.Date, time.UTC); err == nil {
			label = t.Format("Mon")[:2]
		}
		labels = append(labels, fmt.Sprintf("%-3s", label))

		cell := dayMissedStyle.Render("○")
		if d.Completed {
			cell = successStyle.Render("●")
		}
		if d.IsToday {
			cell = dayTodayStyle.Render(stripGlyph(d.Completed))
		}
		cells = append(cells, cell+"  ")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Last %d days", len(days))),
		mutedStyle.Render(strings.Join(labels, "")),
		strings.Join(cells, ""),
	)
}

func stripGlyph(done bool) string {
	if done {
		return "●"
	}
	return "○"
}

func (m streakModel) renderMonth(weeks [][]streak.Day) string {
	title := ""
	for _, week := range weeks {
		for _, d := range week {
			if !d.InMonth {
				continue
			}
			if t, err := dates.Parse(d.Date, time.UTC); err == nil {
				title = t.Format("January 2006")
			}
			break
		}
		if title != "" {
			break
		}
	}

	rows := []string{titleStyle.Render(title), mutedStyle.Render("Su Mo Tu We Th Fr Sa")}
	for _, week := range weeks {
		var cells []string
		for _, d := range week {
			if !d.InMonth {
				cells = append(cells, "  ")
				continue
			}
			num := fmt.Sprintf("%2d", dates.DayOfMonth(d.Date))
			switch {
			case d.Completed:
				num = dayDoneStyle.Render(num)
			case d.IsToday:
				num = dayTodayStyle.Render(num)
			default:
				num = dayMissedStyle.Render(num)
			}
			cells = append(cells, num)
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
