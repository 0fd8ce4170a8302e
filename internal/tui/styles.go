package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#3DDC97")
	colorAccent    = lipgloss.Color("#FF9F43")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorWarning   = lipgloss.Color("#FACC15")
	colorError     = lipgloss.Color("#EF4444")
	colorBg        = lipgloss.Color("#111827")
	colorFg        = lipgloss.Color("#E5E7EB")
	colorSubtle    = lipgloss.Color("#374151")
	colorHighlight = lipgloss.Color("#60A5FA")
)

// Chrome
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	headerStyle    = lipgloss.NewStyle().Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Used while a hold is running or a picker has focus.
	activePanelStyle = panelStyle.BorderForeground(colorPrimary)
)

// Text
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	accentStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
)

// Exercise rows
var (
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
	doneItemStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true)
)

// Hold countdown
var (
	holdRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	holdPausedStyle = holdRunningStyle.Foreground(colorWarning)
)

// Streak calendar
var (
	dayDoneStyle = lipgloss.NewStyle().
			Foreground(colorBg).
			Background(colorSuccess).
			Bold(true)

	dayMissedStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	dayTodayStyle    = lipgloss.NewStyle().Foreground(colorHighlight).Underline(true).Bold(true)
	streakFlameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)
