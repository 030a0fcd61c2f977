package styles

import "github.com/charmbracelet/lipgloss"

// Centralized Lip Gloss styles for the skillmcp TUI.
// All colors are specified using hex codes.

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2")).
			MarginBottom(1).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginBottom(1).
			PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8")).
			MarginTop(1).
			Padding(0, 1)

	// URI templates shown in lists and detail headers.
	TemplateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fd7ff"))

	// Shared pane styles for the browse view.
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f5fff")).
			PaddingLeft(2).
			PaddingRight(1)

	// Focused pane variant that highlights the active pane.
	PaneFocusedStyle = PaneStyle.
				BorderForeground(lipgloss.Color("#ff5faf"))
)
