package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/calcpad/calcpad/internal/version"
)

// Application branding constants
const (
	AppName = "CALCPAD"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 36  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	buttonGap        = 1   // Columns between buttons
	minCellWidth     = 5
	maxCellWidth     = 9
)

// Color palette
var (
	// Button colors
	OperatorColor = lipgloss.Color("#FF9F0A") // Orange
	FunctionColor = lipgloss.Color("#A5A5A5") // Light gray
	DigitColor    = lipgloss.Color("#333333") // Dark gray

	// Neutral colors
	TextColor      = lipgloss.Color("#FFFFFF") // White
	DarkTextColor  = lipgloss.Color("#000000") // Black
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#FF9F0A") // Orange (same as operators)
	HighlightColor = lipgloss.Color("#FFFFFF") // White

	// Greeting colors
	SnowColor       = lipgloss.Color("#F0F8FF")
	TreeColor       = lipgloss.Color("#2E8B57")
	TrunkColor      = lipgloss.Color("#8B4513")
	RibbonColor     = lipgloss.Color("#E0245E")
	StarDimColor    = lipgloss.Color("#8A7400")
	StarColor       = lipgloss.Color("#FFD700")
	StarBrightColor = lipgloss.Color("#FFFFE0")
	OrnamentColors  = []lipgloss.Color{"#FF5555", "#5599FF", "#FFD700", "#FF8B94"}
)

// Common styles
var (
	// TitleStyle is the application title in the header
	TitleStyle = lipgloss.NewStyle().
			Foreground(BorderColor).
			Bold(true)

	// SubtitleStyle is the version in the header
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// DisplayStyle is the calculator display
	DisplayStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Align(lipgloss.Right)

	// ExpressionStyle is the running "8 +" line above the display
	ExpressionStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Align(lipgloss.Right)

	// MessageStyle is the greeting text
	MessageStyle = lipgloss.NewStyle().
			Foreground(StarColor).
			Bold(true)

	// HelpStyle is the footer help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// buttonBase is shared by every calculator button.
var buttonBase = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Padding(1, 0).
	Bold(true)

// terminalSize returns the current terminal width and height, with fallback
func terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// RenderApplicationContainer wraps screen content with the header and a
// footer holding the help line.
func RenderApplicationContainer(content string, footerText string, terminalWidth int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalWidth > MaxContentWidth {
		terminalWidth = MaxContentWidth
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TitleStyle.Render(AppName),
		"  ",
		SubtitleStyle.Render(AppVersion()),
	)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(1, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(HelpStyle.Render(footerText)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Render(inner)
}
