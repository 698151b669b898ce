package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the banner printed at the start of a command.
type Header struct {
	Title   string   // e.g., "EVALUATE"
	Command string   // e.g., "calcpad eval 5 + 3 ="
	Params  []Detail // Shown under the divider
	Width   int
}

// Detail is one "key: value" line.
type Detail struct {
	Key   string
	Value string
}

// NewHeader creates a new header sized to the terminal
func NewHeader(title, command string, params ...Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	}
	if len(h.Params) > 0 {
		lines = append(lines, RenderHorizontalDivider(width-6, "─"))
		lines = append(lines, renderDetails(h.Params)...)
	}

	return BoxStyle(width, PrimaryColor).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderDetails(details []Detail) []string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, ResultKeyStyle.Render(d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	return lines
}
