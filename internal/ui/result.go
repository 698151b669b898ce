package ui

import (
	"strings"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
)

// Result represents a result box
type Result struct {
	Type    ResultType
	Title   string
	Details []Detail
	Error   error    // Failure only
	Hints   []string // Troubleshooting tips, failure only
	Width   int
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, hints ...string) *Result {
	return &Result{
		Type:  ResultFailure,
		Title: title,
		Error: err,
		Hints: hints,
		Width: GetTerminalWidth(),
	}
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	if r.Type == ResultFailure {
		lines = append(lines, ErrorTitleStyle.Render(FailureMarker+"  "+r.Title))
		if r.Error != nil {
			lines = append(lines, "", "Error: "+r.Error.Error())
		}
		if len(r.Hints) > 0 {
			lines = append(lines, "")
			for _, hint := range r.Hints {
				lines = append(lines, HintStyle.Render("• "+hint))
			}
		}
		return BoxStyle(width, ErrorColor).Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, SuccessTitleStyle.Render(SuccessMarker+"  "+r.Title))
	if len(r.Details) > 0 {
		lines = append(lines, "")
		lines = append(lines, renderDetails(r.Details)...)
	}
	return BoxStyle(width, SuccessColor).Render(strings.Join(lines, "\n"))
}
