package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/calcpad/calcpad/internal/calculator"
)

// buttonRows is the calculator layout. The zero key spans two columns.
var buttonRows = [][]calculator.Key{
	{calculator.Clear(), calculator.Sign(), calculator.Percent(), calculator.Operation(calculator.OpDivide)},
	{calculator.Digit(7), calculator.Digit(8), calculator.Digit(9), calculator.Operation(calculator.OpMultiply)},
	{calculator.Digit(4), calculator.Digit(5), calculator.Digit(6), calculator.Operation(calculator.OpSubtract)},
	{calculator.Digit(1), calculator.Digit(2), calculator.Digit(3), calculator.Operation(calculator.OpAdd)},
	{calculator.Digit(0), calculator.Decimal(), calculator.Equals()},
}

// CalculatorModel is the calculator screen
type CalculatorModel struct {
	machine *calculator.Machine

	// Cursor over buttonRows
	Row int
	Col int

	// Last pressed button, highlighted until the next press
	LastPressed *calculator.Key

	// Status is a transient note shown above the display
	Status string

	// UI state
	Width  int
	Height int

	Help help.Model
	Keys calculatorKeyMap
}

// NewCalculatorModel creates a calculator screen with a fresh machine
func NewCalculatorModel(policy calculator.RepeatPolicy) CalculatorModel {
	return CalculatorModel{
		machine: calculator.NewMachine(
			calculator.WithRepeatPolicy(policy),
			calculator.WithOwner("tui"),
		),
		Row:  1, // Start on the 7 key
		Help: help.New(),
		Keys: newCalculatorKeyMap(),
	}
}

// Init initializes the calculator screen
func (m CalculatorModel) Init() tea.Cmd {
	return nil
}

// copiedMsg reports the result of copying the display to the clipboard
type copiedMsg struct {
	err error
}

func copyDisplay(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// Update handles key presses on the calculator screen
func (m CalculatorModel) Update(msg tea.Msg) (CalculatorModel, tea.Cmd) {
	if copied, ok := msg.(copiedMsg); ok {
		m.Status = "copied"
		if copied.err != nil {
			m.Status = "copy failed"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Status = ""

	switch {
	case key.Matches(keyMsg, m.Keys.Copy):
		return m, copyDisplay(m.machine.Display())
	case key.Matches(keyMsg, m.Keys.Up):
		m.move(-1, 0)
	case key.Matches(keyMsg, m.Keys.Down):
		m.move(1, 0)
	case key.Matches(keyMsg, m.Keys.Left):
		m.move(0, -1)
	case key.Matches(keyMsg, m.Keys.Right):
		m.move(0, 1)
	case key.Matches(keyMsg, m.Keys.Press):
		m.press(m.Selected())
	case key.Matches(keyMsg, m.Keys.Equals):
		m.press(calculator.Equals())
	case key.Matches(keyMsg, m.Keys.Clear):
		m.press(calculator.Clear())
	default:
		// Typed digits and operators press their button directly
		if k, err := calculator.ParseKey(keyMsg.String()); err == nil {
			m.press(k)
		}
	}

	return m, nil
}

// Display returns the current display text
func (m CalculatorModel) Display() string {
	return m.machine.Display()
}

// State returns the calculator state
func (m CalculatorModel) State() calculator.State {
	return m.machine.State()
}

// SetPolicy changes the repeat-equals policy without resetting the state
func (m *CalculatorModel) SetPolicy(p calculator.RepeatPolicy) {
	m.machine.SetPolicy(p)
}

// Selected returns the button under the cursor
func (m CalculatorModel) Selected() calculator.Key {
	return buttonRows[m.Row][m.Col]
}

func (m *CalculatorModel) press(k calculator.Key) {
	m.machine.Press(k)
	m.LastPressed = &k
	if row, col, ok := findButton(k); ok {
		m.Row, m.Col = row, col
	}
}

func (m *CalculatorModel) move(dRow, dCol int) {
	row := m.Row + dRow
	if row < 0 || row >= len(buttonRows) {
		return
	}
	col := m.Col + dCol
	if col < 0 {
		return
	}
	if dCol != 0 && col >= len(buttonRows[row]) {
		return
	}
	// The last row is shorter; clamp when moving down into it
	if col >= len(buttonRows[row]) {
		col = len(buttonRows[row]) - 1
	}
	m.Row, m.Col = row, col
}

func findButton(k calculator.Key) (int, int, bool) {
	for r, row := range buttonRows {
		for c, b := range row {
			if b == k {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// cellWidth is the width of a single-column button for the current terminal
func (m CalculatorModel) cellWidth() int {
	width := m.Width
	if width == 0 {
		width, _ = terminalSize()
	}
	// Outer border, content padding and the gaps between four buttons
	cell := (width - 8 - 3*buttonGap) / 4
	if cell < minCellWidth {
		cell = minCellWidth
	}
	if cell > maxCellWidth {
		cell = maxCellWidth
	}
	return cell
}

// View renders the calculator screen
func (m CalculatorModel) View() string {
	return RenderApplicationContainer(m.Content(), m.Help.View(m.Keys), m.Width)
}

// Content renders the display and the button grid without the container
func (m CalculatorModel) Content() string {
	cell := m.cellWidth()
	gridWidth := 4*cell + 3*buttonGap

	lines := []string{
		ExpressionStyle.Width(gridWidth).Render(m.expression()),
		DisplayStyle.Width(gridWidth).Render(fitDisplay(m.machine.Display(), gridWidth)),
		"",
	}

	for r, row := range buttonRows {
		var cells []string
		for c, k := range row {
			w := cell
			if k == calculator.Digit(0) {
				w = 2*cell + buttonGap
			}
			cells = append(cells, m.buttonStyle(k, r, c).Width(w).Render(k.String()))
			if c < len(row)-1 {
				cells = append(cells, strings.Repeat(" ", buttonGap))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// expression renders "accumulator operator" while an operation is pending,
// otherwise the status note
func (m CalculatorModel) expression() string {
	st := m.machine.State()
	if st.Pending == calculator.OpNone {
		if m.Status != "" {
			return m.Status
		}
		return " "
	}
	return calculator.Format(st.Accumulator) + " " + st.Pending.String()
}

// fitDisplay truncates results too wide for the grid, such as 1e300
func fitDisplay(display string, width int) string {
	if runewidth.StringWidth(display) <= width {
		return display
	}
	return runewidth.Truncate(display, width, "…")
}

func (m CalculatorModel) buttonStyle(k calculator.Key, row, col int) lipgloss.Style {
	bg, fg := DigitColor, TextColor
	switch k.Kind {
	case calculator.KindClear, calculator.KindSign, calculator.KindPercent:
		bg, fg = FunctionColor, DarkTextColor
	case calculator.KindOperator, calculator.KindEquals:
		bg = OperatorColor
	}

	st := m.machine.State()
	switch {
	case row == m.Row && col == m.Col:
		bg, fg = HighlightColor, DarkTextColor
	case k.Kind == calculator.KindOperator && k.Op == st.Pending && st.AwaitingInput:
		// Pending operator is inverted until the next operand starts
		bg, fg = HighlightColor, OperatorColor
	}

	style := buttonBase.Background(bg).Foreground(fg)
	if m.LastPressed != nil && *m.LastPressed == k {
		style = style.Underline(true)
	}
	return style
}
