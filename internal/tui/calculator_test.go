package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calcpad/calcpad/internal/calculator"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKeys(m CalculatorModel, input string) CalculatorModel {
	for _, r := range input {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func TestCalculatorModel_Typing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"addition", "5+3=", "8"},
		{"decimals", "1.5+2.5=", "4"},
		{"ascii multiply", "6*7=", "42"},
		{"ascii divide", "7/0=", "Inf"},
		{"percent", "50%", "0.5"},
		{"sign", "9n", "-9"},
		{"unknown keys ignored", "2z+2=", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeKeys(NewCalculatorModel(calculator.RepeatNoop), tt.input)
			if got := m.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculatorModel_EnterAndEscape(t *testing.T) {
	m := typeKeys(NewCalculatorModel(calculator.RepeatNoop), "4+4")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Display(); got != "8" {
		t.Errorf("Display() after enter = %q, want %q", got, "8")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.State(); got != calculator.NewState() {
		t.Errorf("State() after esc = %v, want %v", got, calculator.NewState())
	}
}

func TestCalculatorModel_CursorNavigation(t *testing.T) {
	m := NewCalculatorModel(calculator.RepeatNoop)
	if got := m.Selected(); got != calculator.Digit(7) {
		t.Fatalf("initial Selected() = %v, want 7", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if got := m.Display(); got != "7" {
		t.Errorf("Display() after space = %q, want %q", got, "7")
	}

	// Right edge of the row is a wall
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if got := m.Selected(); got != calculator.Operation(calculator.OpMultiply) {
		t.Errorf("Selected() at right edge = %v, want ×", got)
	}

	// Moving into the short bottom row clamps to its last button
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.Selected(); got != calculator.Equals() {
		t.Errorf("Selected() on bottom row = %v, want =", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.Row != 0 {
		t.Errorf("Row after moving up = %d, want 0", m.Row)
	}
}

func TestCalculatorModel_PressMovesCursor(t *testing.T) {
	m := typeKeys(NewCalculatorModel(calculator.RepeatNoop), "0")
	if got := m.Selected(); got != calculator.Digit(0) {
		t.Errorf("Selected() = %v, want 0", got)
	}
	if m.LastPressed == nil || *m.LastPressed != calculator.Digit(0) {
		t.Errorf("LastPressed = %v, want 0", m.LastPressed)
	}
}

func TestCalculatorModel_Content(t *testing.T) {
	m := typeKeys(NewCalculatorModel(calculator.RepeatNoop), "8+")
	m.Width = 60

	if got := m.expression(); got != "8 +" {
		t.Errorf("expression() = %q, want %q", got, "8 +")
	}

	content := m.Content()
	for _, title := range []string{"C", "±", "%", "÷", "×", "-", "+", "=", ".", "0", "8 +"} {
		if !strings.Contains(content, title) {
			t.Errorf("Content() missing %q", title)
		}
	}
}

func TestCalculatorModel_SetPolicy(t *testing.T) {
	m := NewCalculatorModel(calculator.RepeatNoop)
	m.SetPolicy(calculator.RepeatLast)
	m = typeKeys(m, "5+3==")
	if got := m.Display(); got != "11" {
		t.Errorf("Display() = %q, want %q", got, "11")
	}
}

func TestCalculatorModel_CellWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{30, minCellWidth},
		{40, 7},
		{200, maxCellWidth},
	}

	for _, tt := range tests {
		m := NewCalculatorModel(calculator.RepeatNoop)
		m.Width = tt.width
		if got := m.cellWidth(); got != tt.want {
			t.Errorf("cellWidth() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestCalculatorModel_Copy(t *testing.T) {
	m := typeKeys(NewCalculatorModel(calculator.RepeatNoop), "42")

	m, cmd := m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("Update() with y should return a copy command")
	}
	if got := m.Display(); got != "42" {
		t.Errorf("Display() after copy = %q, want %q", got, "42")
	}

	m, _ = m.Update(copiedMsg{})
	if got := m.expression(); got != "copied" {
		t.Errorf("expression() = %q, want %q", got, "copied")
	}

	m, _ = m.Update(copiedMsg{err: errors.New("no clipboard")})
	if got := m.expression(); got != "copy failed" {
		t.Errorf("expression() = %q, want %q", got, "copy failed")
	}

	// The note clears on the next key
	m = typeKeys(m, "1")
	if got := m.expression(); got != " " {
		t.Errorf("expression() after a key = %q, want blank", got)
	}
}

func TestFitDisplay(t *testing.T) {
	tests := []struct {
		display string
		width   int
		want    string
	}{
		{"42", 10, "42"},
		{"1234567890", 10, "1234567890"},
		{"12345678901", 10, "123456789…"},
		{"-Inf", 3, "-I…"},
	}

	for _, tt := range tests {
		if got := fitDisplay(tt.display, tt.width); got != tt.want {
			t.Errorf("fitDisplay(%q, %d) = %q, want %q", tt.display, tt.width, got, tt.want)
		}
	}
}
