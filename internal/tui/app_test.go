package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calcpad/calcpad/internal/config"
)

func TestNewAppModel(t *testing.T) {
	m := NewAppModel(nil)
	if m.CurrentScreen != ScreenCalculator {
		t.Errorf("CurrentScreen = %q, want %q", m.CurrentScreen, ScreenCalculator)
	}
	if m.Init() != nil {
		t.Error("Init() on the calculator screen should return nil")
	}

	cfg := config.NewConfig()
	cfg.Preferences.StartScreen = config.ScreenGreeting
	m = NewAppModel(cfg)
	if m.CurrentScreen != ScreenGreeting {
		t.Errorf("CurrentScreen = %q, want %q", m.CurrentScreen, ScreenGreeting)
	}
	if m.Init() == nil {
		t.Error("Init() on the greeting screen should start the animation")
	}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	app, ok := updated.(AppModel)
	if !ok {
		t.Fatalf("Update() returned %T, want AppModel", updated)
	}
	return app, cmd
}

func TestAppModel_ScreenTransitions(t *testing.T) {
	m := NewAppModel(nil)
	for _, r := range "12+" {
		m, _ = update(t, m, runes(string(r)))
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentScreen != ScreenGreeting {
		t.Fatalf("CurrentScreen after tab = %q, want %q", m.CurrentScreen, ScreenGreeting)
	}
	if cmd == nil {
		t.Error("switching to the greeting screen should start the animation")
	}

	// Digits are not routed to the calculator while the greeting is shown
	m, _ = update(t, m, runes("9"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.CurrentScreen != ScreenCalculator {
		t.Fatalf("CurrentScreen after esc = %q, want %q", m.CurrentScreen, ScreenCalculator)
	}

	for _, r := range "3=" {
		m, _ = update(t, m, runes(string(r)))
	}
	if got := m.Calculator.Display(); got != "15" {
		t.Errorf("Display() = %q, want %q", got, "15")
	}
}

func TestAppModel_Quit(t *testing.T) {
	tests := []struct {
		name   string
		screen Screen
		msg    tea.KeyMsg
	}{
		{"ctrl+c on calculator", ScreenCalculator, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q on calculator", ScreenCalculator, runes("q")},
		{"q on greeting", ScreenGreeting, runes("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAppModel(nil)
			m.CurrentScreen = tt.screen
			_, cmd := update(t, m, tt.msg)
			if cmd == nil {
				t.Fatal("Update() returned nil command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("Update() should return tea.Quit")
			}
		})
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m, _ := update(t, NewAppModel(nil), tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.Calculator.Width != 80 || m.Greeting.Height != 40 {
		t.Errorf("size not propagated: calculator width %d, greeting height %d", m.Calculator.Width, m.Greeting.Height)
	}
	if m.View() == "" {
		t.Error("View() returned empty string")
	}
}

func TestAppModel_ConfigReload(t *testing.T) {
	m := NewAppModel(nil)

	cfg := config.NewConfig()
	cfg.Preferences.RepeatEquals = "repeat"
	cfg.Preferences.Greeting.Message = "Season's Greetings"
	cfg.Preferences.Greeting.Snowflakes = 3
	m, _ = update(t, m, ConfigReloadedMsg{Config: cfg})

	if m.Greeting.Message != "Season's Greetings" {
		t.Errorf("Greeting.Message = %q, want %q", m.Greeting.Message, "Season's Greetings")
	}
	if got := m.Greeting.Flakes(); got != 3 {
		t.Errorf("Greeting.Flakes() = %d, want 3", got)
	}

	for _, r := range "5+3==" {
		m, _ = update(t, m, runes(string(r)))
	}
	if got := m.Calculator.Display(); got != "11" {
		t.Errorf("Display() under repeat policy = %q, want %q", got, "11")
	}
}
