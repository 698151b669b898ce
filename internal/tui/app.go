package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/config"
	"github.com/calcpad/calcpad/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenCalculator Screen = config.ScreenCalculator
	ScreenGreeting   Screen = config.ScreenGreeting
)

// ConfigReloadedMsg carries a config file that changed on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	Calculator CalculatorModel
	Greeting   GreetingModel

	// UI state
	Width  int
	Height int
}

// NewAppModel creates the application model from the user configuration
func NewAppModel(cfg *config.Config) AppModel {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	model := AppModel{
		CurrentScreen: ScreenCalculator,
		Calculator:    NewCalculatorModel(cfg.RepeatPolicy()),
		Greeting:      NewGreetingModel(cfg.Preferences.Greeting, time.Now().UnixNano()),
	}
	if strings.EqualFold(cfg.Preferences.StartScreen, config.ScreenGreeting) {
		model.CurrentScreen = ScreenGreeting
	}

	return model
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenGreeting:
		return m.Greeting.Init()
	default:
		return m.Calculator.Init()
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.Calculator.Width = msg.Width
		m.Calculator.Height = msg.Height
		m.Greeting.Width = msg.Width
		m.Greeting.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config), nil
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenCalculator:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keyMsg.String() == "q":
				return m, tea.Quit
			case keyMsg.String() == "tab":
				return m.transitionTo(ScreenGreeting)
			}
		}
		m.Calculator, cmd = m.Calculator.Update(msg)

	case ScreenGreeting:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "tab", "esc":
				return m.transitionTo(ScreenCalculator)
			}
		}
		m.Greeting, cmd = m.Greeting.Update(msg)
	}

	return m, cmd
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	logging.Debug("Screen transition",
		zap.String("from", string(m.CurrentScreen)),
		zap.String("to", string(screen)),
	)
	m.CurrentScreen = screen

	var cmd tea.Cmd
	if screen == ScreenGreeting {
		// The calculator keeps its state; the animation restarts
		m.Greeting, cmd = m.Greeting.Restart()
	}
	return m, cmd
}

// applyConfig hot-swaps preferences from a reloaded config file
func (m AppModel) applyConfig(cfg *config.Config) AppModel {
	if cfg == nil || cfg.Preferences == nil {
		return m
	}
	m.Calculator.SetPolicy(cfg.RepeatPolicy())
	m.Greeting.Configure(cfg.Preferences.Greeting)
	logging.Info("Configuration reloaded",
		zap.String("repeat_equals", cfg.Preferences.RepeatEquals),
	)
	return m
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenGreeting:
		return m.Greeting.View()
	default:
		return m.Calculator.View()
	}
}
