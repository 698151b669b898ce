package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// calculatorKeyMap defines key bindings for the calculator screen.
// Digits, operators, "." and "%" are typed directly and are not bindings.
type calculatorKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Press    key.Binding
	Equals   key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Greeting key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k calculatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Equals, k.Clear, k.Copy, k.Greeting, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k calculatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Press},
		{k.Equals, k.Clear, k.Copy, k.Greeting, k.Quit},
	}
}

// greetingKeyMap defines key bindings for the greeting screen
type greetingKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k greetingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k greetingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Quit}}
}

func newCalculatorKeyMap() calculatorKeyMap {
	return calculatorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Press: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "press"),
		),
		Equals: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter", "equals"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "backspace", "delete", "c"),
			key.WithHelp("esc/c", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Greeting: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "greeting"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newGreetingKeyMap() greetingKeyMap {
	return greetingKeyMap{
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "calculator"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
