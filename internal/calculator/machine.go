package calculator

import (
	"github.com/calcpad/calcpad/internal/logging"
)

// Machine owns a State and applies key presses to it. A Machine is not safe
// for concurrent use; give each screen or session its own.
type Machine struct {
	state  State
	policy RepeatPolicy
	owner  string
}

// Option configures a Machine.
type Option func(*Machine)

// WithRepeatPolicy sets the repeated "=" behaviour.
func WithRepeatPolicy(p RepeatPolicy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithOwner names the machine's owner in log output (e.g. a remote address).
func WithOwner(owner string) Option {
	return func(m *Machine) { m.owner = owner }
}

// NewMachine creates a Machine in the cleared state.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		state: NewState(),
		owner: "local",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Press applies k and returns the new display text.
func (m *Machine) Press(k Key) string {
	m.state = Step(m.state, k, m.policy)
	logging.LogKeyPress(m.owner, k.String(), m.state.Display, m.state.Pending.String())
	return m.state.Display
}

// PressAll applies keys in order and returns the final display text.
func (m *Machine) PressAll(keys []Key) string {
	for _, k := range keys {
		m.Press(k)
	}
	return m.state.Display
}

// Display returns the current display text.
func (m *Machine) Display() string {
	return m.state.Display
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Policy returns the repeated "=" policy.
func (m *Machine) Policy() RepeatPolicy {
	return m.policy
}

// SetPolicy changes the repeated "=" policy without touching the state.
func (m *Machine) SetPolicy(p RepeatPolicy) {
	m.policy = p
}

// Reset returns the machine to the cleared state.
func (m *Machine) Reset() {
	m.state = NewState()
}
