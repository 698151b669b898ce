package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxInputDigits caps how many digits can be typed into the display.
const MaxInputDigits = 16

// RepeatPolicy selects what "=" does when no operator is pending.
type RepeatPolicy int

const (
	// RepeatNoop leaves the state untouched.
	RepeatNoop RepeatPolicy = iota
	// RepeatLast applies the last evaluated operator and operand again.
	RepeatLast
)

// String returns the config spelling of the policy.
func (p RepeatPolicy) String() string {
	switch p {
	case RepeatNoop:
		return "noop"
	case RepeatLast:
		return "repeat"
	default:
		return fmt.Sprintf("RepeatPolicy(%d)", int(p))
	}
}

// ParseRepeatPolicy parses "noop" or "repeat". An empty string selects
// RepeatNoop.
func ParseRepeatPolicy(s string) (RepeatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "noop":
		return RepeatNoop, nil
	case "repeat", "last":
		return RepeatLast, nil
	default:
		return RepeatNoop, fmt.Errorf("invalid repeat policy %q (want noop or repeat)", s)
	}
}

// State is the complete calculator state.
type State struct {
	// Display is the text on screen. It always parses as a number.
	Display string
	// Accumulator is the last committed operand or result.
	Accumulator float64
	// Pending is the operator waiting for its second operand.
	Pending Operator
	// AwaitingInput makes the next digit start a new number.
	AwaitingInput bool

	// LastOp and LastOperand record the most recent evaluation for
	// RepeatLast.
	LastOp      Operator
	LastOperand float64
}

// NewState returns the cleared state.
func NewState() State {
	return State{Display: "0"}
}

// String returns a compact description for logs and debugging.
func (s State) String() string {
	return fmt.Sprintf("display=%s acc=%s pending=%q fresh=%t",
		s.Display, strconv.FormatFloat(s.Accumulator, 'g', -1, 64), s.Pending.String(), s.AwaitingInput)
}

// Step applies one key press to s and returns the next state.
func Step(s State, k Key, policy RepeatPolicy) State {
	switch k.Kind {
	case KindDigit:
		return s.digit(k.Digit)
	case KindDecimal:
		return s.decimal()
	case KindClear:
		return NewState()
	case KindSign:
		return s.rewrite(func(v float64) float64 { return -v })
	case KindPercent:
		return s.rewrite(func(v float64) float64 { return v / 100 })
	case KindOperator:
		return s.operator(k.Op)
	case KindEquals:
		return s.equals(policy)
	default:
		return s
	}
}

func (s State) digit(d int) State {
	if d < 0 || d > 9 {
		return s
	}
	ch := string(rune('0' + d))

	switch {
	case s.AwaitingInput || !isEditable(s.Display):
		s.Display = ch
		s.AwaitingInput = false
	case s.Display == "0":
		s.Display = ch
	case countDigits(s.Display) >= MaxInputDigits:
		// Display is full; ignore the key.
	default:
		s.Display += ch
	}
	return s
}

func (s State) decimal() State {
	if s.AwaitingInput || !isEditable(s.Display) {
		s.Display = "0."
		s.AwaitingInput = false
		return s
	}
	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

func (s State) rewrite(fn func(float64) float64) State {
	v, ok := parseDisplay(s.Display)
	if !ok {
		return s
	}
	s.Display = Format(fn(v))
	return s
}

func (s State) operator(op Operator) State {
	v, ok := parseDisplay(s.Display)
	if !ok {
		return s
	}
	if s.Pending != OpNone {
		s = s.evaluate(v)
	} else {
		s.Accumulator = v
	}
	s.Pending = op
	s.AwaitingInput = true
	return s
}

func (s State) equals(policy RepeatPolicy) State {
	v, ok := parseDisplay(s.Display)
	if !ok {
		return s
	}
	switch {
	case s.Pending != OpNone:
		s = s.evaluate(v)
		s.AwaitingInput = true
	case policy == RepeatLast && s.LastOp != OpNone:
		result := s.LastOp.Apply(v, s.LastOperand)
		s.Display = Format(result)
		s.Accumulator = result
		s.AwaitingInput = true
	}
	return s
}

// evaluate resolves the pending operator against operand.
func (s State) evaluate(operand float64) State {
	result := s.Pending.Apply(s.Accumulator, operand)
	s.Display = Format(result)
	s.Accumulator = result
	s.LastOp = s.Pending
	s.LastOperand = operand
	s.Pending = OpNone
	return s
}
