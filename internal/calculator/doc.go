// Package calculator implements the input state machine behind a basic
// four-function calculator.
//
// The machine consumes discrete key presses (digits, decimal point, clear,
// sign toggle, percent, the four operators and equals) and produces the text
// shown on the calculator's display. Operators are evaluated immediately:
// there is no precedence, and every operator press first resolves whatever
// operation is already pending.
//
// # State
//
// State is a plain value. Step is the pure transition function and never
// fails; a display that cannot be parsed (which cannot happen while the
// invariants hold) turns the transition into a no-op.
//
//	s := calculator.NewState()
//	for _, k := range []calculator.Key{
//	    calculator.Digit(5), calculator.Operation(calculator.OpAdd),
//	    calculator.Digit(3), calculator.Equals(),
//	} {
//	    s = calculator.Step(s, k, calculator.RepeatNoop)
//	}
//	fmt.Println(s.Display) // 8
//
// Machine wraps a State for a single owner (a TUI screen or a websocket
// session) and logs each press.
//
// # Display Format
//
// Results are written with Format: integral values have no decimal point,
// other values use at most 8 fractional digits with trailing zeros removed.
// Division by zero follows IEEE-754 and shows "Inf", "-Inf" or "NaN", which
// strconv.ParseFloat reads back, so later keys keep working.
//
// # Repeated Equals
//
// RepeatNoop (the default) makes a second "=" do nothing. RepeatLast re-applies
// the last operator and operand to the current result, so "5 + 3 = =" shows 11.
package calculator
