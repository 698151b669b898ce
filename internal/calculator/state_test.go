package calculator

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

// run presses every key in input, starting from the cleared state.
func run(t *testing.T, policy RepeatPolicy, input string) State {
	t.Helper()
	keys, err := ParseKeys(input)
	if err != nil {
		t.Fatalf("ParseKeys(%q) error = %v", input, err)
	}
	s := NewState()
	for _, k := range keys {
		s = Step(s, k, policy)
	}
	return s
}

func TestStep_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		policy RepeatPolicy
		want   string
	}{
		{"addition", "5+3=", RepeatNoop, "8"},
		{"decimals", "1.5+2.5=", RepeatNoop, "4"},
		{"divide by zero", "7/0=", RepeatNoop, "Inf"},
		{"negative divide by zero", "7n/0=", RepeatNoop, "-Inf"},
		{"zero over zero", "0/0=", RepeatNoop, "NaN"},
		{"percent of fifty", "50%", RepeatNoop, "0.5"},
		{"percent of two hundred", "200%", RepeatNoop, "2"},
		{"sign toggle", "12n", RepeatNoop, "-12"},
		{"sign toggle twice", "12nn", RepeatNoop, "12"},
		{"no precedence", "2+3*4=", RepeatNoop, "20"},
		{"operator shows running total", "2+3*", RepeatNoop, "5"},
		{"fraction result", "1/3=", RepeatNoop, "0.33333333"},
		{"leading zero replaced", "007", RepeatNoop, "7"},
		{"leading zero kept after point", "0.07", RepeatNoop, "0.07"},
		{"second point ignored", "1.2.3", RepeatNoop, "1.23"},
		{"point alone", ".", RepeatNoop, "0."},
		{"point starts fresh after operator", "5+.5=", RepeatNoop, "5.5"},
		{"digit starts fresh after equals", "5+3=2", RepeatNoop, "2"},
		{"chain after equals", "5+3=+1=", RepeatNoop, "9"},
		{"repeat equals noop", "5+3==", RepeatNoop, "8"},
		{"repeat equals reapplies", "5+3==", RepeatLast, "11"},
		{"repeat equals reapplies twice", "5+3===", RepeatLast, "14"},
		{"repeat equals on new entry", "5+3=2=", RepeatLast, "5"},
		{"clear", "5+3C", RepeatNoop, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.policy, tt.input).Display; got != tt.want {
				t.Errorf("%q display = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStep_ClearResetsEverything(t *testing.T) {
	for _, input := range []string{"", "5", "5+", "5+3=", "7/0=", "1.5n%", "5+3=="} {
		for _, policy := range []RepeatPolicy{RepeatNoop, RepeatLast} {
			s := run(t, policy, input)
			got := Step(s, Clear(), policy)
			want := State{Display: "0"}
			if got != want {
				t.Errorf("Clear after %q = %+v, want %+v", input, got, want)
			}
		}
	}
}

func TestStep_OperatorAfterOperatorEvaluatesOnce(t *testing.T) {
	s := run(t, RepeatNoop, "5+")
	s = Step(s, Operation(OpMultiply), RepeatNoop)

	if s.Display != "10" {
		t.Errorf("Display = %q, want %q", s.Display, "10")
	}
	if s.Accumulator != 10 {
		t.Errorf("Accumulator = %v, want 10", s.Accumulator)
	}
	if s.Pending != OpMultiply {
		t.Errorf("Pending = %v, want %v", s.Pending, OpMultiply)
	}

	s = Step(s, Digit(2), RepeatNoop)
	s = Step(s, Equals(), RepeatNoop)
	if s.Display != "20" {
		t.Errorf("Display after 2= is %q, want %q", s.Display, "20")
	}
}

func TestStep_EqualsWithoutPendingIsNoop(t *testing.T) {
	s := State{Display: "12", Accumulator: 3}
	got := Step(s, Equals(), RepeatNoop)
	if got != s {
		t.Errorf("Step(=) = %+v, want unchanged %+v", got, s)
	}

	// RepeatLast with nothing evaluated yet is also a no-op.
	got = Step(s, Equals(), RepeatLast)
	if got != s {
		t.Errorf("Step(=, RepeatLast) = %+v, want unchanged %+v", got, s)
	}
}

func TestStep_OperatorState(t *testing.T) {
	s := run(t, RepeatNoop, "5+3-")
	if s.Display != "8" || s.Accumulator != 8 || s.Pending != OpSubtract || !s.AwaitingInput {
		t.Errorf("state after 5+3- = %v", s)
	}
}

func TestStep_UnparsableDisplayIsNoop(t *testing.T) {
	s := State{Display: "abc", Accumulator: 4, Pending: OpAdd}
	for _, k := range []Key{Operation(OpAdd), Equals(), Sign(), Percent()} {
		if got := Step(s, k, RepeatNoop); got != s {
			t.Errorf("Step(%v) on unparsable display = %+v, want unchanged", k, got)
		}
	}
}

func TestStep_AfterInfinity(t *testing.T) {
	s := State{Display: "Inf"}

	if got := Step(s, Digit(4), RepeatNoop).Display; got != "4" {
		t.Errorf("digit after Inf = %q, want %q", got, "4")
	}
	if got := Step(s, Decimal(), RepeatNoop).Display; got != "0." {
		t.Errorf("decimal after Inf = %q, want %q", got, "0.")
	}
	if got := Step(s, Sign(), RepeatNoop).Display; got != "-Inf" {
		t.Errorf("sign after Inf = %q, want %q", got, "-Inf")
	}
}

func TestStep_DigitLimit(t *testing.T) {
	s := run(t, RepeatNoop, strings.Repeat("9", MaxInputDigits+4))
	if got := countDigits(s.Display); got != MaxInputDigits {
		t.Errorf("display has %d digits, want %d", got, MaxInputDigits)
	}
}

func TestStep_DigitEntryKeepsDisplayValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		s := Step(NewState(), Clear(), RepeatNoop)
		n := rng.Intn(24)
		for j := 0; j < n; j++ {
			if rng.Intn(5) == 0 {
				s = Step(s, Decimal(), RepeatNoop)
			} else {
				s = Step(s, Digit(rng.Intn(10)), RepeatNoop)
			}
		}

		v, err := strconv.ParseFloat(s.Display, 64)
		if err != nil {
			t.Fatalf("display %q does not parse: %v", s.Display, err)
		}
		if v < 0 {
			t.Errorf("display %q is negative", s.Display)
		}
		if strings.Count(s.Display, ".") > 1 {
			t.Errorf("display %q has more than one decimal point", s.Display)
		}
	}
}

func TestParseRepeatPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RepeatPolicy
		wantErr bool
	}{
		{"", RepeatNoop, false},
		{"noop", RepeatNoop, false},
		{"REPEAT", RepeatLast, false},
		{"last", RepeatLast, false},
		{"sometimes", RepeatNoop, true},
	}
	for _, tt := range tests {
		got, err := ParseRepeatPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepeatPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRepeatPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
