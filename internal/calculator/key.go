package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a token does not name a calculator key.
var ErrUnknownKey = errors.New("unknown key")

// Operator is an arithmetic operation awaiting its second operand.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the button title for the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Apply evaluates a op b with float64 semantics. Division by zero yields
// ±Inf or NaN.
func (o Operator) Apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	default:
		return b
	}
}

// KeyKind identifies the family of a key.
type KeyKind int

const (
	KindDigit KeyKind = iota
	KindDecimal
	KindClear
	KindSign
	KindPercent
	KindOperator
	KindEquals
)

// Key is a single button press.
type Key struct {
	Kind  KeyKind
	Digit int      // 0-9, KindDigit only
	Op    Operator // KindOperator only
}

// Digit returns the key for digit d. d must be in 0..9.
func Digit(d int) Key { return Key{Kind: KindDigit, Digit: d} }

// Decimal returns the decimal point key.
func Decimal() Key { return Key{Kind: KindDecimal} }

// Clear returns the clear key.
func Clear() Key { return Key{Kind: KindClear} }

// Sign returns the sign toggle key.
func Sign() Key { return Key{Kind: KindSign} }

// Percent returns the percent key.
func Percent() Key { return Key{Kind: KindPercent} }

// Operation returns the key for op.
func Operation(op Operator) Key { return Key{Kind: KindOperator, Op: op} }

// Equals returns the equals key.
func Equals() Key { return Key{Kind: KindEquals} }

// String returns the title printed on the button.
func (k Key) String() string {
	switch k.Kind {
	case KindDigit:
		return string(rune('0' + k.Digit))
	case KindDecimal:
		return "."
	case KindClear:
		return "C"
	case KindSign:
		return "±"
	case KindPercent:
		return "%"
	case KindOperator:
		return k.Op.String()
	case KindEquals:
		return "="
	default:
		return "?"
	}
}

// keyAliases maps accepted tokens (case-insensitive) to keys.
var keyAliases = map[string]Key{
	".":     Decimal(),
	",":     Decimal(),
	"c":     Clear(),
	"ac":    Clear(),
	"clear": Clear(),
	"±":     Sign(),
	"+/-":   Sign(),
	"neg":   Sign(),
	"n":     Sign(),
	"%":     Percent(),
	"+":     Operation(OpAdd),
	"-":     Operation(OpSubtract),
	"−":     Operation(OpSubtract),
	"*":     Operation(OpMultiply),
	"x":     Operation(OpMultiply),
	"×":     Operation(OpMultiply),
	"/":     Operation(OpDivide),
	"÷":     Operation(OpDivide),
	"=":     Equals(),
	"enter": Equals(),
}

// ParseKey converts a single token into a Key. Tokens are button titles
// ("7", "÷", "±") or ASCII aliases ("/", "*", "x", "neg", "+/-", "AC").
func ParseKey(token string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return Digit(int(t[0] - '0')), nil
	}
	if k, ok := keyAliases[t]; ok {
		return k, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseKeys tokenizes a compact key string such as "12.5*4=". Whitespace is
// ignored and every other rune is one key.
func ParseKeys(input string) ([]Key, error) {
	keys := make([]Key, 0, len(input))
	for _, r := range input {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		k, err := ParseKey(string(r))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ParseTokens parses each token with ParseKey, falling back to ParseKeys for
// tokens that are compact key strings ("5+3=").
func ParseTokens(tokens []string) ([]Key, error) {
	var keys []Key
	for _, tok := range tokens {
		if k, err := ParseKey(tok); err == nil {
			keys = append(keys, k)
			continue
		}
		ks, err := ParseKeys(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, ks...)
	}
	return keys, nil
}
