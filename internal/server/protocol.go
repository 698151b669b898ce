package server

import (
	"errors"

	"github.com/calcpad/calcpad/internal/calculator"
)

// ErrRejected is returned by the client when the keypad refuses a request.
var ErrRejected = errors.New("keypad rejected request")

// Request is a client message. Keys are applied first, then Input. Reset
// clears the calculator before either.
type Request struct {
	Keys  []string `json:"keys,omitempty"`
	Input string   `json:"input,omitempty"`
	Reset bool     `json:"reset,omitempty"`
}

// Reply is sent after every request and once on connect.
type Reply struct {
	Display string `json:"display"`
	Pending string `json:"pending"`
	Error   string `json:"error,omitempty"`
}

// Parse converts the request into key presses. Nothing is returned if any
// token is unknown, so a bad request leaves the calculator untouched.
func (r Request) Parse() ([]calculator.Key, error) {
	keys, err := calculator.ParseTokens(r.Keys)
	if err != nil {
		return nil, err
	}
	if r.Input != "" {
		more, err := calculator.ParseKeys(r.Input)
		if err != nil {
			return nil, err
		}
		keys = append(keys, more...)
	}
	return keys, nil
}

func newReply(state calculator.State, err error) Reply {
	reply := Reply{
		Display: state.Display,
		Pending: state.Pending.String(),
	}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}
