// Package server implements the calcpad remote keypad: a websocket server
// where every connection drives its own calculator.
//
// # Protocol
//
// Clients connect to /ws. The server immediately sends the initial state and
// then answers every request with the new state:
//
//	-> {"keys": ["5", "+", "3", "="]}
//	<- {"display": "8", "pending": ""}
//	-> {"input": "*2="}
//	<- {"display": "16", "pending": ""}
//	-> {"keys": ["?"]}
//	<- {"display": "16", "pending": "", "error": "unknown key: \"?\""}
//
// A request with "reset": true clears the calculator before its keys are
// applied. A request containing any unknown key is rejected as a whole.
//
// GET /healthz answers "ok".
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{
//	    Port:         7337,
//	    RepeatPolicy: calculator.RepeatNoop,
//	    Advertise:    true,
//	    Instance:     "calcpad",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Start blocks until ctx is done or a shutdown signal arrives.
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Connection Lifecycle
//
// Each session pings its peer every 54 seconds and drops it after 60 seconds
// without a pong. Shutdown withdraws the mDNS advertisement, stops accepting
// connections, sends a close frame to every session and waits for them to
// finish.
//
// # Thread Safety
//
// Sessions run in their own goroutines and share nothing; each owns a
// calculator.Machine that only its read loop touches.
package server
