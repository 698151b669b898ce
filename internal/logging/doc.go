// Package logging provides structured logging for calcpad.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent by default so that CLI output and the terminal UI stay clean;
// set CALCPAD_LOG_LEVEL (debug, info, warn, error) or pass --log-level to
// turn it on, and CALCPAD_LOG_FILE to send it to a file.
//
// # Structured Logging
//
//	logging.Info("Keypad server listening",
//	    zap.String("addr", ":7337"),
//	    zap.String("repeat_equals", "noop"),
//	)
//
// Domain helpers:
//
//	logging.LogKeyPress(owner, "+", "8", "+")
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//
// # Configuration
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
package logging
