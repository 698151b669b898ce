// Package tui implements the full-screen terminal calculator.
//
// The TUI follows the Bubble Tea Model-Update-View pattern with two screens
// coordinated by AppModel:
//   - Calculator: display and button grid driven by a calculator.Machine
//   - Greeting: a decorative animated scene (snow, tree, twinkling star)
//
// Both screens share RenderApplicationContainer for the header, content and
// a footer built with bubbles/help.
//
// # Keys
//
// On the calculator screen, digits and operators are typed directly
// ("5", "+", "*", "/", "=", ".", "%", "n" for sign). Arrow keys move the
// cursor and space presses the selected button. Enter evaluates, esc or c
// clears, tab switches to the greeting screen and q quits.
//
// # Usage Example
//
//	cfg, _ := config.LoadDefault()
//	if err := tui.Run(ctx, tui.Options{Config: cfg}); err != nil {
//	    log.Fatal(err)
//	}
//
// The star brightness and ribbon sway are driven by gween tweens that
// reverse when they finish; snowflakes fall at per-flake speeds and respawn
// at the top.
package tui
