// Package ui renders styled, non-interactive output for calcpad's CLI
// commands (eval, press, discover, config).
//
// Output is a command header followed by a result box:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Evaluate", "calcpad eval 5 + 3 =")
//	p.PrintDisplay("8")
//
// With SetPlain(true) the boxes are dropped and only values are printed, for
// scripts and pipes. The interactive calculator lives in package tui.
package ui
