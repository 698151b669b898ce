package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes styled CLI output. Plain mode prints bare values so the
// output can be piped.
type Printer struct {
	out   io.Writer
	width int
	plain bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetPlain toggles plain output
func (p *Printer) SetPlain(plain bool) *Printer {
	p.plain = plain
	return p
}

// Plain reports whether the printer is in plain mode
func (p *Printer) Plain() bool {
	return p.plain
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box (skipped in plain mode)
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	if p.plain {
		return
	}
	h := NewHeader(title, command, params...)
	h.Width = p.width
	p.Println(h.Render())
}

// PrintDisplay prints a calculator display value
func (p *Printer) PrintDisplay(display string, details ...Detail) {
	if p.plain {
		p.Println(display)
		return
	}
	details = append([]Detail{{Key: "Display", Value: DisplayStyle.Render(display)}}, details...)
	r := NewSuccessResult("Result", details...)
	r.Width = p.width
	p.Println(r.Render())
}

// PrintDetails prints a titled success box of details
func (p *Printer) PrintDetails(title string, details ...Detail) {
	if p.plain {
		for _, d := range details {
			p.Println(d.Key + "\t" + d.Value)
		}
		return
	}
	r := NewSuccessResult(title, details...)
	r.Width = p.width
	p.Println(r.Render())
}

// PrintError prints an error result box with troubleshooting hints
func (p *Printer) PrintError(title string, err error, hints ...string) {
	if p.plain {
		p.Println(fmt.Sprintf("%s: %v", title, err))
		return
	}
	r := NewFailureResult(title, err, hints...)
	r.Width = p.width
	p.Println(r.Render())
}
