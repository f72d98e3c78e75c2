// Package term renders generation progress on the terminal. On a TTY the
// current stage line is rewritten in place; anywhere else each stage is
// appended as a plain line so logs stay readable.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape sequences for terminal control.
const (
	clearLine = "\r\033[K"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"
)

// Reporter writes stage progress to one output stream. It is used from a
// single goroutine and keeps no locking.
type Reporter struct {
	w     io.Writer
	isTTY bool
}

// NewReporter returns a reporter writing to w. TTY behavior is detected
// from the writer.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w, isTTY: isTerminalWriter(w)}
}

// Stage announces the current stage. On a TTY it replaces the previous
// stage line; otherwise it appends a line.
func (r *Reporter) Stage(msg string) {
	if r.isTTY {
		fmt.Fprint(r.w, clearLine+msg)
		return
	}
	fmt.Fprintln(r.w, msg)
}

// Done ends the progress output with a success mark.
func (r *Reporter) Done(msg string) {
	r.finish(colorGreen + symbolSuccess + colorReset + " " + msg)
}

// Fail ends the progress output with a failure mark.
func (r *Reporter) Fail(msg string) {
	r.finish(colorRed + symbolFailure + colorReset + " " + msg)
}

func (r *Reporter) finish(line string) {
	if r.isTTY {
		fmt.Fprint(r.w, clearLine+line+"\n")
		return
	}
	// Color codes would just clutter a log file.
	line = stripANSI(line)
	fmt.Fprintln(r.w, line)
}

// isTerminalWriter checks if the given writer is a terminal.
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func stripANSI(s string) string {
	for _, code := range []string{colorGreen, colorRed, colorReset} {
		s = strings.ReplaceAll(s, code, "")
	}
	return s
}
