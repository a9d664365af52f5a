package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	debugColor   = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

// Logger writes human-facing CLI messages. Results go to out and diagnostics to
// errOut. In JSON mode every message is suppressed so out carries only the JSON
// document.
type Logger struct {
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	jsonMode bool
}

// NewLoggerWithWriters creates a Logger writing to out and errOut.
func NewLoggerWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

// SetNoColor disables colors process-wide.
func (l *Logger) SetNoColor(noColor bool) {
	color.NoColor = noColor
}

func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

func (l *Logger) SetJSONMode(jsonMode bool) {
	l.jsonMode = jsonMode
}

// IsJSON reports whether results are printed as JSON.
func (l *Logger) IsJSON() bool {
	return l.jsonMode
}

// Writer is where results are printed.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func (l *Logger) line(w io.Writer, c *color.Color, prefix, format string, args []any) {
	if l.jsonMode {
		return
	}
	msg := prefix + fmt.Sprintf(format, args...)
	if c == nil {
		fmt.Fprintln(w, msg)
		return
	}
	c.Fprintln(w, msg)
}

func (l *Logger) Info(format string, args ...any) {
	l.line(l.out, nil, "", format, args)
}

// Warn prints to errOut.
func (l *Logger) Warn(format string, args ...any) {
	l.line(l.errOut, warnColor, "Warning: ", format, args)
}

func (l *Logger) Success(format string, args ...any) {
	l.line(l.out, successColor, "✓ ", format, args)
}

// Debug prints to errOut, only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line(l.errOut, debugColor, "[DEBUG] ", format, args)
}

func (l *Logger) Bold(format string, args ...any) {
	l.line(l.out, boldColor, "", format, args)
}
