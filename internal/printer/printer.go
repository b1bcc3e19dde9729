// Package printer writes the CLI's human-facing status lines.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// Out is where Success, Info and Detail write. Warnings go to stderr.
var Out io.Writer = os.Stdout

// Success prints a green line with a check mark.
func Success(format string, a ...any) {
	green.Fprintf(Out, "✓ "+format+"\n", a...)
}

// Info prints an uncolored line.
func Info(format string, a ...any) {
	fmt.Fprintf(Out, format+"\n", a...)
}

// Detail prints an indented cyan line under a previous message.
func Detail(format string, a ...any) {
	cyan.Fprintf(Out, "  "+format+"\n", a...)
}

// Warning prints a yellow line to stderr.
func Warning(format string, a ...any) {
	yellow.Fprintf(os.Stderr, "! "+format+"\n", a...)
}
