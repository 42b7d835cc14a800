// Package ui renders pipeline progress on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorBlue   = lipgloss.Color("#3b82f6")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")
	colorDim    = lipgloss.Color("#6b7280")

	stageStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Reporter prints stage progress, plain when the writer is not a TTY.
type Reporter struct {
	out    io.Writer
	styled bool
}

// NewReporter creates a Reporter writing to out. Styling is enabled
// only when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: out, styled: styled}
}

// Stage announces the pipeline stage that is starting.
func (r *Reporter) Stage(name string) {
	r.println(stageStyle, fmt.Sprintf("==> %s", name))
}

// Infof prints a progress detail line.
func (r *Reporter) Infof(format string, args ...any) {
	r.println(infoStyle, "    "+fmt.Sprintf(format, args...))
}

// Warnf prints a non-fatal warning.
func (r *Reporter) Warnf(format string, args ...any) {
	r.println(warnStyle, "    warning: "+fmt.Sprintf(format, args...))
}

// Failf prints a failure line.
func (r *Reporter) Failf(format string, args ...any) {
	r.println(failStyle, fmt.Sprintf(format, args...))
}

func (r *Reporter) println(style lipgloss.Style, line string) {
	if r.styled {
		line = style.Render(line)
	}
	fmt.Fprintln(r.out, line)
}
