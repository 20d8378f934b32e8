// Package presentation holds terminal output helpers for the CLI.
package presentation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const barLen = 20

// ProgressBar redraws an in-place loading bar on each update. On
// non-terminal output it stays silent so logs and redirects stay clean.
type ProgressBar struct {
	out     io.Writer
	profile termenv.Profile
	enabled bool
}

// NewProgressBar builds a bar writing to stdout.
func NewProgressBar() *ProgressBar {
	return &ProgressBar{
		out:     os.Stdout,
		profile: termenv.ColorProfile(),
		enabled: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Update redraws the bar at done/total. When the bar completes it terminates
// the line.
func (p *ProgressBar) Update(done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	percent := float64(done) / float64(total)
	filled := int(barLen * percent)
	if filled > barLen {
		filled = barLen
	}

	bar := termenv.String(strings.Repeat("=", filled)).
		Foreground(p.profile.Color("10")). // green
		String()
	fmt.Fprintf(p.out, "\r[%s%s] %.1f%%", bar, strings.Repeat(" ", barLen-filled), percent*100)
	if done >= total {
		fmt.Fprintln(p.out)
	}
}
