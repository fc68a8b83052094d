package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/tasks"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Printer reports progress one line per update.
type Printer struct {
	w      io.Writer
	quiet  bool
	styles *Palette
}

// NewPrinter creates a Printer writing to w. Quiet printers drop everything.
func NewPrinter(w io.Writer, quiet bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !ShouldColorize(w) {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{w: w, quiet: quiet, styles: NewPalette(r)}
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Progress renders a single update. It has the signature of [tasks.ProgressFunc].
func (p *Printer) Progress(u tasks.ProgressUpdate) {
	if p.quiet || u.Message == "" {
		return
	}

	var line string
	switch u.Phase {
	case tasks.FoundTracks:
		line = p.styles.title.Render(u.Message)
	case tasks.ResolveTempo:
		line = p.styles.ok.Render(u.Message)
		if track, ok := u.Data.(models.Track); ok && !track.HasBPM() {
			line = p.styles.warn.Render(u.Message)
		}
	default:
		line = p.styles.help.Render(u.Message)
	}

	fmt.Fprintln(p.w, line)
}

// Summary prints how many of total tracks got a tempo.
func (p *Printer) Summary(resolved, total int) {
	if p.quiet {
		return
	}
	msg := fmt.Sprintf("Resolved %d of %d tracks", resolved, total)
	switch {
	case resolved == total:
		fmt.Fprintln(p.w, p.styles.ok.Render(msg))
	case resolved == 0:
		fmt.Fprintln(p.w, p.styles.err.Render(msg))
	default:
		fmt.Fprintln(p.w, p.styles.warn.Render(msg))
	}
}
