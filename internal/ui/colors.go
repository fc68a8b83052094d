package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds the default bpmx palette for renderer r.
func NewPalette(r *lipgloss.Renderer) *Palette {
	return NewCustomPalette(r, "#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")
}

// NewCustomPalette builds a palette from title, success, error, warning and help foreground colors.
func NewCustomPalette(r *lipgloss.Renderer, t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(r, t),
		ok:    NewBold(r, s),
		err:   NewBold(r, e),
		warn:  NewStyle(r, w),
		help:  NewEm(r, h),
	}
}

func NewStyle(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return NewStyle(r, fg).Bold(true)
}

func NewEm(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return NewStyle(r, fg).Italic(true)
}
