package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Button, ButtonFocused               lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	SymOK, SymFail, SymItem                       string
}

var current = classic()

// SetTheme switches the palette by name: classic (default), neon or mono.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:         lipgloss.NewStyle().Faint(true),
			Accent:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			Button:        lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("13")),
			ButtonFocused: lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true).Foreground(lipgloss.Color("13")),
			Border:        lipgloss.RoundedBorder(),
			BorderColor:   lipgloss.Color("13"),
			SymOK:         "✔",
			SymFail:       "✖",
			SymItem:       "◆",
		}
	case "mono":
		current = Theme{
			Title:         lipgloss.NewStyle(),
			Muted:         lipgloss.NewStyle(),
			Accent:        lipgloss.NewStyle(),
			Success:       lipgloss.NewStyle(),
			Error:         lipgloss.NewStyle(),
			Pending:       lipgloss.NewStyle(),
			Selected:      lipgloss.NewStyle(),
			Button:        lipgloss.NewStyle(),
			ButtonFocused: lipgloss.NewStyle(),
			Border:        lipgloss.NormalBorder(),
			BorderColor:   lipgloss.NoColor{},
			SymOK:         "ok",
			SymFail:       "error:",
			SymItem:       "-",
		}
	default: // classic
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:         lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Faint(true),
		Accent:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:      lipgloss.NewStyle().Bold(true).Reverse(true),
		Button:        lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("12")),
		ButtonFocused: lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true),
		Border:        lipgloss.RoundedBorder(),
		BorderColor:   lipgloss.Color("8"),
		SymOK:         "✔",
		SymFail:       "✖",
		SymItem:       "•",
	}
}

// SetNoColor strips all color and attributes from rendered output.
func SetNoColor(disable bool) {
	if disable {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
