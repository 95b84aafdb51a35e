package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/homeward/internal/config"
)

// Catppuccin Mocha palette; config can override it.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorBright = lipgloss.Color("#cdd6f4")
)

var (
	styleHeader   lipgloss.Style
	styleOK       lipgloss.Style
	styleWarn     lipgloss.Style
	styleError    lipgloss.Style
	styleMuted    lipgloss.Style
	styleSpark    lipgloss.Style
	styleProgress lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleOK = lipgloss.NewStyle().Foreground(ColorGreen)
	styleWarn = lipgloss.NewStyle().Foreground(ColorYellow)
	styleError = lipgloss.NewStyle().Foreground(ColorRed)
	styleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	styleSpark = lipgloss.NewStyle().Foreground(ColorBlue)
	styleProgress = lipgloss.NewStyle().Foreground(ColorGreen)
}

// ApplyTheme overrides colors from the config file and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Green != nil {
		ColorGreen = lipgloss.Color(*tc.Green)
	}
	if tc.Yellow != nil {
		ColorYellow = lipgloss.Color(*tc.Yellow)
	}
	if tc.Red != nil {
		ColorRed = lipgloss.Color(*tc.Red)
	}
	if tc.Muted != nil {
		ColorMuted = lipgloss.Color(*tc.Muted)
	}
	if tc.Bright != nil {
		ColorBright = lipgloss.Color(*tc.Bright)
	}
	rebuildStyles()
}

// Header renders s as a section heading.
func Header(s string) string { return styleHeader.Render(s) }

// Warn renders s in the warning color.
func Warn(s string) string { return styleWarn.Render(s) }

// Error renders s in the error color.
func Error(s string) string { return styleError.Render(s) }

// Muted renders s de-emphasized.
func Muted(s string) string { return styleMuted.Render(s) }
