package formatter

import (
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// paper maps a note color to the background it is drawn on. Pastel tones
// keep dark text readable.
var paper = map[domain.Color]lipgloss.Color{
	domain.ColorYellow: lipgloss.Color("#f9e79f"),
	domain.ColorGreen:  lipgloss.Color("#b8e0b0"),
	domain.ColorBlue:   lipgloss.Color("#aed6f1"),
	domain.ColorPink:   lipgloss.Color("#f5b7cf"),
	domain.ColorPurple: lipgloss.Color("#d2b4de"),
	domain.ColorOrange: lipgloss.Color("#f8c291"),
}

// NotePaper returns the background color of a note.
func NotePaper(c domain.Color) lipgloss.Color {
	if p, ok := paper[c]; ok {
		return p
	}
	return paper[domain.ColorYellow]
}

// ColorSwatch renders a small block in the note's color followed by its name.
func ColorSwatch(c domain.Color) string {
	return lipgloss.NewStyle().Foreground(NotePaper(c)).Render("■") + " " + string(c)
}

// ImportanceStyle colors an importance badge.
func ImportanceStyle(i domain.Importance) lipgloss.Style {
	switch i {
	case domain.ImportanceHigh:
		return StyleRed.Bold(true)
	case domain.ImportanceLow:
		return StyleDim
	default:
		return StyleYellow
	}
}

// ImportanceBadge renders "HIGH", "MED" or "LOW" in its color.
func ImportanceBadge(i domain.Importance) string {
	return ImportanceStyle(i).Render(i.Badge())
}

// LockIndicator is a padlock for locked notes and blank otherwise.
func LockIndicator(locked bool) string {
	if locked {
		return StyleRed.Render("🔒")
	}
	return ""
}

func Dim(text string) string {
	return StyleDim.Render(text)
}
