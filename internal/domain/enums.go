package domain

type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
)

// Palette is the fixed, ordered set of note colors. Cycling walks this order.
var Palette = []Color{ColorYellow, ColorGreen, ColorBlue, ColorPink, ColorPurple, ColorOrange}

// Valid reports whether c belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// Next returns the palette color after c, wrapping around.
// An unknown color cycles to the first palette entry.
func (c Color) Next() Color {
	for i, p := range Palette {
		if p == c {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Importances lists importance levels from lowest to highest.
var Importances = []Importance{ImportanceLow, ImportanceMedium, ImportanceHigh}

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	}
	return false
}

// Badge returns the short display badge for the importance level.
func (i Importance) Badge() string {
	switch i {
	case ImportanceHigh:
		return "HIGH"
	case ImportanceMedium:
		return "MED"
	case ImportanceLow:
		return "LOW"
	default:
		return "?"
	}
}

// Next returns the next importance level, wrapping from high back to low.
func (i Importance) Next() Importance {
	for idx, v := range Importances {
		if v == i {
			return Importances[(idx+1)%len(Importances)]
		}
	}
	return ImportanceMedium
}
