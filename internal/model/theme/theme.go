// Package theme models the light/dark mode and the colour palette preference.
package theme

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
)

// Mode is the light/dark toggle kept for the browser session.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode applies when nothing is stored.
const DefaultMode = Light

var modes = []Mode{Light, Dark}

// ParseMode validates a stored or submitted mode.
func ParseMode(s string) (Mode, error) {
	if !lo.Contains(modes, Mode(s)) {
		return "", fmt.Errorf("unknown theme mode %q: %w", s, errs.ErrInvalidInput)
	}
	return Mode(s), nil
}

// Palette is the persisted colour scheme.
type Palette string

const (
	PaletteLight     Palette = "light"
	PaletteDarkBlue  Palette = "dark-blue"
	PaletteDarkSepia Palette = "dark-sepia"
)

// DefaultPalette applies when nothing is stored.
const DefaultPalette = PaletteLight

// Palettes lists the selectable palettes in display order.
var Palettes = []Palette{PaletteLight, PaletteDarkBlue, PaletteDarkSepia}

// ParsePalette validates a stored or submitted palette.
func ParsePalette(s string) (Palette, error) {
	if !lo.Contains(Palettes, Palette(s)) {
		return "", fmt.Errorf("unknown theme palette %q: %w", s, errs.ErrInvalidInput)
	}
	return Palette(s), nil
}

// Class is the css class applied to the document root.
func (p Palette) Class() string { return "theme-" + string(p) }

// IsDark reports whether the palette renders on a dark background.
func (p Palette) IsDark() bool { return p == PaletteDarkBlue || p == PaletteDarkSepia }

// Classes lists every palette class, for clients that reset before applying one.
func Classes() []string {
	return lo.Map(Palettes, func(p Palette, _ int) string { return p.Class() })
}
