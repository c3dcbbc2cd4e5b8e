package render

import "sort"

// Glyph ramps run from dark to bright. The first rune is used for unlit
// cells.
var (
	dotsPalette  = []rune(" .:-=+*oO@")
	blockPalette = []rune(" ░▒▓█")
	ledPalette   = []rune(" ·•●")
)

// Palette returns the glyph ramp for name, falling back to "dots".
func Palette(name string) []rune {
	switch name {
	case "block":
		return blockPalette
	case "led":
		return ledPalette
	default:
		return dotsPalette
	}
}

// PaletteNames returns all palette identifiers.
func PaletteNames() []string {
	names := []string{"dots", "block", "led"}
	sort.Strings(names)
	return names
}

// glyph picks the rune for brightness v in [0,1]. Any lit cell gets at
// least the first visible glyph.
func glyph(ramp []rune, v float64) rune {
	if v <= 0 || len(ramp) < 2 {
		return ramp[0]
	}
	idx := 1 + int(v*float64(len(ramp)-1))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
