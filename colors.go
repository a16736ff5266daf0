package vterm

// Palette is the process-wide default foreground/background pair that
// resolves the Color Default variant, mutated only by the demuxer when the
// child issues OSC 10 / OSC 11 *set* sequences (spec.md §3, §4.3).
type Palette struct {
	DefaultFg Rgb
	DefaultBg Rgb
}

// DefaultPalette matches the reference values used throughout spec.md §8's
// worked scenarios: fg=(204,204,204), bg=(0,0,0).
func DefaultPalette() Palette {
	return Palette{DefaultFg: Rgb{204, 204, 204}, DefaultBg: Rgb{0, 0, 0}}
}

// ansiColors is the 16-entry ANSI 0-15 approximation table. spec.md §9
// notes this mapping is a design choice, not a standard; these are the
// reference values spec.md's worked examples assume (e.g. Indexed(1) ==
// (204,0,0) in the "colored echo" scenario).
var ansiColors = [16]Rgb{
	{0, 0, 0}, {204, 0, 0}, {0, 204, 0}, {204, 204, 0},
	{0, 0, 204}, {204, 0, 204}, {0, 204, 204}, {204, 204, 204},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// cubeComponent converts a 0-5 cube coordinate to an 8-bit channel value
// per the xterm 256-color convention: 0 maps to 0, everything else maps to
// 55+40*v.
func cubeComponent(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return 55 + 40*v
}

// resolveColor maps a Color to a concrete Rgb given the palette default in
// effect for that channel. Indexed values follow the 256-color layout:
// 0-15 the ANSI table above, 16-231 a 6x6x6 cube, 232-255 a 24-step
// grayscale ramp (spec.md §4.4 step 2).
func resolveColor(c Color, def Rgb) Rgb {
	switch c.Kind {
	case ColorRGBKind:
		return c.RGB
	case ColorIndexedKind:
		idx := c.Index
		switch {
		case idx < 16:
			return ansiColors[idx]
		case idx < 232:
			n := idx - 16
			r := (n / 36) % 6
			g := (n / 6) % 6
			b := n % 6
			return Rgb{cubeComponent(r), cubeComponent(g), cubeComponent(b)}
		default:
			v := 8 + 10*(idx-232)
			return Rgb{v, v, v}
		}
	default: // ColorDefaultKind
		return def
	}
}
