package preview

import (
	"image/color"
	"strconv"

	"github.com/pkg/errors"
)

// Palette assigns distinct colors to bodies, wrapping when there are more
// bodies than entries.
var Palette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

var paletteRGBA = mustParsePalette(Palette)

// BodyColor returns the palette color for body i.
func BodyColor(i int) color.NRGBA {
	return paletteRGBA[i%len(paletteRGBA)]
}

// ParseHex parses a "#RRGGBB" color.
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, errors.Errorf("preview: bad color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "preview: bad color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func mustParsePalette(hex []string) []color.NRGBA {
	out := make([]color.NRGBA, len(hex))
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
