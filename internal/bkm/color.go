package bkm

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// String returns the canonical "#rrggbb" form.
func (c Color) String() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(s string) (Color, bool) {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return Color{}, false
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Color{}, false
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
