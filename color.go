package contour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a non-premultiplied color with float64 channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color returns c as a color.Color.
func (c RGBA) Color() color.Color {
	return c.NRGBA()
}

// NRGBA converts RGBA to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Hex returns the color as "#rrggbb", dropping alpha.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// FromColor converts any color.Color, un-premultiplying alpha.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB returns an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". The leading
// '#' is optional.
func ParseHex(s string) (RGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 4:
		var b strings.Builder
		for i := range len(digits) {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		digits = b.String()
	case 6, 8:
	default:
		return RGBA{}, invalidf("bad hex color %q", s)
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGBA{}, invalidf("bad hex color %q", s)
	}
	return FromColor(color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
}

// Hex is ParseHex for literals: unparsable input gives opaque black.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return RGBA{A: 1}
	}
	return c
}

// Lerp performs component-wise linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// colorful converts to go-colorful's representation, dropping alpha.
func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// fromColorful converts back, clamping out-of-gamut results.
func fromColorful(c colorful.Color, alpha float64) RGBA {
	c = c.Clamped()
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// HSL creates a color from hue in degrees (any value, wrapped into
// [0, 360)), saturation and lightness in [0, 1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsl(h, s, l), 1)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
