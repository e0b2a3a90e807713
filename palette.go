package contour

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"

	icolor "github.com/gogpu/contour/internal/color"
)

// BlendMode selects the color space used to interpolate between stops.
type BlendMode int

const (
	// BlendHCL interpolates in CIE LCh(ab) with shortest hue path. It is
	// perceptually uniform and avoids muddy midpoints (default).
	BlendHCL BlendMode = iota
	// BlendLab interpolates in CIE L*a*b*.
	BlendLab
	// BlendLuvLCh interpolates in CIE LCh(uv).
	BlendLuvLCh
	// BlendLinearRGB interpolates gamma-correctly in linear sRGB.
	BlendLinearRGB
	// BlendRGB interpolates the sRGB components directly.
	BlendRGB
)

var blendNames = map[BlendMode]string{
	BlendHCL:       "hcl",
	BlendLab:       "lab",
	BlendLuvLCh:    "luvlch",
	BlendLinearRGB: "linear",
	BlendRGB:       "rgb",
}

// String returns the name accepted by ParseBlendMode.
func (m BlendMode) String() string {
	if s, ok := blendNames[m]; ok {
		return s
	}
	return "BlendMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseBlendMode parses a blend mode name, ignoring case.
func ParseBlendMode(s string) (BlendMode, error) {
	s = cases.Fold().String(strings.TrimSpace(s))
	for m, name := range blendNames {
		if name == s {
			return m, nil
		}
	}
	return 0, invalidf("unknown blend mode %q", s)
}

// blend interpolates two colors in the requested space. Alpha is always
// interpolated linearly.
func blend(c1, c2 RGBA, t float64, mode BlendMode) RGBA {
	alpha := c1.A + (c2.A-c1.A)*t
	switch mode {
	case BlendRGB:
		return c1.Lerp(c2, t)
	case BlendLinearRGB:
		c := icolor.LerpLinear(
			icolor.RGB{R: c1.R, G: c1.G, B: c1.B},
			icolor.RGB{R: c2.R, G: c2.G, B: c2.B}, t)
		return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
	case BlendLab:
		return fromColorful(c1.colorful().BlendLab(c2.colorful(), t), alpha)
	case BlendLuvLCh:
		return fromColorful(c1.colorful().BlendLuvLCh(c2.colorful(), t), alpha)
	default:
		return fromColorful(c1.colorful().BlendHcl(c2.colorful(), t), alpha)
	}
}

// Palette maps a normalized position in [0, 1] to a color.
type Palette interface {
	At(t float64) RGBA
}

// PaletteFunc adapts a function to the Palette interface.
type PaletteFunc func(t float64) RGBA

// At calls f(t).
func (f PaletteFunc) At(t float64) RGBA { return f(t) }

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient is a palette of discrete stops interpolated in a chosen space.
type Gradient struct {
	Stops []ColorStop
	Blend BlendMode
}

// NewGradient returns a gradient over colors spaced evenly from 0 to 1.
func NewGradient(mode BlendMode, colors ...RGBA) Gradient {
	g := Gradient{Blend: mode, Stops: make([]ColorStop, len(colors))}
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		g.Stops[i] = ColorStop{Offset: off, Color: c}
	}
	return g
}

// At returns the interpolated color at t, clamping t to [0, 1].
func (g Gradient) At(t float64) RGBA {
	return colorAtOffset(g.Stops, t, g.Blend)
}

// sortStops returns the stops ordered by offset without modifying the input.
func sortStops(stops []ColorStop) []ColorStop {
	if sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset }) {
		return stops
	}
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// colorAtOffset returns the interpolated color at a given offset.
// Handles edge cases: empty stops, single stop, out-of-bounds t.
func colorAtOffset(stops []ColorStop, t float64, mode BlendMode) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	sorted := sortStops(stops)
	t = clamp01(t)

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})
	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	stop1 := sorted[idx-1]
	stop2 := sorted[idx]
	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return blend(stop1.Color, stop2.Color, localT, mode)
}

// HueRamp sweeps the HSL hue wheel from Start over Span degrees at fixed
// saturation and lightness.
type HueRamp struct {
	Start, Span float64
	S, L        float64
}

// At returns the color at hue Start + t*Span.
func (h HueRamp) At(t float64) RGBA {
	return HSL(h.Start+clamp01(t)*h.Span, h.S, h.L)
}

// Built-in palettes.
var (
	// Viridis is the perceptually uniform matplotlib colormap. Its stops are
	// close samples of that map, so plain RGB blending between neighbours
	// already stays perceptually even.
	Viridis = Gradient{Blend: BlendRGB, Stops: hexStops(
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	)}

	// Spectrum runs blue, cyan, green, yellow, red.
	Spectrum = Gradient{Blend: BlendHCL, Stops: hexStops(
		"#0000ff", "#00ffff", "#00ff00", "#ffff00", "#ff0000",
	)}

	// Terrain runs blue through white to red with plain RGB mixing.
	Terrain = NewGradient(BlendRGB,
		FromColor(colornames.Blue),
		FromColor(colornames.Lightblue),
		FromColor(colornames.White),
		FromColor(colornames.Orange),
		FromColor(colornames.Red),
	)

	// Rainbow sweeps 80% of the hue wheel starting at red.
	Rainbow = HueRamp{Span: 0.8 * 360, S: 1, L: 0.5}
)

var namedPalettes = map[string]Palette{
	"viridis":  Viridis,
	"spectrum": Spectrum,
	"terrain":  Terrain,
	"rainbow":  Rainbow,
}

// Named returns a built-in palette by name, ignoring case.
func Named(name string) (Palette, error) {
	p, ok := namedPalettes[cases.Fold().String(strings.TrimSpace(name))]
	if !ok {
		return nil, invalidf("unknown palette %q", name)
	}
	return p, nil
}

// PaletteNames lists the built-in palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseStops builds a gradient from color specs. A spec is a hex color or a
// CSS color name, optionally followed by "@offset". Stops without an offset
// are spaced evenly over [0, 1] by position.
func ParseStops(mode BlendMode, specs ...string) (Gradient, error) {
	if len(specs) == 0 {
		return Gradient{}, invalidf("palette needs at least one color")
	}
	g := Gradient{Blend: mode, Stops: make([]ColorStop, len(specs))}
	for i, spec := range specs {
		name, off, hasOff := strings.Cut(strings.TrimSpace(spec), "@")
		c, err := parseColor(name)
		if err != nil {
			return Gradient{}, err
		}
		offset := 0.0
		if len(specs) > 1 {
			offset = float64(i) / float64(len(specs)-1)
		}
		if hasOff {
			offset, err = strconv.ParseFloat(strings.TrimSpace(off), 64)
			if err != nil {
				return Gradient{}, invalidf("bad stop offset in %q", spec)
			}
		}
		g.Stops[i] = ColorStop{Offset: offset, Color: c}
	}
	return g, nil
}

func parseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	if c, ok := colornames.Map[cases.Fold().String(s)]; ok {
		return FromColor(c), nil
	}
	return ParseHex(s)
}

func hexStops(hex ...string) []ColorStop {
	colors := make([]RGBA, len(hex))
	for i, h := range hex {
		colors[i] = Hex(h)
	}
	return NewGradient(BlendRGB, colors...).Stops
}
