// Package color provides sRGB transfer functions used for gamma-correct
// color interpolation.
package color

import "math"

// RGB is a color with float64 components in [0,1].
// Components are in the color space indicated by context.
type RGB struct {
	R, G, B float64
}

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// ToLinear converts a full color from sRGB to linear space.
func ToLinear(c RGB) RGB {
	return RGB{R: SRGBToLinear(c.R), G: SRGBToLinear(c.G), B: SRGBToLinear(c.B)}
}

// ToSRGB converts a full color from linear to sRGB space.
func ToSRGB(c RGB) RGB {
	return RGB{R: LinearToSRGB(c.R), G: LinearToSRGB(c.G), B: LinearToSRGB(c.B)}
}

// LerpLinear interpolates two sRGB colors in linear space and returns the
// result in sRGB.
func LerpLinear(c1, c2 RGB, t float64) RGB {
	l1, l2 := ToLinear(c1), ToLinear(c2)
	return ToSRGB(RGB{
		R: l1.R + t*(l2.R-l1.R),
		G: l1.G + t*(l2.G-l1.G),
		B: l1.B + t*(l2.B-l1.B),
	})
}
