// Package raster fills contour bands into images.
//
// Outlines are scan converted with golang.org/x/image/vector, which
// accumulates signed coverage. Holes run opposite to their outer ring, so
// they cancel out and stay transparent without an explicit fill rule.
//
// Usage:
//
//	bands, _ := contour.Run(grid, thresholds)
//	img := raster.Render(bands, raster.Options{Width: 800, Height: 600, GridWidth: 100, GridHeight: 100})
//	_ = raster.EncodePNG(f, img)
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"

	"golang.org/x/image/vector"

	"github.com/gogpu/contour"
)

// Options controls how bands are mapped onto the image.
type Options struct {
	// Width and Height are the image size in pixels.
	Width, Height int

	// GridWidth and GridHeight are the dimensions of the sampled grid. The
	// grid span [0, GridWidth-1] x [0, GridHeight-1] is stretched over the
	// image. Zero values leave outline coordinates unscaled.
	GridWidth, GridHeight int

	// FlipY draws row 0 at the bottom of the image, as a y-up chart does.
	FlipY bool

	// Opacity multiplies every band color's alpha. Zero means opaque.
	Opacity float64

	// Background fills the image before bands are drawn. Nil leaves it
	// transparent.
	Background color.Color
}

// Render allocates an image and draws the bands into it.
func Render(bands []contour.Band, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	Draw(img, bands, opts)
	return img
}

// Draw composites the bands over dst in order, so later (higher) bands cover
// earlier ones.
func Draw(dst draw.Image, bands []contour.Band, opts Options) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	m := newMapping(b, opts)

	for _, band := range bands {
		z.Reset(b.Dx(), b.Dy())
		z.DrawOp = draw.Over
		p := &pather{z: z, m: m}
		for _, o := range band.Outlines {
			o.AppendPath(p)
		}

		c := band.Color
		if opts.Opacity > 0 {
			c.A *= opts.Opacity
		}
		z.Draw(dst, b, image.NewUniform(c.Color()), image.Point{})
		contour.Logger().Debug("raster: band drawn",
			slog.Float64("threshold", band.Threshold),
			slog.Int("outlines", len(band.Outlines)))
	}
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// mapping converts grid coordinates into rasterizer coordinates.
type mapping struct {
	sx, sy float64
	h      float64
	flipY  bool
}

func newMapping(b image.Rectangle, opts Options) mapping {
	m := mapping{sx: 1, sy: 1, h: float64(b.Dy()), flipY: opts.FlipY}
	if opts.GridWidth > 1 {
		m.sx = float64(b.Dx()) / float64(opts.GridWidth-1)
	}
	if opts.GridHeight > 1 {
		m.sy = float64(b.Dy()) / float64(opts.GridHeight-1)
	}
	return m
}

func (m mapping) apply(x, y float64) (float32, float32) {
	px, py := x*m.sx, y*m.sy
	if m.flipY {
		py = m.h - py
	}
	return float32(px), float32(py)
}

// pather adapts a vector.Rasterizer to contour.Pather.
type pather struct {
	z *vector.Rasterizer
	m mapping
}

func (p *pather) MoveTo(x, y float64) {
	p.z.MoveTo(p.m.apply(x, y))
}

func (p *pather) LineTo(x, y float64) {
	p.z.LineTo(p.m.apply(x, y))
}

func (p *pather) ClosePath() {
	p.z.ClosePath()
}
