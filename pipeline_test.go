package contour

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// signedPeak is peakGrid shifted so that it spans [-5, 5].
func signedPeak(t *testing.T) *Grid {
	return mustGrid(t, 4, 4,
		-5, -5, -5, -5,
		-5, 5, 5, -5,
		-5, 5, 5, -5,
		-5, -5, -5, -5,
	)
}

func TestRunFlat(t *testing.T) {
	bands, err := Run(peakGrid(t), Thresholds{2, 5, 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) != 3 {
		t.Fatalf("got %d bands, want 3", len(bands))
	}
	for i, b := range bands {
		if b.Index != i {
			t.Errorf("band %d has Index %d", i, b.Index)
		}
		if len(b.Polygons) != 1 || len(b.Outlines) != 1 {
			t.Errorf("band %d: %d polygons, %d outlines, want 1 each", i, len(b.Polygons), len(b.Outlines))
		}
		if b.Solids != nil {
			t.Errorf("band %d has solids without WithSolids", i)
		}
	}
	// Higher thresholds enclose less.
	if !(bands[0].Outlines[0].Area() > bands[1].Outlines[0].Area() &&
		bands[1].Outlines[0].Area() > bands[2].Outlines[0].Area()) {
		t.Error("band areas do not shrink with the threshold")
	}
	// The default domain spans the thresholds.
	if got, want := bands[0].Color, Viridis.At(0); got != want {
		t.Errorf("first band color = %v, want %v", got, want)
	}
	if got, want := bands[2].Color, Viridis.At(1); got != want {
		t.Errorf("last band color = %v, want %v", got, want)
	}
}

func TestRunColoring(t *testing.T) {
	g := peakGrid(t)
	ts := Thresholds{2, 5, 8}
	tests := []struct {
		name string
		opts []Option
		want func(i int) RGBA
	}{
		{
			name: "index",
			opts: []Option{WithIndexColors(true), WithPalette(Spectrum)},
			want: func(i int) RGBA { return Spectrum.At(float64(i) / 3) },
		},
		{
			name: "domain",
			opts: []Option{WithDomain(Domain{Min: 0, Max: 10}), WithPalette(Terrain)},
			want: func(i int) RGBA { return Terrain.At(ts[i] / 10) },
		},
		{
			name: "nil palette keeps default",
			opts: []Option{WithPalette(nil)},
			want: func(i int) RGBA { return Viridis.At(float64(i) / 2) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands, err := Run(g, ts, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			for _, b := range bands {
				if want := tt.want(b.Index); !near(b.Color, want, 1e-12) {
					t.Errorf("band %d color = %v, want %v", b.Index, b.Color, want)
				}
			}
		})
	}
}

func TestRunSolids(t *testing.T) {
	bands, err := Run(peakGrid(t), Thresholds{2, 5},
		WithSolids(true),
		WithDepthScale(0.5),
		WithAxis(r3.Vec{Z: -2}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bands {
		if len(b.Solids) != len(b.Outlines) {
			t.Fatalf("band %d: %d solids for %d outlines", b.Index, len(b.Solids), len(b.Outlines))
		}
		for _, s := range b.Solids {
			if want := b.Threshold * 0.5; s.Depth() != want {
				t.Errorf("band %d depth = %v, want %v", b.Index, s.Depth(), want)
			}
			if s.Axis() != (r3.Vec{Z: -1}) {
				t.Errorf("band %d axis = %v", b.Index, s.Axis())
			}
		}
	}
}

func TestRunKeepsOutlineWithoutSolid(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	// Threshold 0 extrudes to zero depth.
	bands, err := Run(signedPeak(t), Thresholds{0, 2}, WithSolids(true))
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) != 2 {
		t.Fatalf("got %d bands, want 2", len(bands))
	}
	flat := bands[0]
	if flat.Index != 0 || len(flat.Outlines) == 0 {
		t.Fatalf("band 0 lost its outlines: %+v", flat)
	}
	if len(flat.Solids) != len(flat.Outlines) {
		t.Fatalf("band 0: %d solids for %d outlines", len(flat.Solids), len(flat.Outlines))
	}
	for i, s := range flat.Solids {
		if s != nil {
			t.Errorf("band 0 outline %d was extruded to zero depth", i)
		}
	}
	for i, s := range bands[1].Solids {
		if s == nil {
			t.Errorf("band 1 outline %d was not extruded", i)
		}
	}
	if !strings.Contains(buf.String(), "skipped degenerate geometry") {
		t.Errorf("skip was not logged: %s", buf.String())
	}
}

func TestRunOmitsEmptyBands(t *testing.T) {
	bands, err := Run(peakGrid(t), Thresholds{5, 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) != 1 || bands[0].Threshold != 5 {
		t.Errorf("Run() = %d bands, want only the band at 5", len(bands))
	}
}

func TestRunTransform(t *testing.T) {
	bands, err := Run(peakGrid(t), Thresholds{5}, WithTransform(2, Pt(10, 0)))
	if err != nil {
		t.Fatal(err)
	}
	o := bands[0].Outlines[0]
	for _, p := range o.Outer {
		if p.X < 11 || p.X > 15 || p.Y < 1 || p.Y > 5 {
			t.Errorf("point %v outside the transformed range", p)
		}
	}
	if got := o.Area(); math.Abs(got-14) > 1e-9 {
		t.Errorf("Area() = %v, want 14", got)
	}
	// Polygons stay in grid space.
	if got := bands[0].Polygons[0].Area(); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("polygon area = %v, want 3.5", got)
	}
}

func TestRunConcurrency(t *testing.T) {
	g := wavyGrid(t)
	ts := Thresholds{-0.6, -0.2, 0.2, 0.6}
	seq, err := Run(g, ts, WithSolids(true))
	if err != nil {
		t.Fatal(err)
	}
	conc, err := Run(g, ts, WithSolids(true), WithConcurrency(4))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq, conc) {
		t.Error("concurrent Run() differs from the sequential result")
	}
}

func TestRunInvalid(t *testing.T) {
	if _, err := Run(nil, Thresholds{1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Run(nil grid) error = %v", err)
	}
	bands, err := Run(peakGrid(t), Thresholds{3, 3})
	if !errors.Is(err, ErrInvalidInput) || bands != nil {
		t.Errorf("Run(duplicate thresholds) = %v, %v", bands, err)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.axis != ZAxis || o.depthScale != 1 || o.scale != 1 || o.solids || o.indexColors {
		t.Errorf("defaultOptions() = %+v", o)
	}
	if o.domain != nil {
		t.Error("default domain should follow the thresholds")
	}
	WithSaddle(nil)(&o)
	if o.saddle == nil {
		t.Error("WithSaddle(nil) cleared the saddle policy")
	}
}

func TestDomain(t *testing.T) {
	d := Domain{Min: 0, Max: 10}
	tests := []struct {
		v, want float64
	}{
		{5, 0.5},
		{-5, 0},
		{0, 0},
		{15, 1},
	}
	for _, tt := range tests {
		if got := d.Normalize(tt.v); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if got := (Domain{Min: 3, Max: 3}).Normalize(7); got != 0 {
		t.Errorf("empty domain Normalize() = %v, want 0", got)
	}
}

func TestColorOf(t *testing.T) {
	p, err := ParseStops(BlendHCL, "blue@0", "red@1")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ColorOf(0.5, Domain{Min: 0, Max: 1}, p), p.At(0.5); got != want {
		t.Errorf("ColorOf(0.5) = %v, want palette midpoint %v", got, want)
	}
	d := Domain{Min: 0, Max: 10}
	if got, want := ColorOf(-5, d, p), ColorOf(0, d, p); got != want {
		t.Errorf("ColorOf(-5) = %v, want clamped %v", got, want)
	}
	if got, want := ColorOf(50, d, p), ColorOf(10, d, p); got != want {
		t.Errorf("ColorOf(50) = %v, want clamped %v", got, want)
	}
}

func TestColorOfIndex(t *testing.T) {
	p := NewGradient(BlendRGB, RGB(0, 0, 0), RGB(1, 1, 1))
	if got := ColorOfIndex(1, 4, p); !near(got, RGB(0.25, 0.25, 0.25), 1e-12) {
		t.Errorf("ColorOfIndex(1, 4) = %v", got)
	}
	if got := ColorOfIndex(3, 0, p); got != p.At(0) {
		t.Errorf("ColorOfIndex(3, 0) = %v, want At(0)", got)
	}
}
