package contour

import (
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1)}
}

func TestRingArea(t *testing.T) {
	tests := []struct {
		name string
		r    Ring
		want float64
		o    Orientation
	}{
		{"unit square", square(0, 0, 1, 1), 1, CounterClockwise},
		{"reversed", square(0, 0, 2, 3).Reversed(), -6, Clockwise},
		{"triangle", Ring{Pt(0, 0), Pt(4, 0), Pt(0, 2)}, 4, CounterClockwise},
		{"collinear", Ring{Pt(0, 0), Pt(1, 1), Pt(2, 2)}, 0, Degenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Area(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
			if got := tt.r.Orientation(); got != tt.o {
				t.Errorf("Orientation() = %v, want %v", got, tt.o)
			}
		})
	}
}

func TestRingContains(t *testing.T) {
	r := square(0, 0, 4, 4)
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(2, 2), true},
		{Pt(0.1, 3.9), true},
		{Pt(5, 2), false},
		{Pt(-1, -1), false},
		{Pt(2, 4.5), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
		if got := r.Reversed().Contains(tt.pt); got != tt.want {
			t.Errorf("Reversed().Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestRingBounds(t *testing.T) {
	r := Ring{Pt(1, 2), Pt(5, -1), Pt(3, 7)}
	b := r.Bounds()
	if b.X.Lo != 1 || b.X.Hi != 5 || b.Y.Lo != -1 || b.Y.Hi != 7 {
		t.Errorf("Bounds() = %v, want [1,5]x[-1,7]", b)
	}
}

func TestDedupe(t *testing.T) {
	in := []Point{Pt(0, 0), Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(1, 1), Pt(0, 0)}
	got := dedupe(in)
	want := []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("dedupe() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(in) != 6 {
		t.Error("dedupe() modified its input")
	}
}

func TestDedupeSpikes(t *testing.T) {
	a, b, c, d := Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(3, 3)
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{"spike out and back", []Point{a, b, c, d, c}, []Point{a, b, c}},
		{"spike at the start", []Point{b, a, b, c, d}, []Point{b, c, d}},
		{"spike closing the ring", []Point{c, a, b, c, d}, []Point{c, a, b}},
		{"spike across the seam", []Point{b, a, c, d, a}, []Point{a, c, d}},
		{"collapses to a point", []Point{a, b, c, b}, []Point{a}},
		{"no spike", []Point{a, b, c, d}, []Point{a, b, c, d}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupe(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("dedupe() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("dedupe()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOrientationString(t *testing.T) {
	for o, want := range map[Orientation]string{
		CounterClockwise: "ccw",
		Clockwise:        "cw",
		Degenerate:       "degenerate",
	} {
		if got := o.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", o, got, want)
		}
	}
}
