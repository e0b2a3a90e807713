package contour

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	p := Polygon{
		Threshold: 1,
		Outer:     Ring{Pt(0, 0), Pt(4, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)},
		Holes: []Ring{
			square(1, 1, 2, 2).Reversed(),
			{Pt(3, 3), Pt(3, 3), Pt(3.5, 3.5)},
		},
	}
	o, err := Build(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Outer) != 4 {
		t.Errorf("outer has %d points, want 4 after dedupe", len(o.Outer))
	}
	if len(o.Holes) != 1 {
		t.Errorf("got %d holes, want 1 (degenerate hole dropped)", len(o.Holes))
	}
	if ringArea(o.Outer) <= 0 || ringArea(o.Holes[0]) >= 0 {
		t.Error("Build() changed ring orientation")
	}
	if got := o.Area(); got != 15 {
		t.Errorf("Area() = %v, want 15", got)
	}
	if got := o.Len(); got != 8 {
		t.Errorf("Len() = %d, want 8", got)
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		outer Ring
	}{
		{"empty", nil},
		{"two points", Ring{Pt(0, 0), Pt(1, 1)}},
		{"repeated", Ring{Pt(0, 0), Pt(1, 1), Pt(1, 1), Pt(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Polygon{Outer: tt.outer})
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("Build() error = %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}

// recorder captures path commands as text.
type recorder struct {
	strings.Builder
}

func (r *recorder) MoveTo(x, y float64) { fmt.Fprintf(r, "M%g,%g ", x, y) }
func (r *recorder) LineTo(x, y float64) { fmt.Fprintf(r, "L%g,%g ", x, y) }
func (r *recorder) ClosePath()          { r.WriteString("Z ") }

func TestOutlineAppendPath(t *testing.T) {
	o := Outline{
		Outer: []Point{Pt(0, 0), Pt(2, 0), Pt(2, 2)},
		Holes: [][]Point{{Pt(1, 0.5), Pt(1.5, 1), Pt(1.5, 0.5)}},
	}
	var r recorder
	o.AppendPath(&r)
	want := "M0,0 L2,0 L2,2 Z M1,0.5 L1.5,1 L1.5,0.5 Z "
	if got := r.String(); got != want {
		t.Errorf("AppendPath() = %q, want %q", got, want)
	}
}

func TestOutlineTransform(t *testing.T) {
	o := Outline{
		Outer: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)},
		Holes: [][]Point{{Pt(0.25, 0.25), Pt(0.25, 0.75), Pt(0.75, 0.75)}},
	}
	got := o.Transform(2, Pt(10, -1))
	if got.Outer[2] != Pt(12, 1) {
		t.Errorf("Outer[2] = %v, want (12, 1)", got.Outer[2])
	}
	if got.Holes[0][1] != Pt(10.5, 0.5) {
		t.Errorf("Holes[0][1] = %v, want (10.5, 0.5)", got.Holes[0][1])
	}
	if math.Abs(got.Area()-4*o.Area()) > 1e-12 {
		t.Errorf("Area() = %v, want %v", got.Area(), 4*o.Area())
	}
	if o.Outer[2] != Pt(1, 1) {
		t.Error("Transform() modified the receiver")
	}
}
