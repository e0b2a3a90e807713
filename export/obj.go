package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/contour"
)

// WriteOBJ writes every solid of every band as a Wavefront OBJ mesh. Each
// band becomes an object with its own material named band_<index>; pass the
// MTL file name in mtllib to reference it, or "" to omit the reference.
//
// Bands without solids are skipped, as are nil solids left by failed
// extrusions. A solid whose caps cannot be triangulated is logged and skipped.
func WriteOBJ(w io.Writer, bands []contour.Band, mtllib string) error {
	bw := bufio.NewWriter(w)
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}

	base := 1 // OBJ indices are 1-based and global
	for _, b := range bands {
		header := false
		for _, s := range b.Solids {
			if s == nil {
				continue
			}
			if !header {
				fmt.Fprintf(bw, "o band_%d\nusemtl %s\n", b.Index, materialName(b))
				header = true
			}
			tris, err := s.Triangles()
			if err != nil {
				contour.Logger().Warn("export: skipped solid",
					slog.Float64("threshold", b.Threshold),
					slog.Any("err", err))
				continue
			}
			for _, v := range s.Vertices {
				fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
			}
			for _, t := range tris {
				fmt.Fprintf(bw, "f %d %d %d\n", t[0]+base, t[1]+base, t[2]+base)
			}
			base += len(s.Vertices)
		}
	}
	return bw.Flush()
}

// WriteMTL writes one diffuse material per band.
func WriteMTL(w io.Writer, bands []contour.Band) error {
	bw := bufio.NewWriter(w)
	for _, b := range bands {
		c := b.Color
		fmt.Fprintf(bw, "newmtl %s\nKd %.6f %.6f %.6f\nd %.6f\n\n", materialName(b), c.R, c.G, c.B, c.A)
	}
	return bw.Flush()
}

func materialName(b contour.Band) string {
	return fmt.Sprintf("band_%d", b.Index)
}
