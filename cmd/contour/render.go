package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"

	"github.com/gogpu/contour"
	"github.com/gogpu/contour/export"
	"github.com/gogpu/contour/raster"
)

type renderFlags struct {
	config     string
	pngOut     string
	geojsonOut string
	objOut     string
	background string
	rangeSpec  string
	cfg        Config
}

func newRenderCmd() *cobra.Command {
	return renderCommand(&renderFlags{cfg: defaultConfig()})
}

// renderCommand binds the render flags to f.
func renderCommand(f *renderFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render GRID",
		Short: "Extract iso-bands from a CSV or JSON grid and write them out",
		Example: `  contour render heights.csv --levels 8 --png out.png
  contour render heights.json --range 0,100,10 --solids --obj out.obj
  contour render heights.csv --config contour.toml --geojson bands.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML configuration file")
	fl.StringVar(&f.pngOut, "png", "", "write a PNG image to this path")
	fl.StringVar(&f.geojsonOut, "geojson", "", "write a GeoJSON FeatureCollection to this path")
	fl.StringVar(&f.objOut, "obj", "", "write extruded solids as OBJ (and a sibling .mtl) to this path")
	fl.StringVar(&f.background, "background", "", "PNG background color (hex or name)")
	fl.StringVar(&f.rangeSpec, "range", "", "thresholds as start,stop,step")

	fl.Float64SliceVarP(&f.cfg.Thresholds, "thresholds", "t", nil, "explicit thresholds, ascending")
	fl.IntVarP(&f.cfg.Levels, "levels", "n", 0, "number of evenly spaced thresholds inside the grid extent")
	fl.StringVarP(&f.cfg.Palette, "palette", "p", f.cfg.Palette, "named palette: "+strings.Join(contour.PaletteNames(), ", "))
	fl.StringSliceVar(&f.cfg.Stops, "stops", nil, "custom palette stops, color@offset")
	fl.StringVar(&f.cfg.Blend, "blend", f.cfg.Blend, "stop interpolation: hcl, lab, luvlch, linear, rgb")
	fl.BoolVar(&f.cfg.IndexColors, "index-colors", false, "color bands by index instead of threshold value")
	fl.Float64SliceVar(&f.cfg.Domain, "domain", nil, "color domain as min,max")
	fl.BoolVar(&f.cfg.Solids, "solids", false, "extrude polygons into solids")
	fl.Float64Var(&f.cfg.DepthScale, "depth-scale", f.cfg.DepthScale, "extrusion depth per threshold unit")
	fl.Float64SliceVar(&f.cfg.Axis, "axis", f.cfg.Axis, "extrusion axis as x,y,z")
	fl.StringVar(&f.cfg.Saddle, "saddle", f.cfg.Saddle, "saddle resolution: average, separate, join")
	fl.Float64Var(&f.cfg.Scale, "scale", f.cfg.Scale, "outline scale factor")
	fl.Float64SliceVar(&f.cfg.Offset, "offset", nil, "outline offset as x,y")
	fl.IntVarP(&f.cfg.Workers, "workers", "j", 0, "extract bands on this many goroutines")
	fl.IntVar(&f.cfg.Width, "width", f.cfg.Width, "PNG width in pixels")
	fl.IntVar(&f.cfg.Height, "height", f.cfg.Height, "PNG height in pixels")
	fl.Float64Var(&f.cfg.Opacity, "opacity", 0, "band opacity in (0, 1]")
	fl.BoolVar(&f.cfg.FlipY, "flip-y", false, "draw grid row 0 at the bottom of the PNG")
	return cmd
}

func runRender(cmd *cobra.Command, f *renderFlags, gridPath string) error {
	cfg, err := mergeConfig(cmd, f)
	if err != nil {
		return err
	}
	if f.pngOut == "" && f.geojsonOut == "" && f.objOut == "" {
		return errors.New("nothing to write: pass --png, --geojson or --obj")
	}
	if f.objOut != "" {
		cfg.Solids = true
	}

	grid, err := readGrid(gridPath)
	if err != nil {
		return err
	}
	thresholds, err := cfg.thresholds(grid)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	bands, err := contour.Run(grid, thresholds, opts...)
	if err != nil {
		return err
	}
	contour.Logger().Info("contoured grid",
		slog.String("grid", gridPath),
		slog.Int("thresholds", len(thresholds)),
		slog.Int("bands", len(bands)))

	if f.pngOut != "" {
		if err := writePNG(f.pngOut, bands, grid, cfg, f.background); err != nil {
			return err
		}
	}
	if f.geojsonOut != "" {
		if err := writeFile(f.geojsonOut, func(fh *os.File) error {
			return export.WriteGeoJSON(fh, bands)
		}); err != nil {
			return err
		}
	}
	if f.objOut != "" {
		mtl := strings.TrimSuffix(f.objOut, filepath.Ext(f.objOut)) + ".mtl"
		if err := writeFile(f.objOut, func(fh *os.File) error {
			return export.WriteOBJ(fh, bands, filepath.Base(mtl))
		}); err != nil {
			return err
		}
		if err := writeFile(mtl, func(fh *os.File) error {
			return export.WriteMTL(fh, bands)
		}); err != nil {
			return err
		}
	}
	return nil
}

// mergeConfig loads the config file and lays every explicitly set flag over
// it.
func mergeConfig(cmd *cobra.Command, f *renderFlags) (Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("thresholds", func() { cfg.Thresholds = f.cfg.Thresholds })
	set("levels", func() { cfg.Levels = f.cfg.Levels })
	set("palette", func() {
		cfg.Palette = f.cfg.Palette
		cfg.Stops = nil
	})
	set("stops", func() { cfg.Stops = f.cfg.Stops })
	set("blend", func() { cfg.Blend = f.cfg.Blend })
	set("index-colors", func() { cfg.IndexColors = f.cfg.IndexColors })
	set("domain", func() { cfg.Domain = f.cfg.Domain })
	set("solids", func() { cfg.Solids = f.cfg.Solids })
	set("depth-scale", func() { cfg.DepthScale = f.cfg.DepthScale })
	set("axis", func() { cfg.Axis = f.cfg.Axis })
	set("saddle", func() { cfg.Saddle = f.cfg.Saddle })
	set("scale", func() { cfg.Scale = f.cfg.Scale })
	set("offset", func() { cfg.Offset = f.cfg.Offset })
	set("workers", func() { cfg.Workers = f.cfg.Workers })
	set("width", func() { cfg.Width = f.cfg.Width })
	set("height", func() { cfg.Height = f.cfg.Height })
	set("opacity", func() { cfg.Opacity = f.cfg.Opacity })
	set("flip-y", func() { cfg.FlipY = f.cfg.FlipY })

	if fl.Changed("range") {
		r, err := parseFloats(f.rangeSpec)
		if err != nil {
			return cfg, fmt.Errorf("--range: %w", err)
		}
		cfg.Range = r
	}
	// An explicit source on the command line replaces whatever the file chose.
	switch {
	case fl.Changed("thresholds"):
		cfg.Range, cfg.Levels = nil, 0
	case fl.Changed("range"):
		cfg.Thresholds, cfg.Levels = nil, 0
	case fl.Changed("levels"):
		cfg.Thresholds, cfg.Range = nil, nil
	}
	return cfg, nil
}

func writePNG(path string, bands []contour.Band, grid *contour.Grid, cfg Config, background string) error {
	opts := raster.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		GridWidth:  grid.Width(),
		GridHeight: grid.Height(),
		FlipY:      cfg.FlipY,
		Opacity:    cfg.Opacity,
	}
	if cfg.Scale != 1 || len(cfg.Offset) > 0 {
		// Outlines are already in world units; map them 1:1.
		opts.GridWidth, opts.GridHeight = 0, 0
	}
	if background != "" {
		c, err := parseBackground(background)
		if err != nil {
			return err
		}
		opts.Background = c
	}
	img := raster.Render(bands, opts)
	return writeFile(path, func(fh *os.File) error {
		return raster.EncodePNG(fh, img)
	})
}

func parseBackground(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := contour.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("--background: %w", err)
	}
	return c.Color(), nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(fh); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	contour.Logger().Debug("wrote output", slog.String("path", path))
	return nil
}
