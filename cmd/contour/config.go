package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/contour"
)

// Config is the TOML configuration of the render command. Every field can
// also be set by a flag; flags win.
type Config struct {
	Thresholds []float64 `toml:"thresholds"`
	Range      []float64 `toml:"range"`  // start, stop, step
	Levels     int       `toml:"levels"` // evenly spaced levels inside the grid extent

	Palette     string    `toml:"palette"`
	Stops       []string  `toml:"stops"`
	Blend       string    `toml:"blend"`
	IndexColors bool      `toml:"index_colors"`
	Domain      []float64 `toml:"domain"` // min, max

	Solids     bool      `toml:"solids"`
	DepthScale float64   `toml:"depth_scale"`
	Axis       []float64 `toml:"axis"`
	Saddle     string    `toml:"saddle"`
	Scale      float64   `toml:"scale"`
	Offset     []float64 `toml:"offset"`
	Workers    int       `toml:"workers"` // 0 extracts bands one at a time

	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Opacity float64 `toml:"opacity"`
	FlipY   bool    `toml:"flip_y"`
}

func defaultConfig() Config {
	return Config{
		Palette:    "viridis",
		Blend:      "hcl",
		DepthScale: 1,
		Axis:       []float64{0, 0, 1},
		Saddle:     "average",
		Scale:      1,
		Width:      800,
		Height:     600,
	}
}

// loadConfig reads a TOML file over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// thresholds picks, in order of precedence, the explicit list, the range,
// or evenly spaced levels over the grid extent.
func (c Config) thresholds(grid *contour.Grid) (contour.Thresholds, error) {
	switch {
	case len(c.Thresholds) > 0:
		ts := contour.Thresholds(c.Thresholds)
		return ts, ts.Validate()
	case len(c.Range) > 0:
		if len(c.Range) != 3 {
			return nil, fmt.Errorf("range needs start, stop, step; got %v", c.Range)
		}
		return contour.Range(c.Range[0], c.Range[1], c.Range[2])
	default:
		n := c.Levels
		if n <= 0 {
			n = 10
		}
		lo, hi := grid.Extent()
		return contour.EvenThresholds(lo, hi, n)
	}
}

func (c Config) palette() (contour.Palette, error) {
	mode, err := contour.ParseBlendMode(c.Blend)
	if err != nil {
		return nil, err
	}
	if len(c.Stops) > 0 {
		return contour.ParseStops(mode, c.Stops...)
	}
	return contour.Named(c.Palette)
}

func (c Config) saddle() (contour.SaddlePolicy, error) {
	switch strings.ToLower(c.Saddle) {
	case "", "average":
		return contour.AverageSaddle, nil
	case "separate":
		return contour.SeparateSaddle, nil
	case "join":
		return contour.JoinSaddle, nil
	default:
		return nil, fmt.Errorf("unknown saddle policy %q", c.Saddle)
	}
}

// options converts the configuration into pipeline options.
func (c Config) options() ([]contour.Option, error) {
	p, err := c.palette()
	if err != nil {
		return nil, err
	}
	saddle, err := c.saddle()
	if err != nil {
		return nil, err
	}
	if len(c.Axis) != 3 {
		return nil, fmt.Errorf("axis needs 3 components, got %v", c.Axis)
	}

	opts := []contour.Option{
		contour.WithPalette(p),
		contour.WithSaddle(saddle),
		contour.WithIndexColors(c.IndexColors),
		contour.WithSolids(c.Solids),
		contour.WithDepthScale(c.DepthScale),
		contour.WithAxis(r3.Vec{X: c.Axis[0], Y: c.Axis[1], Z: c.Axis[2]}),
		contour.WithConcurrency(c.Workers),
	}
	if len(c.Domain) > 0 {
		if len(c.Domain) != 2 {
			return nil, fmt.Errorf("domain needs min, max; got %v", c.Domain)
		}
		opts = append(opts, contour.WithDomain(contour.Domain{Min: c.Domain[0], Max: c.Domain[1]}))
	}
	if c.Scale != 1 || len(c.Offset) > 0 {
		var off contour.Point
		if len(c.Offset) > 0 {
			if len(c.Offset) != 2 {
				return nil, fmt.Errorf("offset needs x, y; got %v", c.Offset)
			}
			off = contour.Pt(c.Offset[0], c.Offset[1])
		}
		opts = append(opts, contour.WithTransform(c.Scale, off))
	}
	return opts, nil
}

// parseFloats splits a comma separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
