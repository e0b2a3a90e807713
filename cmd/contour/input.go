package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/contour"
)

// jsonGrid is the JSON grid format: row-major values with explicit size.
type jsonGrid struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"`
}

// readGrid loads a grid from a .json or .csv file. CSV rows are grid rows;
// every row must have the same number of fields.
func readGrid(path string) (*contour.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSONGrid(f)
	case ".csv", ".txt", "":
		return decodeCSVGrid(f)
	default:
		return nil, fmt.Errorf("unsupported grid format %q", filepath.Ext(path))
	}
}

func decodeJSONGrid(r io.Reader) (*contour.Grid, error) {
	var g jsonGrid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	return contour.NewGrid(g.Width, g.Height, g.Values)
}

func decodeCSVGrid(r io.Reader) (*contour.Grid, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read grid: no rows")
	}
	w := len(records[0])
	values := make([]float64, 0, w*len(records))
	for y, row := range records {
		for x, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("read grid: row %d column %d: %w", y+1, x+1, err)
			}
			values = append(values, v)
		}
	}
	return contour.NewGrid(w, len(records), values)
}
