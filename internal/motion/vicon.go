// Package motion reads Vicon motion-capture CSV exports and prepares their
// per-gait parameter series for side-by-side comparison: gaps are dropped and
// every series can be resampled to a common point count.
//
// It is a self-contained companion to the pressure pipeline and does not
// touch the node tree.
package motion

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Block symbols of a Vicon export.
const (
	BlockJoints       = "Joints"
	BlockModelOutputs = "Model Outputs"
)

// framesPerSecond converts the event timestamps (seconds) to frame numbers.
const framesPerSecond = 100

// Gait holds one gait cycle's series: parameter -> component (RX, X, ...) ->
// sample values.
type Gait map[string]map[string][]float64

// Capture is one parsed Vicon trial.
type Capture struct {
	// Events are the (start, end) frame pairs of each gait cycle, derived
	// from consecutive Foot Strike markers.
	Events [][2]int

	Joints       []Gait
	ModelOutputs []Gait
}

// Processor post-processes one extracted series (e.g. Resample).
type Processor func([]float64) []float64

// ReadCapture parses a Vicon CSV export. proc is applied to every extracted
// series; pass nil to keep the raw values.
func ReadCapture(r io.Reader, proc Processor) (*Capture, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading vicon csv: %w", err)
	}
	if proc == nil {
		proc = func(s []float64) []float64 { return s }
	}

	c := &Capture{}
	if err := c.parseEvents(rows); err != nil {
		return nil, err
	}
	if c.Joints, err = c.parseBlock(rows, BlockJoints, proc); err != nil {
		return nil, err
	}
	if c.ModelOutputs, err = c.parseBlock(rows, BlockModelOutputs, proc); err != nil {
		return nil, err
	}
	return c, nil
}

// parseEvents pairs consecutive Foot Strike rows into gait cycles.
func (c *Capture) parseEvents(rows [][]string) error {
	var frames []int
	for _, row := range rows {
		if len(row) > 3 && row[2] == "Foot Strike" {
			sec, err := strconv.ParseFloat(row[3], 64)
			if err != nil {
				return fmt.Errorf("bad Foot Strike time %q: %w", row[3], err)
			}
			frames = append(frames, int(math.Round(sec*framesPerSecond)))
		}
	}
	for i := 0; i+1 < len(frames); i += 2 {
		c.Events = append(c.Events, [2]int{frames[i], frames[i+1]})
	}
	if len(c.Events) == 0 {
		return fmt.Errorf("no gait events found")
	}
	return nil
}

// parseBlock extracts one parameter block. The block layout is fixed by the
// Vicon export: the symbol row, then the first data row five rows below it
// carrying its frame number, parameter names three rows above the data
// (prefixed "subject:") and component names two rows above.
func (c *Capture) parseBlock(rows [][]string, symbol string, proc Processor) ([]Gait, error) {
	blockRow := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == symbol {
			blockRow = i
			break
		}
	}
	if blockRow == -1 {
		return nil, fmt.Errorf("block %q not found", symbol)
	}
	dataRow := blockRow + 5
	if dataRow >= len(rows) {
		return nil, fmt.Errorf("block %q is truncated", symbol)
	}
	frameStart, err := strconv.Atoi(rows[dataRow][0])
	if err != nil {
		return nil, fmt.Errorf("block %q: bad start frame %q", symbol, rows[dataRow][0])
	}
	params := rows[dataRow-3]
	components := rows[dataRow-2]

	gaits := make([]Gait, len(c.Events))
	for i := range gaits {
		gaits[i] = make(Gait)
	}

	param := ""
	for col := 2; col < len(params) || col < len(components); col++ {
		if col < len(params) && strings.Contains(params[col], ":") {
			param = params[col][strings.Index(params[col], ":")+1:]
			for _, g := range gaits {
				g[param] = make(map[string][]float64)
			}
		}
		if param == "" || col >= len(components) || strings.TrimSpace(components[col]) == "" {
			continue
		}
		component := strings.TrimSpace(components[col])
		for i, ev := range c.Events {
			series := extract(rows, dataRow, frameStart, ev[0], ev[1], col)
			gaits[i][param][component] = proc(series)
		}
	}
	return gaits, nil
}

// extract reads one column over a frame range. Missing or unparsable cells
// become NaN so that processors can decide how to treat gaps.
func extract(rows [][]string, dataRow, frameStart, start, end, col int) []float64 {
	var out []float64
	for frame := start; frame <= end; frame++ {
		row := dataRow + frame - frameStart
		if row < 0 || row >= len(rows) || col >= len(rows[row]) {
			out = append(out, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rows[row][col]), 64)
		if err != nil {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, v)
	}
	return out
}
