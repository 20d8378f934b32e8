// Package parse is the pedar parsing collaborator: it reads the guiding
// spreadsheet and the per-trial .asc exports and emits finished
// leaf-construction requests. The core tree never sees file paths or raw
// text.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// ascColumns is the column count of a pedar .asc data row: one time column
// followed by 99 left-foot and 99 right-foot sensor readings.
const ascColumns = 199

// Foot identifiers as they appear in the guiding spreadsheet.
const (
	FootLeft  = "L"
	FootRight = "R"
)

// ASC holds one parsed pedar .asc trial export: a time column and 198 sensor
// columns. Sensor IDs follow the pedarprobe convention: 0-98 for the left
// foot, 99-197 for the right.
type ASC struct {
	times  []float64
	values [][]float64 // one row per time sample, 198 sensor readings
}

// ReadASC parses a pedar .asc export. The textual preamble is skipped by
// shape: a data row is a tab-separated line of 199 numeric fields starting
// with the time value.
func ReadASC(r io.Reader) (*ASC, error) {
	a := &ASC{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(fields) != ascColumns {
			if len(a.times) > 0 {
				break // trailing non-data content ends the table
			}
			continue // still in the preamble
		}
		time, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			if len(a.times) > 0 {
				break
			}
			continue
		}

		row := make([]float64, ascColumns-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("sample at t=%v: bad sensor value %q: %w", time, f, err)
			}
			row[i] = v
		}
		a.times = append(a.times, time)
		a.values = append(a.values, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(a.times) == 0 {
		return nil, fmt.Errorf("no data rows found (expected %d tab-separated columns)", ascColumns)
	}
	return a, nil
}

// NumSamples returns the number of time samples in the export.
func (a *ASC) NumSamples() int { return len(a.times) }

// footRange returns the sensor ID range [lo, hi] for a foot.
// Pedar numbers each foot's sensors 1-99; pedarprobe maps the left foot to
// IDs 0-98 and the right foot to 99-197.
func footRange(foot string) (lo, hi int, err error) {
	switch strings.ToUpper(strings.TrimSpace(foot)) {
	case FootLeft:
		return 0, 98, nil
	case FootRight:
		return 99, 197, nil
	default:
		return 0, 0, fmt.Errorf("invalid foot type %q", foot)
	}
}

// Slice cuts the [start, end] stance window (bounds inclusive) for one foot
// out of the trial and wraps it as an immutable Record.
func (a *ASC) Slice(foot string, start, end float64) (*domain.Record, error) {
	lo, hi, err := footRange(foot)
	if err != nil {
		return nil, err
	}

	channels := make([]int, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		channels = append(channels, id)
	}

	var times []float64
	var values [][]float64
	for i, t := range a.times {
		if t < start || t > end {
			continue
		}
		times = append(times, t)
		values = append(values, a.values[i][lo:hi+1])
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("stance window [%v, %v] selects no samples", start, end)
	}
	return domain.NewRecord(times, channels, values, start, end)
}
