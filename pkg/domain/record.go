package domain

import "fmt"

// ChannelStat maps a sensor/channel ID to a single aggregated value.
// It is the result type of every leaf statistic and of the up-averaged
// values stored on branch nodes.
type ChannelStat map[int]float64

// Record is an immutable unit of raw measurement: a time-indexed table of
// per-sensor readings sliced out of a trial recording, together with the
// stance time bounds used for the slice.
//
// Rows are time samples, columns are sensor channels. Once constructed a
// Record is never mutated; restructured trees share Records by reference.
type Record struct {
	times    []float64
	channels []int
	values   [][]float64 // values[row][col], len(values) == len(times)
	start    float64
	end      float64
}

// NewRecord validates and builds a Record. The slices are retained, not
// copied; callers hand over ownership.
func NewRecord(times []float64, channels []int, values [][]float64, start, end float64) (*Record, error) {
	if start >= end {
		return nil, fmt.Errorf("invalid time bounds: start %v >= end %v", start, end)
	}
	if len(values) != len(times) {
		return nil, fmt.Errorf("row count %d does not match time index length %d", len(values), len(times))
	}
	for i, row := range values {
		if len(row) != len(channels) {
			return nil, fmt.Errorf("row %d has %d values for %d channels", i, len(row), len(channels))
		}
	}
	return &Record{times: times, channels: channels, values: values, start: start, end: end}, nil
}

// Start returns the stance start time.
func (r *Record) Start() float64 { return r.start }

// End returns the stance end time.
func (r *Record) End() float64 { return r.end }

// NumSamples returns the number of time samples (rows).
func (r *Record) NumSamples() int { return len(r.times) }

// NumChannels returns the number of sensor channels (columns).
func (r *Record) NumChannels() int { return len(r.channels) }

// Channels returns a copy of the channel IDs in column order.
func (r *Record) Channels() []int {
	out := make([]int, len(r.channels))
	copy(out, r.channels)
	return out
}

// TimeAt returns the time value of row i.
func (r *Record) TimeAt(i int) float64 { return r.times[i] }

// At returns the reading at row i, column j.
func (r *Record) At(i, j int) float64 { return r.values[i][j] }

// SampleInterval derives the uniform sampling interval from the first two
// time samples. Records with fewer than two samples cannot support
// rate-based statistics.
func (r *Record) SampleInterval() (float64, error) {
	if len(r.times) < 2 {
		return 0, &InsufficientSamplesError{Samples: len(r.times)}
	}
	return r.times[1] - r.times[0], nil
}
