package motion

import "math"

// Resample returns a Processor that drops NaN gaps and linearly resamples
// the remaining values onto a fixed point count, so that gait cycles of
// different durations can be averaged and compared sample by sample.
//
// Series that keep fewer than threshold (or fewer than two) values after gap
// removal are returned cleaned but unresampled; stretching a near-empty
// series would fabricate data.
func Resample(points, threshold int) Processor {
	return func(series []float64) []float64 {
		clean := series[:0:0]
		for _, v := range series {
			if !math.IsNaN(v) {
				clean = append(clean, v)
			}
		}
		if len(clean) < threshold || len(clean) < 2 {
			return clean
		}
		return lerpResample(clean, points)
	}
}

// lerpResample maps n source samples onto points evenly spaced positions
// over [0, n-1] with piecewise-linear interpolation.
func lerpResample(src []float64, points int) []float64 {
	if points < 2 {
		return []float64{src[0]}
	}
	out := make([]float64, points)
	step := float64(len(src)-1) / float64(points-1)
	for i := range out {
		x := float64(i) * step
		lo := int(math.Floor(x))
		if lo >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		frac := x - float64(lo)
		out[i] = src[lo]*(1-frac) + src[lo+1]*frac
	}
	return out
}
