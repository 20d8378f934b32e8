package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

func TestNewRecord_Validation(t *testing.T) {
	times := []float64{0.0, 0.01}
	channels := []int{1, 2}

	t.Run("rejects inverted bounds", func(t *testing.T) {
		_, err := domain.NewRecord(times, channels, [][]float64{{1, 2}, {3, 4}}, 2.0, 1.0)
		assert.Error(t, err)
	})

	t.Run("rejects row/time mismatch", func(t *testing.T) {
		_, err := domain.NewRecord(times, channels, [][]float64{{1, 2}}, 0.0, 1.0)
		assert.Error(t, err)
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := domain.NewRecord(times, channels, [][]float64{{1, 2}, {3}}, 0.0, 1.0)
		assert.Error(t, err)
	})
}

func TestRecord_SampleInterval(t *testing.T) {
	rec, err := domain.NewRecord([]float64{0.0, 0.01, 0.02}, []int{7}, [][]float64{{1}, {2}, {3}}, 0.0, 0.02)
	require.NoError(t, err)

	dt, err := rec.SampleInterval()
	require.NoError(t, err)
	assert.InDelta(t, 0.01, dt, 1e-12)

	t.Run("single sample cannot derive an interval", func(t *testing.T) {
		rec, err := domain.NewRecord([]float64{0.0}, []int{7}, [][]float64{{1}}, 0.0, 1.0)
		require.NoError(t, err)

		_, err = rec.SampleInterval()
		var ise *domain.InsufficientSamplesError
		require.ErrorAs(t, err, &ise)
		assert.Equal(t, 1, ise.Samples)
	})
}
