package analyse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedarprobe/pedarprobe/pkg/analyse"
	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

func record(t *testing.T, times []float64, channels []int, values [][]float64) *domain.Record {
	t.Helper()
	rec, err := domain.NewRecord(times, channels, values, times[0], times[len(times)-1]+1)
	require.NoError(t, err)
	return rec
}

func TestPeak(t *testing.T) {
	rec := record(t, []float64{0, 0.01, 0.02}, []int{1, 2}, [][]float64{
		{1, 40},
		{3, 20},
		{2, 30},
	})

	stat, err := analyse.Peak(rec)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelStat{1: 3, 2: 40}, stat)
}

func TestPTI(t *testing.T) {
	// dt = 0.01; PTI = (1+2+3) * 0.01 = 0.06
	rec := record(t, []float64{0.0, 0.01, 0.02}, []int{7}, [][]float64{{1}, {2}, {3}})

	stat, err := analyse.PTI(rec)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, stat[7], 1e-9)

	t.Run("too few samples", func(t *testing.T) {
		rec, err := domain.NewRecord([]float64{0.0}, []int{7}, [][]float64{{1}}, 0.0, 1.0)
		require.NoError(t, err)

		_, err = analyse.PTI(rec)
		var ise *domain.InsufficientSamplesError
		require.ErrorAs(t, err, &ise)
	})
}

func leaf(t *testing.T, name string, stats map[int]float64) *domain.Node {
	t.Helper()
	channels := make([]int, 0, len(stats))
	for ch := range stats {
		channels = append(channels, ch)
	}
	row := make([]float64, len(channels))
	for j, ch := range channels {
		row[j] = stats[ch]
	}
	rec, err := domain.NewRecord([]float64{0.0}, channels, [][]float64{row}, 0.0, 1.0)
	require.NoError(t, err)
	return domain.NewLeaf(name, rec)
}

func TestAverageUp(t *testing.T) {
	root := domain.NewNode("root")
	require.NoError(t, root.AddBranch(leaf(t, "A", map[int]float64{1: 10, 2: 20})))
	require.NoError(t, root.AddBranch(leaf(t, "B", map[int]float64{1: 30, 2: 40})))

	require.NoError(t, analyse.AverageUp(root, analyse.StatPeak, analyse.Peak))

	stat, ok := root.Computed(analyse.StatPeak)
	require.True(t, ok)
	assert.InDelta(t, 20.0, stat[1], 1e-9)
	assert.InDelta(t, 30.0, stat[2], 1e-9)
}

func TestAverageUp_ArbitraryDepth(t *testing.T) {
	// No hard-coded "stance is depth 5": a two-level ragged-depth layout must
	// aggregate just as well.
	root := domain.NewNode("root")
	mid := domain.NewNode("group")
	require.NoError(t, root.AddBranch(mid))
	require.NoError(t, mid.AddBranch(leaf(t, "a", map[int]float64{1: 2})))
	require.NoError(t, mid.AddBranch(leaf(t, "b", map[int]float64{1: 4})))

	require.NoError(t, analyse.AverageUp(root, analyse.StatPeak, analyse.Peak))

	stat, _ := root.Computed(analyse.StatPeak)
	assert.InDelta(t, 3.0, stat[1], 1e-9)
}

func TestAverageUp_Idempotent(t *testing.T) {
	root := domain.NewNode("root")
	require.NoError(t, root.AddBranch(leaf(t, "A", map[int]float64{1: 10})))
	require.NoError(t, root.AddBranch(leaf(t, "B", map[int]float64{1: 30})))

	require.NoError(t, analyse.AverageUp(root, analyse.StatPeak, analyse.Peak))
	first, _ := root.Computed(analyse.StatPeak)

	require.NoError(t, analyse.AverageUp(root, analyse.StatPeak, analyse.Peak))
	second, _ := root.Computed(analyse.StatPeak)
	assert.Equal(t, first, second)
}

func TestAverageUp_SeparateStatistics(t *testing.T) {
	root := domain.NewNode("root")
	require.NoError(t, root.AddBranch(domain.NewLeaf("A", record(t,
		[]float64{0, 0.01}, []int{1}, [][]float64{{1}, {3}}))))

	require.NoError(t, analyse.AverageUp(root, analyse.StatPeak, analyse.Peak))
	require.NoError(t, analyse.AverageUp(root, analyse.StatPTI, analyse.PTI))

	peak, ok := root.Computed(analyse.StatPeak)
	require.True(t, ok, "computing PTI must not invalidate the peak")
	assert.InDelta(t, 3.0, peak[1], 1e-9)

	pti, ok := root.Computed(analyse.StatPTI)
	require.True(t, ok)
	assert.InDelta(t, 0.04, pti[1], 1e-9)
}

func TestAverageUp_ChannelMismatch(t *testing.T) {
	root := domain.NewNode("root")
	require.NoError(t, root.AddBranch(leaf(t, "A", map[int]float64{1: 10, 2: 20})))
	require.NoError(t, root.AddBranch(leaf(t, "B", map[int]float64{1: 30, 3: 40})))

	err := analyse.AverageUp(root, analyse.StatPeak, analyse.Peak)
	var mismatch *domain.ChannelMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, analyse.StatPeak, mismatch.Stat)

	_, ok := root.Computed(analyse.StatPeak)
	assert.False(t, ok, "no partially averaged value may be stored")
}

func TestAverageUp_LeafError(t *testing.T) {
	root := domain.NewNode("root")
	require.NoError(t, root.AddBranch(leaf(t, "A", map[int]float64{1: 10})))

	err := analyse.AverageUp(root, analyse.StatPTI, analyse.PTI)
	var ise *domain.InsufficientSamplesError
	require.ErrorAs(t, err, &ise)
}
