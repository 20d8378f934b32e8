package pedarprobe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedarprobe/pedarprobe"
	"github.com/pedarprobe/pedarprobe/pkg/analyse"
	"github.com/pedarprobe/pedarprobe/pkg/domain"
	"github.com/pedarprobe/pedarprobe/pkg/ports"
)

// fakeSource emits one leaf per (subject, stance value) pair with a fixed
// two-sample record.
func fakeSource(t *testing.T, stances map[string]float64) ports.Source {
	t.Helper()
	return ports.SourceFunc(func(ctx context.Context, emit func(ports.LeafRequest) error) error {
		for subject, v := range stances {
			rec, err := domain.NewRecord(
				[]float64{0.0, 0.01},
				[]int{1, 2},
				[][]float64{{v, v * 2}, {v / 2, v}},
				0.0, 0.01,
			)
			if err != nil {
				return err
			}
			req := ports.LeafRequest{
				Path:   []string{subject, "fast walking", "trial 1", "L", "stance 1"},
				Record: rec,
			}
			if err := emit(req); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestSession_LoadAndPeak(t *testing.T) {
	src := fakeSource(t, map[string]float64{"S1": 10, "S2": 30})
	session, err := pedarprobe.New(src)
	require.NoError(t, err)
	require.NoError(t, session.Load(context.Background()))

	root := session.Root()
	require.NotNil(t, root)
	assert.Len(t, root.CollectLeaves(), 2)

	require.NoError(t, session.Peak())
	stat, ok := root.Computed(analyse.StatPeak)
	require.True(t, ok)
	assert.InDelta(t, 20.0, stat[1], 1e-9) // mean of 10 and 30
	assert.InDelta(t, 40.0, stat[2], 1e-9) // mean of 20 and 60
}

func TestSession_LoadValidation(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		_, err := pedarprobe.New(nil)
		assert.Error(t, err)
	})

	t.Run("wrong path depth", func(t *testing.T) {
		src := ports.SourceFunc(func(ctx context.Context, emit func(ports.LeafRequest) error) error {
			rec, _ := domain.NewRecord([]float64{0}, []int{1}, [][]float64{{1}}, 0, 1)
			return emit(ports.LeafRequest{Path: []string{"S1", "stance 1"}, Record: rec})
		})
		session, err := pedarprobe.New(src)
		require.NoError(t, err)
		assert.Error(t, session.Load(context.Background()))
	})

	t.Run("empty source", func(t *testing.T) {
		src := ports.SourceFunc(func(ctx context.Context, emit func(ports.LeafRequest) error) error {
			return nil
		})
		session, err := pedarprobe.New(src)
		require.NoError(t, err)
		assert.Error(t, session.Load(context.Background()))
	})

	t.Run("duplicate leaf path", func(t *testing.T) {
		src := ports.SourceFunc(func(ctx context.Context, emit func(ports.LeafRequest) error) error {
			for i := 0; i < 2; i++ {
				rec, _ := domain.NewRecord([]float64{0}, []int{1}, [][]float64{{1}}, 0, 1)
				req := ports.LeafRequest{
					Path:   []string{"S1", "fast walking", "trial 1", "L", "stance 1"},
					Record: rec,
				}
				if err := emit(req); err != nil {
					return err
				}
			}
			return nil
		})
		session, err := pedarprobe.New(src)
		require.NoError(t, err)

		err = session.Load(context.Background())
		var dup *domain.DuplicateBranchError
		require.ErrorAs(t, err, &dup)
	})
}

func TestSession_CustomLevels(t *testing.T) {
	src := ports.SourceFunc(func(ctx context.Context, emit func(ports.LeafRequest) error) error {
		rec, _ := domain.NewRecord([]float64{0}, []int{1}, [][]float64{{1}}, 0, 1)
		return emit(ports.LeafRequest{Path: []string{"S1", "g1"}, Record: rec})
	})
	session, err := pedarprobe.New(src, pedarprobe.WithLevels(domain.NewLevelMap("subject", "gait")))
	require.NoError(t, err)
	require.NoError(t, session.Load(context.Background()))
	assert.Len(t, session.Root().CollectLeaves(), 1)
}

func TestSession_Restructure(t *testing.T) {
	src := fakeSource(t, map[string]float64{"S1": 10, "S2": 30})
	session, err := pedarprobe.New(src)
	require.NoError(t, err)
	require.NoError(t, session.Load(context.Background()))
	require.NoError(t, session.Peak())

	byCondition, err := session.Restructure([]string{"root", "condition", "compress"})
	require.NoError(t, err)

	// Same leaf data under the new grouping, no stats carried over.
	assert.Len(t, byCondition.Root().CollectLeaves(), 2)
	_, ok := byCondition.Root().Computed(analyse.StatPeak)
	assert.False(t, ok)

	// The restructured view aggregates independently.
	require.NoError(t, byCondition.Peak())
	stat, ok := byCondition.Root().Computed(analyse.StatPeak)
	require.True(t, ok)
	assert.InDelta(t, 20.0, stat[1], 1e-9)

	t.Run("before load", func(t *testing.T) {
		fresh, err := pedarprobe.New(fakeSource(t, map[string]float64{"S1": 1}))
		require.NoError(t, err)
		_, err = fresh.Restructure([]string{"root", "condition", "compress"})
		assert.Error(t, err)
	})

	t.Run("unknown layout level", func(t *testing.T) {
		_, err := session.Restructure([]string{"root", "gait", "compress"})
		assert.ErrorIs(t, err, domain.ErrUnknownLevel)
	})
}
