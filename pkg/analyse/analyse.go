// Package analyse implements the bottom-up aggregation engine: a per-leaf
// statistic is computed for every leaf record and averaged upward through
// every ancestor, per sensor channel.
package analyse

import (
	"fmt"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// Statistic names used by the built-in leaf functions.
const (
	StatPeak = "sensor_peak"
	StatPTI  = "sensor_pti"
)

// LeafFunc reduces a leaf record to one value per sensor channel.
type LeafFunc func(*domain.Record) (domain.ChannelStat, error)

// Peak computes the per-channel maximum over the record's time window.
func Peak(r *domain.Record) (domain.ChannelStat, error) {
	channels := r.Channels()
	out := make(domain.ChannelStat, len(channels))
	for j, ch := range channels {
		max := r.At(0, j)
		for i := 1; i < r.NumSamples(); i++ {
			if v := r.At(i, j); v > max {
				max = v
			}
		}
		out[ch] = max
	}
	return out, nil
}

// PTI computes the per-channel pressure-time integral: the sum of every
// reading times the uniform sampling interval, derived from the first two
// time samples.
func PTI(r *domain.Record) (domain.ChannelStat, error) {
	dt, err := r.SampleInterval()
	if err != nil {
		return nil, err
	}
	channels := r.Channels()
	out := make(domain.ChannelStat, len(channels))
	for j, ch := range channels {
		sum := 0.0
		for i := 0; i < r.NumSamples(); i++ {
			sum += r.At(i, j)
		}
		out[ch] = sum * dt
	}
	return out, nil
}

// AverageUp computes fn for every leaf under node and averages the results
// upward through every ancestor, storing the value at each node under name.
//
// The recursion is driven purely by the leaf/branch distinction, so it works
// for trees of any depth, including restructured ones. Results are memoized
// per statistic name: a node that already carries the statistic is not
// recomputed, and statistics stored under other names are untouched.
//
// Sibling results must agree on their channel sets; a mismatch aborts the
// whole call with *domain.ChannelMismatchError rather than producing a
// partially averaged value.
func AverageUp(node *domain.Node, name string, fn LeafFunc) error {
	if _, ok := node.Computed(name); ok {
		return nil
	}

	if node.IsLeaf() {
		rec := node.Record()
		if rec == nil {
			return fmt.Errorf("leaf %v holds no record", node.Path())
		}
		stat, err := fn(rec)
		if err != nil {
			return fmt.Errorf("computing %q for leaf %v: %w", name, node.Path(), err)
		}
		node.SetComputed(name, stat)
		return nil
	}

	branches := node.Branches()
	for _, b := range branches {
		if err := AverageUp(b, name, fn); err != nil {
			return err
		}
	}

	mean, err := meanAcross(branches, name)
	if err != nil {
		return err
	}
	node.SetComputed(name, mean)
	return nil
}

// meanAcross takes the element-wise mean of the named statistic over the
// given sibling nodes. All siblings must expose the same channel set.
func meanAcross(branches []*domain.Node, name string) (domain.ChannelStat, error) {
	first, _ := branches[0].Computed(name)
	sum := make(domain.ChannelStat, len(first))
	for ch, v := range first {
		sum[ch] = v
	}

	for _, b := range branches[1:] {
		stat, _ := b.Computed(name)
		if len(stat) != len(first) {
			return nil, &domain.ChannelMismatchError{Path: b.Parent().Path(), Stat: name}
		}
		for ch, v := range stat {
			if _, ok := sum[ch]; !ok {
				return nil, &domain.ChannelMismatchError{Path: b.Parent().Path(), Stat: name}
			}
			sum[ch] += v
		}
	}

	n := float64(len(branches))
	for ch := range sum {
		sum[ch] /= n
	}
	return sum, nil
}
