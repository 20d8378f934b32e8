package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned when a level name cannot be found in a LevelMap.
var ErrUnknownLevel = errors.New("unknown level")

// DuplicateBranchError is returned by AddBranch when the child's name collides
// with an existing sibling. The tree is left untouched.
type DuplicateBranchError struct {
	Name string   // name of the rejected child
	Path []string // path of the parent node
}

func (e *DuplicateBranchError) Error() string {
	return fmt.Sprintf("branch %q already exists under node %q", e.Name, strings.Join(e.Path, "/"))
}

// RecordNodeError is returned by AddBranch when the parent already wraps a
// Record. A node is a leaf xor a branch; it never holds both data and children.
type RecordNodeError struct {
	Path []string
}

func (e *RecordNodeError) Error() string {
	return fmt.Sprintf("node %q holds a record and cannot take branches", strings.Join(e.Path, "/"))
}

// ChannelMismatchError is returned during aggregation when sibling subtrees
// produced non-aligned sensor channel sets. Averaging across misaligned
// channels would silently corrupt results, so the whole call aborts.
type ChannelMismatchError struct {
	Path []string // node whose children disagree
	Stat string   // statistic being aggregated
}

func (e *ChannelMismatchError) Error() string {
	return fmt.Sprintf("channel sets disagree among branches of %q while aggregating %q", strings.Join(e.Path, "/"), e.Stat)
}

// InsufficientSamplesError is returned when a leaf record has too few time
// samples to derive a sampling interval (PTI needs at least two).
type InsufficientSamplesError struct {
	Samples int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("record has %d time samples, need at least 2 to derive a sampling interval", e.Samples)
}
