package domain

import (
	"fmt"
	"strings"
)

// compressJoin separates the original path segments that get folded into a
// composite leaf name during restructuring.
const compressJoin = " - "

// Restructure rebuilds the tree under root according to a new level layout
// and returns the new root together with the LevelMap describing it.
//
// The layout starts with root's own level and ends with the terminal grouping
// that names the new leaf level. Intermediate entries must name levels of the
// source tree below root; every source level not named by the layout is
// compressed: its path segments are joined, in original depth order, into the
// name of the new leaf.
//
// The operation is read-only over the source tree and all-or-nothing: layout
// faults are reported before any building starts, and a collision while
// building discards the partial tree. Leaf Records are shared by reference
// (they are immutable); computed statistics are never carried over, since a
// different grouping invalidates them.
func Restructure(root *Node, levels LevelMap, layout []string) (*Node, LevelMap, error) {
	if err := checkLayout(root, levels, layout); err != nil {
		return nil, nil, err
	}

	leaves := root.CollectLeaves()
	newRoot := root.CleanCopy()
	newLevels := levels.Rebind(root.Depth(), layout)

	for _, leaf := range leaves {
		if err := placeLeaf(newRoot, leaf, levels, layout); err != nil {
			return nil, nil, err
		}
	}
	return newRoot, newLevels, nil
}

func checkLayout(root *Node, levels LevelMap, layout []string) error {
	if len(layout) < 2 {
		return fmt.Errorf("layout needs at least the node's own level and a terminal grouping, got %d entries", len(layout))
	}
	ownDepth, err := levels.Depth(layout[0])
	if err != nil {
		return err
	}
	if ownDepth != root.Depth() {
		return fmt.Errorf("layout starts at level %q (depth %d) but the node sits at depth %d", layout[0], ownDepth, root.Depth())
	}

	seen := map[string]bool{layout[0]: true}
	for _, level := range layout[1 : len(layout)-1] {
		if seen[level] {
			return fmt.Errorf("level %q appears twice in layout", level)
		}
		seen[level] = true

		d, err := levels.Depth(level)
		if err != nil {
			return err
		}
		if d <= root.Depth() {
			return fmt.Errorf("level %q (depth %d) is not below the node being restructured (depth %d)", level, d, root.Depth())
		}
	}
	if terminal := layout[len(layout)-1]; seen[terminal] {
		return fmt.Errorf("terminal grouping %q collides with an earlier layout entry", terminal)
	}
	return nil
}

// placeLeaf walks one source leaf into the tree under construction: it
// creates or reuses an intermediate branch for every layout level, then
// attaches a new leaf named by the compressed leftover path segments,
// sharing the source leaf's Record.
func placeLeaf(newRoot *Node, leaf *Node, levels LevelMap, layout []string) error {
	path := leaf.Path()
	used := make([]bool, len(path))
	for i := 0; i <= newRoot.Depth() && i < len(path); i++ {
		used[i] = true
	}

	current := newRoot
	for _, level := range layout[1 : len(layout)-1] {
		idx, _ := levels.Depth(level) // validated by checkLayout
		if idx >= len(path) {
			return fmt.Errorf("leaf %q is too shallow for level %q (depth %d)", strings.Join(path, "/"), level, idx)
		}
		name := path[idx]
		used[idx] = true

		branch, ok := current.Branch(name)
		if !ok {
			branch = NewNode(name)
			if err := current.AddBranch(branch); err != nil {
				return err
			}
		}
		current = branch
	}

	var leftover []string
	for i, name := range path {
		if !used[i] {
			leftover = append(leftover, name)
		}
	}
	return current.AddBranch(NewLeaf(strings.Join(leftover, compressJoin), leaf.Record()))
}
