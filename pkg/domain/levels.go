package domain

import "fmt"

// RootLevel is the reserved name of depth 0 in every LevelMap.
const RootLevel = "root"

// LevelMap names every depth of a tree. Depth 0 is always "root"; deeper
// levels carry the semantic rank of the hierarchy ("subject", "condition",
// "trial", "foot", "stance" in the default pedar layout).
//
// A LevelMap belongs to the tree it describes. Restructure produces a new
// LevelMap for the new tree it builds and never mutates the source's.
type LevelMap map[string]int

// DefaultLevels is the layout of a freshly parsed pedar tree.
func DefaultLevels() LevelMap {
	return NewLevelMap("subject", "condition", "trial", "foot", "stance")
}

// NewLevelMap builds a LevelMap assigning the given names to depths 1..n.
// Depth 0 is always RootLevel.
func NewLevelMap(names ...string) LevelMap {
	m := LevelMap{RootLevel: 0}
	for i, name := range names {
		m[name] = i + 1
	}
	return m
}

// Depth returns the depth bound to the given level name.
func (m LevelMap) Depth(level string) (int, error) {
	d, ok := m[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	return d, nil
}

// MaxDepth returns the deepest level index in the map.
func (m LevelMap) MaxDepth() int {
	max := 0
	for _, d := range m {
		if d > max {
			max = d
		}
	}
	return max
}

// IsLevel reports whether node sits on the named level.
func (m LevelMap) IsLevel(n *Node, level string) bool {
	d, ok := m[level]
	return ok && n.Depth() == d
}

// LayerLayout returns the ordered level names covering [fromDepth, MaxDepth].
// Calling it with a node's depth yields the layout of the subtree below that
// node, which is the starting point for planning a restructure.
func (m LevelMap) LayerLayout(fromDepth int) []string {
	byDepth := make(map[int]string, len(m))
	for name, d := range m {
		byDepth[d] = name
	}
	var out []string
	for d := fromDepth; d <= m.MaxDepth(); d++ {
		if name, ok := byDepth[d]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Rebind returns a copy of the map in which every level at depth >= startDepth
// is discarded and the given names are bound to startDepth, startDepth+1, ...
// in order. This is how a restructure declares the schema of the tree it is
// about to build.
func (m LevelMap) Rebind(startDepth int, names []string) LevelMap {
	out := make(LevelMap, len(m))
	for name, d := range m {
		if d < startDepth {
			out[name] = d
		}
	}
	for i, name := range names {
		out[name] = startDepth + i
	}
	return out
}

// CollectLevel returns every node of the named level in the subtree rooted at
// n, in depth-first, left-to-right order.
func (m LevelMap) CollectLevel(n *Node, level string) ([]*Node, error) {
	if _, err := m.Depth(level); err != nil {
		return nil, err
	}
	var nodes []*Node
	m.collectLevel(n, level, &nodes)
	return nodes, nil
}

func (m LevelMap) collectLevel(n *Node, level string, acc *[]*Node) {
	if m.IsLevel(n, level) {
		*acc = append(*acc, n)
		return
	}
	for _, b := range n.Branches() {
		m.collectLevel(b, level, acc)
	}
}
