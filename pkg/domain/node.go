package domain

import (
	"fmt"
	"io"
	"strings"
)

// Node is a labeled node in the data tree. A node either carries branch
// nodes (keyed by name, insertion order preserved) or, as a leaf, wraps
// exactly one Record.
//
// Depth and Path are stamped by AddBranch: the root has depth 0 and
// Path == [name]; every child extends its parent by one.
type Node struct {
	name   string
	depth  int
	path   []string
	parent *Node // non-owning, lookup only

	children map[string]*Node
	order    []string // sibling names in insertion order

	record *Record

	computed map[string]ChannelStat
}

// NewNode creates a detached branch-capable node. Until it is attached with
// AddBranch it is its own root (depth 0).
func NewNode(name string) *Node {
	return &Node{
		name:     name,
		path:     []string{name},
		children: make(map[string]*Node),
		computed: make(map[string]ChannelStat),
	}
}

// NewLeaf creates a detached leaf node wrapping rec.
func NewLeaf(name string, rec *Record) *Node {
	n := NewNode(name)
	n.record = rec
	return n
}

// Name returns the node's name, unique among its siblings.
func (n *Node) Name() string { return n.name }

// Depth returns the node's distance from the root (root = 0).
func (n *Node) Depth() int { return n.depth }

// Path returns a copy of the names from the root down to this node.
func (n *Node) Path() []string {
	out := make([]string, len(n.path))
	copy(out, n.path)
	return out
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Record returns the wrapped measurement, or nil for a branch node.
func (n *Node) Record() *Record { return n.record }

// IsLeaf reports whether the node has no branches.
func (n *Node) IsLeaf() bool { return len(n.order) == 0 }

// AddBranch attaches child under n, keyed by the child's name. It stamps the
// child's depth and path and sets the back-reference to n. Attaching to a
// record-holding node or reusing a sibling name fails without mutating the
// tree.
func (n *Node) AddBranch(child *Node) error {
	if n.record != nil {
		return &RecordNodeError{Path: n.Path()}
	}
	if _, ok := n.children[child.name]; ok {
		return &DuplicateBranchError{Name: child.name, Path: n.Path()}
	}

	child.parent = n
	child.restamp(n.depth+1, n.path)

	n.children[child.name] = child
	n.order = append(n.order, child.name)
	return nil
}

// restamp rewrites depth/path for the node and its whole subtree. Needed
// because branches are built detached and may carry children of their own
// when attached.
func (n *Node) restamp(depth int, parentPath []string) {
	n.depth = depth
	n.path = append(append([]string(nil), parentPath...), n.name)
	for _, name := range n.order {
		n.children[name].restamp(depth+1, n.path)
	}
}

// Branch returns the direct child with the given name.
func (n *Node) Branch(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Branches returns the direct children in insertion order.
func (n *Node) Branches() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// BranchNames returns the direct children's names in insertion order.
func (n *Node) BranchNames() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// CollectLeaves returns every leaf under n (n itself, if it is a leaf) in
// depth-first, left-to-right order. The ordering is deterministic so that
// aggregation and restructuring are reproducible.
func (n *Node) CollectLeaves() []*Node {
	var leaves []*Node
	n.collectLeaves(&leaves)
	return leaves
}

func (n *Node) collectLeaves(acc *[]*Node) {
	if n.IsLeaf() {
		*acc = append(*acc, n)
		return
	}
	for _, name := range n.order {
		n.children[name].collectLeaves(acc)
	}
}

// CleanCopy returns a fresh node with the same name, depth and path but no
// branches, no record and no computed statistics. It is the seed node for
// restructuring.
func (n *Node) CleanCopy() *Node {
	c := NewNode(n.name)
	c.depth = n.depth
	c.path = append([]string(nil), n.path...)
	return c
}

// Computed returns the aggregated statistic stored under name, if present.
func (n *Node) Computed(name string) (ChannelStat, bool) {
	s, ok := n.computed[name]
	return s, ok
}

// SetComputed stores an aggregated statistic on the node.
func (n *Node) SetComputed(name string, stat ChannelStat) {
	n.computed[name] = stat
}

// ComputedNames returns the names of the statistics stored on the node.
func (n *Node) ComputedNames() []string {
	out := make([]string, 0, len(n.computed))
	for name := range n.computed {
		out = append(out, name)
	}
	return out
}

// WriteTree writes an indented structural dump of the subtree to w, one node
// per line. Leaves include their table shape.
func (n *Node) WriteTree(w io.Writer) {
	indent := strings.Repeat(" ", n.depth)
	if n.IsLeaf() && n.record != nil {
		fmt.Fprintf(w, "%s%s (%dx%d)\n", indent, n.name, n.record.NumSamples(), n.record.NumChannels())
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.name)
	}
	for _, name := range n.order {
		n.children[name].WriteTree(w)
	}
}
