// Package bvh is a bounding volume hierarchy over axis aligned boxes, answering
// "which boxes contain this point". The mesh stores one box per triangle (the
// bounding box of its circumcircle), so a point query returns a small superset
// of the triangles whose circumcircle contains the point, including the one
// containing the point itself.
//
// The tree is a region quadtree: leaves hold up to leafSize entries and split
// into four quadrants when they overflow. An entry overlapping several
// quadrants is stored in each of them, except when it covers a node entirely:
// then it stays on that node, so huge boxes are never replicated downwards.
package bvh

import (
	"github.com/golang/geo/r2"
)

const (
	leafSize = 128
	maxDepth = 16
	// Leaves smaller than this fraction of the root are never split, which
	// bounds the replication of entries that overlap everything.
	minAreaFraction = 1e-8
)

type entry struct {
	id   int
	rect r2.Rect
}

type node struct {
	rect     r2.Rect
	depth    int
	entries  []entry
	children []*node
}

type Tree struct {
	root    *node
	minArea float64
	// Entries that do not overlap the root at all. They are rare (the mesh's
	// bounds always cover its triangles) but must not be lost.
	outside []entry
	count   int
}

func New(bounds r2.Rect) *Tree {
	return &Tree{
		root:    &node{rect: bounds, entries: make([]entry, 0, leafSize)},
		minArea: area(bounds) * minAreaFraction,
	}
}

func (t *Tree) Len() int {
	return t.count
}

func (t *Tree) Depth() int {
	return t.root.height()
}

func (t *Tree) Insert(id int, rect r2.Rect) {
	t.count++
	if !t.root.rect.Intersects(rect) {
		t.outside = append(t.outside, entry{id, rect})
		return
	}
	t.root.insert(entry{id, rect}, t.minArea)
}

// Remove deletes the entry with the given id. The rect must be the one the
// entry was inserted with; it is used to find the leaves holding it.
func (t *Tree) Remove(id int, rect r2.Rect) {
	t.count--
	if !t.root.rect.Intersects(rect) {
		t.outside = removeEntry(t.outside, id)
		return
	}
	t.root.remove(id, rect)
}

// Enclosing calls visit once for every entry whose box contains p, until visit
// returns false.
func (t *Tree) Enclosing(p r2.Point, visit func(id int) bool) {
	seen := make(map[int]struct{})
	emit := func(e entry) bool {
		if !e.rect.ContainsPoint(p) {
			return true
		}
		if _, ok := seen[e.id]; ok {
			return true
		}
		seen[e.id] = struct{}{}
		return visit(e.id)
	}

	for _, e := range t.outside {
		if !emit(e) {
			return
		}
	}

	// Entries reaching outside the root can contain points outside of it, and
	// those have to be looked for everywhere.
	everywhere := !t.root.rect.ContainsPoint(p)
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !everywhere && !n.rect.ContainsPoint(p) {
			continue
		}
		for _, e := range n.entries {
			if !emit(e) {
				return
			}
		}
		stack = append(stack, n.children...)
	}
}

func (n *node) insert(e entry, minArea float64) {
	if n.children != nil && !e.rect.Contains(n.rect) {
		for _, child := range n.children {
			if child.rect.Intersects(e.rect) {
				child.insert(e, minArea)
			}
		}
		return
	}

	n.entries = append(n.entries, e)
	if n.children != nil {
		return
	}
	if len(n.entries) > leafSize && n.depth < maxDepth && area(n.rect) > minArea {
		n.split(minArea)
	}
}

func (n *node) split(minArea float64) {
	lo, hi, c := n.rect.Lo(), n.rect.Hi(), n.rect.Center()
	quadrants := []r2.Rect{
		r2.RectFromPoints(lo, c),
		r2.RectFromPoints(r2.Point{X: c.X, Y: lo.Y}, r2.Point{X: hi.X, Y: c.Y}),
		r2.RectFromPoints(r2.Point{X: lo.X, Y: c.Y}, r2.Point{X: c.X, Y: hi.Y}),
		r2.RectFromPoints(c, hi),
	}

	n.children = make([]*node, len(quadrants))
	for i, q := range quadrants {
		n.children[i] = &node{rect: q, depth: n.depth + 1, entries: make([]entry, 0, leafSize)}
	}

	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		n.insert(e, minArea)
	}
}

func (n *node) remove(id int, rect r2.Rect) {
	if n.children == nil || rect.Contains(n.rect) {
		n.entries = removeEntry(n.entries, id)
		return
	}
	for _, child := range n.children {
		if child.rect.Intersects(rect) {
			child.remove(id, rect)
		}
	}
}

func (n *node) height() int {
	if n.children == nil {
		return 1
	}
	max := 0
	for _, child := range n.children {
		if h := child.height(); h > max {
			max = h
		}
	}
	return max + 1
}

func removeEntry(entries []entry, id int) []entry {
	for i, e := range entries {
		if e.id == id {
			last := len(entries) - 1
			entries[i] = entries[last]
			return entries[:last]
		}
	}
	return entries
}

func area(r r2.Rect) float64 {
	size := r.Size()
	return size.X * size.Y
}
