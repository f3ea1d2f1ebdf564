package advanced

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/delaunay/internal/bvh"
)

// Mesh is an incremental Delaunay triangulation. It starts out as a single
// super-triangle enclosing the configured bounds, and every insertion keeps it
// a valid Delaunay triangulation of the super-triangle vertices plus every
// point inserted so far. The super-triangle vertices count as infinitely far
// away (see symbolic.go), so the real triangles always triangulate the convex
// hull of the real vertices. Finalize strips the synthetic triangles off.
//
// A Mesh is not safe for concurrent use.
type Mesh struct {
	options Options
	pred    Predicates
	log     *zap.Logger

	bounds r2.Rect
	super  [3]Point
	center Point

	vertices []Vertex
	// Bounding box of the real vertices.
	extent r2.Rect

	triangles arena
	// Every edge of a live triangle maps to the (at most two) triangles using
	// it. Together with the arena this is the whole topology of the mesh.
	edges map[Edge]edgeSlots
	// Circumcircle boxes of the real triangles, when enabled.
	index *bvh.Tree
	// The synthetic triangles. They wrap around the hull, and have no
	// circumcircle worth indexing.
	outer map[TriangleID]struct{}

	// Incremental collinearity check. The first vertex and the first one
	// distinct from it define a line; spanned is set once a vertex leaves it.
	lineEnd VertexID
	spanned bool

	finalized bool
	result    *Triangulation
	resultErr error
}

type edgeSlots [2]TriangleID

// NewMesh creates an empty mesh able to hold points inside bounds.
func NewMesh(bounds r2.Rect, opts ...Option) (*Mesh, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Predicates == nil {
		return nil, errors.Wrap(ErrConfiguration, "no predicates")
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	super, err := SuperTriangle(bounds, options.SuperTriangleScale, options.Predicates)
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		options:   options,
		pred:      options.Predicates,
		log:       options.Logger,
		bounds:    bounds,
		super:     super,
		center:    bounds.Center(),
		triangles: newArena(),
		edges:     make(map[Edge]edgeSlots),
		outer:     make(map[TriangleID]struct{}),
		lineEnd:   NoVertex,
	}
	if options.SpatialIndex {
		m.index = bvh.New(r2.RectFromPoints(super[:]...))
	}
	m.addTriangle(Triangle{SuperVertex0, SuperVertex1, SuperVertex2})

	m.log.Debug("created mesh",
		zap.Stringer("bounds", bounds),
		zap.Float64("scale", options.SuperTriangleScale),
		zap.Stringer("duplicates", options.Duplicates),
		zap.Bool("index", options.SpatialIndex),
	)
	return m, nil
}

// NewMeshFromPoints creates a mesh whose bounds are the bounding box of points,
// and inserts them in order.
func NewMeshFromPoints(points []Point, opts ...Option) (*Mesh, error) {
	if len(points) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "no points to take bounds from")
	}
	for _, p := range points {
		if !isFinite(p) {
			return nil, errors.Wrapf(ErrOutOfBounds, "non-finite point (%g, %g)", p.X, p.Y)
		}
	}
	m, err := NewMesh(r2.RectFromPoints(points...), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := m.InsertAll(points...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mesh) point(v VertexID) Point {
	if v.Synthetic() {
		return m.super[v.superIndex()]
	}
	return m.vertices[v].Point
}

func (m *Mesh) points(t Triangle) [3]Point {
	return [3]Point{m.point(t.A), m.point(t.B), m.point(t.C)}
}

func (m *Mesh) indexRect(c Circle) r2.Rect {
	// Rounding in the circumcircle must not make a box miss one of its own
	// triangle's vertices.
	return c.Rect().ExpandedByMargin(c.Radius * 1e-9)
}

func (m *Mesh) addTriangle(t Triangle) TriangleID {
	p := m.points(t)
	circle := Circumcircle(p[0], p[1], p[2])
	id := m.triangles.push(t, circle)

	for _, e := range t.Edges() {
		key := e.Key()
		slots, ok := m.edges[key]
		if !ok {
			slots = edgeSlots{NoTriangle, NoTriangle}
		}
		switch {
		case slots[0] == NoTriangle:
			slots[0] = id
		case slots[1] == NoTriangle:
			slots[1] = id
		default:
			panic(fmt.Sprintf("edge %v of %v already has two triangles", e, t))
		}
		m.edges[key] = slots
	}

	switch {
	case t.Synthetic():
		m.outer[id] = struct{}{}
	case m.index != nil:
		m.index.Insert(int(id), m.indexRect(circle))
	}
	return id
}

func (m *Mesh) removeTriangle(id TriangleID) {
	t, ok := m.triangles.get(id)
	if !ok {
		panic(fmt.Sprintf("removing dead triangle %d", id))
	}
	switch {
	case t.Synthetic():
		delete(m.outer, id)
	case m.index != nil:
		m.index.Remove(int(id), m.indexRect(m.triangles.circle(id)))
	}

	for _, e := range t.Edges() {
		key := e.Key()
		slots := m.edges[key]
		for i := range slots {
			if slots[i] == id {
				slots[i] = NoTriangle
			}
		}
		if slots[0] == NoTriangle && slots[1] == NoTriangle {
			delete(m.edges, key)
		} else {
			m.edges[key] = slots
		}
	}
	m.triangles.remove(id)
}

// neighbor returns the triangle on the other side of edge e of triangle id.
func (m *Mesh) neighbor(id TriangleID, e Edge) TriangleID {
	slots, ok := m.edges[e.Key()]
	if !ok {
		return NoTriangle
	}
	if slots[0] == id {
		return slots[1]
	}
	return slots[0]
}

// containsPoint reports whether p is inside or on the boundary of triangle id.
func (m *Mesh) containsPoint(id TriangleID, p Point) bool {
	t, _ := m.triangles.get(id)
	v := m.sites(t)
	q := realSite(p)
	return m.orientation(v[0], v[1], q) != Negative &&
		m.orientation(v[1], v[2], q) != Negative &&
		m.orientation(v[2], v[0], q) != Negative
}

// containing returns every live triangle containing p, in increasing order. A
// point on an edge is contained by both triangles sharing it, and a point on a
// vertex by all triangles around it.
//
// Real triangles are looked up first. The synthetic ones only matter for
// points outside the hull, or on it.
func (m *Mesh) containing(p Point) []TriangleID {
	var result []TriangleID
	if m.index != nil {
		m.index.Enclosing(p, func(i int) bool {
			if id := TriangleID(i); m.containsPoint(id, p) {
				result = append(result, id)
			}
			return true
		})
	} else {
		for _, id := range m.triangles.ids() {
			if t, _ := m.triangles.get(id); !t.Synthetic() && m.containsPoint(id, p) {
				result = append(result, id)
			}
		}
	}

	if len(result) == 0 {
		for id := range m.outer {
			if m.containsPoint(id, p) {
				result = append(result, id)
			}
		}
	} else {
		seen := make(map[TriangleID]bool)
		for _, id := range result {
			t, _ := m.triangles.get(id)
			for _, e := range t.Edges() {
				n := m.neighbor(id, e)
				if _, ok := m.outer[n]; ok && !seen[n] && m.containsPoint(n, p) {
					seen[n] = true
					result = append(result, n)
				}
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (m *Mesh) inCircleOf(id TriangleID, p Point) Location {
	t, _ := m.triangles.get(id)
	v := m.sites(t)
	return m.inCircle(v[0], v[1], v[2], p)
}

// insideSuperTriangle checks p against the finite super-triangle, which bounds
// the points a mesh accepts.
func (m *Mesh) insideSuperTriangle(p Point) bool {
	for i := range m.super {
		if m.pred.Orientation(m.super[i], m.super[(i+1)%3], p) != Positive {
			return false
		}
	}
	return true
}

// trackVertex updates the extent and the collinearity check for a new vertex.
func (m *Mesh) trackVertex(v Vertex) {
	if len(m.vertices) == 1 {
		m.extent = r2.RectFromPoints(v.Point)
		return
	}
	m.extent = m.extent.AddPoint(v.Point)

	switch {
	case m.spanned:
	case m.lineEnd == NoVertex:
		if v.Point != m.vertices[0].Point {
			m.lineEnd = v.ID
		}
	default:
		if m.pred.Orientation(m.vertices[0].Point, m.point(m.lineEnd), v.Point) != Zero {
			m.spanned = true
		}
	}
}
