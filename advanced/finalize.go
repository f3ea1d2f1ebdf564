package advanced

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Triangulation is the final, self-contained result of a mesh: the real
// vertices and the triangles between them, with no synthetic vertex left.
type Triangulation struct {
	// Indexed by VertexID.
	Vertices []Vertex
	// Counterclockwise, in no particular order.
	Triangles []Triangle
	// The outer boundary as a counterclockwise ring of edges.
	Hull []Edge
}

// Finalize removes every triangle touching the super-triangle and returns what
// is left. The mesh accepts no insertions afterwards, though it can still be
// queried. Calling Finalize again returns the same result.
//
// If no triangle is left, the points do not span a triangle and the error wraps
// ErrDegenerateInput. Otherwise the triangles cover the convex hull of the
// points, and Hull is that convex hull, with any point lying on it.
func (m *Mesh) Finalize() (*Triangulation, error) {
	if m.finalized {
		return m.result, m.resultErr
	}
	m.finalized = true

	removed := 0
	for _, id := range m.triangles.ids() {
		if t, _ := m.triangles.get(id); t.Synthetic() {
			m.removeTriangle(id)
			removed++
		}
	}

	result := &Triangulation{
		Vertices: m.Vertices(),
		Hull:     m.Hull(),
	}
	for _, id := range m.triangles.ids() {
		t, _ := m.triangles.get(id)
		result.Triangles = append(result.Triangles, t)
	}

	var err error
	switch {
	case len(result.Triangles) > 0:
	case m.Collinear():
		err = errors.Wrapf(ErrDegenerateInput, "%d points do not span a triangle", len(m.vertices))
	default:
		// Only with predicates that see some triples as collinear and not others
		err = errors.Wrapf(ErrDegenerateInput, "%d points are too close to collinear to span a triangle", len(m.vertices))
	}
	m.result, m.resultErr = result, err

	if err != nil {
		m.log.Warn("finalized degenerate mesh", zap.Int("vertices", len(m.vertices)), zap.Error(err))
	} else {
		m.log.Info("finalized mesh",
			zap.Int("vertices", len(result.Vertices)),
			zap.Int("triangles", len(result.Triangles)),
			zap.Int("hull", len(result.Hull)),
			zap.Int("removed", removed),
		)
	}
	return result, err
}

func (t *Triangulation) Points(tri Triangle) [3]Point {
	return [3]Point{t.Vertices[tri.A].Point, t.Vertices[tri.B].Point, t.Vertices[tri.C].Point}
}

// Area is the total area of the triangles.
func (t *Triangulation) Area() float64 {
	var area float64
	for _, tri := range t.Triangles {
		p := t.Points(tri)
		area += SignedArea(p[0], p[1], p[2])
	}
	return area
}

// Edges returns every edge once, as a Key (lower ID first), sorted.
func (t *Triangulation) Edges() []Edge {
	seen := make(map[Edge]struct{}, 3*len(t.Triangles)/2+len(t.Hull))
	for _, tri := range t.Triangles {
		for _, e := range tri.Edges() {
			seen[e.Key()] = struct{}{}
		}
	}
	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// HullPoints returns the starting points of the hull edges, in order.
func (t *Triangulation) HullPoints() []Point {
	points := make([]Point, len(t.Hull))
	for i, e := range t.Hull {
		points[i] = t.Vertices[e.A].Point
	}
	return points
}
