package advanced

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
)

// Query is the read-only view of a mesh handed to point sources. Triangle IDs
// obtained through it are only valid until the next insertion.
type Query interface {
	// Bounds are the bounds the mesh was created with.
	Bounds() r2.Rect
	// Extent is the bounding box of the real vertices.
	Extent() r2.Rect
	VertexCount() int
	Vertex(id VertexID) Vertex
	Vertices() []Vertex
	// Triangles lists the live triangles with no synthetic vertex.
	Triangles() []TriangleID
	// LiveTriangles lists every live triangle, synthetic ones included.
	LiveTriangles() []TriangleID
	Triangle(id TriangleID) (Triangle, bool)
	TrianglePoints(id TriangleID) [3]Point
	Circumcircle(id TriangleID) Circle
	Neighbors(id TriangleID) [3]TriangleID
	Hull() []Edge
	EdgeLength(e Edge) float64
	Locate(p Point) (TriangleID, bool)
	Interpolate(p Point, values []float64) (float64, bool)
	Collinear() bool
}

var _ Query = (*Mesh)(nil)

func (m *Mesh) Bounds() r2.Rect {
	return m.bounds
}

// Extent is empty until the first vertex is inserted.
func (m *Mesh) Extent() r2.Rect {
	if len(m.vertices) == 0 {
		return r2.EmptyRect()
	}
	return m.extent
}

// SuperTriangle returns the synthetic vertices, counterclockwise.
func (m *Mesh) SuperTriangle() [3]Point {
	return m.super
}

// VertexCount counts real vertices only.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// Vertex looks up a real or synthetic vertex. It panics for unknown IDs.
func (m *Mesh) Vertex(id VertexID) Vertex {
	if id.Synthetic() {
		return Vertex{ID: id, Point: m.super[id.superIndex()], Synthetic: true}
	}
	if id < 0 || int(id) >= len(m.vertices) {
		panic(fmt.Sprintf("no vertex %d", id))
	}
	return m.vertices[id]
}

func (m *Mesh) Vertices() []Vertex {
	return append([]Vertex(nil), m.vertices...)
}

func (m *Mesh) Triangles() []TriangleID {
	ids := m.triangles.ids()
	result := ids[:0]
	for _, id := range ids {
		if t, _ := m.triangles.get(id); !t.Synthetic() {
			result = append(result, id)
		}
	}
	return result
}

// TriangleCount counts the triangles Triangles would return.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles())
}

func (m *Mesh) LiveTriangles() []TriangleID {
	return m.triangles.ids()
}

func (m *Mesh) Triangle(id TriangleID) (Triangle, bool) {
	return m.triangles.get(id)
}

// TrianglePoints panics for dead triangles.
func (m *Mesh) TrianglePoints(id TriangleID) [3]Point {
	t, ok := m.triangles.get(id)
	if !ok {
		panic(fmt.Sprintf("no triangle %d", id))
	}
	return m.points(t)
}

// Circumcircle panics for dead triangles. For a synthetic triangle it is the
// circle through the finite coordinates of its vertices.
func (m *Mesh) Circumcircle(id TriangleID) Circle {
	if !m.triangles.contains(id) {
		panic(fmt.Sprintf("no triangle %d", id))
	}
	return m.triangles.circle(id)
}

// Neighbors returns the triangles across edges AB, BC and CA, or NoTriangle
// where the edge is on the outside of the mesh.
func (m *Mesh) Neighbors(id TriangleID) [3]TriangleID {
	result := [3]TriangleID{NoTriangle, NoTriangle, NoTriangle}
	t, ok := m.triangles.get(id)
	if !ok {
		return result
	}
	for i, e := range t.Edges() {
		result[i] = m.neighbor(id, e)
	}
	return result
}

// Hull returns the boundary of the real triangles as a counterclockwise ring
// of directed edges, starting at the edge with the lowest vertex ID. The ring
// is empty while no real triangle exists.
func (m *Mesh) Hull() []Edge {
	var boundary []Edge
	for _, id := range m.triangles.ids() {
		t, _ := m.triangles.get(id)
		if t.Synthetic() {
			continue
		}
		for _, e := range t.Edges() {
			n := m.neighbor(id, e)
			if n == NoTriangle {
				boundary = append(boundary, e)
				continue
			}
			if nt, _ := m.triangles.get(n); nt.Synthetic() {
				boundary = append(boundary, e)
			}
		}
	}
	return chainEdges(boundary)
}

// chainEdges orders directed edges into rings, each starting at its lowest
// edge. A vertex may start several edges when the region is pinched there; the
// lowest unused one is followed first.
func chainEdges(edges []Edge) []Edge {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	starting := make(map[VertexID][]int, len(edges))
	for i, e := range edges {
		starting[e.A] = append(starting[e.A], i)
	}
	used := make([]bool, len(edges))
	next := func(v VertexID) int {
		for _, i := range starting[v] {
			if !used[i] {
				return i
			}
		}
		return -1
	}

	result := make([]Edge, 0, len(edges))
	for first := range edges {
		for i := first; i >= 0 && !used[i]; i = next(edges[i].B) {
			used[i] = true
			result = append(result, edges[i])
		}
	}
	return result
}

// EdgeLength works for any pair of vertices, connected or not.
func (m *Mesh) EdgeLength(e Edge) float64 {
	return m.point(e.A).Sub(m.point(e.B)).Norm()
}

// Locate returns a live triangle containing p, synthetic or not. For a point
// on an edge or a vertex, the lowest of the triangles touching it is returned.
// Points outside the super-triangle are not located.
func (m *Mesh) Locate(p Point) (TriangleID, bool) {
	if !isFinite(p) || !m.insideSuperTriangle(p) {
		return NoTriangle, false
	}
	found := m.containing(p)
	if len(found) == 0 {
		return NoTriangle, false
	}
	return found[0], true
}

// Interpolate linearly interpolates per-vertex values (indexed by VertexID)
// at p. It fails outside the real triangles.
func (m *Mesh) Interpolate(p Point, values []float64) (float64, bool) {
	if len(values) < len(m.vertices) {
		return 0, false
	}
	for _, id := range m.containing(p) {
		t, _ := m.triangles.get(id)
		if t.Synthetic() {
			continue
		}
		v := m.points(t)
		weights, ok := Barycentric(v[0], v[1], v[2], p)
		if !ok {
			continue
		}
		return weights[0]*values[t.A] + weights[1]*values[t.B] + weights[2]*values[t.C], true
	}
	return 0, false
}

// Collinear reports whether the real vertices fail to span a triangle: there
// are fewer than three of them, or they all lie on one line.
func (m *Mesh) Collinear() bool {
	return !m.spanned
}

// Finalized reports whether Finalize has been called.
func (m *Mesh) Finalized() bool {
	return m.finalized
}

// view hides the mutating methods of a mesh from point sources.
type view struct {
	m *Mesh
}

func (v view) Bounds() r2.Rect                         { return v.m.Bounds() }
func (v view) Extent() r2.Rect                         { return v.m.Extent() }
func (v view) VertexCount() int                        { return v.m.VertexCount() }
func (v view) Vertex(id VertexID) Vertex               { return v.m.Vertex(id) }
func (v view) Vertices() []Vertex                      { return v.m.Vertices() }
func (v view) Triangles() []TriangleID                 { return v.m.Triangles() }
func (v view) LiveTriangles() []TriangleID             { return v.m.LiveTriangles() }
func (v view) Triangle(id TriangleID) (Triangle, bool) { return v.m.Triangle(id) }
func (v view) TrianglePoints(id TriangleID) [3]Point   { return v.m.TrianglePoints(id) }
func (v view) Circumcircle(id TriangleID) Circle       { return v.m.Circumcircle(id) }
func (v view) Neighbors(id TriangleID) [3]TriangleID   { return v.m.Neighbors(id) }
func (v view) Hull() []Edge                            { return v.m.Hull() }
func (v view) EdgeLength(e Edge) float64               { return v.m.EdgeLength(e) }
func (v view) Locate(p Point) (TriangleID, bool)       { return v.m.Locate(p) }
func (v view) Collinear() bool                         { return v.m.Collinear() }

func (v view) Interpolate(p Point, values []float64) (float64, bool) {
	return v.m.Interpolate(p, values)
}
