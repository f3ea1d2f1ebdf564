package advanced

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Point is a coordinate pair in the plane. Points are never modified once they
// are part of a mesh.
type Point = r2.Point

// VertexID identifies a vertex by its position in the mesh's vertex list. Real
// vertices are numbered from zero in insertion order. The three synthetic
// super-triangle vertices use negative IDs, so they can never collide with a
// real vertex and are trivially recognised by the finalizer.
type VertexID int

const (
	SuperVertex0 VertexID = -1 - iota
	SuperVertex1
	SuperVertex2

	// NoVertex is never a valid vertex.
	NoVertex VertexID = math.MinInt32
)

// Synthetic reports whether the ID refers to one of the super-triangle vertices.
func (v VertexID) Synthetic() bool {
	return v < 0 && v >= SuperVertex2
}

// superIndex maps a synthetic ID to 0, 1 or 2.
func (v VertexID) superIndex() int {
	return int(-v - 1)
}

type Vertex struct {
	ID VertexID
	Point
	Synthetic bool
}

func (v Vertex) String() string {
	if v.Synthetic {
		return fmt.Sprintf("S%d(%g, %g)", v.ID.superIndex(), v.X, v.Y)
	}
	return fmt.Sprintf("v%d(%g, %g)", v.ID, v.X, v.Y)
}

// A triangle is a counterclockwise triple of vertex IDs. Triangles are values:
// an insertion replaces triangles, it never edits one.
type Triangle struct {
	A, B, C VertexID
}

func (t Triangle) Vertices() [3]VertexID {
	return [3]VertexID{t.A, t.B, t.C}
}

// Edges returns the three sides in winding order: AB, BC, CA.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

func (t Triangle) HasVertex(v VertexID) bool {
	return t.A == v || t.B == v || t.C == v
}

// Synthetic reports whether the triangle touches a super-triangle vertex.
func (t Triangle) Synthetic() bool {
	return t.A.Synthetic() || t.B.Synthetic() || t.C.Synthetic()
}

func (t Triangle) String() string {
	return fmt.Sprintf("(%d %d %d)", t.A, t.B, t.C)
}

// TriangleID is a slot in the mesh's triangle arena. IDs of removed triangles
// are reused, so an ID is only meaningful between two insertions.
type TriangleID int

const NoTriangle TriangleID = -1

// Edge is a directed side of a triangle. Edges are never stored on their own;
// they are derived from triangles whenever they are needed.
type Edge struct {
	A, B VertexID
}

// Key returns the unordered form of the edge, suitable as a map key.
func (e Edge) Key() Edge {
	if e.A > e.B {
		return Edge{e.B, e.A}
	}
	return e
}

func (e Edge) Reverse() Edge {
	return Edge{e.B, e.A}
}

func (e Edge) Synthetic() bool {
	return e.A.Synthetic() || e.B.Synthetic()
}

type Circle struct {
	Center Point
	Radius float64
}

// Rect is the axis aligned bounding box of the circle.
func (c Circle) Rect() r2.Rect {
	return r2.RectFromCenterSize(c.Center, r2.Point{X: 2 * c.Radius, Y: 2 * c.Radius})
}
