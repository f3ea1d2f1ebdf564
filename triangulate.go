// Incremental Delaunay triangulation for Go.
//
// Points are inserted one at a time with the Bowyer-Watson algorithm, so the
// point set does not have to be known in advance: a PointSource can look at the
// mesh built so far to decide where the next point goes. This package has the
// one-shot entry points. The mesh itself, and all of its options, live in the
// advanced package.
package delaunay

import (
	"github.com/golang/geo/r2"

	"github.com/osuushi/delaunay/advanced"
)

type Point = advanced.Point
type Triangle = advanced.Triangle
type Edge = advanced.Edge
type Triangulation = advanced.Triangulation
type Query = advanced.Query
type PointSource = advanced.PointSource
type Option = advanced.Option

// Triangulate computes the Delaunay triangulation of a set of points. Exact
// duplicates are merged. It fails with advanced.ErrDegenerateInput when the
// points do not span a triangle.
func Triangulate(points ...Point) (*Triangulation, error) {
	mesh, err := advanced.NewMeshFromPoints(points)
	if err != nil {
		return nil, err
	}
	result, err := mesh.Finalize()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Refine triangulates the seed points, then keeps inserting the points src
// asks for until it is done. Every point must lie inside bounds, or at least
// inside the super-triangle built around them.
func Refine(bounds r2.Rect, seed []Point, src PointSource, opts ...Option) (*Triangulation, error) {
	mesh, err := advanced.NewMesh(bounds, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := mesh.InsertAll(seed...); err != nil {
		return nil, err
	}
	if _, err := mesh.Drive(src); err != nil {
		return nil, err
	}
	result, err := mesh.Finalize()
	if err != nil {
		return nil, err
	}
	return result, nil
}
