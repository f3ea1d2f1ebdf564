package advanced

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every failure returned by this package wraps one of these, so callers can
// tell them apart with errors.Is. None of them leave a mesh in an invalid
// state: a failed step is rejected before anything is changed.
var (
	// ErrDegenerateInput means the points inserted so far do not span a
	// triangle (fewer than three points, or all of them collinear).
	ErrDegenerateInput = errors.New("delaunay: degenerate input")

	// ErrDuplicateVertex is returned for a point that coincides exactly with an
	// existing vertex, when the mesh is configured with DuplicateReject.
	ErrDuplicateVertex = errors.New("delaunay: duplicate vertex")

	// ErrDegenerateTriangle means retriangulating the cavity would have created
	// a triangle of zero (or negative) area. This happens for points that are
	// closer to an existing vertex or edge than the predicates can resolve.
	ErrDegenerateTriangle = errors.New("delaunay: degenerate triangle")

	// ErrConfiguration means no valid super-triangle can be built from the
	// given bounds and options.
	ErrConfiguration = errors.New("delaunay: invalid configuration")

	// ErrOutOfBounds is returned for points that are not strictly inside the
	// super-triangle, including non-finite ones.
	ErrOutOfBounds = errors.New("delaunay: point out of bounds")

	// ErrFinalized is returned when inserting into a finalized mesh.
	ErrFinalized = errors.New("delaunay: mesh is finalized")

	// ErrInvalidMesh is returned by Verify.
	ErrInvalidMesh = errors.New("delaunay: invalid mesh")
)

// DuplicateVertexError reports the vertex a rejected point coincides with.
type DuplicateVertexError struct {
	Point    Point
	Existing VertexID
}

func (e *DuplicateVertexError) Error() string {
	return fmt.Sprintf("%v: (%g, %g) coincides with vertex %d", ErrDuplicateVertex, e.Point.X, e.Point.Y, e.Existing)
}

func (e *DuplicateVertexError) Is(target error) bool {
	return target == ErrDuplicateVertex
}
