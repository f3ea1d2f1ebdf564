package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// SuperTriangle builds the synthetic triangle every mesh starts from: an
// isosceles triangle pointing up, whose circumcircle is centred on the bounds
// with a radius of scale times the largest side of the bounds (or of scale,
// for bounds of zero size). The vertices are returned counterclockwise.
//
// Every point the mesh will ever hold must lie strictly inside this triangle,
// so the bounds should cover all anticipated points. The result is checked
// with pred: if the triangle does not strictly contain the bounds (because of
// the scale, or because the coordinates are too large for the extent to
// register) the configuration is rejected.
//
// The mesh only uses these coordinates to accept or refuse points. Its
// predicates place the same vertices infinitely far away in the same
// directions, so the scale has no effect on the triangulation.
func SuperTriangle(bounds r2.Rect, scale float64, pred Predicates) ([3]Point, error) {
	var vertices [3]Point

	if bounds.IsEmpty() {
		return vertices, errors.Wrap(ErrConfiguration, "bounds are empty")
	}
	if !isFinite(bounds.Lo()) || !isFinite(bounds.Hi()) {
		return vertices, errors.Wrapf(ErrConfiguration, "bounds %v are not finite", bounds)
	}
	if !(scale > 2) || math.IsInf(scale, 0) {
		return vertices, errors.Wrapf(ErrConfiguration, "super-triangle scale must be a finite number above 2, got %v", scale)
	}

	size := bounds.Size()
	extent := math.Max(size.X, size.Y)
	if extent == 0 {
		extent = 1
	}
	radius := scale * extent
	center := bounds.Center()

	for i, d := range superDirections {
		vertices[i] = Point{
			X: center.X + radius*d[0]/5,
			Y: center.Y + radius*d[1]/5,
		}
		if !isFinite(vertices[i]) {
			return vertices, errors.Wrapf(ErrConfiguration, "super-triangle for bounds %v overflows", bounds)
		}
	}

	for _, corner := range bounds.Vertices() {
		for i := range vertices {
			if pred.Orientation(vertices[i], vertices[(i+1)%3], corner) != Positive {
				return vertices, errors.Wrapf(ErrConfiguration,
					"super-triangle does not strictly contain corner (%g, %g) of the bounds", corner.X, corner.Y)
			}
		}
	}
	return vertices, nil
}
