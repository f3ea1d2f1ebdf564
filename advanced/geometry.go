package advanced

import (
	"math"
	"sort"
)

// Plain float64 geometry. None of these functions make decisions for the
// insertion engine (that is the job of Predicates); they compute the values the
// query surface hands out.

// Circumcircle returns the circle through a, b and c. A degenerate triangle has
// no circumcircle; the result then has an infinite radius.
func Circumcircle(a, b, c Point) Circle {
	// https://en.wikipedia.org/wiki/Circumscribed_circle#Cartesian_coordinates_2
	b = b.Sub(a)
	c = c.Sub(a)

	d := 2 * (b.X*c.Y - b.Y*c.X)
	if d == 0 {
		return Circle{Center: Centroid(a, a.Add(b), a.Add(c)), Radius: math.Inf(1)}
	}
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	offset := Point{
		X: (c.Y*b2 - b.Y*c2) / d,
		Y: (b.X*c2 - c.X*b2) / d,
	}
	return Circle{Center: a.Add(offset), Radius: offset.Norm()}
}

// SignedArea is positive for counterclockwise triangles and negative for
// clockwise ones.
func SignedArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

func Centroid(a, b, c Point) Point {
	return a.Add(b).Add(c).Mul(1.0 / 3)
}

// Barycentric returns the weights w such that p = w0*a + w1*b + w2*c. It fails
// for degenerate triangles.
func Barycentric(a, b, c, p Point) ([3]float64, bool) {
	d := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if d == 0 {
		return [3]float64{}, false
	}
	w0 := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / d
	w1 := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / d
	return [3]float64{w0, w1, 1 - w0 - w1}, true
}

// PolygonArea is the signed shoelace area of a closed polygon. Counterclockwise
// polygons have a positive area.
func PolygonArea(points []Point) float64 {
	var area float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		area += p.Cross(q)
	}
	return area / 2
}

// ConvexHull returns the convex hull of the points as a counterclockwise
// polygon without collinear points (Andrew's monotone chain). It is independent
// of any mesh, which makes it useful to check one.
func ConvexHull(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return lexLess(sorted[i], sorted[j]) })

	// Drop exact duplicates
	unique := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			unique = append(unique, p)
		}
	}
	if len(unique) < 3 {
		return unique
	}

	turn := func(o, a, b Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}

	hull := make([]Point, 0, 2*len(unique))
	for _, p := range unique {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(unique) - 2; i >= 0; i-- {
		p := unique[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func isFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
