package advanced

import (
	"github.com/golang/geo/r2"
)

// LargestCentroid yields n points, each the centroid of the real triangle with
// the largest bounding box at the time it is asked. The mesh needs at least one
// real triangle to start with.
func LargestCentroid(n int) PointSource {
	remaining := n
	return PointSourceFunc(func(q Query) (Point, bool) {
		if remaining <= 0 {
			return Point{}, false
		}

		var best [3]Point
		bestArea := -1.0
		for _, id := range q.Triangles() {
			p := q.TrianglePoints(id)
			size := r2.RectFromPoints(p[:]...).Size()
			if area := size.X * size.Y; area > bestArea {
				best, bestArea = p, area
			}
		}
		if bestArea < 0 {
			return Point{}, false
		}

		remaining--
		return Centroid(best[0], best[1], best[2]), true
	})
}

// CircumcenterRefiner inserts, for each of Rounds rounds, the circumcenter of
// every real triangle that existed when the round started. Circumcenters
// outside the mesh bounds are skipped, as are those of triangles with a
// circumradius of at most MinRadius. It stops early when a round has nothing
// to insert.
//
// A refiner keeps its progress, so it can only drive a single mesh.
type CircumcenterRefiner struct {
	Rounds    int
	MinRadius float64

	round   int
	pending []Point
}

func (r *CircumcenterRefiner) Next(q Query) (Point, bool) {
	for len(r.pending) == 0 {
		if r.round >= r.Rounds {
			return Point{}, false
		}
		r.round++

		bounds := q.Bounds()
		for _, id := range q.Triangles() {
			c := q.Circumcircle(id)
			if c.Radius <= r.MinRadius || !bounds.ContainsPoint(c.Center) {
				continue
			}
			r.pending = append(r.pending, c.Center)
		}
		if len(r.pending) == 0 {
			r.round = r.Rounds
		}
	}

	p := r.pending[0]
	r.pending = r.pending[1:]
	return p, true
}

// Round is the number of rounds started so far.
func (r *CircumcenterRefiner) Round() int {
	return r.round
}
