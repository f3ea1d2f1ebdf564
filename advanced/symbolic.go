package advanced

import (
	"math"
	"math/big"
)

// The super-triangle vertices are treated as if they were infinitely far from
// the bounds. Synthetic vertex i sits at center + k*superDirections[i], and
// every predicate involving it takes the sign it has for all large enough k.
// The finite coordinates returned by SuperTriangle only bound the points a
// mesh accepts; they never decide which triangles are bad.
//
// Seen from the real points, the circumcircle of a triangle with one synthetic
// vertex becomes the open half-plane beyond its real edge, plus the open edge
// itself. So the hull of the real vertices is always convex.
//
// The directions all have length 5, which keeps them exact.
var superDirections = [3][2]float64{{0, 5}, {-4, -3}, {4, -3}}

// A site is a vertex as the predicates see it. For a synthetic vertex, p is
// the center of the super-triangle and super its index, otherwise super is -1.
type site struct {
	p     Point
	super int
}

func (s site) synthetic() bool {
	return s.super >= 0
}

func realSite(p Point) site {
	return site{p: p, super: -1}
}

func (m *Mesh) site(v VertexID) site {
	if v.Synthetic() {
		return site{p: m.center, super: v.superIndex()}
	}
	return realSite(m.vertices[v].Point)
}

func (m *Mesh) sites(t Triangle) [3]site {
	return [3]site{m.site(t.A), m.site(t.B), m.site(t.C)}
}

// arrange rotates a triple, keeping its winding, so that a lone synthetic site
// comes last and a lone real one comes first. It also returns the number of
// synthetic sites.
func arrange(a, b, c site) (site, site, site, int) {
	n := 0
	for _, s := range [3]site{a, b, c} {
		if s.synthetic() {
			n++
		}
	}
	switch n {
	case 1:
		for !c.synthetic() {
			a, b, c = b, c, a
		}
	case 2:
		for a.synthetic() {
			a, b, c = b, c, a
		}
	}
	return a, b, c, n
}

func (m *Mesh) orientation(a, b, c site) Sign {
	a, b, c, n := arrange(a, b, c)
	switch n {
	case 0:
		return m.pred.Orientation(a.p, b.p, c.p)
	case 1:
		// (b - a) x d dominates, then the finite part
		d := superDirections[c.super]
		if s := linearSign([2]float64{d[1], -d[0]}, [2]Point{b.p, a.p}); s != Zero {
			return s
		}
		return m.pred.Orientation(a.p, b.p, c.p)
	case 2:
		return signOf(cross(superDirections[b.super], superDirections[c.super]))
	default:
		da, db, dc := superDirections[a.super], superDirections[b.super], superDirections[c.super]
		return signOf(cross(
			[2]float64{db[0] - da[0], db[1] - da[1]},
			[2]float64{dc[0] - da[0], dc[1] - da[1]},
		))
	}
}

// inCircle locates p, a real point, relative to the circumcircle of the
// counterclockwise triangle a, b, c.
func (m *Mesh) inCircle(a, b, c site, p Point) Location {
	a, b, c, n := arrange(a, b, c)
	switch n {
	case 0:
		return m.pred.InCircle(a.p, b.p, c.p, p)
	case 1:
		switch m.pred.Orientation(a.p, b.p, p) {
		case Positive:
			return Inside
		case Negative:
			return Outside
		}
		if p == a.p || p == b.p {
			return OnBoundary
		}
		if between(a.p, b.p, p) {
			return Inside
		}
		return Outside
	case 2:
		// The circle is the half-plane beyond the line through a parallel to the
		// far side. On that line, the circle still crosses it a second time, at
		// the mirror image of a across the axis of the far side.
		di, dj := superDirections[b.super], superDirections[c.super]
		w := [2]float64{di[0] - dj[0], di[1] - dj[1]}
		if s := linearSign([2]float64{w[1], -w[0]}, [2]Point{a.p, p}); s != Zero {
			return location(s)
		}
		center := b.p
		return location(-linearSign(w, [2]Point{a.p, p}) * linearSign(w, [2]Point{center, a.p}, [2]Point{center, p}))
	default:
		return Inside
	}
}

func location(s Sign) Location {
	switch s {
	case Positive:
		return Inside
	case Negative:
		return Outside
	default:
		return OnBoundary
	}
}

// between reports whether p, taken to be on the line through a and b, is
// strictly between them.
func between(a, b, p Point) bool {
	if math.Abs(b.X-a.X) >= math.Abs(b.Y-a.Y) {
		return (a.X < p.X && p.X < b.X) || (b.X < p.X && p.X < a.X)
	}
	return (a.Y < p.Y && p.Y < b.Y) || (b.Y < p.Y && p.Y < a.Y)
}

func cross(u, v [2]float64) float64 {
	return u[0]*v[1] - u[1]*v[0]
}

func signOf(x float64) Sign {
	switch {
	case x > 0:
		return Positive
	case x < 0:
		return Negative
	default:
		return Zero
	}
}

// linearSign is the exact sign of the sum of (u - v) . w over the pairs. The
// components of w are small integers.
func linearSign(w [2]float64, pairs ...[2]Point) Sign {
	var sum, magnitude float64
	for _, pair := range pairs {
		x := (pair[0].X - pair[1].X) * w[0]
		y := (pair[0].Y - pair[1].Y) * w[1]
		sum += x + y
		magnitude += math.Abs(x) + math.Abs(y)
	}
	if magnitude == 0 {
		return Zero
	}
	if bound := 1e-14 * magnitude; !math.IsInf(magnitude, 0) {
		if sum > bound {
			return Positive
		}
		if sum < -bound {
			return Negative
		}
	}

	wx, wy := new(big.Rat).SetFloat64(w[0]), new(big.Rat).SetFloat64(w[1])
	total := new(big.Rat)
	for _, pair := range pairs {
		r, ok := rats(pair[0], pair[1])
		if !ok {
			return Zero
		}
		total = add(total, add(mul(sub(r[0], r[2]), wx), mul(sub(r[1], r[3]), wy)))
	}
	return Sign(total.Sign())
}
