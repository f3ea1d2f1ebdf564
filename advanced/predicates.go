package advanced

import (
	"math"
	"math/big"
)

// The two geometric predicates every decision of the insertion engine goes
// through. They are consumed through the Predicates interface so that the
// tolerance based evaluation used by default can be swapped for exact
// arithmetic without touching the mesh or the engine.
//
// Both predicates must be deterministic: the same inputs always give the same
// answer, whatever order the triangle's vertices are passed in (as long as the
// winding is preserved).

type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	default:
		return "zero"
	}
}

// Location of a point relative to a triangle's circumcircle.
type Location int

const (
	Outside Location = iota
	OnBoundary
	Inside
)

func (l Location) String() string {
	switch l {
	case Inside:
		return "inside"
	case OnBoundary:
		return "on-boundary"
	default:
		return "outside"
	}
}

type Predicates interface {
	// Orientation is Positive when a, b, c wind counterclockwise, Negative when
	// they wind clockwise and Zero when they are collinear.
	Orientation(a, b, c Point) Sign
	// InCircle locates p relative to the circumcircle of a, b, c. The answer is
	// independent of the winding of a, b, c. A degenerate (collinear) triangle
	// has no circumcircle and everything is Outside of it.
	InCircle(a, b, c, p Point) Location
}

// DefaultEpsilon is the relative tolerance of FloatPredicates.
const DefaultEpsilon = 1e-12

// FloatPredicates evaluates the predicates in float64. A determinant whose
// magnitude is within Epsilon times the sum of the magnitudes of its terms is
// treated as zero, which turns near-degenerate cases into the deterministic
// tie-break (collinear, on the circle) instead of noise.
//
// A non-positive Epsilon means DefaultEpsilon.
type FloatPredicates struct {
	Epsilon float64
}

func (f FloatPredicates) epsilon() float64 {
	if f.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return f.Epsilon
}

func (f FloatPredicates) Orientation(a, b, c Point) Sign {
	// Evaluate on the lexicographically sorted points and fix up the sign with
	// the parity of the permutation, so orientation(a, b, c) is always exactly
	// -orientation(b, a, c). Without this, an edge shared by two triangles can be
	// judged differently from each side.
	flip := false
	if lexLess(b, a) {
		a, b = b, a
		flip = !flip
	}
	if lexLess(c, b) {
		b, c = c, b
		flip = !flip
	}
	if lexLess(b, a) {
		a, b = b, a
		flip = !flip
	}

	left := (b.X - a.X) * (c.Y - a.Y)
	right := (b.Y - a.Y) * (c.X - a.X)
	det := left - right
	bound := f.epsilon() * (math.Abs(left) + math.Abs(right))

	sign := Zero
	if det > bound {
		sign = Positive
	} else if det < -bound {
		sign = Negative
	}
	if flip {
		sign = -sign
	}
	return sign
}

func (f FloatPredicates) InCircle(a, b, c, p Point) Location {
	a, b, c = rotateLexMin(a, b, c)
	orientation := f.Orientation(a, b, c)
	if orientation == Zero {
		return Outside
	}

	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	cdxady, adxcdy := cdx*ady, adx*cdy
	adxbdy, bdxady := adx*bdy, bdx*ady

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := alift*(math.Abs(bdxcdy)+math.Abs(cdxbdy)) +
		blift*(math.Abs(cdxady)+math.Abs(adxcdy)) +
		clift*(math.Abs(adxbdy)+math.Abs(bdxady))
	bound := f.epsilon() * permanent

	if orientation == Negative {
		det = -det
	}
	if det > bound {
		return Inside
	} else if det < -bound {
		return Outside
	}
	return OnBoundary
}

// ExactPredicates evaluates the same determinants as FloatPredicates with
// rational arithmetic. Every finite float64 is an exact rational, so the sign
// is always the true sign. It is much slower, and meant for inputs where
// near-degenerate configurations are the norm (grids, cocircular sets).
type ExactPredicates struct{}

func (ExactPredicates) Orientation(a, b, c Point) Sign {
	r, ok := rats(a, b, c)
	if !ok {
		return Zero
	}
	return Sign(orientationRat(r[0], r[1], r[2], r[3], r[4], r[5]).Sign())
}

func (ExactPredicates) InCircle(a, b, c, p Point) Location {
	r, ok := rats(a, b, c, p)
	if !ok {
		return Outside
	}
	orientation := orientationRat(r[0], r[1], r[2], r[3], r[4], r[5]).Sign()
	if orientation == 0 {
		return Outside
	}

	px, py := r[6], r[7]
	adx, ady := sub(r[0], px), sub(r[1], py)
	bdx, bdy := sub(r[2], px), sub(r[3], py)
	cdx, cdy := sub(r[4], px), sub(r[5], py)

	alift := add(mul(adx, adx), mul(ady, ady))
	blift := add(mul(bdx, bdx), mul(bdy, bdy))
	clift := add(mul(cdx, cdx), mul(cdy, cdy))

	det := mul(alift, sub(mul(bdx, cdy), mul(cdx, bdy)))
	det = add(det, mul(blift, sub(mul(cdx, ady), mul(adx, cdy))))
	det = add(det, mul(clift, sub(mul(adx, bdy), mul(bdx, ady))))

	switch det.Sign() * orientation {
	case 1:
		return Inside
	case -1:
		return Outside
	default:
		return OnBoundary
	}
}

func orientationRat(ax, ay, bx, by, cx, cy *big.Rat) *big.Rat {
	return sub(mul(sub(bx, ax), sub(cy, ay)), mul(sub(by, ay), sub(cx, ax)))
}

// rats converts the coordinates of the points to rationals, in x, y order. It
// fails on non-finite coordinates, which have no rational value.
func rats(points ...Point) ([]*big.Rat, bool) {
	result := make([]*big.Rat, 0, 2*len(points))
	for _, p := range points {
		x := new(big.Rat).SetFloat64(p.X)
		y := new(big.Rat).SetFloat64(p.Y)
		if x == nil || y == nil {
			return nil, false
		}
		result = append(result, x, y)
	}
	return result, true
}

func add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func lexLess(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// Rotate the triple so the lexicographically smallest point comes first. A
// cyclic rotation keeps the winding.
func rotateLexMin(a, b, c Point) (Point, Point, Point) {
	if lexLess(b, a) && !lexLess(c, b) {
		return b, c, a
	}
	if lexLess(c, a) && lexLess(c, b) {
		return c, a, b
	}
	return a, b, c
}
