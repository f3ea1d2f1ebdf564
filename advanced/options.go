package advanced

import (
	"go.uber.org/zap"
)

// DuplicatePolicy decides what happens to a point that coincides exactly with
// an existing vertex.
type DuplicatePolicy int

const (
	// DuplicateIgnore makes the insertion a no-op: the mesh is unchanged and the
	// ID of the existing vertex is returned without an error.
	DuplicateIgnore DuplicatePolicy = iota
	// DuplicateReject returns a *DuplicateVertexError.
	DuplicateReject
)

func (p DuplicatePolicy) String() string {
	if p == DuplicateReject {
		return "reject"
	}
	return "ignore"
}

// DefaultSuperTriangleScale is the circumradius of the super-triangle, in
// multiples of the largest side of the bounds. It only sets how far outside the
// bounds points are still accepted.
const DefaultSuperTriangleScale = 1000

type Options struct {
	Predicates         Predicates
	Duplicates         DuplicatePolicy
	SuperTriangleScale float64
	SpatialIndex       bool
	Logger             *zap.Logger
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Predicates:         FloatPredicates{Epsilon: DefaultEpsilon},
		Duplicates:         DuplicateIgnore,
		SuperTriangleScale: DefaultSuperTriangleScale,
		SpatialIndex:       true,
		Logger:             zap.NewNop(),
	}
}

// WithPredicates replaces the geometric predicates, e.g. with ExactPredicates.
func WithPredicates(p Predicates) Option {
	return func(o *Options) { o.Predicates = p }
}

// WithEpsilon uses FloatPredicates with the given relative tolerance.
func WithEpsilon(epsilon float64) Option {
	return func(o *Options) { o.Predicates = FloatPredicates{Epsilon: epsilon} }
}

func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *Options) { o.Duplicates = p }
}

func WithSuperTriangleScale(scale float64) Option {
	return func(o *Options) { o.SuperTriangleScale = scale }
}

// WithSpatialIndex toggles the circumcircle index used to locate new points.
// Without it every insertion scans all triangles.
func WithSpatialIndex(enabled bool) Option {
	return func(o *Options) { o.SpatialIndex = enabled }
}

func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.Logger = log }
}
