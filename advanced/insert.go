package advanced

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/osuushi/delaunay/dbg"
)

// An insertion is planned in full before the mesh is touched. plan panics (see
// throw.go) if the point cannot be inserted, and apply cannot fail.
type step struct {
	point  Point
	vertex VertexID
	// Set when the point coincides with an existing vertex. Nothing else is
	// planned in that case.
	duplicate VertexID
	// The triangles whose circumcircle strictly contains the point, in
	// increasing order.
	bad []TriangleID
	// The cavity boundary as a counterclockwise ring.
	boundary []Edge
	// The new triangles, one per boundary edge.
	fan []Triangle
}

// Insert adds p to the mesh and restores the Delaunay property around it. It
// returns the ID of the new vertex.
//
// A point coinciding exactly with an existing vertex is handled according to
// the duplicate policy: with DuplicateIgnore the existing ID is returned and
// nothing changes, with DuplicateReject the existing ID is returned along with
// a *DuplicateVertexError.
//
// Any other error leaves the mesh exactly as it was.
func (m *Mesh) Insert(p Point) (VertexID, error) {
	if m.finalized {
		return NoVertex, errors.Wrapf(ErrFinalized, "inserting (%g, %g)", p.X, p.Y)
	}
	if !isFinite(p) {
		return NoVertex, errors.Wrapf(ErrOutOfBounds, "non-finite point (%g, %g)", p.X, p.Y)
	}

	s, err := m.tryPlan(p)
	if err != nil {
		m.log.Warn("rejected point", zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Error(err))
		return NoVertex, err
	}

	if s.duplicate != NoVertex {
		if m.options.Duplicates == DuplicateReject {
			return s.duplicate, &DuplicateVertexError{Point: p, Existing: s.duplicate}
		}
		m.log.Debug("ignored duplicate point", zap.Int("vertex", int(s.duplicate)))
		return s.duplicate, nil
	}

	if ce := m.log.Check(zapcore.DebugLevel, "inserted vertex"); ce != nil {
		ce.Write(
			zap.Int("vertex", int(s.vertex)),
			zap.Float64("x", p.X),
			zap.Float64("y", p.Y),
			zap.Int("bad", len(s.bad)),
			zap.Strings("cavity", m.triangleNames(s.bad)),
			zap.Int("created", len(s.fan)),
		)
	}
	m.apply(s)
	return s.vertex, nil
}

// InsertAll inserts the points in order and returns how many new vertices were
// created. It stops at the first error.
func (m *Mesh) InsertAll(points ...Point) (int, error) {
	return m.Drive(Points(points...))
}

func (m *Mesh) tryPlan(p Point) (s *step, err error) {
	defer func() {
		if e := handleStepPanic(recover()); e != nil {
			err = e
		}
	}()
	return m.plan(p), nil
}

func (m *Mesh) plan(p Point) *step {
	if !m.insideSuperTriangle(p) {
		fatalf(ErrOutOfBounds, "(%g, %g) is not strictly inside the super-triangle", p.X, p.Y)
	}

	s := &step{
		point:     p,
		vertex:    VertexID(len(m.vertices)),
		duplicate: NoVertex,
	}

	seeds := m.containing(p)
	if len(seeds) == 0 {
		// Only possible if the predicates contradict each other
		fatalf(ErrDegenerateTriangle, "no triangle contains (%g, %g)", p.X, p.Y)
	}
	for _, id := range seeds {
		t, _ := m.triangles.get(id)
		for _, v := range t.Vertices() {
			if m.point(v) == p {
				s.duplicate = v
				return s
			}
		}
	}

	inCavity := m.cavity(p, seeds)
	s.bad = make([]TriangleID, 0, len(inCavity))
	for id := range inCavity {
		s.bad = append(s.bad, id)
	}
	sort.Slice(s.bad, func(i, j int) bool { return s.bad[i] < s.bad[j] })

	s.boundary = m.cavityBoundary(p, s.bad, inCavity)

	s.fan = make([]Triangle, 0, len(s.boundary))
	for _, e := range s.boundary {
		t := Triangle{e.A, e.B, s.vertex}
		if m.orientation(m.site(e.A), m.site(e.B), realSite(p)) != Positive {
			fatalf(ErrDegenerateTriangle, "new triangle %v at (%g, %g) would not have a positive area", t, p.X, p.Y)
		}
		s.fan = append(s.fan, t)
	}
	return s
}

// cavity collects the bad triangles: starting from the triangles containing p
// (which are always bad), it grows across edges into every neighbour whose
// circumcircle strictly contains p. A point exactly on a circumcircle does not
// make a triangle bad. Past the hull, that means the synthetic triangles of the
// hull edges p can see.
func (m *Mesh) cavity(p Point, seeds []TriangleID) map[TriangleID]bool {
	inCavity := make(map[TriangleID]bool, 2*len(seeds))
	queue := make([]TriangleID, 0, 2*len(seeds))
	for _, id := range seeds {
		inCavity[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t, _ := m.triangles.get(id)
		for _, e := range t.Edges() {
			n := m.neighbor(id, e)
			if n == NoTriangle {
				continue
			}
			if _, seen := inCavity[n]; seen {
				continue
			}
			bad := m.inCircleOf(n, p) == Inside
			inCavity[n] = bad
			if bad {
				queue = append(queue, n)
			}
		}
	}

	for id, bad := range inCavity {
		if !bad {
			delete(inCavity, id)
		}
	}
	return inCavity
}

// cavityBoundary returns the edges used by exactly one bad triangle, directed
// as in that triangle and chained into a ring. The cavity must be a topological
// disk: one ring, with every vertex of a bad triangle on it.
func (m *Mesh) cavityBoundary(p Point, bad []TriangleID, inCavity map[TriangleID]bool) []Edge {
	var edges []Edge
	for _, id := range bad {
		t, _ := m.triangles.get(id)
		for _, e := range t.Edges() {
			if !inCavity[m.neighbor(id, e)] {
				edges = append(edges, e)
			}
		}
	}

	next := make(map[VertexID]Edge, len(edges))
	for _, e := range edges {
		if _, ok := next[e.A]; ok {
			fatalf(ErrDegenerateTriangle, "cavity of (%g, %g) touches itself at vertex %d", p.X, p.Y, e.A)
		}
		next[e.A] = e
	}

	ring := make([]Edge, 0, len(edges))
	e := edges[0]
	for {
		ring = append(ring, e)
		n, ok := next[e.B]
		if !ok {
			fatalf(ErrDegenerateTriangle, "cavity boundary of (%g, %g) is open at vertex %d", p.X, p.Y, e.B)
		}
		if n == edges[0] {
			break
		}
		e = n
	}
	if len(ring) != len(edges) {
		fatalf(ErrDegenerateTriangle, "cavity of (%g, %g) has a hole", p.X, p.Y)
	}

	// A vertex strictly inside the cavity would be lost by the retriangulation.
	// This happens to points closer to a vertex than the predicates resolve.
	for _, id := range bad {
		t, _ := m.triangles.get(id)
		for _, v := range t.Vertices() {
			if _, ok := next[v]; !ok {
				fatalf(ErrDegenerateTriangle, "(%g, %g) would remove vertex %d from the mesh", p.X, p.Y, v)
			}
		}
	}
	return ring
}

func (m *Mesh) apply(s *step) {
	v := Vertex{ID: s.vertex, Point: s.point}
	m.vertices = append(m.vertices, v)
	m.trackVertex(v)

	for _, id := range s.bad {
		m.removeTriangle(id)
	}
	for _, t := range s.fan {
		m.addTriangle(t)
	}
}

func (m *Mesh) triangleNames(ids []TriangleID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		t, _ := m.triangles.get(id)
		names[i] = dbg.Name(t)
	}
	return names
}
