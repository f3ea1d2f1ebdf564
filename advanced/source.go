package advanced

// A PointSource decides which point to insert next, usually by looking at the
// mesh built so far. Drive asks it for points until it reports it is done.
type PointSource interface {
	// Next returns the next point to insert, or false when there are no more.
	Next(q Query) (Point, bool)
}

type PointSourceFunc func(q Query) (Point, bool)

func (f PointSourceFunc) Next(q Query) (Point, bool) {
	return f(q)
}

// Points is a source that ignores the mesh and yields a fixed list in order.
func Points(points ...Point) PointSource {
	return &sliceSource{points: points}
}

type sliceSource struct {
	points []Point
	next   int
}

func (s *sliceSource) Next(Query) (Point, bool) {
	if s.next >= len(s.points) {
		return Point{}, false
	}
	p := s.points[s.next]
	s.next++
	return p, true
}

// Drive inserts points from src until it is exhausted, and returns how many new
// vertices were created (ignored duplicates do not count). The source sees the
// mesh as it is after every insertion. Drive stops at the first error; the mesh
// then holds every point inserted before it.
func (m *Mesh) Drive(src PointSource) (int, error) {
	inserted := 0
	q := view{m}
	for {
		p, ok := src.Next(q)
		if !ok {
			return inserted, nil
		}
		before := len(m.vertices)
		if _, err := m.Insert(p); err != nil {
			return inserted, err
		}
		if len(m.vertices) > before {
			inserted++
		}
	}
}
