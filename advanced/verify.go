package advanced

import (
	"github.com/pkg/errors"
)

// Verify checks the mesh from scratch, independently of how it was built:
//
//   - every live triangle has a positive orientation,
//   - every edge is shared by at most two triangles, in opposite directions,
//   - the adjacency map agrees with the triangles,
//   - no real vertex is strictly inside the circumcircle of a triangle
//     (Delaunay). For a synthetic triangle, that means no vertex is beyond its
//     hull edge, so the hull is convex.
//
// The last check is quadratic. Verify is meant for tests and debugging.
func (m *Mesh) Verify() error {
	ids := m.triangles.ids()
	directed := make(map[Edge]TriangleID, 3*len(ids))
	users := make(map[Edge][]TriangleID, 3*len(ids)/2)

	for _, id := range ids {
		t, _ := m.triangles.get(id)
		v := m.sites(t)
		if m.orientation(v[0], v[1], v[2]) != Positive {
			return errors.Wrapf(ErrInvalidMesh, "triangle %d %v is not counterclockwise", id, t)
		}
		for _, e := range t.Edges() {
			if other, ok := directed[e]; ok {
				return errors.Wrapf(ErrInvalidMesh, "triangles %d and %d both use edge %v in the same direction", other, id, e)
			}
			directed[e] = id
			users[e.Key()] = append(users[e.Key()], id)
		}
	}

	if len(users) != len(m.edges) {
		return errors.Wrapf(ErrInvalidMesh, "adjacency has %d edges, triangles have %d", len(m.edges), len(users))
	}
	for key, ts := range users {
		if len(ts) > 2 {
			return errors.Wrapf(ErrInvalidMesh, "edge %v is shared by %d triangles", key, len(ts))
		}
		slots, ok := m.edges[key]
		if !ok {
			return errors.Wrapf(ErrInvalidMesh, "edge %v is missing from the adjacency", key)
		}
		for _, id := range ts {
			if slots[0] != id && slots[1] != id {
				return errors.Wrapf(ErrInvalidMesh, "adjacency of edge %v does not list triangle %d", key, id)
			}
		}
		for _, s := range slots {
			if s != NoTriangle && s != ts[0] && (len(ts) < 2 || s != ts[1]) {
				return errors.Wrapf(ErrInvalidMesh, "adjacency of edge %v lists triangle %d, which does not use it", key, s)
			}
		}
	}

	for _, id := range ids {
		t, _ := m.triangles.get(id)
		for _, v := range m.vertices {
			if t.HasVertex(v.ID) {
				continue
			}
			if m.inCircleOf(id, v.Point) == Inside {
				return errors.Wrapf(ErrInvalidMesh, "vertex %d is inside the circumcircle of triangle %d %v", v.ID, id, t)
			}
		}
	}
	return nil
}
