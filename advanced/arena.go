package advanced

// The triangle arena. Triangles refer to vertices by index and the mesh refers
// to triangles by slot, so there are no pointer cycles to maintain: removing a
// triangle frees its slot, and the next triangle created reuses it.

type slot struct {
	triangle Triangle
	// Cached, since the query surface and the spatial index both need it.
	circle   Circle
	occupied bool
	nextFree TriangleID
}

type arena struct {
	slots     []slot
	firstFree TriangleID
	live      int
}

func newArena() arena {
	return arena{firstFree: NoTriangle}
}

func (a *arena) push(t Triangle, circle Circle) TriangleID {
	a.live++
	if a.firstFree == NoTriangle {
		a.slots = append(a.slots, slot{triangle: t, circle: circle, occupied: true, nextFree: NoTriangle})
		return TriangleID(len(a.slots) - 1)
	}

	id := a.firstFree
	s := &a.slots[id]
	if s.occupied {
		panic("arena: free list points at an occupied slot")
	}
	a.firstFree = s.nextFree
	*s = slot{triangle: t, circle: circle, occupied: true, nextFree: NoTriangle}
	return id
}

func (a *arena) remove(id TriangleID) (Triangle, bool) {
	if !a.contains(id) {
		return Triangle{}, false
	}
	s := &a.slots[id]
	t := s.triangle
	*s = slot{nextFree: a.firstFree}
	a.firstFree = id
	a.live--
	return t, true
}

func (a *arena) contains(id TriangleID) bool {
	return id >= 0 && int(id) < len(a.slots) && a.slots[id].occupied
}

func (a *arena) get(id TriangleID) (Triangle, bool) {
	if !a.contains(id) {
		return Triangle{}, false
	}
	return a.slots[id].triangle, true
}

func (a *arena) circle(id TriangleID) Circle {
	return a.slots[id].circle
}

// ids lists the occupied slots in increasing order.
func (a *arena) ids() []TriangleID {
	result := make([]TriangleID, 0, a.live)
	for i := range a.slots {
		if a.slots[i].occupied {
			result = append(result, TriangleID(i))
		}
	}
	return result
}

func (a *arena) count() int {
	return a.live
}
