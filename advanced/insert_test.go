package advanced

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitSquare = []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}

func TestNewMesh(t *testing.T) {
	mesh, err := NewMesh(r2.RectFromPoints(unitSquare...))
	require.NoError(t, err)

	assert.Equal(t, 0, mesh.VertexCount())
	assert.Empty(t, mesh.Triangles())
	require.Len(t, mesh.LiveTriangles(), 1)
	tri, ok := mesh.Triangle(mesh.LiveTriangles()[0])
	require.True(t, ok)
	assert.Equal(t, Triangle{SuperVertex0, SuperVertex1, SuperVertex2}, tri)
	assert.True(t, mesh.Collinear())
	assert.True(t, mesh.Extent().IsEmpty())
	assert.NoError(t, mesh.Verify())
}

func TestNewMeshErrors(t *testing.T) {
	_, err := NewMesh(r2.EmptyRect())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewMesh(r2.RectFromPoints(unitSquare...), WithSuperTriangleScale(1))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewMesh(r2.RectFromPoints(unitSquare...), WithPredicates(nil))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewMeshFromPoints(nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewMeshFromPoints([]Point{{X: math.NaN(), Y: 0}})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestInsertSquare(t *testing.T) {
	mesh := newTestMesh(t, unitSquare)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.False(t, mesh.Collinear())
	assert.Len(t, mesh.Triangles(), 2)
	require.NoError(t, mesh.Verify())

	result := assertValidTriangulation(t, mesh, unitSquare)
	require.Len(t, result.Triangles, 2)
	require.Len(t, result.Hull, 4)

	hullVertices := make(map[VertexID]bool)
	for _, e := range result.Hull {
		hullVertices[e.A] = true
	}
	assert.Len(t, hullVertices, 4, "all four points are on the hull")
	assert.InDelta(t, 1, result.Area(), 1e-12)
}

func TestInsertCollinear(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	for i := 0; i < 2; i++ {
		mesh := newTestMesh(t, points)
		assert.True(t, mesh.Collinear())
		assert.Empty(t, mesh.Triangles())
		assert.NoError(t, mesh.Verify())

		result, err := mesh.Finalize()
		assert.ErrorIs(t, err, ErrDegenerateInput)
		assert.Contains(t, err.Error(), "3 points do not span a triangle")
		require.NotNil(t, result)
		assert.Empty(t, result.Triangles)
		assert.Len(t, result.Vertices, 3)
	}
}

func TestInsertDuplicate(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	t.Run("ignore", func(t *testing.T) {
		mesh := newTestMesh(t, points)
		before := mesh.String()
		triangles := mesh.LiveTriangles()

		id, err := mesh.Insert(Point{X: 0, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, VertexID(0), id)
		assert.Equal(t, 3, mesh.VertexCount())
		assert.Equal(t, triangles, mesh.LiveTriangles())
		assert.Equal(t, before, mesh.String())

		inserted, err := mesh.InsertAll(Point{X: 1, Y: 0}, Point{X: 0.2, Y: 0.2}, Point{X: 0, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
		assert.Equal(t, 4, mesh.VertexCount())
	})

	t.Run("reject", func(t *testing.T) {
		mesh := newTestMesh(t, points, WithDuplicatePolicy(DuplicateReject))
		before := mesh.String()

		id, err := mesh.Insert(Point{X: 0, Y: 1})
		assert.ErrorIs(t, err, ErrDuplicateVertex)
		var dup *DuplicateVertexError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, VertexID(2), dup.Existing)
		assert.Equal(t, VertexID(2), id)
		assert.Equal(t, before, mesh.String())
	})
}

func TestInsertOnEdge(t *testing.T) {
	points := append(append([]Point{}, unitSquare...),
		// On the hull, on the diagonal, then on a new interior edge
		Point{X: 0.5, Y: 0},
		Point{X: 0.5, Y: 0.5},
		Point{X: 0.25, Y: 0.25},
		// On the hull, right next to a vertex
		Point{X: 1e-20, Y: 0},
	)
	mesh := newTestMesh(t, points)
	require.NoError(t, mesh.Verify())
	result := assertValidTriangulation(t, mesh, points)
	assert.InDelta(t, 1, result.Area(), 1e-12)
	assert.Len(t, result.Triangles, 8)
}

func TestInsertErrors(t *testing.T) {
	t.Run("out of bounds", func(t *testing.T) {
		mesh := newTestMesh(t, unitSquare)
		before := mesh.String()

		for _, p := range []Point{
			{X: 1e6, Y: 0},
			{X: math.NaN(), Y: 0},
			{X: 0, Y: math.Inf(-1)},
			mesh.SuperTriangle()[1],
		} {
			id, err := mesh.Insert(p)
			assert.ErrorIs(t, err, ErrOutOfBounds, "inserting %v", p)
			assert.Equal(t, NoVertex, id)
		}
		assert.Equal(t, before, mesh.String())

		// The bounds are only used to size the super-triangle
		_, err := mesh.Insert(Point{X: 2, Y: 2})
		assert.NoError(t, err)
	})

	t.Run("degenerate triangle", func(t *testing.T) {
		mesh := newTestMesh(t, unitSquare)
		before := mesh.String()

		// Within tolerance of vertex 1, just past the hull
		_, err := mesh.Insert(Point{X: math.Nextafter(1, 2), Y: 0})
		assert.ErrorIs(t, err, ErrDegenerateTriangle)
		assert.Equal(t, before, mesh.String())
		assert.Equal(t, 4, mesh.VertexCount())
		assert.NoError(t, mesh.Verify())

		// The mesh is still usable
		_, err = mesh.Insert(Point{X: 0.5, Y: 0.25})
		assert.NoError(t, err)
		assert.NoError(t, mesh.Verify())
	})

	t.Run("finalized", func(t *testing.T) {
		mesh := newTestMesh(t, unitSquare)
		_, err := mesh.Finalize()
		require.NoError(t, err)

		_, err = mesh.Insert(Point{X: 0.5, Y: 0.5})
		assert.ErrorIs(t, err, ErrFinalized)
		_, err = mesh.InsertAll(Point{X: 0.5, Y: 0.5})
		assert.ErrorIs(t, err, ErrFinalized)
	})
}

// stubPredicates declares every triangle having the poisoned point as a vertex
// flat, unless its other two vertices are both synthetic.
type stubPredicates struct {
	FloatPredicates
	poisoned Point
	super    [3]Point
}

func (s stubPredicates) Orientation(a, b, c Point) Sign {
	if c == s.poisoned && !(s.isSuper(a) && s.isSuper(b)) {
		return Zero
	}
	return s.FloatPredicates.Orientation(a, b, c)
}

func (s stubPredicates) isSuper(p Point) bool {
	return p == s.super[0] || p == s.super[1] || p == s.super[2]
}

func TestInsertRejectsDegenerateFan(t *testing.T) {
	bounds := r2.RectFromPoints(unitSquare...)
	super, err := SuperTriangle(bounds, DefaultSuperTriangleScale, FloatPredicates{})
	require.NoError(t, err)

	poisoned := Point{X: 0.5, Y: 0.25}
	mesh, err := NewMesh(bounds, WithPredicates(stubPredicates{poisoned: poisoned, super: super}))
	require.NoError(t, err)
	_, err = mesh.InsertAll(unitSquare...)
	require.NoError(t, err)
	before := mesh.String()

	_, err = mesh.Insert(poisoned)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
	assert.Equal(t, before, mesh.String())
	assert.NoError(t, mesh.Verify())
}

func TestInsertRandom(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			points := randomPoints(seed, 200)
			mesh := newTestMesh(t, points)
			require.NoError(t, mesh.Verify())

			result := assertValidTriangulation(t, mesh, points)
			assert.Len(t, result.Vertices, len(points))
			assert.Len(t, result.Hull, 4)
			assert.InDelta(t, 1, result.Area(), 1e-9)
		})
	}
}

func TestInsertKeepsInvariantsAtEveryStep(t *testing.T) {
	points := randomPoints(42, 60)
	mesh, err := NewMesh(r2.RectFromPoints(points...))
	require.NoError(t, err)

	for i, p := range points {
		id, err := mesh.Insert(p)
		require.NoError(t, err)
		assert.Equal(t, VertexID(i), id)
		require.NoError(t, mesh.Verify(), "after inserting %d %v", i, p)
	}
}

func TestInsertWithoutSpatialIndex(t *testing.T) {
	points := randomPoints(3, 100)
	indexed := newTestMesh(t, points)
	scanned := newTestMesh(t, points, WithSpatialIndex(false))

	assert.Equal(t, indexed.String(), scanned.String(), "the index does not change any decision")
	assertValidTriangulation(t, scanned, points)
}

func TestInsertGrid(t *testing.T) {
	points := grid(10)

	for name, pred := range predicateImplementations {
		t.Run(name, func(t *testing.T) {
			mesh := newTestMesh(t, points, WithPredicates(pred))
			result := assertValidTriangulation(t, mesh, points)
			assert.Len(t, result.Triangles, 162)
			assert.InDelta(t, 81, result.Area(), 1e-9)
		})
	}
}

func TestInsertFixtures(t *testing.T) {
	for _, name := range []string{"scatter", "rings"} {
		t.Run(name, func(t *testing.T) {
			points := loadFixture(name)
			mesh, err := NewMeshFromPoints(points)
			require.NoError(t, err)
			assertValidTriangulation(t, mesh, points)
		})
	}
}
