package advanced

import (
	"embed"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Point set fixtures are svg files in the fixtures/ directory, available by
// name sans extension. This is not a real svg parser: it takes the points of
// the first polygon, in order, and panics if anything goes wrong.

//go:embed fixtures
var fixtures embed.FS

func loadFixture(name string) []Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected one polygon in fixture %q, found %d", name, len(polygons))
	}

	var points []Point
	for _, pointString := range strings.Fields(polygons[0].Attributes["points"]) {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// The corners of the unit square, plus n random points inside it
func randomPoints(seed int64, n int) []Point {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	return append(points, uniformPoints(seed, n)...)
}

func uniformPoints(seed int64, n int) []Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	return points
}

func grid(n int) []Point {
	var points []Point
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			points = append(points, Point{X: float64(i), Y: float64(j)})
		}
	}
	return points
}

func newTestMesh(t *testing.T, points []Point, opts ...Option) *Mesh {
	t.Helper()
	mesh, err := NewMesh(r2.RectFromPoints(points...), opts...)
	require.NoError(t, err)
	for _, p := range points {
		_, err := mesh.Insert(p)
		require.NoError(t, err, "inserting %v", p)
	}
	return mesh
}

// Helper to check that a finished triangulation is valid. The rules are:
// 1. The mesh passes Verify (winding, manifold, adjacency, Delaunay).
// 2. Every input point is a vertex of some triangle.
// 3. No triangle has zero area.
// 4. The triangles cover the convex hull of the points exactly once, so the
//    sum of their areas is the area of the hull, and their number is given by
//    Euler's formula.
func assertValidTriangulation(t *testing.T, mesh *Mesh, points []Point) *Triangulation {
	t.Helper()
	result, err := mesh.Finalize()
	require.NoError(t, err)
	require.NoError(t, mesh.Verify())

	used := make(map[VertexID]bool)
	for _, tri := range result.Triangles {
		p := result.Points(tri)
		require.Greater(t, SignedArea(p[0], p[1], p[2]), 0.0, "triangle %v has no area", tri)
		for _, v := range tri.Vertices() {
			require.False(t, v.Synthetic(), "synthetic vertex in %v", tri)
			used[v] = true
		}
	}
	assert.Len(t, used, len(result.Vertices), "every vertex is used by a triangle")

	hullArea := PolygonArea(ConvexHull(points))
	assert.InDelta(t, hullArea, result.Area(), 1e-9*hullArea, "triangles cover the convex hull")
	assert.Equal(t, 2*len(result.Vertices)-2-len(result.Hull), len(result.Triangles))
	return result
}
