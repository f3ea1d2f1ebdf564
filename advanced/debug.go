package advanced

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// String dumps the live triangles, one per line. Synthetic vertices are shown
// in red, triangles that will survive finalization in green.
func (m *Mesh) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mesh: %d vertices, %d triangles (%d live)\n",
		len(m.vertices), m.TriangleCount(), m.triangles.count())

	for _, id := range m.triangles.ids() {
		t, _ := m.triangles.get(id)
		names := make([]string, 3)
		for i, v := range t.Vertices() {
			name := m.Vertex(v).String()
			if v.Synthetic() {
				name = aurora.Red(name).String()
			}
			names[i] = name
		}
		label := fmt.Sprintf("%4d", id)
		if !t.Synthetic() {
			label = aurora.Green(label).String()
		}
		fmt.Fprintf(&b, "%s: %s\n", label, strings.Join(names, " "))
	}
	return b.String()
}

// Padding around the drawing, in pixels
const dbgDrawPadding = 20

// drawPNG renders the real triangles of the mesh to a PNG file. The synthetic
// triangles are left out: the super-triangle would dwarf everything else.
func (m *Mesh) drawPNG(scale float64, path string) error {
	extent := m.Extent()
	if extent.IsEmpty() {
		return errors.New("empty mesh, nothing to draw")
	}
	lo, size := extent.Lo(), extent.Size()

	width := int(scale*size.X) + dbgDrawPadding*2
	height := int(scale*size.Y) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-lo.X, -lo.Y)

	c.SetLineWidth(1)
	for _, id := range m.Triangles() {
		p := m.TrianglePoints(id)
		c.MoveTo(p[0].X, p[0].Y)
		c.LineTo(p[1].X, p[1].Y)
		c.LineTo(p[2].X, p[2].Y)
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	for _, v := range m.vertices {
		c.DrawCircle(v.X, v.Y, 2/scale)
	}
	c.SetRGB(1, 1, 0)
	c.Fill()

	return c.SavePNG(path)
}

// Helper to draw the mesh in the terminal (iTerm only) for debugging.
func (m *Mesh) dbgDraw(scale float64) {
	path := filepath.Join(os.TempDir(), "delaunay_mesh.png")
	if err := m.drawPNG(scale, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	imgcat.CatFile(path, os.Stdout)
}
