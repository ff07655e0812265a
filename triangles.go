package polyedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InvalidPosition stands in for the position of a vertex index that no longer
// exists. All components are NaN.
var InvalidPosition = mgl64.Vec3{math.NaN(), math.NaN(), math.NaN()}

// FanTriangles splits p into len(p)-2 triangles sharing its first vertex.
// The result is a flat list of index triples.
func FanTriangles(p Poly) []VertIndex {
	if len(p) < 3 {
		return []VertIndex{}
	}
	out := make([]VertIndex, 0, 3*(len(p)-2))
	for i := 1; i < len(p)-1; i++ {
		out = append(out, p[0], p[i], p[i+1])
	}
	return out
}

// Triangles fan-expands every poly in the mesh.
func (m *Mesh) Triangles() []VertIndex {
	out := make([]VertIndex, 0)
	for _, p := range m.polys {
		out = append(out, FanTriangles(p)...)
	}
	return out
}

func (m *Mesh) SelectedTriangles(polys []PolyIndex) []VertIndex {
	out := make([]VertIndex, 0)
	for _, p := range m.SelectedPolys(polys) {
		out = append(out, FanTriangles(p)...)
	}
	return out
}

// LineSegments resolves every line to its endpoint positions.
func (m *Mesh) LineSegments() [][2]mgl64.Vec3 {
	out := make([][2]mgl64.Vec3, len(m.lines))
	for i, l := range m.lines {
		out[i] = [2]mgl64.Vec3{m.position(l[0]), m.position(l[1])}
	}
	return out
}

func (m *Mesh) position(i VertIndex) mgl64.Vec3 {
	if v, ok := m.Vert(i); ok {
		return v
	}
	return InvalidPosition
}
