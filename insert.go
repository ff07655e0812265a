package polyedit

import "github.com/go-gl/mathgl/mgl64"

// InsertVert adds a vertex at pos. When origin is set it must name an
// existing vertex, and a line from origin to the new vertex is added too.
func (m *Mesh) InsertVert(pos mgl64.Vec3, origin *VertIndex) (VertIndex, bool) {
	if origin != nil && !m.hasVert(*origin) {
		return 0, reject("InsertVert", "origin out of range", "origin", *origin)
	}
	v := m.AddVert(pos)
	if origin != nil {
		m.lines = append(m.lines, Line{*origin, v})
	}
	return v, true
}

// ConnectVerts adds the line (a, b). With closePoly, the shortest existing
// path from a to b is looked up before the line goes in; if it passes
// through at least three vertices it becomes a new poly.
func (m *Mesh) ConnectVerts(a, b VertIndex, closePoly bool) bool {
	if !m.hasVert(a) || !m.hasVert(b) {
		return reject("ConnectVerts", "endpoint out of range", "a", a, "b", b)
	}

	var path []VertIndex
	if closePoly {
		path = ShortestPath(a, b, m.lines)
	}
	m.lines = append(m.lines, Line{a, b})
	if len(path) >= 3 {
		m.polys = append(m.polys, Poly(path))
	}
	return true
}
