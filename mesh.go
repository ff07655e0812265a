package polyedit

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh stores vertices, lines and polys as flat index arrays. Lines and polys
// reference vertices by position; every mutating method either applies
// completely or leaves the mesh untouched and returns false.
type Mesh struct {
	mirrorMode MirrorMode
	verts      []mgl64.Vec3
	lines      []Line
	polys      []Poly
}

func NewMesh() *Mesh {
	return &Mesh{
		verts: make([]mgl64.Vec3, 0),
		lines: make([]Line, 0),
		polys: make([]Poly, 0),
	}
}

// Verts, Lines and Polys return the backing arrays. The slices are only valid
// until the next mutation and must not be modified.
func (m *Mesh) Verts() []mgl64.Vec3 { return m.verts }
func (m *Mesh) Lines() []Line       { return m.lines }
func (m *Mesh) Polys() []Poly       { return m.polys }

func (m *Mesh) MirrorMode() MirrorMode { return m.mirrorMode }

func (m *Mesh) SetMirrorMode(mode MirrorMode) {
	m.mirrorMode = mode
}

func (m *Mesh) Vert(i VertIndex) (mgl64.Vec3, bool) {
	if !m.hasVert(i) {
		return mgl64.Vec3{}, false
	}
	return m.verts[i], true
}

func (m *Mesh) Line(i LineIndex) (Line, bool) {
	if uint(i) >= uint(len(m.lines)) {
		return Line{}, false
	}
	return m.lines[i], true
}

func (m *Mesh) Poly(i PolyIndex) (Poly, bool) {
	if uint(i) >= uint(len(m.polys)) {
		return nil, false
	}
	return m.polys[i], true
}

// AddVert appends a vertex and returns its index.
func (m *Mesh) AddVert(pos mgl64.Vec3) VertIndex {
	m.verts = append(m.verts, pos)
	return VertIndex(len(m.verts) - 1)
}

func (m *Mesh) UpdateVert(i VertIndex, pos mgl64.Vec3) bool {
	if !m.hasVert(i) {
		return reject("UpdateVert", "vertex out of range", "index", i)
	}
	m.verts[i] = pos
	return true
}

// DeleteVert removes vertex i by moving the last vertex into its slot.
// Lines touching i are dropped, i is dropped from every poly, references to
// the moved vertex are rewritten to i, and polys left with fewer than three
// vertices are discarded.
func (m *Mesh) DeleteVert(i VertIndex) (mgl64.Vec3, bool) {
	if !m.hasVert(i) {
		reject("DeleteVert", "vertex out of range", "index", i)
		return mgl64.Vec3{}, false
	}
	last := VertIndex(len(m.verts) - 1)
	removed := m.verts[i]
	m.verts[i] = m.verts[last]
	m.verts = m.verts[:last]

	m.removeLinesContainingVert(i)
	if i != last {
		m.remapSwappedVert(last, i)
	}
	m.cleanupPolysAfterVertRemoval(i, last)
	return removed, true
}

// DeleteVerts deletes a set of vertices and returns how many were removed.
// If any index is out of range nothing is deleted.
func (m *Mesh) DeleteVerts(indices []VertIndex) int {
	targets, ok := m.uniqueVerts("DeleteVerts", indices)
	if !ok {
		return 0
	}
	// highest first: each swap only moves a vertex above every pending target
	slices.Sort(targets)
	for k := len(targets) - 1; k >= 0; k-- {
		m.DeleteVert(targets[k])
	}
	return len(targets)
}

func (m *Mesh) AddLine(l Line) bool {
	if !m.hasVert(l[0]) || !m.hasVert(l[1]) {
		return reject("AddLine", "endpoint out of range", "line", l)
	}
	m.lines = append(m.lines, l)
	return true
}

// RemoveLine removes line i by moving the last line into its slot.
func (m *Mesh) RemoveLine(i LineIndex) (Line, bool) {
	if uint(i) >= uint(len(m.lines)) {
		reject("RemoveLine", "line out of range", "index", i)
		return Line{}, false
	}
	removed := m.lines[i]
	last := len(m.lines) - 1
	m.lines[i] = m.lines[last]
	m.lines = m.lines[:last]
	return removed, true
}

// AddPoly stores a copy of p. It needs at least three distinct, existing
// vertices; winding order is kept as given.
func (m *Mesh) AddPoly(p Poly) bool {
	if err := m.validatePoly(p); err != nil {
		return reject("AddPoly", err.Error(), "poly", p)
	}
	m.polys = append(m.polys, p.Copy())
	return true
}

// RemovePoly removes poly i by moving the last poly into its slot.
func (m *Mesh) RemovePoly(i PolyIndex) (Poly, bool) {
	if uint(i) >= uint(len(m.polys)) {
		reject("RemovePoly", "poly out of range", "index", i)
		return nil, false
	}
	removed := m.polys[i]
	last := len(m.polys) - 1
	m.polys[i] = m.polys[last]
	m.polys[last] = nil
	m.polys = m.polys[:last]
	return removed, true
}

// Clear removes all geometry. The mirror mode is kept.
func (m *Mesh) Clear() {
	m.verts = m.verts[:0]
	m.lines = m.lines[:0]
	m.polys = m.polys[:0]
}

// Copy returns a deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	polys := make([]Poly, len(m.polys))
	for i, p := range m.polys {
		polys[i] = p.Copy()
	}
	return &Mesh{
		mirrorMode: m.mirrorMode,
		verts:      slices.Clone(m.verts),
		lines:      slices.Clone(m.lines),
		polys:      polys,
	}
}

// Equal reports whether both meshes hold the same geometry and mirror mode.
func (m *Mesh) Equal(other *Mesh) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.mirrorMode != other.mirrorMode ||
		!slices.Equal(m.verts, other.verts) ||
		!slices.Equal(m.lines, other.lines) {
		return false
	}
	return slices.EqualFunc(m.polys, other.polys, func(a, b Poly) bool {
		return slices.Equal(a, b)
	})
}

func (m *Mesh) hasVert(i VertIndex) bool {
	return uint(i) < uint(len(m.verts))
}

func (m *Mesh) removeLinesContainingVert(v VertIndex) {
	m.lines = slices.DeleteFunc(m.lines, func(l Line) bool {
		return l.Has(v)
	})
}

func (m *Mesh) remapSwappedVert(oldIndex, newIndex VertIndex) {
	for i := range m.lines {
		if m.lines[i][0] == oldIndex {
			m.lines[i][0] = newIndex
		}
		if m.lines[i][1] == oldIndex {
			m.lines[i][1] = newIndex
		}
	}
}

// cleanupPolysAfterVertRemoval drops removed from every poly before
// rewriting replaced (the old last index) to removed.
func (m *Mesh) cleanupPolysAfterVertRemoval(removed, replaced VertIndex) {
	for i, p := range m.polys {
		p = slices.DeleteFunc(p, func(v VertIndex) bool {
			return v == removed
		})
		for j, v := range p {
			if v == replaced {
				p[j] = removed
			}
		}
		m.polys[i] = p
	}
	m.polys = slices.DeleteFunc(m.polys, func(p Poly) bool {
		return len(p) < 3
	})
}

// uniqueVerts de-duplicates indices keeping first occurrence order, and
// rejects the set if any index is out of range.
func (m *Mesh) uniqueVerts(op string, indices []VertIndex) ([]VertIndex, bool) {
	seen := make(VertSet, len(indices))
	out := make([]VertIndex, 0, len(indices))
	for _, v := range indices {
		if !m.hasVert(v) {
			return nil, reject(op, "vertex out of range", "index", v)
		}
		if seen.Has(v) {
			continue
		}
		seen.Add(v)
		out = append(out, v)
	}
	return out, true
}
