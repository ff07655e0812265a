package polyedit

import (
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPartialCount is the number of shared vertices at which a poly is
// treated as bordering a selection.
const DefaultPartialCount = 3

// VertSet is a set of vertex indices, typically a caller-owned selection.
type VertSet map[VertIndex]struct{}

func NewVertSet(indices ...VertIndex) VertSet {
	s := make(VertSet, len(indices))
	for _, v := range indices {
		s[v] = struct{}{}
	}
	return s
}

func (s VertSet) Add(v VertIndex) { s[v] = struct{}{} }

func (s VertSet) Has(v VertIndex) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s VertSet) Sorted() []VertIndex {
	out := make([]VertIndex, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// FindVertsInPlane projects every vertex onto plane and returns those within
// radius of target, nearest depth first. Vertices with equal depth keep
// their array order.
func (m *Mesh) FindVertsInPlane(target mgl64.Vec2, plane Plane, radius float64) []VertIndex {
	type hit struct {
		index VertIndex
		depth float64
	}
	hits := make([]hit, 0)
	for i, v := range m.verts {
		p, depth := plane.Project(v)
		if p.Sub(target).Len() <= radius {
			hits = append(hits, hit{index: VertIndex(i), depth: depth})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].depth < hits[b].depth
	})

	out := make([]VertIndex, len(hits))
	for i, h := range hits {
		out[i] = h.index
	}
	return out
}

// LinesWithin returns the lines whose endpoints are both in set.
func (m *Mesh) LinesWithin(set VertSet) []LineIndex {
	out := make([]LineIndex, 0)
	for i, l := range m.lines {
		if set.Has(l[0]) && set.Has(l[1]) {
			out = append(out, LineIndex(i))
		}
	}
	return out
}

// PolysWithin returns the polys whose vertices are all in set.
func (m *Mesh) PolysWithin(set VertSet) []PolyIndex {
	out := make([]PolyIndex, 0)
	for i, p := range m.polys {
		if countInSet(p, set) == len(p) {
			out = append(out, PolyIndex(i))
		}
	}
	return out
}

// PolysPartiallyWithin returns the polys with at least minCount vertices in set.
func (m *Mesh) PolysPartiallyWithin(set VertSet, minCount int) []PolyIndex {
	out := make([]PolyIndex, 0)
	for i, p := range m.polys {
		if countInSet(p, set) >= minCount {
			out = append(out, PolyIndex(i))
		}
	}
	return out
}

// VertsOfPolys concatenates the vertices of the given polys. The result is
// not de-duplicated.
func (m *Mesh) VertsOfPolys(polys []PolyIndex) []VertIndex {
	out := make([]VertIndex, 0)
	for _, pi := range polys {
		if p, ok := m.Poly(pi); ok {
			out = append(out, p...)
		}
	}
	return out
}

// GrowSelection extends set to every vertex of the polys it borders.
func (m *Mesh) GrowSelection(set VertSet) VertSet {
	polys := m.PolysPartiallyWithin(set, DefaultPartialCount)
	return NewVertSet(m.VertsOfPolys(polys)...)
}

// SelectedVerts returns the positions of indices in the given order,
// skipping indices that are out of range.
func (m *Mesh) SelectedVerts(indices []VertIndex) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(indices))
	for _, i := range indices {
		if v, ok := m.Vert(i); ok {
			out = append(out, v)
		}
	}
	return out
}

func (m *Mesh) SelectedLines(indices []LineIndex) []Line {
	out := make([]Line, 0, len(indices))
	for _, i := range indices {
		if l, ok := m.Line(i); ok {
			out = append(out, l)
		}
	}
	return out
}

func (m *Mesh) SelectedPolys(indices []PolyIndex) []Poly {
	out := make([]Poly, 0, len(indices))
	for _, i := range indices {
		if p, ok := m.Poly(i); ok {
			out = append(out, p)
		}
	}
	return out
}

func countInSet(p Poly, set VertSet) int {
	n := 0
	for _, v := range p {
		if set.Has(v) {
			n++
		}
	}
	return n
}
