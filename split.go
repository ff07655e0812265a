package polyedit

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type lineSplit struct {
	line Line
	mid  VertIndex
}

// SplitLines inserts a vertex at the midpoint of each selected line. The line
// is replaced by two halves, and every poly using the edge gets the new
// vertex between its endpoints. The new vertex indices are returned in
// ascending line order.
func (m *Mesh) SplitLines(lines []LineIndex) ([]VertIndex, bool) {
	selected := make([]LineIndex, 0, len(lines))
	for _, li := range lines {
		if uint(li) >= uint(len(m.lines)) {
			return nil, reject("SplitLines", "line out of range", "index", li)
		}
		selected = append(selected, li)
	}
	slices.Sort(selected)
	selected = slices.Compact(selected)

	splits := make([]lineSplit, len(selected))
	for k, li := range selected {
		splits[k] = lineSplit{
			line: m.lines[li],
			mid:  VertIndex(len(m.verts) + k),
		}
	}

	added := make([]VertIndex, len(splits))
	for k, s := range splits {
		pos, _ := m.Midpoint(s.line)
		m.verts = append(m.verts, pos)
		added[k] = s.mid
	}

	m.removeLineIndices(selected)
	for _, s := range splits {
		m.lines = append(m.lines,
			Line{s.line[0], s.mid},
			Line{s.mid, s.line[1]},
		)
	}

	for i := range m.polys {
		for _, s := range splits {
			m.polys[i] = insertOnEdge(m.polys[i], s.line, s.mid)
		}
	}
	return added, true
}

// removeLineIndices drops the lines at the given ascending indices, keeping
// the rest in order.
func (m *Mesh) removeLineIndices(sorted []LineIndex) {
	if len(sorted) == 0 {
		return
	}
	kept := m.lines[:0]
	next := 0
	for i, l := range m.lines {
		if next < len(sorted) && LineIndex(i) == sorted[next] {
			next++
			continue
		}
		kept = append(kept, l)
	}
	m.lines = kept
}

// insertOnEdge inserts mid between the first adjacent pair of p forming the
// undirected edge e, counting the pair from the last vertex back to the
// first. p is returned unchanged when the edge is absent.
func insertOnEdge(p Poly, e Line, mid VertIndex) Poly {
	n := len(p)
	for j := 0; j < n; j++ {
		if !e.SameEdge(p[j], p[(j+1)%n]) {
			continue
		}
		if j == n-1 {
			return append(p, mid)
		}
		return slices.Insert(p, j+1, mid)
	}
	return p
}

// Midpoint is the position SplitLines gives the vertex it inserts on l.
func (m *Mesh) Midpoint(l Line) (mgl64.Vec3, bool) {
	a, okA := m.Vert(l[0])
	b, okB := m.Vert(l[1])
	if !okA || !okB {
		return InvalidPosition, false
	}
	return a.Add(b).Mul(0.5), true
}
