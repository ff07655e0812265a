package polyedit

// DuplicateVerts copies the selected vertices together with every line and
// poly lying entirely inside the selection. With extrusion the copy stays
// attached to the original: each vertex gets a line to its duplicate and
// each copied line gets a bridging quad. The returned map sends each
// original vertex to its duplicate.
func (m *Mesh) DuplicateVerts(indices []VertIndex, withExtrusion bool) (map[VertIndex]VertIndex, bool) {
	targets, ok := m.uniqueVerts("DuplicateVerts", indices)
	if !ok {
		return nil, false
	}
	if len(targets) == 0 {
		return nil, reject("DuplicateVerts", "empty vertex set")
	}

	set := NewVertSet(targets...)
	lines := m.SelectedLines(m.LinesWithin(set))
	polys := m.SelectedPolys(m.PolysWithin(set))

	dup := make(map[VertIndex]VertIndex, len(targets))
	for _, v := range targets {
		dup[v] = m.AddVert(m.verts[v])
	}

	for _, l := range lines {
		m.lines = append(m.lines, Line{dup[l[0]], dup[l[1]]})
	}
	for _, p := range polys {
		c := make(Poly, len(p))
		for j, v := range p {
			c[j] = dup[v]
		}
		m.polys = append(m.polys, c)
	}

	if withExtrusion {
		for _, v := range targets {
			m.lines = append(m.lines, Line{v, dup[v]})
		}
		for _, l := range lines {
			a, b := l[0], l[1]
			if a == b {
				continue
			}
			m.polys = append(m.polys, Poly{a, b, dup[b], dup[a]})
		}
	}
	return dup, true
}
