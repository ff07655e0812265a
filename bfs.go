package polyedit

import "slices"

// ShortestPath finds the route with the fewest edges from start to end over
// the undirected graph formed by lines. Neighbours are visited in line
// order, so among equally short routes the one using earlier lines wins.
//
// The returned path runs from start to end inclusive. start == end yields
// [start]; an unreachable end yields nil.
func ShortestPath(start, end VertIndex, lines []Line) []VertIndex {
	if start == end {
		return []VertIndex{start}
	}

	visited := NewVertSet(start)
	prev := make(map[VertIndex]VertIndex)
	frontier := []VertIndex{start}
	found := false

	for len(frontier) > 0 && !found {
		next := make([]VertIndex, 0)
		for _, v := range frontier {
			for _, n := range linkedVerts(v, lines, visited) {
				visited.Add(n)
				prev[n] = v
				next = append(next, n)
				if n == end {
					found = true
				}
			}
			if found {
				break
			}
		}
		frontier = next
	}
	if !found {
		return nil
	}

	path := []VertIndex{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// linkedVerts returns the unvisited neighbours of v in line order.
func linkedVerts(v VertIndex, lines []Line, visited VertSet) []VertIndex {
	out := make([]VertIndex, 0)
	for _, l := range lines {
		var other VertIndex
		switch v {
		case l[0]:
			other = l[1]
		case l[1]:
			other = l[0]
		default:
			continue
		}
		if visited.Has(other) {
			continue
		}
		// a vertex linked twice from v is only queued once
		visited.Add(other)
		out = append(out, other)
	}
	return out
}

// FindVertsBetween returns the shortest path between two vertices over the
// mesh's lines, or nil if either index is out of range or no path exists.
func (m *Mesh) FindVertsBetween(start, end VertIndex) []VertIndex {
	if !m.hasVert(start) || !m.hasVert(end) {
		return nil
	}
	return ShortestPath(start, end, m.lines)
}
