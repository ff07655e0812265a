package polyedit

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const hitEpsilon = 1e-9

// PolysOnSegment returns the polys crossed by the segment from start to end,
// nearest to start first. Each poly is taken to be planar and convex, lying
// in the plane of its first three vertices.
func (m *Mesh) PolysOnSegment(start, end mgl64.Vec3) []PolyIndex {
	type hit struct {
		poly PolyIndex
		t    float64
	}

	dir := end.Sub(start)
	var hits []hit
	for pi, p := range m.polys {
		if t, ok := m.segmentHitsPoly(start, dir, p); ok {
			hits = append(hits, hit{poly: PolyIndex(pi), t: t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].t < hits[j].t
	})

	out := make([]PolyIndex, len(hits))
	for i, h := range hits {
		out[i] = h.poly
	}
	return out
}

// segmentHitsPoly returns where along dir, as a fraction in [0, 1], the
// segment meets the plane of p, and whether that point lies inside p.
func (m *Mesh) segmentHitsPoly(start, dir mgl64.Vec3, p Poly) (float64, bool) {
	if m.validatePoly(p) != nil {
		return 0, false
	}
	p0 := m.verts[p[0]]
	normal := m.verts[p[1]].Sub(p0).Cross(m.verts[p[2]].Sub(p0))

	along := normal.Dot(dir)
	if math.Abs(along) < hitEpsilon {
		return 0, false
	}
	t := -normal.Dot(start.Sub(p0)) / along
	if t < -hitEpsilon || t > 1+hitEpsilon {
		return 0, false
	}
	return t, m.pointInPoly(start.Add(dir.Mul(t)), p, normal)
}

// pointInPoly casts a 2D ray across p after dropping the coordinate where
// the normal is largest. point must lie in the plane of p.
func (m *Mesh) pointInPoly(point mgl64.Vec3, p Poly, normal mgl64.Vec3) bool {
	ax, ay, az := math.Abs(normal[0]), math.Abs(normal[1]), math.Abs(normal[2])
	u, v := 0, 1
	switch {
	case ax > ay && ax > az:
		u, v = 1, 2
	case ay > ax && ay > az:
		u, v = 0, 2
	}

	inside := false
	for i := range p {
		a, b := m.verts[p[i]], m.verts[p[(i+1)%len(p)]]
		if (a[v] > point[v]) != (b[v] > point[v]) {
			x := (b[u]-a[u])*(point[v]-a[v])/(b[v]-a[v]) + a[u]
			if point[u] < x {
				inside = !inside
			}
		}
	}
	return inside
}
