package polyedit

import "github.com/go-gl/mathgl/mgl64"

// MutateVerts applies f to each vertex in indices. f receives the vertex's
// current position and the centroid of the whole set, and returns the new
// position. An empty set or an out-of-range index leaves the mesh unchanged.
func (m *Mesh) MutateVerts(indices []VertIndex, f func(v, center mgl64.Vec3) mgl64.Vec3) bool {
	targets, ok := m.uniqueVerts("MutateVerts", indices)
	if !ok {
		return false
	}
	if len(targets) == 0 {
		return reject("MutateVerts", "empty vertex set")
	}

	center := m.centroid(targets)
	for _, i := range targets {
		m.verts[i] = f(m.verts[i], center)
	}
	return true
}

func (m *Mesh) TranslateVerts(indices []VertIndex, delta mgl64.Vec3) bool {
	return m.MutateVerts(indices, func(v, _ mgl64.Vec3) mgl64.Vec3 {
		return v.Add(delta)
	})
}

// ScaleVerts scales the set uniformly about its centroid.
func (m *Mesh) ScaleVerts(indices []VertIndex, factor float64) bool {
	return m.MutateVerts(indices, func(v, c mgl64.Vec3) mgl64.Vec3 {
		return c.Add(v.Sub(c).Mul(factor))
	})
}

// ScaleVertsAroundAxis scales the offset from the centroid in the plane
// orthogonal to axis. The axis coordinate is left alone.
func (m *Mesh) ScaleVertsAroundAxis(indices []VertIndex, factor float64, axis Axis) bool {
	return m.MutateVerts(indices, func(v, c mgl64.Vec3) mgl64.Vec3 {
		out := c.Add(v.Sub(c).Mul(factor))
		out[axis.component()] = v[axis.component()]
		return out
	})
}

// ScaleVertsAlongAxis scales only the coordinate matching axis.
func (m *Mesh) ScaleVertsAlongAxis(indices []VertIndex, factor float64, axis Axis) bool {
	return m.MutateVerts(indices, func(v, c mgl64.Vec3) mgl64.Vec3 {
		k := axis.component()
		v[k] = c[k] + (v[k]-c[k])*factor
		return v
	})
}

// RotateVerts rotates the set about the line through its centroid parallel
// to axis.
func (m *Mesh) RotateVerts(indices []VertIndex, radians float64, axis Axis) bool {
	rot := mgl64.Rotate2D(radians)
	a, b := axis.rotationPair()
	return m.MutateVerts(indices, func(v, c mgl64.Vec3) mgl64.Vec3 {
		off := v.Sub(c)
		r := rot.Mul2x1(mgl64.Vec2{off[a], off[b]})
		off[a], off[b] = r[0], r[1]
		return c.Add(off)
	})
}

func (m *Mesh) centroid(indices []VertIndex) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, i := range indices {
		sum = sum.Add(m.verts[i])
	}
	return sum.Mul(1 / float64(len(indices)))
}

func (a Axis) component() int {
	return int(a)
}

// rotationPair names the two components a rotation about the axis acts on,
// in the order (a, b) fed to the 2D rotation.
func (a Axis) rotationPair() (int, int) {
	switch a {
	case AxisX:
		return 2, 1
	case AxisY:
		return 0, 2
	default:
		return 0, 1
	}
}
