package polyedit

import "github.com/go-gl/mathgl/mgl64"

// NewCube returns a cube spanning -1 to 1 on every axis.
func NewCube() *Mesh {
	return newBox([8]mgl64.Vec3{
		{-1, -1, -1},
		{1, -1, -1},
		{1, 1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
		{1, -1, 1},
		{1, 1, 1},
		{-1, 1, 1},
	})
}

// NewTaperedBox returns a flat box, 4 long in z, whose top face is smaller
// than its bottom face.
func NewTaperedBox() *Mesh {
	return newBox([8]mgl64.Vec3{
		{-1, -0.25, -2},
		{1, -0.25, -2},
		{0.8, 0.25, -1.6},
		{-0.8, 0.25, -1.6},
		{-1, -0.25, 2},
		{1, -0.25, 2},
		{0.8, 0.25, 1.6},
		{-0.8, 0.25, 1.6},
	})
}

// newBox builds the shared box topology. Corners 0-3 are the front face
// (bottom left, bottom right, top right, top left) and 4-7 the back face in
// the same order.
func newBox(corners [8]mgl64.Vec3) *Mesh {
	m := NewMesh()
	for _, c := range corners {
		m.AddVert(c)
	}
	for _, l := range [...]Line{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // front
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // back
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	} {
		m.AddLine(l)
	}
	for _, p := range []Poly{
		{0, 1, 2, 3}, // front
		{5, 4, 7, 6}, // back
		{0, 4, 5, 1}, // bottom
		{3, 2, 6, 7}, // top
		{0, 3, 7, 4}, // left
		{1, 5, 6, 2}, // right
	} {
		m.AddPoly(p)
	}
	return m
}
