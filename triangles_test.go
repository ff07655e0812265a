package polyedit

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanTriangles(t *testing.T) {
	testCases := []struct {
		name     string
		poly     Poly
		expected []VertIndex
	}{
		{"triangle", Poly{4, 5, 6}, []VertIndex{4, 5, 6}},
		{"quad", Poly{0, 1, 2, 3}, []VertIndex{0, 1, 2, 0, 2, 3}},
		{"pentagon", Poly{9, 8, 7, 6, 5}, []VertIndex{9, 8, 7, 9, 7, 6, 9, 6, 5}},
		{"degenerate", Poly{0, 1}, []VertIndex{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FanTriangles(tc.poly))
		})
	}
}

func TestMeshTriangles(t *testing.T) {
	m := NewCube()
	assert.Len(t, m.Triangles(), 6*2*3)
	assert.Equal(t, []VertIndex{1, 5, 6, 1, 6, 2}, m.SelectedTriangles([]PolyIndex{5}))
}

func TestLineSegments(t *testing.T) {
	m := newSquare()
	segs := m.LineSegments()
	require.Len(t, segs, 4)
	assert.Equal(t, [2]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}}, segs[0])
}

func TestStaleIndexIsVisible(t *testing.T) {
	m := &Mesh{
		verts: []mgl64.Vec3{vA},
		lines: []Line{{0, 3}},
	}

	seg := m.LineSegments()[0]
	assert.Equal(t, vA, seg[0])
	for _, c := range seg[1] {
		assert.True(t, math.IsNaN(c))
	}
}

func TestValidate(t *testing.T) {
	verts := []mgl64.Vec3{vA, vB, vC}
	testCases := []struct {
		name  string
		mesh  *Mesh
		kind  error
		owner string
	}{
		{"valid", &Mesh{verts: verts, lines: []Line{{0, 1}}, polys: []Poly{{0, 1, 2}}}, nil, ""},
		{"line out of range", &Mesh{verts: verts, lines: []Line{{0, 1}, {2, 3}}}, ErrIndexOutOfRange, "line"},
		{"poly out of range", &Mesh{verts: verts, polys: []Poly{{0, 1, 5}}}, ErrIndexOutOfRange, "poly"},
		{"poly too small", &Mesh{verts: verts, polys: []Poly{{0, 1}}}, ErrPolyTooSmall, "poly"},
		{"poly duplicate", &Mesh{verts: verts, polys: []Poly{{0, 1, 0}}}, ErrDuplicateVert, "poly"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mesh.Validate()
			if tc.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind))

			var ie *IntegrityError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.owner, ie.Owner)
		})
	}
}

func TestPrimitives(t *testing.T) {
	for name, m := range map[string]*Mesh{"cube": NewCube(), "tapered box": NewTaperedBox()} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, m.Verts(), 8)
			assert.Len(t, m.Lines(), 12)
			assert.Len(t, m.Polys(), 6)
			assert.NoError(t, m.Validate())
		})
	}
	assert.Equal(t, mgl64.Vec3{0.8, 0.25, 1.6}, NewTaperedBox().Verts()[6])
}
