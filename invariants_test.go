package polyedit

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomOps throws a mix of valid and invalid edits at a mesh. Indices are
// drawn from a range slightly larger than the mesh so some calls fail.
func randomOps(rng *rand.Rand) []func(m *Mesh) bool {
	vert := func(m *Mesh) VertIndex { return VertIndex(rng.Intn(len(m.Verts()) + 2)) }
	line := func(m *Mesh) LineIndex { return LineIndex(rng.Intn(len(m.Lines()) + 2)) }
	poly := func(m *Mesh) PolyIndex { return PolyIndex(rng.Intn(len(m.Polys()) + 2)) }
	verts := func(m *Mesh) []VertIndex {
		out := make([]VertIndex, rng.Intn(4))
		for i := range out {
			out[i] = vert(m)
		}
		return out
	}
	pos := func() mgl64.Vec3 {
		return mgl64.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
	}

	return []func(m *Mesh) bool{
		func(m *Mesh) bool { m.AddVert(pos()); return true },
		func(m *Mesh) bool { return m.UpdateVert(vert(m), pos()) },
		func(m *Mesh) bool { _, ok := m.DeleteVert(vert(m)); return ok },
		func(m *Mesh) bool { return m.DeleteVerts(verts(m)) > 0 },
		func(m *Mesh) bool { return m.AddLine(Line{vert(m), vert(m)}) },
		func(m *Mesh) bool { _, ok := m.RemoveLine(line(m)); return ok },
		func(m *Mesh) bool { return m.AddPoly(Poly(append(verts(m), vert(m), vert(m)))) },
		func(m *Mesh) bool { _, ok := m.RemovePoly(poly(m)); return ok },
		func(m *Mesh) bool { _, ok := m.SplitLines([]LineIndex{line(m), line(m)}); return ok },
		func(m *Mesh) bool { _, ok := m.DuplicateVerts(verts(m), rng.Intn(2) == 0); return ok },
		func(m *Mesh) bool { return m.ConnectVerts(vert(m), vert(m), true) },
		func(m *Mesh) bool { return m.TranslateVerts(verts(m), pos()) },
		func(m *Mesh) bool { return m.RotateVerts(verts(m), rng.Float64(), Axis(rng.Intn(3))) },
	}
}

func TestRandomEditsKeepIntegrity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ops := randomOps(rng)
	m := NewCube()

	for step := 0; step < 3000; step++ {
		op := rng.Intn(len(ops))
		before := m.Copy()

		if !ops[op](m) {
			require.True(t, m.Equal(before), "step %d: rejected op %d changed the mesh", step, op)
		}
		require.NoError(t, m.Validate(), "step %d: op %d", step, op)

		// keep the mesh from growing without bound
		if len(m.Verts()) > 200 {
			m = NewCube()
		}
	}
	assert.NoError(t, m.Validate())
}
