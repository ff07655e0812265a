package polyedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	testCases := []struct {
		name          string
		split         []LineIndex
		expectedNew   []VertIndex
		expectedPoly  Poly
		expectedLines []Line
	}{
		{
			name:          "single edge",
			split:         []LineIndex{0},
			expectedNew:   []VertIndex{4},
			expectedPoly:  Poly{0, 4, 1, 2, 3},
			expectedLines: []Line{{1, 2}, {2, 3}, {3, 0}, {0, 4}, {4, 1}},
		},
		{
			name:          "wrap-around edge",
			split:         []LineIndex{3},
			expectedNew:   []VertIndex{4},
			expectedPoly:  Poly{0, 1, 2, 3, 4},
			expectedLines: []Line{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}},
		},
		{
			name:          "two adjacent edges make a hexagon",
			split:         []LineIndex{1, 0},
			expectedNew:   []VertIndex{4, 5},
			expectedPoly:  Poly{0, 4, 1, 5, 2, 3},
			expectedLines: []Line{{2, 3}, {3, 0}, {0, 4}, {4, 1}, {1, 5}, {5, 2}},
		},
		{
			name:          "repeated index splits once",
			split:         []LineIndex{2, 2},
			expectedNew:   []VertIndex{4},
			expectedPoly:  Poly{0, 1, 2, 4, 3},
			expectedLines: []Line{{0, 1}, {1, 2}, {3, 0}, {2, 4}, {4, 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newSquare()

			added, ok := m.SplitLines(tc.split)
			require.True(t, ok)
			assert.Equal(t, tc.expectedNew, added)
			assert.Equal(t, []Poly{tc.expectedPoly}, m.Polys())
			assert.Equal(t, tc.expectedLines, m.Lines())
			assert.NoError(t, m.Validate())
		})
	}
}

func TestSplitLinesMidpoint(t *testing.T) {
	m := newSquare()

	added, ok := m.SplitLines([]LineIndex{0, 3})
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, m.Verts()[added[0]])
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, m.Verts()[added[1]])
}

func TestSplitLinesReversedEdge(t *testing.T) {
	m := newTestMesh(
		[]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}},
		[]Line{{1, 0}},
		[]Poly{{0, 1, 2, 3}},
	)

	_, ok := m.SplitLines([]LineIndex{0})
	require.True(t, ok)
	assert.Equal(t, Poly{0, 4, 1, 2, 3}, m.Polys()[0])
	assert.Equal(t, []Line{{1, 4}, {4, 0}}, m.Lines())
}

func TestSplitLinesSharedEdge(t *testing.T) {
	// two quads sharing edge 1-2
	m := newTestMesh(
		[]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 0, 0}, {2, 1, 0}},
		[]Line{{1, 2}},
		[]Poly{{0, 1, 2, 3}, {1, 4, 5, 2}},
	)

	_, ok := m.SplitLines([]LineIndex{0})
	require.True(t, ok)
	assert.Equal(t, []Poly{{0, 1, 6, 2, 3}, {1, 4, 5, 2, 6}}, m.Polys())
	assert.NoError(t, m.Validate())
}

func TestSplitLinesEmptySelection(t *testing.T) {
	m := newSquare()
	before := m.Copy()

	added, ok := m.SplitLines(nil)
	assert.True(t, ok)
	assert.Empty(t, added)
	assert.True(t, m.Equal(before))
}
