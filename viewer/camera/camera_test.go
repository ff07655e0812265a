package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

var testViewport = Viewport{X: 10, Y: 20, W: 800, H: 600}

func TestPaneRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		plane polyedit.Plane
		world mgl64.Vec3
	}{
		{"XY", polyedit.PlaneXY, mgl64.Vec3{3, -1, 7}},
		{"XZ", polyedit.PlaneXZ, mgl64.Vec3{3, 9, -1}},
		{"YZ", polyedit.PlaneYZ, mgl64.Vec3{9, 3, -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPane(tc.plane)
			p.Pan = mgl64.Vec2{1, 2}

			screen := p.WorldToScreen(tc.world, testViewport)
			got := p.ScreenToPlane(screen, testViewport)
			assert.InDeltaSlice(t, []float64{3, -1}, got[:], delta)

			back := p.ScreenToWorld(screen, testViewport)
			uv, depth := tc.plane.Project(back)
			assert.InDeltaSlice(t, []float64{3, -1}, uv[:], delta)
			assert.Zero(t, depth)
		})
	}
}

func TestPaneAxesPointRightAndUp(t *testing.T) {
	p := NewPane(polyedit.PlaneXY)
	center := p.WorldToScreen(mgl64.Vec3{}, testViewport)
	assert.InDeltaSlice(t, []float64{410, 320}, center[:], delta)

	right := p.WorldToScreen(mgl64.Vec3{1, 0, 0}, testViewport)
	up := p.WorldToScreen(mgl64.Vec3{0, 1, 0}, testViewport)
	assert.Greater(t, right[0], center[0])
	assert.Less(t, up[1], center[1])
	// 5 world units span half the 600px height
	assert.InDelta(t, 60, center[1]-up[1], delta)
}

func TestPanePick(t *testing.T) {
	m := polyedit.NewMesh()
	m.AddVert(mgl64.Vec3{0, 0, 1})
	m.AddVert(mgl64.Vec3{0, 0, 3})
	m.AddVert(mgl64.Vec3{0, 1, 0})
	m.AddVert(mgl64.Vec3{0, 3, 0})
	m.AddVert(mgl64.Vec3{4, 4, 4})

	center := mgl64.Vec2{410, 320}

	xy := NewPane(polyedit.PlaneXY)
	assert.Equal(t, []polyedit.VertIndex{1, 0}, xy.Pick(m, center, 5, testViewport))

	xz := NewPane(polyedit.PlaneXZ)
	assert.Equal(t, []polyedit.VertIndex{2, 3}, xz.Pick(m, center, 5, testViewport))
}

func TestPaneZoomAndPan(t *testing.T) {
	p := NewPane(polyedit.PlaneXY)
	p.Zoom(0.5)
	assert.InDelta(t, 2.5, p.Distance, delta)
	p.Zoom(0)
	assert.Greater(t, p.Distance, 0.0)

	p = NewPane(polyedit.PlaneXY)
	before := p.WorldToScreen(mgl64.Vec3{1, 1, 0}, testViewport)
	p.PanBy(30, -40, testViewport)
	after := p.WorldToScreen(mgl64.Vec3{1, 1, 0}, testViewport)
	assert.InDeltaSlice(t, []float64{before[0] + 30, before[1] - 40}, after[:], 1e-6)
}

func TestOrbitProject(t *testing.T) {
	o := NewOrbit()
	mvp := o.ViewProjection(testViewport, mgl64.Ident4())

	screen, depth, ok := Project(mgl64.Vec3{}, mvp, testViewport)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{410, 320}, screen[:], delta)
	assert.InDelta(t, o.Distance, depth, delta)

	_, _, ok = Project(mgl64.Vec3{0, 0, 2 * o.Distance}, mvp, testViewport)
	assert.False(t, ok)
}

func TestOrbitRotateClampsPitch(t *testing.T) {
	o := NewOrbit()
	o.Rotate(0.5, 10)
	assert.InDelta(t, 0.5, o.Yaw, delta)
	assert.Less(t, o.Pitch, 1.5708)

	// a quarter yaw turns +x towards the viewer
	o = NewOrbit()
	o.Rotate(-mgl64.DegToRad(90), 0)
	mvp := o.ViewProjection(testViewport, mgl64.Ident4())
	_, depth, ok := Project(mgl64.Vec3{1, 0, 0}, mvp, testViewport)
	require.True(t, ok)
	assert.InDelta(t, o.Distance-1, depth, 1e-6)
}

func TestOrbitRay(t *testing.T) {
	o := NewOrbit()
	start, end, err := o.Ray(mgl64.Vec2{410, 320}, testViewport)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, o.Distance - 0.1}, start[:], 1e-6)
	assert.InDelta(t, 0, end[0], 1e-6)
	assert.InDelta(t, 0, end[1], 1e-6)
	assert.Less(t, end[2], -900.0)
}

func TestOrbitPickPoly(t *testing.T) {
	m := polyedit.NewCube()
	center := mgl64.Vec2{410, 320}

	o := NewOrbit()
	got, ok := o.PickPoly(m, center, testViewport)
	require.True(t, ok)
	assert.Equal(t, polyedit.PolyIndex(1), got)

	_, ok = o.PickPoly(m, mgl64.Vec2{20, 30}, testViewport)
	assert.False(t, ok)

	o.Rotate(-mgl64.DegToRad(90), 0)
	got, ok = o.PickPoly(m, center, testViewport)
	require.True(t, ok)
	assert.Equal(t, polyedit.PolyIndex(5), got)
}
