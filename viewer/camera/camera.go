// Package camera converts between mesh space and screen space for the
// orthographic editing panes and the perspective orbit view.
package camera

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyedit"
)

// Viewport is a screen rectangle in pixels, y pointing down.
type Viewport struct {
	X, Y, W, H float64
}

func (vp Viewport) aspect() float64 {
	if vp.H == 0 {
		return 1
	}
	return vp.W / vp.H
}

// toScreen maps normalized device coordinates onto the viewport.
func (vp Viewport) toScreen(ndc mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		vp.X + (ndc[0]+1)/2*vp.W,
		vp.Y + (1-ndc[1])/2*vp.H,
	}
}

func (vp Viewport) toNDC(screen mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		(screen[0]-vp.X)/vp.W*2 - 1,
		1 - (screen[1]-vp.Y)/vp.H*2,
	}
}

const (
	defaultDistance = 5.0
	orbitDistance   = 10.0
	minDistance     = 0.01

	paneDepth = 1000.0
)

// Pane is an orthographic view looking straight down one coordinate plane.
// Distance is half the visible height in world units.
type Pane struct {
	Plane    polyedit.Plane
	Pan      mgl64.Vec2
	Distance float64
}

func NewPane(plane polyedit.Plane) *Pane {
	return &Pane{Plane: plane, Distance: defaultDistance}
}

// View returns the world-to-eye matrix. The pane's first in-plane axis
// points right and the second points up.
func (p *Pane) View() mgl64.Mat4 {
	target := p.Plane.Unproject(p.Pan, 0)
	var eye, up mgl64.Vec3
	switch p.Plane {
	case polyedit.PlaneXZ:
		eye, up = target.Sub(mgl64.Vec3{0, paneDepth / 2, 0}), mgl64.Vec3{0, 0, 1}
	case polyedit.PlaneYZ:
		eye, up = target.Add(mgl64.Vec3{paneDepth / 2, 0, 0}), mgl64.Vec3{0, 0, 1}
	default:
		eye, up = target.Add(mgl64.Vec3{0, 0, paneDepth / 2}), mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(eye, target, up)
}

func (p *Pane) Projection(vp Viewport) mgl64.Mat4 {
	w := p.Distance * vp.aspect()
	return mgl64.Ortho(-w, w, -p.Distance, p.Distance, 0, paneDepth)
}

func (p *Pane) ModelView(model mgl64.Mat4) mgl64.Mat4 {
	return p.View().Mul4(model)
}

// WorldToScreen projects a point onto the viewport.
func (p *Pane) WorldToScreen(pos mgl64.Vec3, vp Viewport) mgl64.Vec2 {
	screen, _, _ := Project(pos, p.Projection(vp).Mul4(p.ModelView(mgl64.Ident4())), vp)
	return screen
}

// ScreenToPlane returns the in-plane coordinates under a screen point.
func (p *Pane) ScreenToPlane(screen mgl64.Vec2, vp Viewport) mgl64.Vec2 {
	ndc := vp.toNDC(screen)
	return mgl64.Vec2{
		ndc[0]*p.Distance*vp.aspect() + p.Pan[0],
		ndc[1]*p.Distance + p.Pan[1],
	}
}

// ScreenToWorld returns the point under a screen position at zero depth.
func (p *Pane) ScreenToWorld(screen mgl64.Vec2, vp Viewport) mgl64.Vec3 {
	return p.Plane.Unproject(p.ScreenToPlane(screen, vp), 0)
}

// PixelsToWorld converts a screen distance to world units.
func (p *Pane) PixelsToWorld(px float64, vp Viewport) float64 {
	if vp.H == 0 {
		return 0
	}
	return px * 2 * p.Distance / vp.H
}

// Pick returns the vertices within radius pixels of a screen point, nearest
// to the viewer first.
func (p *Pane) Pick(m *polyedit.Mesh, screen mgl64.Vec2, radius float64, vp Viewport) []polyedit.VertIndex {
	hits := m.FindVertsInPlane(p.ScreenToPlane(screen, vp), p.Plane, p.PixelsToWorld(radius, vp))
	// FindVertsInPlane sorts by ascending depth; the XY and YZ eyes sit on
	// the positive side so the nearest vertex is the deepest one.
	if p.Plane != polyedit.PlaneXZ {
		slices.Reverse(hits)
	}
	return hits
}

// PanBy moves the view by a screen-space drag.
func (p *Pane) PanBy(dx, dy float64, vp Viewport) {
	p.Pan[0] -= p.PixelsToWorld(dx, vp)
	p.Pan[1] += p.PixelsToWorld(dy, vp)
}

// Zoom scales the visible area; factors above 1 zoom out.
func (p *Pane) Zoom(factor float64) {
	p.Distance = math.Max(p.Distance*factor, minDistance)
}

// Orbit is a perspective camera circling the origin.
type Orbit struct {
	Yaw, Pitch float64
	Distance   float64
	FOV        float64 // vertical, radians
}

func NewOrbit() *Orbit {
	return &Orbit{Distance: orbitDistance, FOV: mgl64.DegToRad(45)}
}

// Rotate turns the model by yaw about Y and pitch about X. Pitch is clamped
// short of straight up or down.
func (o *Orbit) Rotate(yaw, pitch float64) {
	o.Yaw += yaw
	o.Pitch = mgl64.Clamp(o.Pitch+pitch, -math.Pi/2+0.01, math.Pi/2-0.01)
}

func (o *Orbit) Zoom(factor float64) {
	o.Distance = math.Max(o.Distance*factor, minDistance)
}

// Model applies the orbit rotation to the mesh.
func (o *Orbit) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(o.Pitch).Mul4(mgl64.HomogRotate3DY(o.Yaw))
}

func (o *Orbit) View() mgl64.Mat4 {
	return mgl64.LookAtV(mgl64.Vec3{0, 0, o.Distance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

func (o *Orbit) Projection(vp Viewport) mgl64.Mat4 {
	return mgl64.Perspective(o.FOV, vp.aspect(), 0.1, 1000)
}

// ModelView combines the view and orbit rotation with an extra model
// transform such as a mirror instance.
func (o *Orbit) ModelView(model mgl64.Mat4) mgl64.Mat4 {
	return o.View().Mul4(o.Model()).Mul4(model)
}

func (o *Orbit) ViewProjection(vp Viewport, model mgl64.Mat4) mgl64.Mat4 {
	return o.Projection(vp).Mul4(o.ModelView(model))
}

// Ray returns the segment in mesh space running from the near plane to the
// far plane under a screen point.
func (o *Orbit) Ray(screen mgl64.Vec2, vp Viewport) (start, end mgl64.Vec3, err error) {
	mv, proj := o.ModelView(mgl64.Ident4()), o.Projection(vp)
	// UnProject expects window coordinates with y pointing up.
	win := mgl64.Vec2{screen[0] - vp.X, vp.H - (screen[1] - vp.Y)}
	w, h := int(vp.W), int(vp.H)

	if start, err = mgl64.UnProject(win.Vec3(0), mv, proj, 0, 0, w, h); err != nil {
		return start, end, err
	}
	end, err = mgl64.UnProject(win.Vec3(1), mv, proj, 0, 0, w, h)
	return start, end, err
}

// PickPoly returns the poly nearest the viewer under a screen point.
func (o *Orbit) PickPoly(m *polyedit.Mesh, screen mgl64.Vec2, vp Viewport) (polyedit.PolyIndex, bool) {
	start, end, err := o.Ray(screen, vp)
	if err != nil {
		return 0, false
	}
	hits := m.PolysOnSegment(start, end)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[0], true
}

// Project maps pos through mvp onto the viewport. The depth is the eye-space
// distance used for sorting; ok is false for points behind the camera.
func Project(pos mgl64.Vec3, mvp mgl64.Mat4, vp Viewport) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := mvp.Mul4x1(pos.Vec4(1))
	if clip[3] <= 0 {
		return mgl64.Vec2{}, 0, false
	}
	return vp.toScreen(mgl64.Vec2{clip[0] / clip[3], clip[1] / clip[3]}), clip[3], true
}
