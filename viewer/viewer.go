// Package viewer is an ebiten preview window for a mesh. It shows a
// perspective orbit view and the three orthographic editing panes, and
// draws every instance of the mesh's mirror mode.
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/polyedit"
	"github.com/smasonuk/polyedit/viewer/camera"
)

const (
	defaultWidth  = 960
	defaultHeight = 720

	// dragScale converts orbit drags from pixels to radians.
	dragScale    = 1.0 / 200
	clickSlop    = 3
	pickRadius   = 6
	wheelZoom    = 0.9
	vertexSize   = 4
	outlineWidth = 1
)

var (
	faceColor     = color.RGBA{R: 200, G: 170, B: 90, A: 255}
	mirrorColor   = color.RGBA{R: 110, G: 130, B: 170, A: 255}
	outlineColor  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	lineColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	vertColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	selectedColor = color.RGBA{R: 255, G: 60, B: 60, A: 255}
)

// Options configures the preview window. Reload, when set, is called on
// the R key to fetch a fresh copy of the mesh.
type Options struct {
	Title         string
	Width, Height int
	Reload        func() (*polyedit.Mesh, error)
}

type view int

const (
	viewOrbit view = iota
	viewXY
	viewXZ
	viewYZ
)

func (v view) String() string {
	switch v {
	case viewXY:
		return "XY"
	case viewXZ:
		return "XZ"
	case viewYZ:
		return "YZ"
	default:
		return "Orbit"
	}
}

// Viewer implements ebiten.Game.
type Viewer struct {
	mesh *polyedit.Mesh
	opts Options

	orbit  *camera.Orbit
	panes  [3]*camera.Pane
	active view

	wireframe bool
	selected  polyedit.VertSet
	status    string

	width, height  int
	dragging       bool
	lastX, lastY   int
	pressX, pressY int
}

func New(m *polyedit.Mesh, opts Options) *Viewer {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}
	if opts.Title == "" {
		opts.Title = "polyedit"
	}
	return &Viewer{
		mesh:     m,
		opts:     opts,
		orbit:    camera.NewOrbit(),
		panes:    [3]*camera.Pane{camera.NewPane(polyedit.PlaneXY), camera.NewPane(polyedit.PlaneXZ), camera.NewPane(polyedit.PlaneYZ)},
		selected: polyedit.NewVertSet(),
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Run opens the window and blocks until it is closed.
func Run(m *polyedit.Mesh, opts Options) error {
	v := New(m, opts)
	log := polyedit.Logger()
	log.Info("opening viewer", "verts", len(m.Verts()), "polys", len(m.Polys()), "mirror", m.MirrorMode())

	ebiten.SetWindowSize(v.opts.Width, v.opts.Height)
	ebiten.SetWindowTitle(v.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	log.Info("viewer closed")
	return nil
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, target := range map[ebiten.Key]view{
		ebiten.Key0: viewOrbit,
		ebiten.Key1: viewXY,
		ebiten.Key2: viewXZ,
		ebiten.Key3: viewYZ,
	} {
		if inpututil.IsKeyJustPressed(key) {
			v.setView(target)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		v.wireframe = !v.wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reload()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		v.zoomBy(dy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.dragging = true
		v.lastX, v.lastY = ebiten.CursorPosition()
		v.pressX, v.pressY = v.lastX, v.lastY
	}
	if v.dragging {
		x, y := ebiten.CursorPosition()
		v.dragBy(float64(x-v.lastX), float64(y-v.lastY))
		v.lastX, v.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.dragging = false
		x, y := ebiten.CursorPosition()
		if abs(x-v.pressX) <= clickSlop && abs(y-v.pressY) <= clickSlop {
			v.clickAt(float64(x), float64(y))
		}
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	vp := v.viewport()
	cam := v.currentView()
	scene := camera.ProjectMesh(v.mesh, cam, vp)

	if !v.wireframe {
		for _, f := range scene.Faces {
			base := faceColor
			if f.Instance > 0 {
				base = mirrorColor
			}
			fillConvexPolygon(screen, f.Points, shaded(base, f.Shade))
			drawPolygonOutline(screen, f.Points, outlineWidth, outlineColor)
		}
	}
	for _, s := range scene.Segments {
		drawSegment(screen, s.A, s.B, outlineWidth, lineColor)
	}

	mvp := cam.Projection(vp).Mul4(cam.ModelView(mgl64.Ident4()))
	for i, pos := range v.mesh.Verts() {
		p, _, ok := camera.Project(pos, mvp, vp)
		if !ok {
			continue
		}
		clr := vertColor
		if v.selected.Has(polyedit.VertIndex(i)) {
			clr = selectedColor
		}
		drawVertex(screen, p, vertexSize, clr)
	}

	ebitenutil.DebugPrint(screen, v.statusText())
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (v *Viewer) viewport() camera.Viewport {
	return camera.Viewport{W: float64(v.width), H: float64(v.height)}
}

func (v *Viewer) currentView() camera.View {
	if v.active == viewOrbit {
		return v.orbit
	}
	return v.panes[v.active-viewXY]
}

func (v *Viewer) pane() (*camera.Pane, bool) {
	if v.active == viewOrbit {
		return nil, false
	}
	return v.panes[v.active-viewXY], true
}

func (v *Viewer) setView(target view) {
	v.active = target
	v.status = target.String()
}

func (v *Viewer) zoomBy(wheel float64) {
	factor := math.Pow(wheelZoom, wheel)
	if p, ok := v.pane(); ok {
		p.Zoom(factor)
		return
	}
	v.orbit.Zoom(factor)
}

// dragBy pans a pane or turns the orbit view.
func (v *Viewer) dragBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	if p, ok := v.pane(); ok {
		p.PanBy(dx, dy, v.viewport())
		return
	}
	v.orbit.Rotate(dx*dragScale, dy*dragScale)
}

// clickAt selects the nearest vertex under the cursor in a pane, or the
// vertices of the front poly in the orbit view. A click on empty space
// clears the selection.
func (v *Viewer) clickAt(x, y float64) {
	v.selected = polyedit.NewVertSet()
	p, ok := v.pane()
	if !ok {
		if pi, hit := v.orbit.PickPoly(v.mesh, mgl64.Vec2{x, y}, v.viewport()); hit {
			poly, _ := v.mesh.Poly(pi)
			v.selected = polyedit.NewVertSet(poly...)
			v.status = fmt.Sprintf("selected poly %d", pi)
			return
		}
		v.status = "selection cleared"
		return
	}
	hits := p.Pick(v.mesh, mgl64.Vec2{x, y}, pickRadius, v.viewport())
	if len(hits) > 0 {
		v.selected.Add(hits[0])
		v.status = fmt.Sprintf("selected vert %d", hits[0])
		return
	}
	v.status = "selection cleared"
}

func (v *Viewer) reload() {
	if v.opts.Reload == nil {
		return
	}
	m, err := v.opts.Reload()
	if err != nil {
		polyedit.Logger().Warn("reload failed", "err", err)
		v.status = "reload failed: " + err.Error()
		return
	}
	v.mesh = m
	v.selected = polyedit.NewVertSet()
	v.status = "reloaded"
	polyedit.Logger().Info("mesh reloaded", "verts", len(m.Verts()), "polys", len(m.Polys()))
}

func (v *Viewer) statusText() string {
	text := fmt.Sprintf("%s  verts %d  lines %d  polys %d  mirror %s\nFPS: %0.2f",
		v.active, len(v.mesh.Verts()), len(v.mesh.Lines()), len(v.mesh.Polys()),
		v.mesh.MirrorMode(), ebiten.ActualFPS())
	if v.status != "" {
		text += "\n" + v.status
	}
	return text
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
