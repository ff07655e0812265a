package camera

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyedit"
)

// View is implemented by Pane and Orbit.
type View interface {
	ModelView(model mgl64.Mat4) mgl64.Mat4
	Projection(vp Viewport) mgl64.Mat4
}

// Face is one poly of one mirror instance, projected to the screen.
type Face struct {
	Poly     polyedit.PolyIndex
	Instance int
	Points   []mgl64.Vec2
	// Depth is the eye-space z of the poly's centre; more negative is
	// farther away.
	Depth float64
	// Shade is in [0, 1], 1 for a poly facing the viewer.
	Shade float64
}

type Segment struct {
	Line     polyedit.LineIndex
	Instance int
	A, B     mgl64.Vec2
}

// Scene is a mesh flattened for drawing. Faces are ordered back to front.
type Scene struct {
	Faces    []Face
	Segments []Segment
}

const ambient = 0.35

// ProjectMesh projects every poly and line of m once per mirror instance.
// Polys or lines with a point behind the camera are left out.
func ProjectMesh(m *polyedit.Mesh, v View, vp Viewport) Scene {
	var scene Scene
	proj := v.Projection(vp)
	verts := m.Verts()

	for inst, model := range m.MirrorMode().Transforms() {
		mv := v.ModelView(model)
		mvp := proj.Mul4(mv)

		for pi, p := range m.Polys() {
			if f, ok := projectPoly(p, verts, mv, mvp, vp); ok {
				f.Poly, f.Instance = polyedit.PolyIndex(pi), inst
				scene.Faces = append(scene.Faces, f)
			}
		}
		for li, seg := range m.LineSegments() {
			a, _, okA := Project(seg[0], mvp, vp)
			b, _, okB := Project(seg[1], mvp, vp)
			if okA && okB {
				scene.Segments = append(scene.Segments, Segment{Line: polyedit.LineIndex(li), Instance: inst, A: a, B: b})
			}
		}
	}

	sort.SliceStable(scene.Faces, func(i, j int) bool {
		return scene.Faces[i].Depth < scene.Faces[j].Depth
	})
	return scene
}

func projectPoly(p polyedit.Poly, verts []mgl64.Vec3, mv, mvp mgl64.Mat4, vp Viewport) (Face, bool) {
	points := make([]mgl64.Vec2, len(p))
	eye := make([]mgl64.Vec3, len(p))
	var depth float64
	for i, vi := range p {
		screen, _, ok := Project(verts[vi], mvp, vp)
		if !ok {
			return Face{}, false
		}
		points[i] = screen
		eye[i] = mv.Mul4x1(verts[vi].Vec4(1)).Vec3()
		depth += eye[i][2]
	}

	return Face{
		Points: points,
		Depth:  depth / float64(len(p)),
		Shade:  shade(eye),
	}, true
}

// shade lights a poly from the eye using its Newell normal, so either
// winding faces the viewer.
func shade(eye []mgl64.Vec3) float64 {
	var n mgl64.Vec3
	for i := range eye {
		a, b := eye[i], eye[(i+1)%len(eye)]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	l := n.Len()
	if l == 0 {
		return ambient
	}
	return ambient + (1-ambient)*math.Abs(n[2]/l)
}
