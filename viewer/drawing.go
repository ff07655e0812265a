package viewer

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func colorComponents(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}

// fillConvexPolygon fans pts into triangles and fills them with clr.
func fillConvexPolygon(screen *ebiten.Image, pts []mgl64.Vec2, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 2; i < len(pts); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr, cg, cb, ca := colorComponents(clr)
	vertices := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawPolygonOutline strokes the closed outline through pts.
func drawPolygonOutline(screen *ebiten.Image, pts []mgl64.Vec2, strokeWidth float32, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		path.LineTo(float32(p[0]), float32(p[1]))
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	})

	cr, cg, cb, ca := colorComponents(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func drawSegment(screen *ebiten.Image, a, b mgl64.Vec2, width float32, clr color.RGBA) {
	vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, clr, true)
}

func drawVertex(screen *ebiten.Image, p mgl64.Vec2, size float32, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(p[0])-size/2, float32(p[1])-size/2, size, size, clr, false)
}

// shaded scales the colour channels of clr by s.
func shaded(clr color.RGBA, s float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(clr.R) * s),
		G: uint8(float64(clr.G) * s),
		B: uint8(float64(clr.B) * s),
		A: clr.A,
	}
}
