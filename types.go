package polyedit

import "github.com/go-gl/mathgl/mgl64"

// Index types name a slot in one of the mesh's backing arrays. They are only
// valid until the next removal: any delete may move the last element into
// the freed slot, so callers holding selections must re-resolve them.
type (
	VertIndex uint
	LineIndex uint
	PolyIndex uint
)

// Line is an unordered pair of vertex indices.
type Line [2]VertIndex

// Has reports whether v is one of the line's endpoints.
func (l Line) Has(v VertIndex) bool {
	return l[0] == v || l[1] == v
}

// SameEdge reports whether a and b name the same undirected edge as l.
func (l Line) SameEdge(a, b VertIndex) bool {
	return (l[0] == a && l[1] == b) || (l[0] == b && l[1] == a)
}

// Poly is a closed polygon given as vertex indices in winding order.
type Poly []VertIndex

func (p Poly) Copy() Poly {
	c := make(Poly, len(p))
	copy(c, p)
	return c
}

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Plane selects one of the three coordinate planes used by the editing panes.
type Plane uint8

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// Project returns the in-plane coordinates of v and its depth along the
// plane's normal axis.
func (p Plane) Project(v mgl64.Vec3) (mgl64.Vec2, float64) {
	switch p {
	case PlaneXZ:
		return mgl64.Vec2{v[0], v[2]}, v[1]
	case PlaneYZ:
		return mgl64.Vec2{v[1], v[2]}, v[0]
	default:
		return mgl64.Vec2{v[0], v[1]}, v[2]
	}
}

// Unproject is the inverse of Project.
func (p Plane) Unproject(uv mgl64.Vec2, depth float64) mgl64.Vec3 {
	switch p {
	case PlaneXZ:
		return mgl64.Vec3{uv[0], depth, uv[1]}
	case PlaneYZ:
		return mgl64.Vec3{depth, uv[0], uv[1]}
	default:
		return mgl64.Vec3{uv[0], uv[1], depth}
	}
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	}
	return "?"
}
