package polyedit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type MirrorKind uint8

const (
	MirrorNone MirrorKind = iota
	MirrorBilateral
	MirrorRadial
)

// DefaultRadialCount is the symmetry count used when radial mode is switched
// on without one.
const DefaultRadialCount = 4

// MirrorMode tells a renderer how many transformed instances of the mesh to
// draw. Axis and Count only mean something for MirrorRadial. The zero value
// is MirrorNone.
type MirrorMode struct {
	Kind  MirrorKind
	Axis  Axis
	Count int
}

func MirrorOff() MirrorMode { return MirrorMode{} }

// MirrorBilateralX reflects the mesh through the plane x = 0.
func MirrorBilateralX() MirrorMode { return MirrorMode{Kind: MirrorBilateral} }

func MirrorRadialAround(axis Axis, count int) MirrorMode {
	return MirrorMode{Kind: MirrorRadial, Axis: axis, Count: count}
}

// WithCount returns mode with its radial count replaced. Other kinds are
// returned as they are.
func (mode MirrorMode) WithCount(n int) MirrorMode {
	if mode.Kind == MirrorRadial {
		mode.Count = n
	}
	return mode
}

func (mode MirrorMode) String() string {
	switch mode.Kind {
	case MirrorBilateral:
		return "Bilateral"
	case MirrorRadial:
		return fmt.Sprintf("Radial%s(%d)", mode.Axis, mode.Count)
	default:
		return "None"
	}
}

// ParseMirrorMode reads the form produced by String.
func ParseMirrorMode(s string) (MirrorMode, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "None":
		return MirrorOff(), nil
	case "Bilateral":
		return MirrorBilateralX(), nil
	}

	rest, ok := strings.CutPrefix(s, "Radial")
	if !ok || len(rest) < 4 || rest[1] != '(' || !strings.HasSuffix(rest, ")") {
		return MirrorMode{}, fmt.Errorf("invalid mirror mode %q", s)
	}
	var axis Axis
	switch rest[0] {
	case 'X':
		axis = AxisX
	case 'Y':
		axis = AxisY
	case 'Z':
		axis = AxisZ
	default:
		return MirrorMode{}, fmt.Errorf("invalid mirror axis in %q", s)
	}
	count, err := strconv.Atoi(rest[2 : len(rest)-1])
	if err != nil {
		return MirrorMode{}, fmt.Errorf("invalid mirror count in %q: %w", s, err)
	}
	return MirrorRadialAround(axis, count), nil
}

// Transforms returns one model matrix per instance to draw. The first is
// always the identity.
func (mode MirrorMode) Transforms() []mgl64.Mat4 {
	switch mode.Kind {
	case MirrorBilateral:
		return []mgl64.Mat4{mgl64.Ident4(), mgl64.Scale3D(-1, 1, 1)}
	case MirrorRadial:
		if mode.Count < 1 {
			return []mgl64.Mat4{mgl64.Ident4()}
		}
		out := make([]mgl64.Mat4, mode.Count)
		for i := range out {
			out[i] = rotationAbout(mode.Axis, 2*math.Pi*float64(i)/float64(mode.Count))
		}
		return out
	default:
		return []mgl64.Mat4{mgl64.Ident4()}
	}
}

func rotationAbout(axis Axis, angle float64) mgl64.Mat4 {
	switch axis {
	case AxisX:
		return mgl64.HomogRotate3DX(angle)
	case AxisY:
		return mgl64.HomogRotate3DY(angle)
	default:
		return mgl64.HomogRotate3DZ(angle)
	}
}
