package polyedit

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// dxfLayer is the layer every entity is written on.
const dxfLayer = "0"

// WriteDXF writes m as a minimal DXF drawing: one 3DFACE per fan triangle
// and one LINE per line.
func WriteDXF(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)

	writePair := func(code int, value any) {
		_, _ = fmt.Fprintf(writer, "%d\n%v\n", code, value)
	}
	writePoint := func(base int, p mgl64.Vec3) {
		writePair(base, formatFloat(p[0]))
		writePair(base+10, formatFloat(p[1]))
		writePair(base+20, formatFloat(p[2]))
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")

	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	tris := m.Triangles()
	for i := 0; i+2 < len(tris); i += 3 {
		p1, p2, p3 := m.position(tris[i]), m.position(tris[i+1]), m.position(tris[i+2])

		writePair(0, "3DFACE")
		writePair(8, dxfLayer)
		writePoint(10, p1)
		writePoint(11, p2)
		writePoint(12, p3)
		// triangles repeat the third corner
		writePoint(13, p3)
	}

	for _, seg := range m.LineSegments() {
		writePair(0, "LINE")
		writePair(8, dxfLayer)
		writePoint(10, seg[0])
		writePoint(11, seg[1])
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")

	return writer.Flush()
}

// dxfEntity collects the coordinates of one 3DFACE or LINE. Corner k is
// read from group codes 10+k, 20+k and 30+k.
type dxfEntity struct {
	kind    string
	corners [4]mgl64.Vec3
}

// ReadDXF reads the 3DFACE and LINE entities of a DXF drawing. Corners with
// identical coordinates become one vertex. A face whose fourth corner
// repeats the third is a triangle; faces that collapse to fewer than three
// distinct corners are skipped. Other entities are ignored.
func ReadDXF(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	m := NewMesh()
	welded := make(map[mgl64.Vec3]VertIndex)

	vert := func(p mgl64.Vec3) VertIndex {
		if i, ok := welded[p]; ok {
			return i
		}
		i := m.AddVert(p)
		welded[p] = i
		return i
	}

	var cur *dxfEntity
	flush := func() {
		if cur == nil {
			return
		}
		switch cur.kind {
		case "3DFACE":
			p := make(Poly, 0, 4)
			for _, c := range cur.corners {
				v := vert(c)
				if !slices.Contains(p, v) {
					p = append(p, v)
				}
			}
			if len(p) < 3 {
				Logger().Debug("polyedit: skipping degenerate 3DFACE")
				return
			}
			m.polys = append(m.polys, p)
		case "LINE":
			m.lines = append(m.lines, Line{vert(cur.corners[0]), vert(cur.corners[1])})
		}
	}

	for line := 1; scanner.Scan(); line += 2 {
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group code %q", line, scanner.Text())
		}
		if !scanner.Scan() {
			break
		}
		value := strings.TrimSpace(scanner.Text())

		if code == 0 {
			flush()
			cur = nil
			if value == "3DFACE" || value == "LINE" {
				cur = &dxfEntity{kind: value}
			}
			continue
		}
		if cur == nil || code < 10 || code > 33 || code%10 > 3 {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: could not parse float value '%s': %w", line+1, value, err)
		}
		cur.corners[code%10][code/10-1] = f
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	flush()
	return m, nil
}
