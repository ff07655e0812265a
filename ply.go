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

// plyElement is one "element" block of a PLY header.
type plyElement struct {
	name       string
	count      int
	properties []string
}

func (e plyElement) property(name string) int {
	return slices.Index(e.properties, name)
}

// WritePLY writes m as ASCII PLY with vertex, face and edge elements.
func WritePLY(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by polyedit")
	_, _ = fmt.Fprintf(writer, "comment mirror_mode %s\n", m.mirrorMode)
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", len(m.verts))
	_, _ = fmt.Fprintln(writer, "property double x")
	_, _ = fmt.Fprintln(writer, "property double y")
	_, _ = fmt.Fprintln(writer, "property double z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", len(m.polys))
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintf(writer, "element edge %d\n", len(m.lines))
	_, _ = fmt.Fprintln(writer, "property int vertex1")
	_, _ = fmt.Fprintln(writer, "property int vertex2")
	_, _ = fmt.Fprintln(writer, "end_header")

	for _, v := range m.verts {
		_, _ = fmt.Fprintf(writer, "%s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	for _, p := range m.polys {
		_, _ = fmt.Fprintf(writer, "%d", len(p))
		for _, v := range p {
			_, _ = fmt.Fprintf(writer, " %d", v)
		}
		_, _ = fmt.Fprintln(writer)
	}
	for _, l := range m.lines {
		_, _ = fmt.Fprintf(writer, "%d %d\n", l[0], l[1])
	}

	return writer.Flush()
}

// ReadPLY reads the ASCII PLY subset written by WritePLY. Vertex properties
// other than x, y and z are ignored, as is anything after a face's index
// list. A face or edge that does not fit the vertices read is an error.
func ReadPLY(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	elements, mode, err := readPLYHeader(scanner)
	if err != nil {
		return nil, err
	}

	m := NewMesh()
	m.mirrorMode = mode
	for _, e := range elements {
		for i := 0; i < e.count; i++ {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("error reading from PLY source: %w", err)
				}
				return nil, fmt.Errorf("unexpected end of file while reading %s %d", e.name, i)
			}
			parts := strings.Fields(scanner.Text())

			switch e.name {
			case "vertex":
				err = m.readPLYVertex(e, parts)
			case "face":
				err = m.readPLYFace(parts)
			case "edge":
				err = m.readPLYEdge(e, parts)
			}
			if err != nil {
				return nil, fmt.Errorf("%s %d: %w", e.name, i, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return m, nil
}

func readPLYHeader(scanner *bufio.Scanner) ([]plyElement, MirrorMode, error) {
	var elements []plyElement
	var mode MirrorMode

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, mode, fmt.Errorf("not a PLY file")
	}
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, mode, fmt.Errorf("unsupported PLY format %q", scanner.Text())
			}
		case "comment":
			if len(parts) == 3 && parts[1] == "mirror_mode" {
				parsed, err := ParseMirrorMode(parts[2])
				if err != nil {
					return nil, mode, err
				}
				mode = parsed
			}
		case "element":
			if len(parts) != 3 {
				return nil, mode, fmt.Errorf("invalid element line %q", scanner.Text())
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, mode, fmt.Errorf("invalid element count %q", scanner.Text())
			}
			elements = append(elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(elements) == 0 {
				return nil, mode, fmt.Errorf("property before any element")
			}
			cur := &elements[len(elements)-1]
			cur.properties = append(cur.properties, parts[len(parts)-1])
		case "end_header":
			return elements, mode, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, mode, fmt.Errorf("error reading PLY header: %w", err)
	}
	return nil, mode, fmt.Errorf("unexpected end of file in PLY header")
}

func (m *Mesh) readPLYVertex(e plyElement, parts []string) error {
	var v mgl64.Vec3
	for k, name := range [3]string{"x", "y", "z"} {
		idx := e.property(name)
		if idx < 0 || idx >= len(parts) {
			return fmt.Errorf("missing %s coordinate", name)
		}
		f, err := strconv.ParseFloat(parts[idx], 64)
		if err != nil {
			return fmt.Errorf("could not parse %s value '%s': %w", name, parts[idx], err)
		}
		v[k] = f
	}
	m.AddVert(v)
	return nil
}

func (m *Mesh) readPLYFace(parts []string) error {
	if len(parts) == 0 {
		return fmt.Errorf("empty face line")
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || n < 0 || len(parts) < n+1 {
		return fmt.Errorf("invalid face data %q", strings.Join(parts, " "))
	}
	p := make(Poly, n)
	for j := range p {
		idx, err := strconv.ParseUint(parts[j+1], 10, 0)
		if err != nil {
			return fmt.Errorf("invalid vertex index %q: %w", parts[j+1], err)
		}
		p[j] = VertIndex(idx)
	}
	if err := m.validatePoly(p); err != nil {
		return err
	}
	m.polys = append(m.polys, p)
	return nil
}

func (m *Mesh) readPLYEdge(e plyElement, parts []string) error {
	var l Line
	for k, name := range [2]string{"vertex1", "vertex2"} {
		idx := e.property(name)
		if idx < 0 || idx >= len(parts) {
			return fmt.Errorf("missing %s", name)
		}
		v, err := strconv.ParseUint(parts[idx], 10, 0)
		if err != nil {
			return fmt.Errorf("invalid vertex index %q: %w", parts[idx], err)
		}
		l[k] = VertIndex(v)
	}
	if !m.AddLine(l) {
		return ErrIndexOutOfRange
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
