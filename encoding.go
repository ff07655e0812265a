package polyedit

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// meshDoc is the YAML layout of a mesh. Every row is written in flow style
// so a vertex or poly stays on one line.
type meshDoc struct {
	MirrorMode string               `yaml:"mirror_mode"`
	Verts      []flowSeq[float64]   `yaml:"verts"`
	Lines      []flowSeq[VertIndex] `yaml:"lines"`
	Polys      []flowSeq[VertIndex] `yaml:"polys"`
}

type flowSeq[T any] []T

func (s flowSeq[T]) MarshalYAML() (any, error) {
	var n yaml.Node
	if err := n.Encode([]T(s)); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return &n, nil
}

func (m *Mesh) MarshalYAML() (any, error) {
	doc := meshDoc{
		MirrorMode: m.mirrorMode.String(),
		Verts:      make([]flowSeq[float64], len(m.verts)),
		Lines:      make([]flowSeq[VertIndex], len(m.lines)),
		Polys:      make([]flowSeq[VertIndex], len(m.polys)),
	}
	for i, v := range m.verts {
		doc.Verts[i] = flowSeq[float64]{v[0], v[1], v[2]}
	}
	for i, l := range m.lines {
		doc.Lines[i] = flowSeq[VertIndex]{l[0], l[1]}
	}
	for i, p := range m.polys {
		doc.Polys[i] = flowSeq[VertIndex](p.Copy())
	}
	return doc, nil
}

// UnmarshalYAML replaces m with the decoded mesh. The document must describe
// a valid mesh; m is left untouched otherwise.
func (m *Mesh) UnmarshalYAML(value *yaml.Node) error {
	var doc meshDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}

	mode, err := ParseMirrorMode(doc.MirrorMode)
	if err != nil {
		return err
	}
	out := NewMesh()
	out.mirrorMode = mode
	for i, row := range doc.Verts {
		if len(row) != 3 {
			return fmt.Errorf("vert %d: want 3 coordinates, got %d", i, len(row))
		}
		out.verts = append(out.verts, mgl64.Vec3{row[0], row[1], row[2]})
	}
	for i, row := range doc.Lines {
		if len(row) != 2 {
			return fmt.Errorf("line %d: want 2 endpoints, got %d", i, len(row))
		}
		out.lines = append(out.lines, Line{row[0], row[1]})
	}
	for _, row := range doc.Polys {
		out.polys = append(out.polys, Poly(row))
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}

	*m = *out
	return nil
}

// Encode writes m to w as YAML.
func Encode(w io.Writer, m *Mesh) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}
	return enc.Close()
}

// Decode reads a mesh written by Encode.
func Decode(r io.Reader) (*Mesh, error) {
	m := NewMesh()
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding mesh: empty document")
		}
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}
	return m, nil
}
