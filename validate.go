package polyedit

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	ErrPolyTooSmall    = errors.New("poly has fewer than 3 vertices")
	ErrDuplicateVert   = errors.New("poly lists a vertex more than once")
)

// IntegrityError describes the first broken invariant found by Validate.
type IntegrityError struct {
	Kind   error  // one of the Err* sentinels
	Owner  string // "line" or "poly"
	Index  uint   // index of the offending line or poly
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %d: %v (%s)", e.Owner, e.Index, e.Kind, e.Detail)
}

func (e *IntegrityError) Unwrap() error {
	return e.Kind
}

// Validate checks that every line and poly references existing vertices and
// that every poly has at least three distinct vertices.
func (m *Mesh) Validate() error {
	for i, l := range m.lines {
		for _, v := range l {
			if !m.hasVert(v) {
				return &IntegrityError{
					Kind:   ErrIndexOutOfRange,
					Owner:  "line",
					Index:  uint(i),
					Detail: fmt.Sprintf("endpoint %d, %d verts", v, len(m.verts)),
				}
			}
		}
	}
	for i, p := range m.polys {
		if err := m.validatePoly(p); err != nil {
			return &IntegrityError{
				Kind:   err,
				Owner:  "poly",
				Index:  uint(i),
				Detail: fmt.Sprintf("%v", []VertIndex(p)),
			}
		}
	}
	return nil
}

func (m *Mesh) validatePoly(p Poly) error {
	if len(p) < 3 {
		return ErrPolyTooSmall
	}
	if hasDuplicateVerts(p) {
		return ErrDuplicateVert
	}
	for _, v := range p {
		if !m.hasVert(v) {
			return ErrIndexOutOfRange
		}
	}
	return nil
}

func hasDuplicateVerts(p Poly) bool {
	seen := make(VertSet, len(p))
	for _, v := range p {
		if seen.Has(v) {
			return true
		}
		seen.Add(v)
	}
	return false
}
