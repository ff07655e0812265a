// Package document keeps a mesh on disk as a working copy plus numbered
// snapshots inside one folder.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/smasonuk/polyedit"
)

// Document owns the mesh being edited and tracks whether it differs from
// what was last written to the folder. A document without a folder never
// touches the disk.
type Document struct {
	current   *polyedit.Mesh
	lastSaved *polyedit.Mesh
	dir       string
	config    Config

	lastAutoSaveCheck time.Time
}

func New() *Document {
	return WithMesh(polyedit.NewMesh())
}

// WithMesh wraps m in a document that has no folder.
func WithMesh(m *polyedit.Mesh) *Document {
	return &Document{
		current:           m,
		config:            DefaultConfig(),
		lastAutoSaveCheck: time.Now(),
	}
}

// FromFolder opens the working copy in dir. A folder without one starts
// with an empty mesh.
func FromFolder(dir string) (*Document, error) {
	cfg, err := openFolder(dir)
	if err != nil {
		return nil, err
	}

	m := polyedit.NewMesh()
	path := filepath.Join(dir, cfg.CurrentFile)
	if _, err := os.Stat(path); err == nil {
		if m, err = loadMesh(path); err != nil {
			return nil, err
		}
	}
	return newInFolder(dir, cfg, m), nil
}

// FromVersion opens snapshot n of dir as the working mesh.
func FromVersion(dir string, n int) (*Document, error) {
	cfg, err := openFolder(dir)
	if err != nil {
		return nil, err
	}

	m, err := loadVersion(dir, cfg, n)
	if err != nil {
		return nil, err
	}
	return newInFolder(dir, cfg, m), nil
}

func newInFolder(dir string, cfg Config, m *polyedit.Mesh) *Document {
	logger().Info("opened document", "dir", dir, "verts", len(m.Verts()), "polys", len(m.Polys()))
	return &Document{
		current:           m,
		lastSaved:         m.Copy(),
		dir:               dir,
		config:            cfg,
		lastAutoSaveCheck: time.Now(),
	}
}

func openFolder(dir string) (Config, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Config{}, fmt.Errorf("%s: %w", dir, ErrDirectoryNotFound)
	}
	return LoadConfig(dir)
}

// Current returns the mesh being edited. Edits made through it are picked
// up by the next save.
func (d *Document) Current() *polyedit.Mesh { return d.current }

// SetCurrent replaces the mesh being edited.
func (d *Document) SetCurrent(m *polyedit.Mesh) { d.current = m }

func (d *Document) Dir() string    { return d.dir }
func (d *Document) Config() Config { return d.config }

// HasUnsavedChanges reports whether the mesh differs from the last saved
// copy. A document that was never saved always has unsaved changes.
func (d *Document) HasUnsavedChanges() bool {
	if d.lastSaved == nil {
		return true
	}
	return !d.current.Equal(d.lastSaved)
}

// SaveCurrent writes the working copy.
func (d *Document) SaveCurrent() error {
	if d.dir == "" {
		return nil
	}
	path := filepath.Join(d.dir, d.config.CurrentFile)
	if err := saveMesh(d.current, path); err != nil {
		return err
	}
	d.lastSaved = d.current.Copy()
	logger().Debug("saved working copy", "path", path)
	return nil
}

// SaveVersion writes the working copy and a snapshot using the lowest free
// version number, starting from 1. It returns the number used, or 0 for a
// document without a folder.
func (d *Document) SaveVersion() (int, error) {
	if d.dir == "" {
		return 0, nil
	}
	if err := d.SaveCurrent(); err != nil {
		return 0, err
	}

	versions, err := d.Versions()
	if err != nil {
		return 0, err
	}
	n := 1
	for slices.Contains(versions, n) {
		n++
	}

	path := filepath.Join(d.dir, d.config.versionFile(n))
	if err := saveMesh(d.current, path); err != nil {
		return 0, err
	}
	logger().Info("saved version", "version", n, "path", path)
	return n, nil
}

// Versions lists the snapshot numbers present in the folder, ascending.
func (d *Document) Versions() ([]int, error) {
	if d.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, &FileError{Op: "read", Path: d.dir, Err: err}
	}

	versions := make([]int, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		num, ok := strings.CutPrefix(e.Name(), d.config.VersionPrefix)
		if !ok {
			continue
		}
		num, ok = strings.CutSuffix(num, d.config.VersionSuffix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n > 0 {
			versions = append(versions, n)
		}
	}
	slices.Sort(versions)
	return versions, nil
}

// RestoreToLastSaved discards edits made since the last save. It reports
// false if nothing was ever saved or loaded.
func (d *Document) RestoreToLastSaved() bool {
	if d.lastSaved == nil {
		return false
	}
	d.current = d.lastSaved.Copy()
	return true
}

// RestoreToVersion loads snapshot n as the working mesh. The working copy on
// disk is not rewritten until the next save.
func (d *Document) RestoreToVersion(n int) error {
	m, err := loadVersion(d.dir, d.config, n)
	if err != nil {
		return err
	}
	d.current = m
	logger().Info("restored version", "version", n)
	return nil
}

// TickAutoSave saves the working copy when it has changes and at least the
// configured interval has passed since the last check. Hosts call it once
// per frame or command.
func (d *Document) TickAutoSave(now time.Time) error {
	interval := d.config.AutoSaveInterval()
	if d.dir == "" || interval <= 0 {
		return nil
	}
	if now.Sub(d.lastAutoSaveCheck) < interval {
		return nil
	}
	d.lastAutoSaveCheck = now

	if !d.HasUnsavedChanges() {
		return nil
	}
	return d.SaveCurrent()
}

// SaveOnExit writes any unsaved changes.
func (d *Document) SaveOnExit() error {
	if !d.HasUnsavedChanges() {
		return nil
	}
	return d.SaveCurrent()
}

func loadVersion(dir string, cfg Config, n int) (*polyedit.Mesh, error) {
	if dir == "" {
		return nil, fmt.Errorf("version %d: %w", n, ErrVersionNotFound)
	}
	path := filepath.Join(dir, cfg.versionFile(n))
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("version %d: %w", n, ErrVersionNotFound)
	}
	return loadMesh(path)
}

func loadMesh(path string) (*polyedit.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	m, err := polyedit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &FileError{Op: "parse", Path: path, Err: err}
	}
	return m, nil
}

func saveMesh(m *polyedit.Mesh, path string) error {
	var buf bytes.Buffer
	if err := polyedit.Encode(&buf, m); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
