package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smasonuk/polyedit"
	"github.com/smasonuk/polyedit/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"-C", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "polyedit %s", strings.Join(args, " "))
	return out
}

func openMesh(t *testing.T, dir string) *polyedit.Mesh {
	t.Helper()
	doc, err := document.FromFolder(dir)
	require.NoError(t, err)
	return doc.Current()
}

func TestNewAndInfo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc")
	mustRun(t, dir, "new", "cube")

	out := mustRun(t, dir, "info")
	assert.Contains(t, out, "verts: 8")
	assert.Contains(t, out, "lines: 12")
	assert.Contains(t, out, "polys: 6")
	assert.Contains(t, out, "mirror: None")
	assert.NotContains(t, out, "integrity")
}

func TestRootPositionalFolder(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "tapered")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "polys: 6")
}

func TestEditCommandsSave(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")

	mustRun(t, dir, "translate", "--verts", "0", "--delta", "1,0,0")
	v, ok := openMesh(t, dir).Vert(0)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, -1, -1}, v[:], 1e-9)

	mustRun(t, dir, "scale", "--verts", "4,5,6,7", "--factor", "0", "--along", "x")
	for i := polyedit.VertIndex(4); i < 8; i++ {
		v, _ := openMesh(t, dir).Vert(i)
		assert.InDelta(t, 0, v[0], 1e-9)
	}

	out := mustRun(t, dir, "delete", "--verts", "0,1")
	assert.Equal(t, "deleted 2 verts\n", out)
	m := openMesh(t, dir)
	assert.Len(t, m.Verts(), 6)
	assert.Len(t, m.Lines(), 7)
	assert.Len(t, m.Polys(), 4)
	require.NoError(t, m.Validate())
}

func TestRejectedEditLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")
	before, err := os.ReadFile(filepath.Join(dir, "current.mesh"))
	require.NoError(t, err)

	_, err = run(t, dir, "translate", "--verts", "99", "--delta", "1,0,0")
	assert.ErrorIs(t, err, errRejected)

	_, err = run(t, dir, "rotate", "--degrees", "90")
	assert.ErrorContains(t, err, "--verts")

	_, err = run(t, dir, "rotate", "--verts", "0", "--axis", "w")
	assert.ErrorContains(t, err, "invalid axis")

	after, err := os.ReadFile(filepath.Join(dir, "current.mesh"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExtrudeAndDuplicate(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")

	out := mustRun(t, dir, "duplicate", "--verts", "0,1,2,3")
	assert.Contains(t, out, "0 -> 8")
	m := openMesh(t, dir)
	assert.Len(t, m.Verts(), 12)
	assert.Len(t, m.Polys(), 7)

	mustRun(t, dir, "new", "cube")
	mustRun(t, dir, "extrude", "--verts", "0,1,2,3")
	m = openMesh(t, dir)
	assert.Len(t, m.Verts(), 12)
	// the copied face plus one quad per copied line
	assert.Len(t, m.Polys(), 6+1+4)
	require.NoError(t, m.Validate())
}

func TestSplitConnectAndPath(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")

	out := mustRun(t, dir, "split", "--lines", "0")
	assert.Contains(t, out, "new verts: 8")
	m := openMesh(t, dir)
	assert.Len(t, m.Verts(), 9)
	require.NoError(t, m.Validate())

	out = mustRun(t, dir, "path", "0", "1")
	assert.Equal(t, "0,8,1\n", out)

	_, err := run(t, dir, "connect", "0", "x")
	assert.ErrorContains(t, err, "invalid vertex index")

	mustRun(t, dir, "connect", "0", "2")
	assert.Len(t, openMesh(t, dir).Lines(), 14)
}

func TestGrow(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")
	out := mustRun(t, dir, "grow", "--verts", "0,1,2,3")
	assert.Equal(t, "0,1,2,3\n", out)
}

func TestMirror(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")

	mustRun(t, dir, "mirror", "radial", "--axis", "z", "--count", "6")
	assert.Equal(t, "RadialZ(6)\n", mustRun(t, dir, "mirror"))

	_, err := run(t, dir, "mirror", "radial", "--count", "1")
	assert.ErrorContains(t, err, "--count")
	_, err = run(t, dir, "mirror", "radial", "--count", "9")
	assert.ErrorContains(t, err, "--count")

	mustRun(t, dir, "mirror", "bilateral")
	assert.Equal(t, polyedit.MirrorBilateralX(), openMesh(t, dir).MirrorMode())
}

func TestVersions(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "cube")
	assert.Equal(t, "saved version 1\n", mustRun(t, dir, "save-version"))

	mustRun(t, dir, "new", "empty")
	assert.Equal(t, "saved version 2\n", mustRun(t, dir, "save-version"))
	assert.Equal(t, "1\n2\n", mustRun(t, dir, "versions"))

	out := mustRun(t, dir, "--version", "1", "info")
	assert.Contains(t, out, "verts: 8")

	mustRun(t, dir, "restore", "1")
	assert.Len(t, openMesh(t, dir).Verts(), 8)

	_, err := run(t, dir, "restore", "7")
	assert.ErrorIs(t, err, document.ErrVersionNotFound)
	_, err = run(t, filepath.Join(dir, "missing"), "--version", "1", "info")
	assert.ErrorIs(t, err, document.ErrDirectoryNotFound)
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "tapered")
	want := openMesh(t, dir)

	ply := filepath.Join(t.TempDir(), "box.ply")
	mustRun(t, dir, "export", ply)

	dxf := mustRun(t, dir, "export", "--format", "dxf")
	assert.Equal(t, 12, strings.Count(dxf, "3DFACE"))

	other := t.TempDir()
	out := mustRun(t, other, "import", ply)
	assert.Contains(t, out, "imported 8 verts, 6 polys")
	assert.True(t, want.Equal(openMesh(t, other)))

	dxfPath := filepath.Join(t.TempDir(), "box.dxf")
	require.NoError(t, os.WriteFile(dxfPath, []byte(dxf), 0o644))
	out = mustRun(t, other, "import", dxfPath)
	assert.Contains(t, out, "imported 8 verts, 12 polys")

	_, err := run(t, other, "import", "box.obj")
	assert.ErrorContains(t, err, "unknown format")
}

func TestMeshFormat(t *testing.T) {
	testCases := []struct {
		format, path, want string
	}{
		{"", "a.ply", "ply"},
		{"", "a.DXF", "dxf"},
		{"", "a.mesh", "yaml"},
		{"yml", "", "yaml"},
		{"PLY", "a.yaml", "ply"},
	}
	for _, tc := range testCases {
		got, err := meshFormat(tc.format, tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseVerts(t *testing.T) {
	got, err := parseVerts([]string{"3", "0"})
	require.NoError(t, err)
	assert.Equal(t, []polyedit.VertIndex{3, 0}, got)

	_, err = parseVerts([]string{"-1"})
	assert.Error(t, err)
}

