package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/smasonuk/polyedit"
	"github.com/smasonuk/polyedit/document"
	"github.com/spf13/cobra"
)

var errRejected = errors.New("rejected by the mesh (run with --verbose for the reason)")

// app holds the flags shared by every command.
type app struct {
	folder  string
	version int
	verbose bool
	verts   []uint
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "polyedit [folder]",
		Short:         "Edit polygon meshes stored in a document folder",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.folder = args[0]
			}
			return a.withDocument(false, func(doc *document.Document) error {
				return printInfo(cmd, doc)
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.folder, "folder", "C", ".", "document folder")
	flags.IntVar(&a.version, "version", 0, "open this saved version instead of the working copy")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.UintSliceVar(&a.verts, "verts", nil, "vertex indices to act on, e.g. 0,1,2")

	root.AddCommand(
		a.infoCmd(),
		a.newCmd(),
		a.translateCmd(),
		a.rotateCmd(),
		a.scaleCmd(),
		a.deleteCmd(),
		a.duplicateCmd(false),
		a.duplicateCmd(true),
		a.splitCmd(),
		a.connectCmd(),
		a.growCmd(),
		a.pathCmd(),
		a.mirrorCmd(),
		a.saveVersionCmd(),
		a.versionsCmd(),
		a.restoreCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.viewCmd(),
	)
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	polyedit.SetLogger(l)
	document.SetLogger(l)
}

// openDocument opens the selected version, or the working copy. A missing
// folder is created unless a version was asked for.
func (a *app) openDocument() (*document.Document, error) {
	if a.version > 0 {
		return document.FromVersion(a.folder, a.version)
	}
	if _, err := os.Stat(a.folder); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(a.folder, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", a.folder, err)
		}
	}
	return document.FromFolder(a.folder)
}

// withDocument runs fn on the open document. When save is set, changes are
// written back to the working copy afterwards.
func (a *app) withDocument(save bool, fn func(doc *document.Document) error) error {
	doc, err := a.openDocument()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if save {
		return doc.SaveOnExit()
	}
	return nil
}

// edit runs a kernel mutation and saves the result if it was accepted.
func (a *app) edit(op string, fn func(m *polyedit.Mesh) bool) error {
	return a.withDocument(true, func(doc *document.Document) error {
		if !fn(doc.Current()) {
			return fmt.Errorf("%s: %w", op, errRejected)
		}
		return nil
	})
}

func (a *app) selection() ([]polyedit.VertIndex, error) {
	if len(a.verts) == 0 {
		return nil, errors.New("no vertices selected, pass --verts")
	}
	out := make([]polyedit.VertIndex, len(a.verts))
	for i, v := range a.verts {
		out[i] = polyedit.VertIndex(v)
	}
	return out, nil
}

func parseAxis(s string) (polyedit.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return polyedit.AxisX, nil
	case "y":
		return polyedit.AxisY, nil
	case "z":
		return polyedit.AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q, want x, y or z", s)
}

func printInfo(cmd *cobra.Command, doc *document.Document) error {
	m := doc.Current()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "folder: %s\n", doc.Dir())
	fmt.Fprintf(out, "verts: %d\nlines: %d\npolys: %d\n", len(m.Verts()), len(m.Lines()), len(m.Polys()))
	fmt.Fprintf(out, "mirror: %s\n", m.MirrorMode())

	versions, err := doc.Versions()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "versions: %s\n", joinInts(versions))
	if err := m.Validate(); err != nil {
		fmt.Fprintf(out, "integrity: %v\n", err)
	}
	return nil
}

func joinInts[T ~int | ~uint](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
