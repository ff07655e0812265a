package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smasonuk/polyedit"
	"github.com/smasonuk/polyedit/document"
	"github.com/smasonuk/polyedit/viewer"
	"github.com/spf13/cobra"
)

func (a *app) saveVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-version",
		Short: "Save the working copy as the next numbered version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(false, func(doc *document.Document) error {
				n, err := doc.SaveVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved version %d\n", n)
				return nil
			})
		},
	}
}

func (a *app) versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List saved versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(false, func(doc *document.Document) error {
				versions, err := doc.Versions()
				if err != nil {
					return err
				}
				for _, n := range versions {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}

func (a *app) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore N",
		Short: "Replace the working copy with a saved version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return a.withDocument(true, func(doc *document.Document) error {
				return doc.RestoreToVersion(n)
			})
		},
	}
}

// meshFormat picks a format from an explicit name or a file extension.
func meshFormat(format, path string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch format = strings.ToLower(format); format {
	case "ply", "dxf", "yaml":
		return format, nil
	case "mesh", "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unknown format %q, want ply, dxf or yaml", format)
}

func (a *app) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the mesh as PLY, DXF or YAML",
		Long:  "Write the mesh as PLY, DXF or YAML. Without a file the output goes to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" && format == "" {
				format = "yaml"
			}
			f, err := meshFormat(format, path)
			if err != nil {
				return err
			}

			return a.withDocument(false, func(doc *document.Document) error {
				if path == "" {
					return writeMesh(cmd.OutOrStdout(), f, doc.Current())
				}
				file, err := os.Create(path)
				if err != nil {
					return &document.FileError{Op: "write", Path: path, Err: err}
				}
				defer file.Close()

				w := bufio.NewWriter(file)
				if err := writeMesh(w, f, doc.Current()); err != nil {
					return err
				}
				if err := w.Flush(); err != nil {
					return &document.FileError{Op: "write", Path: path, Err: err}
				}
				return file.Close()
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "ply, dxf or yaml (default from the file extension)")
	return cmd
}

func writeMesh(w io.Writer, format string, m *polyedit.Mesh) error {
	switch format {
	case "ply":
		return polyedit.WritePLY(w, m)
	case "dxf":
		return polyedit.WriteDXF(w, m)
	default:
		return polyedit.Encode(w, m)
	}
}

func (a *app) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the working mesh with a PLY, DXF or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := meshFormat(format, args[0])
			if err != nil {
				return err
			}
			m, err := readMeshFile(args[0], f)
			if err != nil {
				return err
			}
			return a.withDocument(true, func(doc *document.Document) error {
				doc.SetCurrent(m)
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d verts, %d polys\n", len(m.Verts()), len(m.Polys()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "ply, dxf or yaml (default from the file extension)")
	return cmd
}

func readMeshFile(path, format string) (*polyedit.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &document.FileError{Op: "read", Path: path, Err: err}
	}
	defer file.Close()

	var m *polyedit.Mesh
	switch format {
	case "ply":
		m, err = polyedit.ReadPLY(file)
	case "dxf":
		m, err = polyedit.ReadDXF(file)
	default:
		m, err = polyedit.Decode(file)
	}
	if err != nil {
		return nil, &document.FileError{Op: "parse", Path: path, Err: err}
	}
	return m, nil
}

func (a *app) viewCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a preview window (R reloads from disk)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDocument()
			if err != nil {
				return err
			}
			return viewer.Run(doc.Current(), viewer.Options{
				Title:  "polyedit: " + doc.Dir(),
				Width:  width,
				Height: height,
				Reload: func() (*polyedit.Mesh, error) {
					fresh, err := a.openDocument()
					if err != nil {
						return nil, err
					}
					return fresh.Current(), nil
				},
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 960, "window width")
	cmd.Flags().IntVar(&height, "height", 720, "window height")
	return cmd
}
