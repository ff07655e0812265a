package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyedit"
	"github.com/smasonuk/polyedit/document"
	"github.com/spf13/cobra"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print mesh counts, mirror mode and saved versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(false, func(doc *document.Document) error {
				return printInfo(cmd, doc)
			})
		},
	}
}

func (a *app) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "new [cube|tapered|empty]",
		Short:     "Replace the working mesh with a primitive",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"cube", "tapered", "empty"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "cube"
			if len(args) == 1 {
				kind = args[0]
			}
			var m *polyedit.Mesh
			switch kind {
			case "cube":
				m = polyedit.NewCube()
			case "tapered":
				m = polyedit.NewTaperedBox()
			case "empty":
				m = polyedit.NewMesh()
			default:
				return fmt.Errorf("unknown primitive %q", kind)
			}
			return a.withDocument(true, func(doc *document.Document) error {
				doc.SetCurrent(m)
				return nil
			})
		},
	}
}

func (a *app) translateCmd() *cobra.Command {
	var delta []float64
	cmd := &cobra.Command{
		Use:   "translate --verts I,J --delta X,Y,Z",
		Short: "Move vertices by an offset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(delta) != 3 {
				return fmt.Errorf("--delta needs 3 components, got %d", len(delta))
			}
			sel, err := a.selection()
			if err != nil {
				return err
			}
			return a.edit("translate", func(m *polyedit.Mesh) bool {
				return m.TranslateVerts(sel, mgl64.Vec3{delta[0], delta[1], delta[2]})
			})
		},
	}
	cmd.Flags().Float64SliceVar(&delta, "delta", nil, "offset to add")
	return cmd
}

func (a *app) rotateCmd() *cobra.Command {
	var (
		degrees float64
		axis    string
	)
	cmd := &cobra.Command{
		Use:   "rotate --verts I,J --degrees D",
		Short: "Rotate vertices about their centre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ax, err := parseAxis(axis)
			if err != nil {
				return err
			}
			sel, err := a.selection()
			if err != nil {
				return err
			}
			return a.edit("rotate", func(m *polyedit.Mesh) bool {
				return m.RotateVerts(sel, mgl64.DegToRad(degrees), ax)
			})
		},
	}
	cmd.Flags().Float64Var(&degrees, "degrees", 0, "rotation angle")
	cmd.Flags().StringVar(&axis, "axis", "z", "rotation axis")
	return cmd
}

func (a *app) scaleCmd() *cobra.Command {
	var (
		factor float64
		around string
		along  string
	)
	cmd := &cobra.Command{
		Use:   "scale --verts I,J --factor F",
		Short: "Scale vertices about their centre",
		Long: "Scale vertices about their centre. With --around the axis component is\n" +
			"kept and the other two are scaled; with --along only that component is.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if around != "" && along != "" {
				return errors.New("--around and --along are exclusive")
			}
			sel, err := a.selection()
			if err != nil {
				return err
			}

			op := func(m *polyedit.Mesh) bool { return m.ScaleVerts(sel, factor) }
			switch {
			case around != "":
				ax, err := parseAxis(around)
				if err != nil {
					return err
				}
				op = func(m *polyedit.Mesh) bool { return m.ScaleVertsAroundAxis(sel, factor, ax) }
			case along != "":
				ax, err := parseAxis(along)
				if err != nil {
					return err
				}
				op = func(m *polyedit.Mesh) bool { return m.ScaleVertsAlongAxis(sel, factor, ax) }
			}
			return a.edit("scale", op)
		},
	}
	cmd.Flags().Float64Var(&factor, "factor", 1, "scale factor")
	cmd.Flags().StringVar(&around, "around", "", "keep this axis and scale the others")
	cmd.Flags().StringVar(&along, "along", "", "scale only this axis")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete --verts I,J",
		Short: "Delete vertices with their lines and polys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.selection()
			if err != nil {
				return err
			}
			return a.edit("delete", func(m *polyedit.Mesh) bool {
				n := m.DeleteVerts(sel)
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d verts\n", n)
				return n > 0
			})
		},
	}
}

// duplicateCmd builds both duplicate and extrude, which differ only in
// whether the copies are joined to the originals.
func (a *app) duplicateCmd(extrude bool) *cobra.Command {
	use, short := "duplicate", "Copy vertices with the lines and polys among them"
	if extrude {
		use, short = "extrude", "Duplicate vertices and join each copy to its original"
	}
	return &cobra.Command{
		Use:   use + " --verts I,J",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.selection()
			if err != nil {
				return err
			}
			return a.edit(use, func(m *polyedit.Mesh) bool {
				mapping, ok := m.DuplicateVerts(sel, extrude)
				if !ok {
					return false
				}
				for _, v := range polyedit.NewVertSet(sel...).Sorted() {
					fmt.Fprintf(cmd.OutOrStdout(), "%d -> %d\n", v, mapping[v])
				}
				return true
			})
		},
	}
}

func (a *app) splitCmd() *cobra.Command {
	var lines []uint
	cmd := &cobra.Command{
		Use:   "split --lines I,J",
		Short: "Split lines at their midpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := make([]polyedit.LineIndex, len(lines))
			for i, l := range lines {
				sel[i] = polyedit.LineIndex(l)
			}
			return a.edit("split", func(m *polyedit.Mesh) bool {
				mids, ok := m.SplitLines(sel)
				if ok {
					fmt.Fprintf(cmd.OutOrStdout(), "new verts: %s\n", joinInts(mids))
				}
				return ok
			})
		},
	}
	cmd.Flags().UintSliceVar(&lines, "lines", nil, "line indices to split")
	return cmd
}

func (a *app) connectCmd() *cobra.Command {
	var closePoly bool
	cmd := &cobra.Command{
		Use:   "connect A B",
		Short: "Add a line between two vertices",
		Long: "Add a line between two vertices. With --close, an existing path\n" +
			"between them becomes a poly.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ends, err := parseVerts(args)
			if err != nil {
				return err
			}
			return a.edit("connect", func(m *polyedit.Mesh) bool {
				return m.ConnectVerts(ends[0], ends[1], closePoly)
			})
		},
	}
	cmd.Flags().BoolVar(&closePoly, "close", false, "close the path between the vertices into a poly")
	return cmd
}

func (a *app) growCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grow --verts I,J",
		Short: "Print the selection grown by the polys it touches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.selection()
			if err != nil {
				return err
			}
			return a.withDocument(false, func(doc *document.Document) error {
				grown := doc.Current().GrowSelection(polyedit.NewVertSet(sel...))
				fmt.Fprintln(cmd.OutOrStdout(), joinInts(grown.Sorted()))
				return nil
			})
		},
	}
}

func (a *app) pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path A B",
		Short: "Print the shortest line path between two vertices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ends, err := parseVerts(args)
			if err != nil {
				return err
			}
			return a.withDocument(false, func(doc *document.Document) error {
				path := doc.Current().FindVertsBetween(ends[0], ends[1])
				if path == nil {
					return fmt.Errorf("no path from %d to %d", ends[0], ends[1])
				}
				fmt.Fprintln(cmd.OutOrStdout(), joinInts(path))
				return nil
			})
		},
	}
}

const maxRadialCount = 8

func (a *app) mirrorCmd() *cobra.Command {
	var (
		axis  string
		count int
	)
	cmd := &cobra.Command{
		Use:       "mirror [none|bilateral|radial]",
		Short:     "Print or set the mirror mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"none", "bilateral", "radial"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.withDocument(false, func(doc *document.Document) error {
					fmt.Fprintln(cmd.OutOrStdout(), doc.Current().MirrorMode())
					return nil
				})
			}

			var mode polyedit.MirrorMode
			switch args[0] {
			case "none":
				mode = polyedit.MirrorOff()
			case "bilateral":
				mode = polyedit.MirrorBilateralX()
			case "radial":
				if count < 2 || count > maxRadialCount {
					return fmt.Errorf("--count must be between 2 and %d, got %d", maxRadialCount, count)
				}
				ax, err := parseAxis(axis)
				if err != nil {
					return err
				}
				mode = polyedit.MirrorRadialAround(ax, count)
			default:
				return fmt.Errorf("unknown mirror mode %q", args[0])
			}
			return a.withDocument(true, func(doc *document.Document) error {
				doc.Current().SetMirrorMode(mode)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&axis, "axis", "y", "radial axis")
	cmd.Flags().IntVar(&count, "count", polyedit.DefaultRadialCount, "radial copies")
	return cmd
}

func parseVerts(args []string) ([]polyedit.VertIndex, error) {
	out := make([]polyedit.VertIndex, len(args))
	for i, s := range args {
		n, err := strconv.ParseUint(s, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %q", s)
		}
		out[i] = polyedit.VertIndex(n)
	}
	return out, nil
}
