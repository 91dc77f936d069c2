package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/hierarchy"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/settings"
	"github.com/matzehuels/chartkit/pkg/source"
)

// tableFlags are the flags shared by commands that read a table file.
type tableFlags struct {
	sheet   string // worksheet name (xlsx only)
	rowDims int    // leading row dimension columns
	group   string // group column header
	sort    []string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet to read (default: first sheet)")
	cmd.Flags().IntVar(&f.rowDims, "row-dims", settings.DefaultRowDimensions, "number of leading row dimension columns")
	cmd.Flags().StringVar(&f.group, "group", "", "header of the column that splits rows into panels")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, "sort direction per column level: asc, desc (comma-separated)")
}

// apply copies the flags the user set onto s.
func (f *tableFlags) apply(cmd *cobra.Command, s *settings.Settings) error {
	return s.Apply(func(s *settings.Settings) {
		if cmd.Flags().Changed("sheet") {
			s.Table.Sheet = f.sheet
		}
		if cmd.Flags().Changed("row-dims") {
			s.Table.RowDimensions = f.rowDims
		}
		if cmd.Flags().Changed("group") {
			s.Table.GroupColumn = f.group
		}
		if cmd.Flags().Changed("sort") {
			s.Axis.SortDirections = f.sort
		}
	})
}

// layoutFile loads path and runs one layout pass under the CLI settings.
func (c *CLI) layoutFile(ctx context.Context, cmd *cobra.Command, path string, flags *tableFlags, extra func(*settings.Settings)) (*pipeline.Frame, error) {
	s, err := c.loadSettings()
	if err != nil {
		return nil, err
	}
	if err := flags.apply(cmd, s); err != nil {
		return nil, err
	}
	if extra != nil {
		if err := s.Apply(extra); err != nil {
			return nil, err
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	t, err := source.Load(path, s.Table.Sheet)
	if err != nil {
		return nil, err
	}
	frame, err := c.newRunner().Run(ctx, t, s)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Laid out %d records from %s", len(t.Rows), path))
	return frame, nil
}

// hierarchyCommand prints the column and row hierarchies of a table.
func (c *CLI) hierarchyCommand() *cobra.Command {
	var (
		flags  tableFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "hierarchy [file]",
		Short: "Print the column and row hierarchies of a pivot table",
		Long: `Print the column and row hierarchies built from a pivot table.

The file may be an Excel workbook (.xlsx, .xlsm) or a JSON table. Column
headers are split on "|" into levels; the first --row-dims columns become
row levels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := c.layoutFile(cmd.Context(), cmd, args[0], &flags, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				hf := &pipeline.Frame{Table: frame.Table, Canvas: frame.Canvas, Columns: frame.Columns, Rows: frame.Rows, Stats: frame.Stats}
				return hf.WriteJSON(out)
			}
			printHierarchy(out, frame)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the hierarchies as JSON")
	return cmd
}

func printHierarchy(out io.Writer, frame *pipeline.Frame) {
	cols := frame.Columns
	printTitle(out, fmt.Sprintf("Columns: %d leaves, %d levels", cols.LeafCount(), cols.Depth))
	var rows [][]string
	for level := range cols.Depth {
		var parts []string
		for _, sp := range cols.SpansAt(level) {
			parts = append(parts, fmt.Sprintf("%s [%d-%d]", sp.Label, sp.Start, sp.End))
		}
		rows = append(rows, []string{fmt.Sprint(level), strings.Join(parts, "  ")})
	}
	printTable(out, []string{"Level", "Spans"}, rows)

	printTitle(out, fmt.Sprintf("Rows: %d panels", len(frame.Rows)))
	rows = nil
	for _, p := range frame.Rows {
		group := p.Group
		if group == "" {
			group = "-"
		}
		rows = append(rows, []string{group, fmt.Sprint(p.Hierarchy.LeafCount()), joinPaths(p.Hierarchy)})
	}
	printTable(out, []string{"Group", "Leaves", "Paths"}, rows)
}

func joinPaths(h hierarchy.Hierarchy) string {
	paths := make([]string, len(h.LeafPaths))
	for i, p := range h.LeafPaths {
		paths[i] = strings.Join(p, " / ")
	}
	return strings.Join(paths, "\n")
}
