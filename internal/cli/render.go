package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/preview"
	"github.com/matzehuels/chartkit/pkg/settings"
)

const (
	formatJSON = "json"
	formatPNG  = "png"
	formatSVG  = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string  // output file path; stdout when empty
	format string  // json, png or svg; inferred from output when empty
	scale  float64 // PNG pixel density
	width  float64 // canvas width
	height float64 // canvas height
	rotate string  // axis rotation mode
	legend string  // legend position
	table  tableFlags
}

// renderCommand runs a full layout pass.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out a pivot table and write the frame or a preview",
		Long: `Run one layout pass over a pivot table: hierarchies, legend reservation,
axis label scheduling and legend placement.

The frame is written as JSON. A .png or .svg output (or --format png|svg)
writes a preview image of the layout instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			if format != formatJSON && opts.output == "" {
				return errors.New(errors.ErrCodeInvalidInput, "%s output needs --output", format)
			}

			frame, err := c.layoutFile(cmd.Context(), cmd, args[0], &opts.table, func(s *settings.Settings) {
				if cmd.Flags().Changed("width") {
					s.Canvas.Width = opts.width
				}
				if cmd.Flags().Changed("height") {
					s.Canvas.Height = opts.height
				}
				if cmd.Flags().Changed("rotation") {
					s.Axis.Rotation = opts.rotate
				}
				if cmd.Flags().Changed("legend") {
					s.Legend.Position = opts.legend
				}
			})
			if err != nil {
				return err
			}
			return c.writeFrame(cmd, frame, format, &opts)
		},
	}

	opts.table.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: JSON to stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, png, svg")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.width, "width", settings.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", settings.DefaultHeight, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.rotate, "rotation", "auto", "axis label rotation: auto, always, never")
	cmd.Flags().StringVar(&opts.legend, "legend", settings.DefaultLegendPosition, "legend position")
	return cmd
}

// resolveFormat picks the output format from the flag or the file extension.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = formatJSON
		}
	}
	switch format {
	case formatJSON, formatPNG, formatSVG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (want json, png or svg)", format)
}

func (c *CLI) writeFrame(cmd *cobra.Command, frame *pipeline.Frame, format string, opts *renderOpts) error {
	out := cmd.OutOrStdout()

	var data []byte
	switch format {
	case formatPNG:
		png, err := preview.RenderPNG(frame, preview.WithScale(opts.scale), preview.WithMeasurer(c.newMeasurer()))
		if err != nil {
			return err
		}
		data = png
	case formatSVG:
		svg, err := preview.RenderSVG(frame, c.newMeasurer())
		if err != nil {
			return err
		}
		data = svg
	default:
		if opts.output == "" {
			return frame.WriteJSON(out)
		}
		var buf bytes.Buffer
		if err := frame.WriteJSON(&buf); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess(out, "Rendered %s", format)
	printFile(out, opts.output)
	return nil
}
