package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/axis"
	"github.com/matzehuels/chartkit/pkg/settings"
)

// axisFlags override the axis settings.
type axisFlags struct {
	width    float64
	fontSize float64
	family   string
	rotation string
	angle    float64
}

func (f *axisFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "available axis width in pixels (default: canvas width)")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", settings.DefaultFontSize, "label font size in pixels")
	cmd.Flags().StringVar(&f.family, "family", "", "label font family")
	cmd.Flags().StringVar(&f.rotation, "rotation", "auto", "rotation mode: auto, always, never")
	cmd.Flags().Float64Var(&f.angle, "angle", axis.DefaultAngle, "rotation angle in degrees")
}

func (f *axisFlags) apply(cmd *cobra.Command, s *settings.Settings) error {
	return s.Apply(func(s *settings.Settings) {
		if cmd.Flags().Changed("font-size") {
			s.Axis.FontSize = f.fontSize
		}
		if cmd.Flags().Changed("family") {
			s.Axis.FontFamily = f.family
		}
		if cmd.Flags().Changed("rotation") {
			s.Axis.Rotation = f.rotation
		}
		if cmd.Flags().Changed("angle") {
			s.Axis.Angle = f.angle
		}
	})
}

// labelsCommand schedules a list of axis labels.
func (c *CLI) labelsCommand() *cobra.Command {
	var flags axisFlags

	cmd := &cobra.Command{
		Use:   "labels [label...]",
		Short: "Decide rotation and skipping for axis labels",
		Long: `Decide whether axis labels should be rotated and how many to skip so they
fit the available width, then print the visible ticks with their fitted text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSettings()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, s); err != nil {
				return err
			}
			width := flags.width
			if !cmd.Flags().Changed("width") {
				width = s.Canvas.Width
			}

			req := axis.Request{
				Mode:           s.RotationMode(),
				Labels:         args,
				AvailableWidth: width,
				FontSize:       s.Axis.FontSize,
				Family:         s.Axis.FontFamily,
				AngleDeg:       s.Axis.Angle,
			}
			decision, ticks := axis.BuildTicks(c.newMeasurer(), req, nil)

			out := cmd.OutOrStdout()
			printKeyValue(out, "Labels", len(args))
			printKeyValue(out, "Width", formatNumber(width))
			printKeyValue(out, "Rotate", decision.Rotate)
			printKeyValue(out, "Skip", decision.SkipInterval)
			if decision.SkipInterval > 1 {
				printWarning(out, "showing %d of %d labels", len(ticks), len(args))
			}

			rows := make([][]string, len(ticks))
			for i, t := range ticks {
				rows[i] = []string{fmt.Sprint(t.Index), fmt.Sprintf("%.1f", t.Pos), t.Text}
			}
			printTable(out, []string{"Index", "Position", "Text"}, rows)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
