package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/legend"
	"github.com/matzehuels/chartkit/pkg/settings"
)

// legendCommand reserves and places a legend for a list of labels.
func (c *CLI) legendCommand() *cobra.Command {
	var (
		position string
		maxItems int
		fontSize float64
		width    float64
		height   float64
		gradient bool
	)

	cmd := &cobra.Command{
		Use:   "legend [label...]",
		Short: "Reserve space for a legend and place its items",
		Long: `Reserve space for a legend on its dock side and place its items.

Positions combine a dock side with an alignment, e.g. "top", "bottom-center",
"top-left-stacked", "center-right" or "right-bottom". With --gradient the two
labels are the minimum and maximum of a color bar.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if gradient && len(args) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "a gradient legend takes exactly two labels (min and max), got %d", len(args))
			}
			s, err := c.loadSettings()
			if err != nil {
				return err
			}
			err = s.Apply(func(s *settings.Settings) {
				if cmd.Flags().Changed("position") {
					s.Legend.Position = position
				}
				if cmd.Flags().Changed("max-items") {
					s.Legend.MaxItems = maxItems
				}
				if cmd.Flags().Changed("font-size") {
					s.Legend.FontSize = fontSize
				}
				if cmd.Flags().Changed("width") {
					s.Canvas.Width = width
				}
				if cmd.Flags().Changed("height") {
					s.Canvas.Height = height
				}
			})
			if err != nil {
				return err
			}

			req := legend.Request{
				Position: s.LegendPosition(),
				MaxItems: s.Legend.MaxItems,
				FontSize: s.Legend.FontSize,
				Family:   s.Axis.FontFamily,
				Colors:   s.Legend.Colors,
			}
			if gradient {
				req.Kind = legend.KindGradient
				req.MinLabel, req.MaxLabel = args[0], args[1]
			} else {
				req.Labels = args
			}

			engine := legend.NewEngine(c.newMeasurer(), legend.WithLogger(c.Logger))
			canvas := s.CanvasSize()
			res := engine.Reserve(req, canvas)
			p := engine.Place(req, res, canvas, nil)

			printLegend(cmd, req, res, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", settings.DefaultLegendPosition, "legend position")
	cmd.Flags().IntVar(&maxItems, "max-items", settings.DefaultLegendMaxItems, "maximum number of items shown")
	cmd.Flags().Float64Var(&fontSize, "font-size", settings.DefaultFontSize, "label font size in pixels")
	cmd.Flags().Float64Var(&width, "width", settings.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", settings.DefaultHeight, "canvas height in pixels")
	cmd.Flags().BoolVar(&gradient, "gradient", false, "draw a continuous color bar between two labels")
	return cmd
}

func printLegend(cmd *cobra.Command, req legend.Request, res legend.Reservation, p legend.Placement) {
	out := cmd.OutOrStdout()
	m := res.Margin
	printKeyValue(out, "Position", req.Position)
	printKeyValue(out, "Margin", fmt.Sprintf("top %s  right %s  bottom %s  left %s",
		formatNumber(m.Top), formatNumber(m.Right), formatNumber(m.Bottom), formatNumber(m.Left)))
	printKeyValue(out, "Block", fmt.Sprintf("%s x %s", formatNumber(res.Block.W), formatNumber(res.Block.H)))
	printKeyValue(out, "Origin", fmt.Sprintf("(%s, %s)", formatNumber(p.X), formatNumber(p.Y)))

	if g := p.Gradient; g != nil {
		printKeyValue(out, "Bar", fmt.Sprintf("%s .. %s", g.MinLabel, g.MaxLabel))
		return
	}
	printKeyValue(out, "Grid", fmt.Sprintf("%d rows x %d cols", res.Rows, res.Cols))
	if hidden := len(req.Labels) - len(p.Items); hidden > 0 {
		printWarning(out, "%d labels over the item limit are hidden", hidden)
	}

	rows := make([][]string, len(p.Items))
	for i, it := range p.Items {
		rows[i] = []string{it.Label, fmt.Sprint(it.Row), fmt.Sprint(it.Col), fmt.Sprintf("%.1f", it.X), fmt.Sprintf("%.1f", it.Y), it.Color}
	}
	printTable(out, []string{"Label", "Row", "Col", "X", "Y", "Color"}, rows)
}
