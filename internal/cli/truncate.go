package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/settings"
)

// truncateCommand fits one label to a width.
func (c *CLI) truncateCommand() *cobra.Command {
	var (
		width    float64
		fontSize float64
		family   string
	)

	cmd := &cobra.Command{
		Use:   "truncate [text]",
		Short: "Shorten text with an ellipsis to fit a width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c.newMeasurer()
			fitted := m.TruncateFamily(args[0], width, fontSize, family)
			loggerFromContext(cmd.Context()).Debug("truncated", "text", args[0], "width", width, "runes", len([]rune(fitted)))

			out := cmd.OutOrStdout()
			printKeyValue(out, "Text", fitted)
			printKeyValue(out, "Width", formatNumber(m.MeasureWidth(fitted, fontSize, family)))
			printKeyValue(out, "Original", formatNumber(m.MeasureWidth(args[0], fontSize, family)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "maximum width in pixels")
	cmd.Flags().Float64Var(&fontSize, "font-size", settings.DefaultFontSize, "font size in pixels")
	cmd.Flags().StringVar(&family, "family", "", "font family")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}
