package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidegen/pkg/highlight"
)

func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List code highlighting styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listStyles(cmd.OutOrStdout(), c.cfg.Code.Style)
		},
	}
}

// listStyles prints one style per line, marking the configured one.
func listStyles(w io.Writer, current string) error {
	for _, name := range highlight.Styles() {
		line := "  " + name
		if name == current {
			line = StyleHighlight.Render("* " + name)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
