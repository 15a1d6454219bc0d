package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomstore/pkg/serial"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported wire formats and verbosities",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "formats:")
			for _, f := range tree.Formats() {
				fmt.Fprintf(out, "  %s\n", f)
			}
			fmt.Fprintln(out, "verbosities:")
			for _, v := range serial.Verbosities() {
				fmt.Fprintf(out, "  %s\n", v)
			}
			return nil
		},
	}
}
