package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomstore/pkg/multiformat"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	input string // input file path ("-" for stdin)
	from  string // input format name
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a document and print a summary of its graph",
		Example: `  sbomstore inspect -i doc.spdx.json --from json
  cat doc.spdx.yaml | sbomstore inspect --from yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "input file path, or - for stdin")
	cmd.Flags().StringVar(&opts.from, "from", "", "input format: json, json-pretty, xml, yaml")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts inspectOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	from, err := tree.ParseFormat(orDefault(opts.from, cfg.Format, "json"))
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer closeIn()

	st := multiformat.NewCompact(from, multiformat.WithLogger(c.Logger))
	namespace, err := st.Deserialize(in, false)
	if err != nil {
		return err
	}

	items, err := st.Graph().Items(namespace)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Type]++
	}
	types := make([]string, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Strings(types)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "namespace: %s\n", namespace)
	fmt.Fprintf(out, "elements:  %d\n", len(items))
	for _, typ := range types {
		fmt.Fprintf(out, "  %-24s %d\n", typ, counts[typ])
	}
	return nil
}
