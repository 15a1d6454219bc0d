package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomstore/pkg/multiformat"
	"github.com/matzehuels/sbomstore/pkg/serial"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	input     string // input file path ("-" for stdin)
	output    string // output file path ("-" for stdout)
	from      string // input format name
	to        string // output format name
	verbosity string // output verbosity name
	overwrite bool   // allow overwriting an existing namespace in the store
}

func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a document between wire formats",
		Long: `Convert deserializes a COMPACT-shaped document in one format and
re-serializes it in another format and verbosity.`,
		Example: `  sbomstore convert -i doc.spdx.json -o doc.spdx.yaml --from json --to yaml
  cat doc.spdx.json | sbomstore convert --from json --to xml --verbosity full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "input file path, or - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file path, or - for stdout")
	cmd.Flags().StringVar(&opts.from, "from", "", "input format: json, json-pretty, xml, yaml")
	cmd.Flags().StringVar(&opts.to, "to", "", "output format: json, json-pretty, xml, yaml")
	cmd.Flags().StringVar(&opts.verbosity, "verbosity", "", "output verbosity: compact, standard, full")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "overwrite an existing namespace in the store")

	return cmd
}

func (c *CLI) runConvert(opts convertOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	from, err := tree.ParseFormat(orDefault(opts.from, cfg.Format, "json"))
	if err != nil {
		return err
	}
	to, err := tree.ParseFormat(orDefault(opts.to, cfg.Format, "json"))
	if err != nil {
		return err
	}
	verbose, err := serial.ParseVerbose(orDefault(opts.verbosity, cfg.Verbosity, "compact"))
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer closeIn()

	p := newProgress(c.Logger)
	st := multiformat.NewCompact(from, multiformat.WithLogger(c.Logger))
	namespace, err := st.Deserialize(in, opts.overwrite)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded document", "namespace", namespace, "from", from.String())

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	st.SetFormat(to)
	st.SetVerbose(verbose)
	if err := st.Serialize(namespace, out); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Converted %s from %s to %s/%s", namespace, from, to, verbose))
	return nil
}

// openInput opens the input path, with "-" meaning stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// openOutput opens the output path for writing, with "-" meaning stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
