// -- cmd/dump_layout.go --
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbro885/kosmonaut/internal/layout"
)

// newDumpLayoutCmd creates and configures the `dump-layout` command, the
// box-tree inspection surface used by the layout snapshot tests.
func newDumpLayoutCmd() *cobra.Command {
	var (
		verbose  bool
		asJSON   bool
		output   string
		cssFiles []string
	)

	dumpCmd := &cobra.Command{
		Use:   "dump-layout [html-file]",
		Short: "Lays out an HTML document and prints the resulting box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := windowConfig()
			if err != nil {
				return err
			}

			extraCSS := make([]string, 0, len(cssFiles))
			for _, path := range cssFiles {
				source, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read stylesheet %q: %w", path, err)
				}
				extraCSS = append(extraCSS, string(source))
			}

			_, tree, err := layoutDocument(args[0], window, extraCSS)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if asJSON {
				return layout.DumpLayoutJSON(w, tree, verbose)
			}
			return layout.DumpLayout(w, tree, verbose)
		},
	}

	dumpCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include margin, border and padding edges per box")
	dumpCmd.Flags().BoolVar(&asJSON, "json", false, "emit the box tree as JSON instead of text")
	dumpCmd.Flags().StringVarP(&output, "out", "o", "", "write the dump to a file instead of stdout")
	dumpCmd.Flags().StringSliceVar(&cssFiles, "css", nil, "additional stylesheet files, applied after the document's own")

	return dumpCmd
}
