package commands

import (
	"github.com/spf13/cobra"

	"github.com/mxhf/pyhetdex/cmd/ditherfile/app"
	"github.com/mxhf/pyhetdex/pkg/output"
)

type inspectOptions struct {
	*Options
	kind         string
	outputFormat string
	outputFile   string
}

func newInspectCommand(opts *Options) *cobra.Command {
	in := &inspectOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "inspect [flags] <file>",
		Short: "Parse a survey file and print its content",
		Long: `Parse a dither, focal plane, IFU center or dither position file and
print its content as a table, JSON or YAML. The file kind is guessed
from the file name when --kind is not given.`,
		Example: `  ditherfile inspect dither_046.txt
  ditherfile inspect -o json fplane.txt
  ditherfile inspect --kind ifucenter IFUcen_HETDEX.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cmd.Help()
			}
			return runInspect(args[0], in)
		},
	}

	// Add flags specific to inspect command
	cmd.Flags().StringVarP(&in.kind, "kind", "k", "",
		"file kind: dither|fplane|ifucenter|positions (default: guessed)")
	cmd.Flags().StringVarP(&in.outputFormat, "output", "o", "table",
		"output format: table|json|yaml")
	cmd.Flags().StringVarP(&in.outputFile, "file", "f", "",
		"write output to file instead of stdout")

	return cmd
}

func runInspect(path string, opts *inspectOptions) error {
	application := app.New(opts.Config)
	defer application.Shutdown()

	return application.Inspect(&app.InspectOptions{
		Path:       path,
		Kind:       opts.kind,
		Format:     output.Format(opts.outputFormat),
		OutputPath: opts.outputFile,
	})
}
