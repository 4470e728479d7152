package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/diwise/wikibase-codec/internal/pkg/application/normalizer"
)

type normalizeOptions struct {
	assignGUIDs bool
	subject     string
	mapFormat   string
	encoding    string
	indent      string
	output      string
}

func normalizeCmd(opts *rootOptions) *cobra.Command {
	nopts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Rewrite a document in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := opts.documentKind()
			if err != nil {
				return err
			}

			n, err := opts.newNormalizer(ctx, nopts.apply(cmd))
			if err != nil {
				return err
			}

			data, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			out, err := n.Normalize(ctx, kind, data)
			if err != nil {
				return err
			}

			if nopts.output != "" {
				return os.WriteFile(nopts.output, out, 0o644)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&nopts.assignGUIDs, "assign-guids", false, "give claims without an id a new guid")
	cmd.Flags().StringVar(&nopts.subject, "subject", "", "entity id used as guid prefix, e.g. Q42")
	cmd.Flags().StringVar(&nopts.mapFormat, "map-format", "", "how keyed mappings are written: array or object")
	cmd.Flags().StringVar(&nopts.encoding, "encoding", "", "output encoding: json or msgpack")
	cmd.Flags().StringVar(&nopts.indent, "indent", "", "indent json output with this string")
	cmd.Flags().StringVarP(&nopts.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

// apply overrides the configuration with the flags that were set explicitly
func (nopts *normalizeOptions) apply(cmd *cobra.Command) func(*normalizer.Config) {
	return func(cfg *normalizer.Config) {
		flags := cmd.Flags()

		if flags.Changed("assign-guids") {
			cfg.Claims.AssignMissingGUIDs = nopts.assignGUIDs
		}
		if flags.Changed("subject") {
			cfg.Claims.Subject = nopts.subject
		}
		if flags.Changed("map-format") {
			cfg.Output.MapFormat = nopts.mapFormat
		}
		if flags.Changed("encoding") {
			cfg.Output.Encoding = nopts.encoding
		}
		if flags.Changed("indent") {
			cfg.Output.Indent = nopts.indent
		}
	}
}
