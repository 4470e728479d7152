package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/diwise/wikibase-codec/internal/pkg/application/normalizer"
	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file|-]...",
		Short: "Check that documents decode without errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := opts.documentKind()
			if err != nil {
				return err
			}

			n, err := opts.newNormalizer(ctx)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				if err := validateDocument(ctx, n, kind, path, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}

			return nil
		},
	}
	return cmd
}

func validateDocument(ctx context.Context, n normalizer.Normalizer, kind codec.Kind, path string, in io.Reader, out io.Writer) error {
	data, err := readDocument(in, path)
	if err != nil {
		fmt.Fprintf(out, "%s: %s\n", path, err.Error())
		return err
	}

	err = n.Validate(ctx, kind, data)
	if err != nil {
		fmt.Fprintf(out, "%s: %s\n", path, err.Error())
		return err
	}

	fmt.Fprintf(out, "%s: ok\n", path)
	return nil
}
