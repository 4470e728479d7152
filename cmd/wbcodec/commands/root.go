package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/spf13/cobra"

	"github.com/diwise/wikibase-codec/internal/pkg/application/normalizer"
	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
)

const configEnvVar string = "WBCODEC_CONFIG"

type rootOptions struct {
	configPath string
	kind       string
}

// Execute runs the CLI with the logger stored in the command context
func Execute(ctx context.Context, logger *slog.Logger) error {
	ctx = logging.NewContextWithLogger(ctx, logger)

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		logger.Error("command failed", "err", err.Error())
	}

	return err
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "wbcodec",
		Short:         "Validate and normalize serialized wikibase snaks, claims and terms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a yaml configuration file (default $"+configEnvVar+")")
	root.PersistentFlags().StringVarP(&opts.kind, "kind", "k", string(codec.KindClaims), "kind of document: snak, snaks, reference, claim, claims, term or termlist")

	root.AddCommand(validateCmd(opts), normalizeCmd(opts), watchCmd(opts))

	return root
}

func (opts *rootOptions) documentKind() (codec.Kind, error) {
	return codec.ParseKind(opts.kind)
}

func (opts *rootOptions) loadConfig(ctx context.Context) (normalizer.Config, error) {
	path := opts.configPath
	if path == "" {
		path = env.GetVariableOrDefault(ctx, configEnvVar, "")
	}

	if path == "" {
		return normalizer.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return normalizer.Config{}, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	cfg, err := normalizer.LoadConfiguration(f)
	if err != nil {
		return normalizer.Config{}, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}

	return *cfg, nil
}

// newNormalizer loads the configuration and lets the command apply its flags on top of it
func (opts *rootOptions) newNormalizer(ctx context.Context, overrides ...func(*normalizer.Config)) (normalizer.Normalizer, error) {
	cfg, err := opts.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	for _, override := range overrides {
		override(&cfg)
	}

	return normalizer.New(ctx, cfg)
}

func readDocument(in io.Reader, path string) ([]byte, error) {
	if path == "-" && in != nil {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}
