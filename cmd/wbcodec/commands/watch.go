package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/diwise/wikibase-codec/internal/pkg/application/normalizer"
	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
)

func watchCmd(opts *rootOptions) *cobra.Command {
	var extension string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Validate documents in a directory every time they are written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			kind, err := opts.documentKind()
			if err != nil {
				return err
			}

			n, err := opts.newNormalizer(ctx)
			if err != nil {
				return err
			}

			return watchDirectory(ctx, n, kind, args[0], extension, cmd.OutOrStdout(), nil)
		},
	}

	cmd.Flags().StringVar(&extension, "ext", ".json", "only validate files with this extension")

	return cmd
}

// watchDirectory validates every matching file below dir once and then again
// each time it is created or written, until ctx is cancelled. ready is closed
// when the watches are in place.
func watchDirectory(ctx context.Context, n normalizer.Normalizer, kind codec.Kind, dir, extension string, out io.Writer, ready chan<- struct{}) error {
	log := logging.GetFromContext(ctx).With(slog.String("dir", dir), slog.String("kind", string(kind)))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	matches := func(path string) bool {
		return extension == "" || strings.HasSuffix(path, extension)
	}

	err = filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return watcher.Add(path)
		}
		if matches(path) {
			validateDocument(ctx, n, kind, path, nil, out)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if ready != nil {
		close(ready)
	}

	log.Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped watching")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher failed", "err", err.Error())
			return err
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("failed to watch new directory", slog.String("path", event.Name), "err", err.Error())
					}
					continue
				}
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if !matches(event.Name) {
				continue
			}

			log.Debug("document changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			validateDocument(ctx, n, kind, event.Name, nil, out)
		}
	}
}
