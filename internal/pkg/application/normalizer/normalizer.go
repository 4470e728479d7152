package normalizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const TraceAttributeDocumentKind string = "wikibase.document.kind"

var tracer = otel.Tracer("wbcodec/normalizer")

// Normalizer decodes serialized wikibase documents, validates them and writes
// them back in canonical form
type Normalizer interface {
	Normalize(ctx context.Context, kind codec.Kind, data []byte) ([]byte, error)
	Validate(ctx context.Context, kind codec.Kind, data []byte) error
}

type normalizerApp struct {
	factory    *codec.Factory
	format     wire.MapFormat
	encoding   string
	indent     string
	assignGUID bool
	subject    ids.EntityID
}

func New(ctx context.Context, cfg Config) (Normalizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	format, _ := wire.ParseMapFormat(cfg.Output.MapFormat)
	policy, _ := codec.ParseHashPolicy(cfg.References.HashPolicy)

	app := &normalizerApp{
		factory:    codec.NewFactory(codec.WithHashPolicy(policy)),
		format:     format,
		encoding:   cfg.Output.Encoding,
		indent:     cfg.Output.Indent,
		assignGUID: cfg.Claims.AssignMissingGUIDs,
	}

	if app.assignGUID {
		app.subject, _ = ids.Parse(cfg.Claims.Subject)
	}

	logging.GetFromContext(ctx).Debug(
		"created normalizer",
		slog.String("map_format", format.String()),
		slog.String("encoding", app.encoding),
		slog.Bool("assign_guids", app.assignGUID),
	)

	return app, nil
}

func (app *normalizerApp) Validate(ctx context.Context, kind codec.Kind, data []byte) error {
	var err error

	ctx, span := tracer.Start(ctx, "validate", trace.WithAttributes(attribute.String(TraceAttributeDocumentKind, string(kind))))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	_, err = app.decode(ctx, kind, data)
	if err != nil {
		log.Debug("document failed validation", slog.String("kind", string(kind)), slog.String("position", wberrors.PositionOf(err)), "err", err.Error())
	}

	return err
}

func (app *normalizerApp) Normalize(ctx context.Context, kind codec.Kind, data []byte) ([]byte, error) {
	var err error

	ctx, span := tracer.Start(ctx, "normalize", trace.WithAttributes(attribute.String(TraceAttributeDocumentKind, string(kind))))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	object, err := app.decode(ctx, kind, data)
	if err != nil {
		log.Debug("document failed validation", slog.String("kind", string(kind)), slog.String("position", wberrors.PositionOf(err)), "err", err.Error())
		return nil, err
	}

	if app.assignGUID {
		object = app.assignMissingGUIDs(object)
	}

	serialized, err := app.factory.Serialize(object, app.format)
	if err != nil {
		err = fmt.Errorf("failed to serialize %s: %w", kind, err)
		return nil, err
	}

	var out []byte
	out, err = app.encode(serialized)
	if err != nil {
		err = fmt.Errorf("failed to encode %s: %w", kind, err)
		return nil, err
	}

	return out, nil
}

func (app *normalizerApp) decode(_ context.Context, kind codec.Kind, data []byte) (any, error) {
	v, err := wire.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", kind, err)
	}

	object, err := app.factory.Deserialize(kind, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s document: %w", kind, err)
	}

	return object, nil
}

func (app *normalizerApp) assignMissingGUIDs(object any) any {
	switch typed := object.(type) {
	case claims.List:
		return typed.AssignMissingGUIDs(app.subject)
	case claims.Claim:
		if typed.GUID() == "" {
			return typed.WithGUID(claims.NewGUID(app.subject))
		}
	}
	return object
}

func (app *normalizerApp) encode(v any) ([]byte, error) {
	if app.encoding == EncodingMsgpack {
		return wire.MarshalMsgpack(v)
	}

	if app.indent != "" {
		return wire.MarshalIndent(v, "", app.indent)
	}

	return wire.Marshal(v)
}
