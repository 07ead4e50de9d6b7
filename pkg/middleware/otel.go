package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/assethelper/pkg/assets"
)

// Default tracer name for asset lookups.
const defaultTracerName = "assethelper"

// OTelConfig configures TracingStater.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "assethelper").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// IncludePath records the looked-up path as a span attribute.
	// Enabled by default.
	IncludePath bool
}

// OTelOption configures TracingStater.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludePath enables/disables the path attribute.
func WithIncludePath(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePath = include
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		IncludePath: true,
	}
}

// TracingStater wraps next so every lookup runs inside an
// "assets.stat" span carrying whether the file was found.
func TracingStater(next assets.Stater, opts ...OTelOption) assets.Stater {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return assets.StaterFunc(func(ctx context.Context, path string) (time.Time, bool) {
		var attrs []attribute.KeyValue
		if config.IncludePath {
			attrs = append(attrs, attribute.String("assets.path", path))
		}
		ctx, span := tracer.Start(ctx, "assets.stat",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		mod, ok := next.ModTime(ctx, path)
		span.SetAttributes(attribute.Bool("assets.found", ok))
		if ok {
			span.SetAttributes(attribute.Int64("assets.mtime", mod.Unix()))
		}
		return mod, ok
	})
}
