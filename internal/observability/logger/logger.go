package logger

import (
	"context"
	"strings"

	"github.com/haroun39/facteur/internal/config"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds the root logger for the service. Production gets JSON output,
// everything else gets the development console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with request id and, when
// the span is recording, trace correlation fields.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}
	if requestID := strings.TrimSpace(RequestIDFromContext(ctx)); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		log = log.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return log
}

// Module provides the root logger to the fx graph.
var Module = fx.Module("logger",
	fx.Provide(New),
)
