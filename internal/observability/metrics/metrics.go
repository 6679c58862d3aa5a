package metrics

import (
	"context"
	"strings"

	"github.com/haroun39/facteur/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
)

var sensitiveAttributeKeys = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"phone",
}

// NewMeterProvider configures the global meter provider.
func NewMeterProvider(lc fx.Lifecycle) metric.MeterProvider {
	provider := sdkmetric.NewMeterProvider()
	otel.SetMeterProvider(provider)
	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return provider.Shutdown(ctx)
			},
		})
	}
	return provider
}

// MeterName returns the instrumentation meter name for a subsystem.
func MeterName(cfg config.Config, subsystem string) string {
	name := strings.TrimSpace(cfg.Tracing.ServiceName)
	if name == "" {
		name = "facteur"
	}
	return name + "/" + subsystem
}

// FilterAttributes drops attributes with sensitive keys before recording.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if isSensitiveAttribute(string(attr.Key)) {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

func isSensitiveAttribute(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, needle := range sensitiveAttributeKeys {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}

// Module provides metric instruments to the fx graph.
var Module = fx.Module("metrics",
	fx.Provide(NewMeterProvider),
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewBillingMetrics),
)
