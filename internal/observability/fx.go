// Package observability wires logging, tracing and metrics into the fx app.
package observability

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"

	"github.com/DevHusayn/InvoicePro/internal/config"
	"github.com/DevHusayn/InvoicePro/internal/observability/logger"
	"github.com/DevHusayn/InvoicePro/internal/observability/metrics"
	"github.com/DevHusayn/InvoicePro/internal/observability/tracing"
)

// Module provides the observability stack.
var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.Telemetry.TracingEnabled,
			ServiceName:      cfg.ServiceName,
			ServiceVersion:   cfg.ServiceVersion,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
			ExporterProtocol: cfg.Telemetry.ExporterProtocol,
			SamplingRatio:    cfg.Telemetry.SamplingRatio,
		}
	}),
	fx.Provide(tracing.NewProvider),
	fx.Invoke(func(provider *sdktrace.TracerProvider) {}),
	fx.Provide(func(cfg config.Config) metrics.Config {
		return metrics.Config{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
		}
	}),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(metrics.Render),
)
