// Package metrics defines the service's metric instruments.
package metrics

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/DevHusayn/InvoicePro/internal/observability/tracing"
)

// Config identifies the service in metric labels.
type Config struct {
	ServiceName string
	Environment string
}

func (c Config) serviceName() string {
	if name := strings.TrimSpace(c.ServiceName); name != "" {
		return name
	}
	return "invoicepro"
}

func (c Config) environment() string {
	if env := strings.TrimSpace(c.Environment); env != "" {
		return env
	}
	return "unknown"
}

// FilterAttributes drops attributes with sensitive keys before they reach a
// metric exporter.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	return tracing.SafeAttributes(attrs...)
}
