package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures metric export.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string

	PushExporter  string
	PushEndpoint  string
	PushAuthToken string
	PushInterval  time.Duration
}

// Outcome labels for mutation counters.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeDenied       = "denied"
	OutcomeNotFound     = "not_found"
	OutcomeBlocked      = "blocked"
	OutcomeInternal     = "internal"
	OutcomeUnauthorized = "unauthenticated"
)

// Metrics exposes store resource instruments over OpenTelemetry.
type Metrics struct {
	mutations      metric.Int64Counter
	blockedDeletes metric.Int64Counter
	denials        metric.Int64Counter
}

// NewProvider configures and registers the OTLP meter provider. When export is
// disabled a no-op provider is installed.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

// New creates the domain instruments from provider.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "storeadmin"
	}
	meter := provider.Meter(name)

	mutations, err := meter.Int64Counter("storeadmin_mutations_total",
		metric.WithDescription("Create, update and delete requests by resource, operation and outcome."))
	if err != nil {
		return nil, err
	}
	blockedDeletes, err := meter.Int64Counter("storeadmin_blocked_deletes_total",
		metric.WithDescription("Deletes refused because dependent records still exist."))
	if err != nil {
		return nil, err
	}
	denials, err := meter.Int64Counter("storeadmin_authorization_denied_total",
		metric.WithDescription("Mutations rejected by the ownership guard."))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		mutations:      mutations,
		blockedDeletes: blockedDeletes,
		denials:        denials,
	}, nil
}

// RecordMutation counts one mutation attempt.
func (m *Metrics) RecordMutation(ctx context.Context, resource, operation, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("resource", resource),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.mutations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBlockedDelete counts a delete refused by the integrity policy.
func (m *Metrics) RecordBlockedDelete(ctx context.Context, resource, dependent string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("resource", resource),
		attribute.String("dependent", dependent),
	)
	m.blockedDeletes.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordDenied counts a request rejected for missing identity or ownership.
func (m *Metrics) RecordDenied(ctx context.Context, resource, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("resource", resource),
		attribute.String("reason", reason),
	)
	m.denials.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

// Store and record ids are unbounded; they never become labels.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"resource":  {},
	"operation": {},
	"outcome":   {},
	"dependent": {},
	"reason":    {},
}

// FilterAttributes drops labels outside the allow list and blank values.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		if strings.TrimSpace(attr.Value.Emit()) == "" {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
