package observability

import (
	"strings"
	"time"

	"github.com/smallbiznis/storeadmin/internal/config"
)

// Config is the slice of application config the telemetry stack reads.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	MetricsExporter     string
	MetricsEndpoint     string
	MetricsAuthToken    string
	MetricsPushInterval time.Duration
}

func LoadConfig(cfg config.Config) Config {
	name := strings.TrimSpace(cfg.AppName)
	if name == "" {
		name = "storeadmin"
	}
	interval := time.Duration(cfg.MetricsPushInterval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	return Config{
		ServiceName:          name,
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             cfg.LogLevel,
		LogFormat:            cfg.LogFormat,
		OtelEnabled:          cfg.TelemetryEnabled(),
		OtelExporterEndpoint: cfg.OtelEndpoint,
		OtelExporterProtocol: cfg.OtelProtocol,
		OtelSamplingRatio:    cfg.OtelSamplingRatio,
		MetricsExporter:      cfg.MetricsExporter,
		MetricsEndpoint:      cfg.MetricsEndpoint,
		MetricsAuthToken:     cfg.MetricsAuthToken,
		MetricsPushInterval:  interval,
	}
}

// Debug is true for debug logging or a local environment; request logs then
// carry stacks.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}
