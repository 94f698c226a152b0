package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the application Config and the CORS origin holder.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewCORSConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	AuthJWTSecret string
	AuthJWTIssuer string

	LogLevel  string
	LogFormat string

	// OtelEnabled is nil when OTEL_ENABLED is unset; export then follows IsProduction.
	OtelEnabled       *bool
	OtelEndpoint      string
	OtelProtocol      string
	OtelSamplingRatio float64

	MetricsExporter     string
	MetricsEndpoint     string
	MetricsAuthToken    string
	MetricsPushInterval int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	SnowflakeNode int64

	CORSConfigPath     string
	CORSAllowedOrigins []string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:             getenv("APP_SERVICE", "storeadmin"),
		AppVersion:          firstEnv("SERVICE_VERSION", "APP_VERSION", "0.1.0"),
		Environment:         firstEnv("DEPLOYMENT_ENV", "ENVIRONMENT", "development"),
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		AuthJWTSecret:       strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		AuthJWTIssuer:       strings.TrimSpace(getenv("AUTH_JWT_ISSUER", "")),
		LogLevel:            strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:           strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		OtelEnabled:         getenvOptionalBool("OTEL_ENABLED"),
		OtelEndpoint:        strings.TrimSpace(firstEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "OTLP_ENDPOINT", "localhost:4317")),
		OtelProtocol:        strings.ToLower(strings.TrimSpace(firstEnv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"))),
		OtelSamplingRatio:   getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		MetricsExporter:     strings.ToLower(strings.TrimSpace(getenv("METRICS_EXPORTER", ""))),
		MetricsEndpoint:     strings.TrimSpace(getenv("METRICS_ENDPOINT", "")),
		MetricsAuthToken:    strings.TrimSpace(getenv("METRICS_AUTH_TOKEN", "")),
		MetricsPushInterval: getenvInt("METRICS_PUSH_INTERVAL", 60),
		DBType:              getenv("DATABASE_TYPE", "postgres"),
		DBHost:              getenv("DATABASE_HOST", "localhost"),
		DBPort:              getenv("DATABASE_PORT", "5432"),
		DBName:              getenv("DATABASE_NAME", "storeadmin"),
		DBUser:              getenv("DATABASE_USER", "postgres"),
		DBPassword:          getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:           getenv("DATABASE_SSLMODE", "disable"),
		DBPath:              getenv("DATABASE_PATH", "storeadmin.db"),
		DBMaxIdleConn:       getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:       getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime:   getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime:   getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		SnowflakeNode:       getenvInt64("SNOWFLAKE_NODE", 1),
		CORSConfigPath:      strings.TrimSpace(getenv("CORS_CONFIG_PATH", "")),
		CORSAllowedOrigins:  splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
	}

	return cfg
}

// IsProduction reports whether the service runs in the production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// TelemetryEnabled reports whether traces and metrics are exported.
func (c Config) TelemetryEnabled() bool {
	if c.OtelEnabled != nil {
		return *c.OtelEnabled
	}
	return c.IsProduction()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// firstEnv returns the first of primary or fallback that is set, else def.
func firstEnv(primary, fallback, def string) string {
	if v := strings.TrimSpace(os.Getenv(primary)); v != "" {
		return v
	}
	return getenv(fallback, def)
}

func getenvOptionalBool(key string) *bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
