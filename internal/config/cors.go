package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CORSConfig lists the storefront origins allowed to call the public read API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// Allows reports whether origin may read the public API. A "*" entry allows any origin.
func (c CORSConfig) Allows(origin string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

type CORSConfigHolder struct {
	current atomic.Value // holds CORSConfig
}

// NewStaticCORSConfigHolder returns a holder that never reloads.
func NewStaticCORSConfigHolder(cfg CORSConfig) *CORSConfigHolder {
	holder := &CORSConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewCORSConfigHolder(appCfg Config) (*CORSConfigHolder, error) {
	v := viper.New()

	if appCfg.CORSConfigPath != "" {
		v.SetConfigFile(appCfg.CORSConfigPath)
	} else {
		v.SetConfigName("storeadmin")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/storeadmin")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STOREADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("cors.allowedOrigins", appCfg.CORSAllowedOrigins)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg CORSConfig
	if err := v.UnmarshalKey("cors", &cfg); err != nil {
		return nil, err
	}
	if err := validateCORSConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticCORSConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CORSConfig
		if err := v.UnmarshalKey("cors", &updated); err != nil {
			zap.L().Warn("cors config reload failed", zap.String("component", "config"), zap.Error(err))
			return
		}
		if err := validateCORSConfig(updated); err != nil {
			zap.L().Warn("invalid cors config ignored", zap.String("component", "config"), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("cors config reloaded", zap.String("component", "config"), zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *CORSConfigHolder) Get() CORSConfig {
	if h == nil {
		return CORSConfig{}
	}
	cfg, _ := h.current.Load().(CORSConfig)
	return cfg
}

func validateCORSConfig(cfg CORSConfig) error {
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return errors.New("cors.allowedOrigins cannot contain empty entries")
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return errors.New("cors.allowedOrigins entries must be absolute http(s) origins")
		}
	}
	return nil
}
