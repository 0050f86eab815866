// Package config loads Skycast configuration from an optional YAML file and
// SKYCAST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	MCP           MCPConfig           `yaml:"mcp" mapstructure:"mcp"`
	Ops           OpsConfig           `yaml:"ops" mapstructure:"ops"`
	Weather       WeatherConfig       `yaml:"weather" mapstructure:"weather"`
	Analytics     AnalyticsConfig     `yaml:"analytics" mapstructure:"analytics"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// MCPConfig configures the MCP transports.
type MCPConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"` // "stdio" or "sse"
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port"`
}

// OpsConfig configures the operational HTTP server (health, stats, metrics).
type OpsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
}

// WeatherConfig configures the OpenWeatherMap upstreams.
type WeatherConfig struct {
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	DataURL    string `yaml:"data_url" mapstructure:"data_url"`
	OneCallURL string `yaml:"onecall_url" mapstructure:"onecall_url"`
	GeoURL     string `yaml:"geo_url" mapstructure:"geo_url"`
	Units      string `yaml:"units" mapstructure:"units"`
	Lang       string `yaml:"lang" mapstructure:"lang"`
	Timeout    string `yaml:"timeout" mapstructure:"timeout"`
}

// RequestTimeout parses the configured upstream timeout.
func (w WeatherConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(w.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// AnalyticsConfig toggles the tool-call metrics collector.
type AnalyticsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.host", "localhost")
	v.SetDefault("mcp.port", 8090)
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.host", "localhost")
	v.SetDefault("ops.port", 9090)
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("analytics.enabled", true)
	v.SetDefault("observability.logging.level", "info")
}

// Load reads configuration from configs/skycast.yaml (optional) and the
// environment. The OpenWeatherMap key is taken from OPENWEATHER_API_KEY when
// the config file leaves it empty or holds the placeholder.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("skycast")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/skycast")

	v.SetEnvPrefix("SKYCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Debug().Msg("No config file found, using defaults")
	} else {
		log.Info().Str("config", v.ConfigFileUsed()).Msg("Configuration loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Weather.APIKey == "" || cfg.Weather.APIKey == "${OPENWEATHER_API_KEY}" {
		cfg.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	if cfg.Weather.APIKey == "" {
		return nil, fmt.Errorf("missing OpenWeatherMap API key: set weather.api_key or OPENWEATHER_API_KEY")
	}

	return &cfg, nil
}
