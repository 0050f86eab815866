package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Denis-Chistyakov/Skycast/internal/analytics"
	"github.com/Denis-Chistyakov/Skycast/internal/config"
	mcpgw "github.com/Denis-Chistyakov/Skycast/internal/gateway/mcp"
	"github.com/Denis-Chistyakov/Skycast/internal/gateway/ops"
	"github.com/Denis-Chistyakov/Skycast/internal/weather"
)

// serveOverrides carries serve-command flags that take precedence over the
// config file. Zero values mean "not set on the command line".
type serveOverrides struct {
	transport  string
	port       int
	opsEnabled bool
}

// runServe wires the upstream client, tool handlers, and transports together
// and blocks until the transport exits.
func runServe(overrides serveOverrides) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !debug {
		level, err := zerolog.ParseLevel(cfg.Observability.Logging.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	}

	if overrides.transport != "" {
		cfg.MCP.Transport = overrides.transport
	}
	if overrides.port != 0 {
		cfg.MCP.Port = overrides.port
	}
	if overrides.opsEnabled {
		cfg.Ops.Enabled = true
	}

	client := weather.NewClient(weather.ClientConfig{
		APIKey:     cfg.Weather.APIKey,
		DataURL:    cfg.Weather.DataURL,
		OneCallURL: cfg.Weather.OneCallURL,
		GeoURL:     cfg.Weather.GeoURL,
		Timeout:    cfg.Weather.RequestTimeout(),
	})

	collector := analytics.NewCollector(cfg.Analytics.Enabled)

	handlers := mcpgw.NewHandlers(client, weather.Units(cfg.Weather.Units), cfg.Weather.Lang)
	srv := mcpgw.NewServer(handlers, collector)

	var opsServer *ops.Server
	if cfg.Ops.Enabled {
		opsServer = ops.NewServer(collector, client, cfg.Ops.Host, cfg.Ops.Port)
		if err := opsServer.Start(); err != nil {
			return fmt.Errorf("failed to start ops server: %w", err)
		}
	}

	defer func() {
		if opsServer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := opsServer.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Ops server shutdown error")
		}
	}()

	switch cfg.MCP.Transport {
	case "stdio":
		return mcpgw.ServeStdio(srv)
	case "sse":
		return mcpgw.ServeSSE(srv, cfg.MCP.Host, cfg.MCP.Port)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", cfg.MCP.Transport)
	}
}
