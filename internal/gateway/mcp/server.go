// Package mcp wires the weather tool handlers into an MCP protocol server
// and provides the stdio and SSE transports.
package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Denis-Chistyakov/Skycast/internal/analytics"
	"github.com/Denis-Chistyakov/Skycast/internal/version"
)

const serverName = "Skycast"

// locationOptions are the shared input schema fields for every tool that
// takes a location: a city name, or a full coordinate pair.
func locationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("city",
			mcp.Description("City name, optionally with country code (e.g. \"Berlin\" or \"Berlin,DE\"). Required unless latitude and longitude are given."),
		),
		mcp.WithNumber("latitude",
			mcp.Description("Latitude in decimal degrees, -90 to 90. Must be paired with longitude."),
		),
		mcp.WithNumber("longitude",
			mcp.Description("Longitude in decimal degrees, -180 to 180. Must be paired with latitude."),
		),
		mcp.WithString("units",
			mcp.Description("Measurement system for temperature and wind speed. Defaults to metric."),
			mcp.Enum("standard", "metric", "imperial"),
		),
	}
}

// NewServer builds the MCP server with all weather tools registered.
func NewServer(handlers *Handlers, collector *analytics.Collector) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	currentTool := mcp.NewTool("get_current_weather",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get current weather conditions (temperature, humidity, wind, clouds) for a city or coordinate pair."),
		}, locationOptions()...)...,
	)

	hourlyTool := mcp.NewTool("get_hourly_forecast",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get an hourly weather forecast (up to 48 hours) for a city or coordinate pair."),
			mcp.WithNumber("hours",
				mcp.Description("Number of hours to include, 1-48. Defaults to 24."),
			),
		}, locationOptions()...)...,
	)

	dailyTool := mcp.NewTool("get_daily_forecast",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get a daily weather forecast (up to 8 days) for a city or coordinate pair."),
			mcp.WithNumber("days",
				mcp.Description("Number of days to include, 1-8. Defaults to 7."),
			),
		}, locationOptions()...)...,
	)

	alertsTool := mcp.NewTool("get_weather_alerts",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get active government weather alerts for a city or coordinate pair."),
		}, locationOptions()...)...,
	)

	lookupTool := mcp.NewTool("lookup_city",
		mcp.WithDescription("Resolve a city name to geographic coordinates. Returns candidate locations with country and state."),
		mcp.WithString("city",
			mcp.Required(),
			mcp.Description("City name to resolve."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of candidates, 1-10. Defaults to 5."),
		),
	)

	s.AddTool(currentTool, instrument("get_current_weather", collector, handlers.CurrentWeather))
	s.AddTool(hourlyTool, instrument("get_hourly_forecast", collector, handlers.HourlyForecast))
	s.AddTool(dailyTool, instrument("get_daily_forecast", collector, handlers.DailyForecast))
	s.AddTool(alertsTool, instrument("get_weather_alerts", collector, handlers.WeatherAlerts))
	s.AddTool(lookupTool, instrument("lookup_city", collector, handlers.LookupCity))

	log.Info().Int("tools", 5).Msg("MCP server initialized")

	return s
}

// instrument wraps a tool handler with call-ID logging and analytics.
func instrument(name string, collector *analytics.Collector, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.New().String()
		start := time.Now()
		collector.Start()

		result, err := next(ctx, req)

		duration := time.Since(start)
		success := err == nil && (result == nil || !result.IsError)
		collector.Record(name, duration, success)

		evt := log.Info()
		if !success {
			evt = log.Warn()
		}
		evt.
			Str("call_id", callID).
			Str("tool", name).
			Bool("success", success).
			Dur("duration", duration).
			Msg("Tool executed")

		return result, err
	}
}
