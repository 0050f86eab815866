package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Denis-Chistyakov/Skycast/internal/weather"
)

const (
	defaultForecastHours = 24
	maxForecastHours     = 48
	defaultForecastDays  = 7
	maxForecastDays      = 8
	defaultLookupLimit   = 5
	maxLookupLimit       = 10
)

// Handlers holds the tool implementations. Each handler is a stateless
// request/response round trip: validate, resolve coordinates if needed,
// one upstream call, format.
type Handlers struct {
	client       *weather.Client
	defaultUnits weather.Units
	lang         string
}

// NewHandlers creates the tool handler set.
func NewHandlers(client *weather.Client, defaultUnits weather.Units, lang string) *Handlers {
	if defaultUnits == "" {
		defaultUnits = weather.DefaultUnits
	}
	return &Handlers{
		client:       client,
		defaultUnits: defaultUnits,
		lang:         lang,
	}
}

// parseQuery builds a validated weather.Query from tool arguments. Absent
// coordinates stay nil so 0,0 remains a legitimate location.
func (h *Handlers) parseQuery(req mcp.CallToolRequest) (*weather.Query, error) {
	args := req.GetArguments()

	q := &weather.Query{
		Units: h.defaultUnits,
		Lang:  h.lang,
	}
	if city, ok := args["city"].(string); ok {
		q.City = strings.TrimSpace(city)
	}
	if lat, ok := args["latitude"].(float64); ok {
		q.Latitude = &lat
	}
	if lon, ok := args["longitude"].(float64); ok {
		q.Longitude = &lon
	}
	if units, ok := args["units"].(string); ok && units != "" {
		q.Units = weather.Units(units)
	}

	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// CurrentWeather implements the get_current_weather tool. City queries use
// the upstream's own name resolution; no local geocoding happens here.
func (h *Handlers) CurrentWeather(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.parseQuery(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.client.Current(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(weather.FormatCurrent(resp, q.Units)), nil
}

// HourlyForecast implements the get_hourly_forecast tool.
func (h *Handlers) HourlyForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.parseQuery(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hours := clamp(req.GetInt("hours", defaultForecastHours), 1, maxForecastHours)

	coords, label, err := h.client.Resolve(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.client.OneCall(ctx, coords, q.Units, q.Lang, weather.BlockHourly)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(weather.FormatHourly(label, resp, q.Units, hours)), nil
}

// DailyForecast implements the get_daily_forecast tool.
func (h *Handlers) DailyForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.parseQuery(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days := clamp(req.GetInt("days", defaultForecastDays), 1, maxForecastDays)

	coords, label, err := h.client.Resolve(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.client.OneCall(ctx, coords, q.Units, q.Lang, weather.BlockDaily)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(weather.FormatDaily(label, resp, q.Units, days)), nil
}

// WeatherAlerts implements the get_weather_alerts tool.
func (h *Handlers) WeatherAlerts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.parseQuery(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	coords, label, err := h.client.Resolve(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.client.OneCall(ctx, coords, q.Units, q.Lang, weather.BlockAlerts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(weather.FormatAlerts(label, resp)), nil
}

// LookupCity implements the lookup_city tool, exposing the geocoding
// adapter directly.
func (h *Handlers) LookupCity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	city, err := req.RequireString("city")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return mcp.NewToolResultError("city must not be empty"), nil
	}
	limit := clamp(req.GetInt("limit", defaultLookupLimit), 1, maxLookupLimit)

	results, err := h.client.Geocode(ctx, city, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultError((&weather.ErrCityNotFound{City: city}).Error()), nil
	}

	return mcp.NewToolResultText(weather.FormatGeoResults(city, results)), nil
}
