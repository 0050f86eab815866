package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultDataURL    = "https://api.openweathermap.org/data/2.5"
	defaultOneCallURL = "https://api.openweathermap.org/data/3.0"
	defaultGeoURL     = "https://api.openweathermap.org/geo/1.0"

	defaultTimeout = 10 * time.Second
	userAgent      = "Skycast/1.0"

	upstreamWeather   = "weather"
	upstreamGeocoding = "geocoding"
)

// ClientConfig configures the upstream client. Zero-value URL and timeout
// fields fall back to the production OpenWeatherMap endpoints.
type ClientConfig struct {
	APIKey     string
	DataURL    string
	OneCallURL string
	GeoURL     string
	Timeout    time.Duration
}

// Client talks to the OpenWeatherMap data and geocoding APIs. One outbound
// GET per method call, no retries, no caching.
type Client struct {
	http       *resty.Client
	breakers   *breakerGroup
	apiKey     string
	dataURL    string
	oneCallURL string
	geoURL     string
}

// NewClient creates an upstream client for the given configuration.
func NewClient(cfg ClientConfig) *Client {
	if cfg.DataURL == "" {
		cfg.DataURL = defaultDataURL
	}
	if cfg.OneCallURL == "" {
		cfg.OneCallURL = defaultOneCallURL
	}
	if cfg.GeoURL == "" {
		cfg.GeoURL = defaultGeoURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(cfg.Timeout)

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("Upstream response")
		return nil
	})

	return &Client{
		http:       httpClient,
		breakers:   newBreakerGroup(),
		apiKey:     cfg.APIKey,
		dataURL:    cfg.DataURL,
		oneCallURL: cfg.OneCallURL,
		geoURL:     cfg.GeoURL,
	}
}

// get performs one upstream GET under breaker protection, decoding a 2xx
// body into out.
func (c *Client) get(ctx context.Context, upstream, url string, params Params, out interface{}) error {
	_, err := c.breakers.execute(upstream, func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(out).
			// OpenWeatherMap always sends JSON; decode it even when a proxy
			// mangles the Content-Type instead of reporting a zero-value body
			// as success.
			ForceContentType("application/json").
			Get(url)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		if !resp.IsSuccess() {
			return nil, parseAPIError(resp)
		}
		return nil, nil
	})
	return err
}

// Current fetches current conditions from /data/2.5/weather. City queries
// use the endpoint's own name resolution (the direct-query variant), so the
// raw city string goes upstream untouched.
func (c *Client) Current(ctx context.Context, q *Query) (*CurrentResponse, error) {
	params := buildCurrentParams(c.apiKey, q)

	var result CurrentResponse
	if err := c.get(ctx, upstreamWeather, c.dataURL+"/weather", params, &result); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	return &result, nil
}

// OneCall fetches a single block (hourly, daily, or alerts) from
// /data/3.0/onecall. The endpoint is coordinate-only; use Resolve for city
// queries first.
func (c *Client) OneCall(ctx context.Context, coords Coordinates, units Units, lang, block string) (*OneCallResponse, error) {
	params := buildOneCallParams(c.apiKey, coords, units, lang, block)

	var result OneCallResponse
	if err := c.get(ctx, upstreamWeather, c.oneCallURL+"/onecall", params, &result); err != nil {
		return nil, fmt.Errorf("one call (%s): %w", block, err)
	}
	return &result, nil
}

// Geocode resolves a city name to coordinate candidates via /geo/1.0/direct.
func (c *Client) Geocode(ctx context.Context, city string, limit int) ([]GeoResult, error) {
	params := buildGeocodeParams(c.apiKey, city, limit)

	var results []GeoResult
	if err := c.get(ctx, upstreamGeocoding, c.geoURL+"/direct", params, &results); err != nil {
		return nil, fmt.Errorf("geocoding: %w", err)
	}
	return results, nil
}

// Resolve returns the query's coordinates, geocoding the city name when no
// coordinate pair was supplied. The second return value is a display label
// for the location.
func (c *Client) Resolve(ctx context.Context, q *Query) (Coordinates, string, error) {
	if coords, ok := q.Coords(); ok {
		label := fmt.Sprintf("%.4f, %.4f", coords.Latitude, coords.Longitude)
		return coords, label, nil
	}

	results, err := c.Geocode(ctx, q.City, 1)
	if err != nil {
		return Coordinates{}, "", err
	}
	if len(results) == 0 {
		return Coordinates{}, "", &ErrCityNotFound{City: q.City}
	}

	top := results[0]
	log.Debug().
		Str("city", q.City).
		Float64("lat", top.Lat).
		Float64("lon", top.Lon).
		Msg("City resolved")

	return Coordinates{Latitude: top.Lat, Longitude: top.Lon}, top.DisplayName(), nil
}

// Stats reports circuit breaker counters for the ops endpoint.
func (c *Client) Stats() map[string]interface{} {
	return map[string]interface{}{
		"circuit_breakers": c.breakers.metrics(),
	}
}
