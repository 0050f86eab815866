package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		APIKey:     "test-key",
		DataURL:    srv.URL + "/data/2.5",
		OneCallURL: srv.URL + "/data/3.0",
		GeoURL:     srv.URL + "/geo/1.0",
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestCurrentCityQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Empty(t, r.URL.Query().Get("lat"))

		writeJSON(t, w, map[string]interface{}{
			"weather": []map[string]interface{}{{"description": "light rain"}},
			"main":    map[string]interface{}{"temp": 12.3, "feels_like": 11.0, "humidity": 80},
			"wind":    map[string]interface{}{"speed": 5.1, "deg": 200},
			"sys":     map[string]interface{}{"country": "GB"},
			"name":    "London",
		})
	})

	q := &Query{City: "London", Units: UnitsMetric}
	resp, err := client.Current(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "London", resp.Name)
	assert.Equal(t, "GB", resp.Sys.Country)
	assert.InDelta(t, 12.3, resp.Main.Temp, 0.001)
	require.Len(t, resp.Weather, 1)
	assert.Equal(t, "light rain", resp.Weather[0].Description)
}

func TestCurrentCoordinateQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "35.6762", r.URL.Query().Get("lat"))
		assert.Equal(t, "139.6503", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))

		writeJSON(t, w, map[string]interface{}{"name": "Tokyo"})
	})

	q := &Query{Latitude: ptr(35.6762), Longitude: ptr(139.6503), Units: UnitsMetric}
	resp, err := client.Current(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", resp.Name)
}

func TestOneCallHourly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/3.0/onecall", r.URL.Path)
		assert.Equal(t, "52.52", r.URL.Query().Get("lat"))
		assert.Equal(t, "current,minutely,daily,alerts", r.URL.Query().Get("exclude"))

		writeJSON(t, w, map[string]interface{}{
			"timezone": "Europe/Berlin",
			"hourly": []map[string]interface{}{
				{"dt": 1700000000, "temp": 8.5, "weather": []map[string]interface{}{{"description": "overcast"}}},
			},
		})
	})

	coords := Coordinates{Latitude: 52.52, Longitude: 13.405}
	resp, err := client.OneCall(context.Background(), coords, UnitsMetric, "", BlockHourly)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	require.Len(t, resp.Hourly, 1)
	assert.InDelta(t, 8.5, resp.Hourly[0].Temp, 0.001)
	assert.Empty(t, resp.Daily)
	assert.Empty(t, resp.Alerts)
}

func TestGeocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "Springfield", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		writeJSON(t, w, []map[string]interface{}{
			{"name": "Springfield", "lat": 39.8, "lon": -89.65, "country": "US", "state": "Illinois"},
			{"name": "Springfield", "lat": 42.1, "lon": -72.59, "country": "US", "state": "Massachusetts"},
		})
	})

	results, err := client.Geocode(context.Background(), "Springfield", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Springfield, Illinois, US", results[0].DisplayName())
}

func TestResolveCoordinatesSkipGeocoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected when coordinates are supplied")
	})

	q := &Query{Latitude: ptr(48.8566), Longitude: ptr(2.3522), Units: UnitsMetric}
	coords, label, err := client.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 48.8566, coords.Latitude)
	assert.Equal(t, "48.8566, 2.3522", label)
}

func TestResolveCityGeocodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		writeJSON(t, w, []map[string]interface{}{
			{"name": "Paris", "lat": 48.8566, "lon": 2.3522, "country": "FR"},
		})
	})

	q := &Query{City: "Paris", Units: UnitsMetric}
	coords, label, err := client.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 48.8566, coords.Latitude)
	assert.Equal(t, 2.3522, coords.Longitude)
	assert.Equal(t, "Paris, FR", label)
}

func TestResolveCityNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]interface{}{})
	})

	q := &Query{City: "Atlantis", Units: UnitsMetric}
	_, _, err := client.Resolve(context.Background(), q)
	require.Error(t, err)

	var notFound *ErrCityNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Atlantis", notFound.City)
}

func TestUpstreamErrorSurfacesProviderMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]interface{}{
			"cod": 401, "message": "Invalid API key. Please see FAQ.",
		})
	})

	q := &Query{City: "London", Units: UnitsMetric}
	_, err := client.Current(context.Background(), q)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API key")
}

func TestCurrentDecodesBodyWithoutContentType(t *testing.T) {
	// A proxy that strips or mangles Content-Type must not turn a real
	// payload into a zero-value reading.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"main": map[string]interface{}{"temp": 21.5},
			"name": "London",
		})
	})

	q := &Query{City: "London", Units: UnitsMetric}
	resp, err := client.Current(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "London", resp.Name)
	assert.InDelta(t, 21.5, resp.Main.Temp, 0.001)
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	hits := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	})

	q := &Query{City: "London", Units: UnitsMetric}
	for i := 0; i < 5; i++ {
		_, err := client.Current(context.Background(), q)
		require.Error(t, err)
	}

	// The breaker tripped on the fifth failure; the next call is rejected
	// without touching the upstream.
	_, err := client.Current(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
	assert.Equal(t, 5, hits)
}
