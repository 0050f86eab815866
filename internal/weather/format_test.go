package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrent(t *testing.T) {
	resp := &CurrentResponse{Name: "London"}
	resp.Sys.Country = "GB"
	resp.Weather = []Condition{{Description: "light rain"}}
	resp.Main.Temp = 12.3
	resp.Main.FeelsLike = 11.0
	resp.Main.Humidity = 80
	resp.Main.Pressure = 1008
	resp.Wind.Speed = 5.1
	resp.Wind.Deg = 200
	resp.Clouds.All = 90

	out := FormatCurrent(resp, UnitsMetric)
	assert.Contains(t, out, "Current weather in London, GB")
	assert.Contains(t, out, "light rain")
	assert.Contains(t, out, "12.3°C")
	assert.Contains(t, out, "feels like 11.0°C")
	assert.Contains(t, out, "5.1 m/s")
}

func TestFormatCurrentImperialUnits(t *testing.T) {
	resp := &CurrentResponse{Name: "Dallas"}
	resp.Main.Temp = 85.0
	resp.Wind.Speed = 12.0

	out := FormatCurrent(resp, UnitsImperial)
	assert.Contains(t, out, "85.0°F")
	assert.Contains(t, out, "mph")
}

func TestFormatCurrentFallsBackToCoordinates(t *testing.T) {
	resp := &CurrentResponse{}
	resp.Coord.Lat = 10.5
	resp.Coord.Lon = -20.25

	out := FormatCurrent(resp, UnitsStandard)
	assert.Contains(t, out, "10.5000, -20.2500")
	assert.Contains(t, out, "K")
}

func TestFormatCurrentNamelessWithCountry(t *testing.T) {
	// Some coordinate lookups echo a country but no place name; that must
	// still fall back to coordinates, not render as ", GB".
	resp := &CurrentResponse{}
	resp.Sys.Country = "GB"
	resp.Coord.Lat = 51.5
	resp.Coord.Lon = -0.12

	out := FormatCurrent(resp, UnitsMetric)
	assert.Contains(t, out, "Current weather in 51.5000, -0.1200")
	assert.NotContains(t, out, ", GB")
}

func TestFormatHourlyLimitsEntries(t *testing.T) {
	resp := &OneCallResponse{Timezone: "Europe/Berlin"}
	for i := 0; i < 48; i++ {
		resp.Hourly = append(resp.Hourly, HourlyEntry{Dt: 1700000000 + int64(i)*3600, Temp: 10})
	}

	out := FormatHourly("Berlin, DE", resp, UnitsMetric, 3)
	assert.Contains(t, out, "Hourly forecast for Berlin, DE")
	// Header line plus exactly 3 entries.
	assert.Len(t, strings.Split(out, "\n"), 4)
}

func TestFormatDailyEmpty(t *testing.T) {
	resp := &OneCallResponse{Timezone: "UTC"}
	out := FormatDaily("Nowhere", resp, UnitsMetric, 7)
	assert.Contains(t, out, "no daily data available")
}

func TestFormatAlerts(t *testing.T) {
	resp := &OneCallResponse{
		Alerts: []Alert{
			{
				SenderName:  "Met Office",
				Event:       "Yellow wind warning",
				Start:       1700000000,
				End:         1700021600,
				Description: "Gusts up to 60 mph.",
			},
		},
	}

	out := FormatAlerts("London, GB", resp)
	assert.Contains(t, out, "1 active weather alert(s) for London, GB")
	assert.Contains(t, out, "Yellow wind warning")
	assert.Contains(t, out, "Met Office")
	assert.Contains(t, out, "Gusts up to 60 mph.")
}

func TestFormatAlertsNone(t *testing.T) {
	out := FormatAlerts("Oslo, NO", &OneCallResponse{})
	assert.Equal(t, "No active weather alerts for Oslo, NO.", out)
}

func TestFormatGeoResults(t *testing.T) {
	results := []GeoResult{
		{Name: "Springfield", State: "Illinois", Country: "US", Lat: 39.8, Lon: -89.65},
		{Name: "Springfield", Country: "US", Lat: 42.1, Lon: -72.59},
	}

	out := FormatGeoResults("springfield", results)
	assert.Contains(t, out, `Found 2 location(s) for "springfield"`)
	assert.Contains(t, out, "Springfield, Illinois, US: 39.8000, -89.6500")
	assert.Contains(t, out, "Springfield, US: 42.1000, -72.5900")
}
