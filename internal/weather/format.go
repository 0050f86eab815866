package weather

import (
	"fmt"
	"strings"
	"time"
)

// Unit suffixes per measurement system.
func tempUnit(u Units) string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

func speedUnit(u Units) string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

func conditionText(conditions []Condition) string {
	if len(conditions) == 0 {
		return "unknown"
	}
	return conditions[0].Description
}

// FormatCurrent renders current conditions as the tool text payload.
func FormatCurrent(resp *CurrentResponse, units Units) string {
	var sb strings.Builder

	// Coordinate-only lookups can come back without a place name; fall back
	// to the echoed coordinates rather than a dangling ", GB".
	location := fmt.Sprintf("%.4f, %.4f", resp.Coord.Lat, resp.Coord.Lon)
	if resp.Name != "" {
		location = resp.Name
		if resp.Sys.Country != "" {
			location = fmt.Sprintf("%s, %s", resp.Name, resp.Sys.Country)
		}
	}

	t, s := tempUnit(units), speedUnit(units)
	fmt.Fprintf(&sb, "Current weather in %s:\n", location)
	fmt.Fprintf(&sb, "- Conditions: %s\n", conditionText(resp.Weather))
	fmt.Fprintf(&sb, "- Temperature: %.1f%s (feels like %.1f%s)\n",
		resp.Main.Temp, t, resp.Main.FeelsLike, t)
	fmt.Fprintf(&sb, "- Humidity: %d%%\n", resp.Main.Humidity)
	fmt.Fprintf(&sb, "- Pressure: %d hPa\n", resp.Main.Pressure)
	fmt.Fprintf(&sb, "- Wind: %.1f %s from %d°\n", resp.Wind.Speed, s, resp.Wind.Deg)
	fmt.Fprintf(&sb, "- Cloud cover: %d%%", resp.Clouds.All)

	return sb.String()
}

// FormatHourly renders up to hours entries of the hourly block.
func FormatHourly(label string, resp *OneCallResponse, units Units, hours int) string {
	var sb strings.Builder

	t, s := tempUnit(units), speedUnit(units)
	fmt.Fprintf(&sb, "Hourly forecast for %s (%s):\n", label, resp.Timezone)

	loc := time.FixedZone(resp.Timezone, resp.TimezoneOffset)
	entries := resp.Hourly
	if hours > 0 && len(entries) > hours {
		entries = entries[:hours]
	}
	for _, h := range entries {
		ts := time.Unix(h.Dt, 0).In(loc)
		fmt.Fprintf(&sb, "- %s: %.1f%s, %s, wind %.1f %s, precip %d%%\n",
			ts.Format("Mon 15:04"), h.Temp, t, conditionText(h.Weather),
			h.WindSpeed, s, int(h.Pop*100))
	}
	if len(entries) == 0 {
		sb.WriteString("- no hourly data available\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatDaily renders up to days entries of the daily block.
func FormatDaily(label string, resp *OneCallResponse, units Units, days int) string {
	var sb strings.Builder

	t := tempUnit(units)
	fmt.Fprintf(&sb, "Daily forecast for %s (%s):\n", label, resp.Timezone)

	loc := time.FixedZone(resp.Timezone, resp.TimezoneOffset)
	entries := resp.Daily
	if days > 0 && len(entries) > days {
		entries = entries[:days]
	}
	for _, d := range entries {
		ts := time.Unix(d.Dt, 0).In(loc)
		fmt.Fprintf(&sb, "- %s: %.1f%s to %.1f%s, %s, precip %d%%",
			ts.Format("Mon Jan 2"), d.Temp.Min, t, d.Temp.Max, t,
			conditionText(d.Weather), int(d.Pop*100))
		if d.Summary != "" {
			fmt.Fprintf(&sb, " — %s", d.Summary)
		}
		sb.WriteByte('\n')
	}
	if len(entries) == 0 {
		sb.WriteString("- no daily data available\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatAlerts renders active government alerts, or a calm-weather notice.
func FormatAlerts(label string, resp *OneCallResponse) string {
	if len(resp.Alerts) == 0 {
		return fmt.Sprintf("No active weather alerts for %s.", label)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d active weather alert(s) for %s:\n", len(resp.Alerts), label)

	for i, a := range resp.Alerts {
		fmt.Fprintf(&sb, "\n%d. %s (issued by %s)\n", i+1, a.Event, a.SenderName)
		fmt.Fprintf(&sb, "   From %s to %s\n",
			time.Unix(a.Start, 0).UTC().Format(time.RFC1123),
			time.Unix(a.End, 0).UTC().Format(time.RFC1123))
		if a.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", strings.ReplaceAll(a.Description, "\n", "\n   "))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatGeoResults renders geocoding candidates for the lookup tool.
func FormatGeoResults(city string, results []GeoResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d location(s) for %q:\n", len(results), city)

	for _, r := range results {
		fmt.Fprintf(&sb, "- %s: %.4f, %.4f\n", r.DisplayName(), r.Lat, r.Lon)
	}

	return strings.TrimRight(sb.String(), "\n")
}
