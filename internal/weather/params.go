package weather

import (
	"strconv"
	"strings"
)

// One Call 3.0 response blocks. A request excludes every block it does not
// need so the upstream payload stays small.
const (
	BlockCurrent  = "current"
	BlockMinutely = "minutely"
	BlockHourly   = "hourly"
	BlockDaily    = "daily"
	BlockAlerts   = "alerts"
)

var allBlocks = []string{BlockCurrent, BlockMinutely, BlockHourly, BlockDaily, BlockAlerts}

// Params is the outbound query-string mapping for an upstream request.
type Params map[string]string

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// buildOneCallParams assembles One Call 3.0 parameters. The endpoint only
// accepts coordinates; city names must be geocoded before this point.
// keep names the single response block the caller wants.
func buildOneCallParams(apiKey string, coords Coordinates, units Units, lang string, keep string) Params {
	p := Params{
		"lat":     formatCoord(coords.Latitude),
		"lon":     formatCoord(coords.Longitude),
		"appid":   apiKey,
		"units":   string(units),
		"exclude": excludeFor(keep),
	}
	if lang != "" {
		p["lang"] = lang
	}
	return p
}

// excludeFor returns the exclude list covering every block except keep.
func excludeFor(keep string) string {
	excluded := make([]string, 0, len(allBlocks)-1)
	for _, block := range allBlocks {
		if block != keep {
			excluded = append(excluded, block)
		}
	}
	return strings.Join(excluded, ",")
}

// buildCurrentParams assembles parameters for the /data/2.5/weather endpoint.
// This endpoint resolves city names itself, so a city query is passed through
// as-is (the direct-query variant) and never geocoded locally.
func buildCurrentParams(apiKey string, q *Query) Params {
	p := Params{
		"appid": apiKey,
		"units": string(q.Units),
	}
	if coords, ok := q.Coords(); ok {
		p["lat"] = formatCoord(coords.Latitude)
		p["lon"] = formatCoord(coords.Longitude)
	} else {
		p["q"] = q.City
	}
	if q.Lang != "" {
		p["lang"] = q.Lang
	}
	return p
}

// buildGeocodeParams assembles parameters for /geo/1.0/direct.
func buildGeocodeParams(apiKey, city string, limit int) Params {
	if limit <= 0 {
		limit = 1
	}
	return Params{
		"q":     city,
		"limit": strconv.Itoa(limit),
		"appid": apiKey,
	}
}
