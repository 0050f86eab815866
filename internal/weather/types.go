package weather

// Upstream response shapes. Only fields the formatters read are mapped;
// OpenWeatherMap sends plenty more.

// Condition is a single entry of the "weather" array present in every
// OpenWeatherMap payload.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentResponse is the /data/2.5/weather response.
type CurrentResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// OneCallResponse is the /data/3.0/onecall response. Blocks excluded by the
// request arrive as zero values.
type OneCallResponse struct {
	Lat            float64       `json:"lat"`
	Lon            float64       `json:"lon"`
	Timezone       string        `json:"timezone"`
	TimezoneOffset int           `json:"timezone_offset"`
	Hourly         []HourlyEntry `json:"hourly,omitempty"`
	Daily          []DailyEntry  `json:"daily,omitempty"`
	Alerts         []Alert       `json:"alerts,omitempty"`
}

// HourlyEntry is one hour of the One Call hourly block.
type HourlyEntry struct {
	Dt         int64       `json:"dt"`
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Pressure   int         `json:"pressure"`
	Humidity   int         `json:"humidity"`
	Clouds     int         `json:"clouds"`
	WindSpeed  float64     `json:"wind_speed"`
	WindDeg    int         `json:"wind_deg"`
	Pop        float64     `json:"pop"`
	Weather    []Condition `json:"weather"`
	Visibility int         `json:"visibility"`
}

// DailyEntry is one day of the One Call daily block.
type DailyEntry struct {
	Dt      int64  `json:"dt"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
	Summary string `json:"summary"`
	Temp    struct {
		Day   float64 `json:"day"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Night float64 `json:"night"`
	} `json:"temp"`
	FeelsLike struct {
		Day   float64 `json:"day"`
		Night float64 `json:"night"`
	} `json:"feels_like"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   int         `json:"wind_deg"`
	Clouds    int         `json:"clouds"`
	Pop       float64     `json:"pop"`
	Rain      float64     `json:"rain"`
	Snow      float64     `json:"snow"`
	Weather   []Condition `json:"weather"`
}

// Alert is a government weather alert from the One Call alerts block.
type Alert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// GeoResult is one candidate from the /geo/1.0/direct geocoding endpoint.
type GeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// DisplayName renders the result as "Name, State, Country" with empty
// segments dropped.
func (g GeoResult) DisplayName() string {
	name := g.Name
	if g.State != "" {
		name += ", " + g.State
	}
	if g.Country != "" {
		name += ", " + g.Country
	}
	return name
}
