package main

// Mock OpenWeatherMap upstream for local development. Serves canned
// /data/2.5/weather, /data/3.0/onecall, and /geo/1.0/direct responses so
// Skycast can run without an API key:
//
//	go run ./tests/mock
//	SKYCAST_WEATHER_DATA_URL=http://localhost:8082/data/2.5 ...

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

var cities = map[string]struct {
	Lat, Lon float64
	Country  string
	Temp     float64
	Cond     string
}{
	"san francisco": {37.7749, -122.4194, "US", 18.5, "Clouds"},
	"new york":      {40.7128, -74.0060, "US", 10.2, "Clear"},
	"london":        {51.5074, -0.1278, "GB", 12.0, "Rain"},
	"tokyo":         {35.6762, 139.6503, "JP", 22.0, "Clear"},
}

func main() {
	http.HandleFunc("/data/2.5/weather", handleCurrent)
	http.HandleFunc("/data/3.0/onecall", handleOneCall)
	http.HandleFunc("/geo/1.0/direct", handleGeocode)
	http.HandleFunc("/health", handleHealth)

	port := ":8082"
	log.Printf("Mock OpenWeatherMap server starting on http://localhost%s\n", port)

	if err := http.ListenAndServe(port, nil); err != nil {
		log.Fatal(err)
	}
}

func requireKey(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("appid") == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"cod":     401,
			"message": "Invalid API key.",
		})
		return false
	}
	return true
}

func handleCurrent(w http.ResponseWriter, r *http.Request) {
	if !requireKey(w, r) {
		return
	}

	name := "Somewhere"
	country := "XX"
	temp := 20.0
	cond := "Clear"

	if q := r.URL.Query().Get("q"); q != "" {
		key := strings.ToLower(strings.SplitN(q, ",", 2)[0])
		city, ok := cities[key]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"cod":     "404",
				"message": "city not found",
			})
			return
		}
		name, country, temp, cond = titleCase(key), city.Country, city.Temp, city.Cond
	}

	log.Printf("current: q=%q units=%s\n", r.URL.Query().Get("q"), r.URL.Query().Get("units"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"coord":   map[string]float64{"lat": 51.5, "lon": -0.12},
		"weather": []map[string]interface{}{{"main": cond, "description": strings.ToLower(cond)}},
		"main": map[string]interface{}{
			"temp": temp, "feels_like": temp - 1.2, "pressure": 1012, "humidity": 65,
		},
		"wind":     map[string]interface{}{"speed": 4.1, "deg": 220},
		"clouds":   map[string]interface{}{"all": 40},
		"dt":       time.Now().Unix(),
		"sys":      map[string]interface{}{"country": country},
		"timezone": 0,
		"name":     name,
	})
}

func handleOneCall(w http.ResponseWriter, r *http.Request) {
	if !requireKey(w, r) {
		return
	}

	exclude := r.URL.Query().Get("exclude")
	log.Printf("onecall: lat=%s lon=%s exclude=%q\n",
		r.URL.Query().Get("lat"), r.URL.Query().Get("lon"), exclude)

	resp := map[string]interface{}{
		"lat":             51.5,
		"lon":             -0.12,
		"timezone":        "Europe/London",
		"timezone_offset": 3600,
	}

	now := time.Now().Unix()
	if !strings.Contains(exclude, "hourly") {
		hourly := make([]map[string]interface{}, 0, 48)
		for i := 0; i < 48; i++ {
			hourly = append(hourly, map[string]interface{}{
				"dt": now + int64(i)*3600, "temp": 14.0 + float64(i%5),
				"wind_speed": 3.5, "pop": 0.2,
				"weather": []map[string]interface{}{{"description": "scattered clouds"}},
			})
		}
		resp["hourly"] = hourly
	}
	if !strings.Contains(exclude, "daily") {
		daily := make([]map[string]interface{}, 0, 8)
		for i := 0; i < 8; i++ {
			daily = append(daily, map[string]interface{}{
				"dt":      now + int64(i)*86400,
				"temp":    map[string]interface{}{"min": 9.0, "max": 17.5},
				"pop":     0.4,
				"weather": []map[string]interface{}{{"description": "light rain"}},
			})
		}
		resp["daily"] = daily
	}
	if !strings.Contains(exclude, "alerts") {
		resp["alerts"] = []map[string]interface{}{
			{
				"sender_name": "Met Office",
				"event":       "Yellow wind warning",
				"start":       now,
				"end":         now + 6*3600,
				"description": "Gusts of up to 60 mph expected.",
			},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func handleGeocode(w http.ResponseWriter, r *http.Request) {
	if !requireKey(w, r) {
		return
	}

	q := strings.ToLower(strings.SplitN(r.URL.Query().Get("q"), ",", 2)[0])
	log.Printf("geocode: q=%q\n", q)

	results := []map[string]interface{}{}
	if city, ok := cities[q]; ok {
		results = append(results, map[string]interface{}{
			"name": titleCase(q), "lat": city.Lat, "lon": city.Lon, "country": city.Country,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "healthy",
		"time":   fmt.Sprint(time.Now().Format(time.RFC3339)),
	})
}
