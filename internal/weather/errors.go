package weather

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from an OpenWeatherMap endpoint, carrying the
// provider's own error message when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openweathermap: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("openweathermap: HTTP %d", e.StatusCode)
}

// ErrCityNotFound is returned when geocoding yields zero candidates.
type ErrCityNotFound struct {
	City string
}

func (e *ErrCityNotFound) Error() string {
	return fmt.Sprintf("city not found: %q", e.City)
}

// parseAPIError builds an APIError from an upstream failure response.
// OpenWeatherMap error bodies look like {"cod": 401, "message": "..."} with
// cod sometimes a string, so the message is all we rely on.
func parseAPIError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Message = body.Message
	}

	if apiErr.Message == "" {
		switch resp.StatusCode() {
		case 401:
			apiErr.Message = "invalid API key"
		case 404:
			apiErr.Message = "location not found"
		case 429:
			apiErr.Message = "quota exceeded"
		}
	}

	return apiErr
}
