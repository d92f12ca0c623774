package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// nominatimResult is one candidate returned by the OSM geocoder.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// GetBestCoordinatesFromResponse picks the first geocoder candidate.
func GetBestCoordinatesFromResponse(body io.Reader) (float64, float64, error) {
	var results []nominatimResult
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, errors.New("no results found")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in response: %w", err)
	}
	return lat, lng, nil
}

// GetCoordinatesFromAddress geocodes a free-form address. Used as a fallback
// when a submitted listing location carries no embedded coordinates.
func GetCoordinatesFromAddress(address string) (float64, float64, error) {
	apiURL := fmt.Sprintf(
		"https://nominatim.openstreetmap.org/search?format=json&limit=1&q=%s",
		url.QueryEscape(address),
	)

	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "parkeasy-backend")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	return GetBestCoordinatesFromResponse(resp.Body)
}
