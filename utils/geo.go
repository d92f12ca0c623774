package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// earthRadiusKm is the radius used for great-circle distances.
const earthRadiusKm = 6371.0

// CalculateDistance returns the haversine distance in kilometers between two
// coordinates, rounded to one decimal place.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ExtractCoordinates pulls latitude and longitude out of a location string in
// the "name [lat,lng]" format used by listing records.
func ExtractCoordinates(location string) (float64, float64, error) {
	open := strings.Index(location, "[")
	if open < 0 {
		return 0, 0, fmt.Errorf("no coordinates in location string")
	}
	coords := strings.TrimSuffix(strings.TrimSpace(location[open+1:]), "]")
	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinates in location string")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	return lat, lng, nil
}

// SimplifyLocation shortens a full geocoded address to a display-friendly
// name: the building plus the borough, or building, street and city for
// non-institutional addresses. Coordinates in brackets are stripped first.
func SimplifyLocation(location string) string {
	full := strings.TrimSpace(strings.SplitN(location, "[", 2)[0])
	if full == "" {
		return ""
	}

	parts := strings.Split(full, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return full
	}

	building := parts[0]
	city := "New York"
	for _, part := range parts {
		switch part {
		case "Brooklyn", "Manhattan", "Queens", "Bronx", "Staten Island":
			city = part
		}
		if city != "New York" {
			break
		}
	}

	lower := strings.ToLower(building)
	for _, term := range []string{"school", "university", "college", "institute"} {
		if strings.Contains(lower, term) {
			return building + ", " + city
		}
	}

	return building + ", " + parts[1] + ", " + city
}
