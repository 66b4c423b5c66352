package truth

import (
	"strings"
	"time"

	"travony/models"
)

// Route type distance boundaries in km.
const (
	shortRouteMaxKm  = 5.0
	mediumRouteMaxKm = 15.0
)

// RouteTypeForDistance buckets a ride distance into short/medium/long.
// A nil distance yields an empty bucket.
func RouteTypeForDistance(distanceKm *float64) string {
	if distanceKm == nil || *distanceKm <= 0 {
		return ""
	}
	switch {
	case *distanceKm < shortRouteMaxKm:
		return models.RouteShort
	case *distanceKm < mediumRouteMaxKm:
		return models.RouteMedium
	default:
		return models.RouteLong
	}
}

// TimeBlockForTime buckets a ride timestamp into a time-of-day block.
// The zero time yields an empty bucket.
func TimeBlockForTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	switch hour := t.Hour(); {
	case hour >= 5 && hour <= 9:
		return models.BlockMorningRush
	case hour >= 10 && hour <= 15:
		return models.BlockMidday
	case hour >= 16 && hour <= 19:
		return models.BlockEveningRush
	case hour >= 20:
		return models.BlockNight
	default:
		return models.BlockLateNight
	}
}

// SlugifyCity normalizes a city name into the slug used as the aggregation
// key ("Nairobi West" -> "nairobi-west").
func SlugifyCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	return strings.Join(strings.Fields(city), "-")
}
