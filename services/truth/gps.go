package truth

import (
	"math"

	"travony/models"
)

// GPS plausibility thresholds.
const (
	minTracePoints   = 5
	maxPlausibleKmh  = 200.0
	maxTeleportRatio = 0.10
	minDistinctRatio = 0.30
)

// TraceSummary is the outcome of analyzing a GPS trace. Derived distance
// and duration are only trusted when the trace is internally consistent.
type TraceSummary struct {
	TotalKm     float64
	DurationMin float64
	Consistent  bool
}

// AnalyzeTrace derives total distance and duration from a GPS trace and
// judges its internal consistency. An inconsistent trace keeps its derived
// values, but callers must not apply them to an observation.
func AnalyzeTrace(points []models.GPSPoint) TraceSummary {
	var summary TraceSummary
	if len(points) < 2 {
		return summary
	}
	for i := 1; i < len(points); i++ {
		summary.TotalKm += haversineKm(
			points[i-1].Latitude, points[i-1].Longitude,
			points[i].Latitude, points[i].Longitude,
		)
	}
	summary.DurationMin = points[len(points)-1].Timestamp.Sub(points[0].Timestamp).Minutes()
	summary.Consistent = len(tracePlausibilityFlags(points)) == 0
	return summary
}

// tracePlausibilityFlags runs every plausibility check independently and
// returns all failing flags.
func tracePlausibilityFlags(points []models.GPSPoint) []models.FraudFlag {
	var flags []models.FraudFlag

	if len(points) < minTracePoints {
		flags = append(flags, models.FlagInsufficientGPSPoints)
	}

	monotonic := true
	teleports := 0
	segments := 0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if !cur.Timestamp.After(prev.Timestamp) {
			monotonic = false
			continue
		}
		segments++
		hours := cur.Timestamp.Sub(prev.Timestamp).Hours()
		km := haversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
		if km/hours > maxPlausibleKmh {
			teleports++
		}
	}
	if !monotonic {
		flags = append(flags, models.FlagNonMonotonicTimestamps)
	}
	if segments > 0 && float64(teleports)/float64(segments) > maxTeleportRatio {
		flags = append(flags, models.FlagImpossibleSpeed)
	}

	if len(points) > 0 {
		distinct := make(map[[2]float64]struct{}, len(points))
		for _, p := range points {
			distinct[[2]float64{p.Latitude, p.Longitude}] = struct{}{}
		}
		if float64(len(distinct))/float64(len(points)) < minDistinctRatio {
			flags = append(flags, models.FlagStationaryTrace)
		}
	}

	return flags
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
