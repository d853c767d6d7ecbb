package pathgen

import (
	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/model"
)

// ComputeStats derives flight statistics from a waypoint sequence.
// Distance is the sum of great-circle leg distances. Duration charges each
// leg at the destination waypoint's speed; zero-speed legs contribute no
// time. Fewer than 2 waypoints yields all-zero statistics.
//
// The computation depends only on the waypoint values, so serializing a
// path and recomputing yields identical results.
func ComputeStats(wps []model.Waypoint) model.FlightStats {
	if len(wps) < 2 {
		return model.FlightStats{WaypointCount: len(wps)}
	}

	var distance, seconds float64
	for i := 1; i < len(wps); i++ {
		leg := geo.Haversine(
			model.Position{Lng: wps[i-1].Lng, Lat: wps[i-1].Lat},
			model.Position{Lng: wps[i].Lng, Lat: wps[i].Lat},
		)
		distance += leg
		if wps[i].Speed > 0 {
			seconds += leg / wps[i].Speed
		}
	}

	ar := model.AltitudeRange{Min: wps[0].Altitude, Max: wps[0].Altitude}
	var altSum float64
	for _, wp := range wps {
		if wp.Altitude < ar.Min {
			ar.Min = wp.Altitude
		}
		if wp.Altitude > ar.Max {
			ar.Max = wp.Altitude
		}
		altSum += wp.Altitude
	}
	ar.Average = altSum / float64(len(wps))

	return model.FlightStats{
		DistanceMeters:  distance,
		DurationMinutes: seconds / 60,
		WaypointCount:   len(wps),
		AltitudeRange:   ar,
	}
}
