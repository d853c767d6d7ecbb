package model

// GridSettings configures the area-fill ("lawnmower") generator.
type GridSettings struct {
	SpacingMeters  float64 `json:"spacingMeters"`
	AngleDegrees   float64 `json:"angleDegrees"` // [0,180)
	AltitudeMeters float64 `json:"altitudeMeters"`
	SpeedMps       float64 `json:"speedMps"`
}

// CorridorSettings configures the linear-feature inspection generator.
type CorridorSettings struct {
	WidthMeters           float64 `json:"widthMeters"` // per side
	WaypointSpacingMeters float64 `json:"waypointSpacingMeters"`
	AltitudeMeters        float64 `json:"altitudeMeters"`
	SpeedMps              float64 `json:"speedMps"`
}

// Waypoint is one ordered stop on a generated flight path.
type Waypoint struct {
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
	Altitude float64 `json:"altitude"`
	Speed    float64 `json:"speed"`
}

// AltitudeRange summarizes waypoint altitudes.
type AltitudeRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// FlightStats are derived statistics for a waypoint sequence.
type FlightStats struct {
	DistanceMeters  float64       `json:"distanceMeters"`
	DurationMinutes float64       `json:"durationMinutes"`
	WaypointCount   int           `json:"waypointCount"`
	AltitudeRange   AltitudeRange `json:"altitudeRange"`
}
