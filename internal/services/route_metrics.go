package services

import "store-route-service/internal/domain"

// Metrics converts floor-plan units into walking distance and time.
// Conversions are applied once to a final length; summing already converted
// legs would compound rounding at the presentation layer.
type Metrics struct {
	MetersPerUnit               float64
	WalkingSpeedMetersPerMinute float64
}

// MetricsFor derives the unit scale from the shop's physical width (or height)
// when known, and falls back to the configured default ratio.
func MetricsFor(plan *domain.FloorPlan, cfg EngineConfig) Metrics {
	scale := cfg.DefaultMetersPerUnit
	switch {
	case plan.PhysicalWidthMeters > 0 && plan.Bounds.Width > 0:
		scale = plan.PhysicalWidthMeters / plan.Bounds.Width
	case plan.PhysicalHeightMeters > 0 && plan.Bounds.Height > 0:
		scale = plan.PhysicalHeightMeters / plan.Bounds.Height
	}

	return Metrics{
		MetersPerUnit:               scale,
		WalkingSpeedMetersPerMinute: cfg.WalkingSpeedMetersPerMinute,
	}
}

func (m Metrics) ToMeters(units float64) float64 { return units * m.MetersPerUnit }

func (m Metrics) ToMinutes(meters float64) float64 {
	if m.WalkingSpeedMetersPerMinute <= 0 {
		return 0
	}
	return meters / m.WalkingSpeedMetersPerMinute
}

// UnitsFromMeters is the inverse of ToMeters.
func (m Metrics) UnitsFromMeters(meters float64) float64 {
	if m.MetersPerUnit == 0 {
		return 0
	}
	return meters / m.MetersPerUnit
}

// MetersFromMinutes is the inverse of ToMinutes.
func (m Metrics) MetersFromMinutes(minutes float64) float64 {
	return minutes * m.WalkingSpeedMetersPerMinute
}

// annotate fills in distance and time from the route's unit length.
func (m Metrics) annotate(r *domain.Route) {
	r.DistanceMeters = m.ToMeters(r.LengthUnits)
	r.TimeMinutes = m.ToMinutes(r.DistanceMeters)
}
