package domain

// Waypoint is a requested stop on a shopping trip. When Point is nil the
// location is resolved from the category's stored coordinates.
type Waypoint struct {
	Name        string
	Point       *Point
	CategoryID  *int64
	Commodities []string
}
