package domain

// Route is a walkable polyline between two points, the output of a single
// point-to-point path computation. LengthUnits is in floor-plan units.
// Bounds is the floor plan's extent, carried for presentation-space
// conversion; it is zero on the legs of a trip.
type Route struct {
	Points         []Point
	LengthUnits    float64
	DistanceMeters float64
	TimeMinutes    float64
	Bounds         Bounds
}

// TripStop is one visited stop in a planned trip. Waypoint is nil for the
// start and end anchors. Offset is the walking distance from the start of the
// trip to this stop, in floor-plan units.
type TripStop struct {
	Name     string
	Point    Point
	Waypoint *Waypoint
	Offset   float64
}

// PlannedTrip is the ordered visiting sequence for a shopping list with a
// route stitched between each consecutive pair of stops.
// Legs[i] connects Stops[i] and Stops[i+1]; Path is the concatenated polyline.
type PlannedTrip struct {
	ShopID         int64
	Bounds         Bounds
	Stops          []TripStop
	Legs           []Route
	Path           []Point
	LengthUnits    float64
	DistanceMeters float64
	TimeMinutes    float64
}

// WaypointNames lists the names of the visited waypoints in order, excluding
// the start and end anchors.
func (t *PlannedTrip) WaypointNames() []string {
	names := make([]string, 0, len(t.Stops))
	for _, s := range t.Stops {
		if s.Waypoint != nil {
			names = append(names, s.Name)
		}
	}
	return names
}
