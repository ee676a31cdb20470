package dto

import (
	"store-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON output is a presentation format and is emitted in render space
// (origin bottom-left, Y up).

func lineString(b domain.Bounds, pts []domain.Point) orb.LineString {
	ls := make(orb.LineString, 0, len(pts))
	for _, p := range pts {
		r := b.ToRender(p)
		ls = append(ls, orb.Point{r.X, r.Y})
	}
	return ls
}

func renderPoint(b domain.Bounds, p domain.Point) orb.Point {
	r := b.ToRender(p)
	return orb.Point{r.X, r.Y}
}

// pathGeometry is a LineString, or a Point for a zero-length path: a
// LineString needs two positions.
func pathGeometry(b domain.Bounds, pts []domain.Point) orb.Geometry {
	if len(pts) == 1 {
		return renderPoint(b, pts[0])
	}
	return lineString(b, pts)
}

// RouteGeoJSON renders a route as a single LineString feature.
func RouteGeoJSON(shopID int64, r *domain.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	f := geojson.NewFeature(pathGeometry(r.Bounds, r.Points))
	f.Properties["shop_id"] = shopID
	f.Properties["length_units"] = r.LengthUnits
	f.Properties["distance_meters"] = r.DistanceMeters
	f.Properties["time_minutes"] = r.TimeMinutes
	fc.Append(f)

	return fc
}

// TripGeoJSON renders one LineString per leg followed by one Point per stop.
// A leg between coincident stops is a Point.
func TripGeoJSON(t *domain.PlannedTrip) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, l := range t.Legs {
		f := geojson.NewFeature(pathGeometry(t.Bounds, l.Points))
		f.Properties["kind"] = "leg"
		f.Properties["from"] = t.Stops[i].Name
		f.Properties["to"] = t.Stops[i+1].Name
		f.Properties["distance_meters"] = l.DistanceMeters
		f.Properties["time_minutes"] = l.TimeMinutes
		fc.Append(f)
	}

	for i, s := range t.Stops {
		f := geojson.NewFeature(renderPoint(t.Bounds, s.Point))
		f.Properties["kind"] = "stop"
		f.Properties["name"] = s.Name
		f.Properties["sequence"] = i
		fc.Append(f)
	}

	return fc
}
