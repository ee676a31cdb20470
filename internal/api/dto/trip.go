package dto

import (
	"store-route-service/internal/domain"

	"github.com/google/uuid"
)

type WaypointInput struct {
	Name        string        `json:"name"`
	Point       *domain.Point `json:"point,omitempty"`
	CategoryID  *int64        `json:"category_id,omitempty"`
	Commodities []string      `json:"commodities,omitempty"`
}

type TripRequest struct {
	ShopID     int64           `json:"shop_id"`
	Waypoints  []WaypointInput `json:"waypoints"`
	Start      *AnchorInput    `json:"start,omitempty"`
	End        *AnchorInput    `json:"end,omitempty"`
	ActivityID *uuid.UUID      `json:"activity_id,omitempty"`
}

func (w WaypointInput) ToDomain() domain.Waypoint {
	return domain.Waypoint{
		Name:        w.Name,
		Point:       w.Point,
		CategoryID:  w.CategoryID,
		Commodities: w.Commodities,
	}
}

type TripStopResponse struct {
	Name         string       `json:"name"`
	Point        domain.Point `json:"point"`
	CategoryID   *int64       `json:"category_id,omitempty"`
	Commodities  []string     `json:"commodities,omitempty"`
	OffsetMeters float64      `json:"offset_meters"`
}

type TripLegResponse struct {
	From           string         `json:"from"`
	To             string         `json:"to"`
	Points         []domain.Point `json:"points"`
	DistanceMeters float64        `json:"distance_meters"`
	TimeMinutes    float64        `json:"time_minutes"`
}

type TripResponse struct {
	ShopID         int64              `json:"shop_id"`
	Reachable      bool               `json:"reachable"`
	Order          []string           `json:"order"`
	Stops          []TripStopResponse `json:"stops"`
	Legs           []TripLegResponse  `json:"legs"`
	Path           []domain.Point     `json:"path"`
	DistanceMeters float64            `json:"distance_meters"`
	TimeMinutes    float64            `json:"time_minutes"`
	Reason         string             `json:"reason,omitempty"`
}

// NewTripResponse flattens a planned trip. Stop offsets are kept in
// floor-plan units by the engine and scaled here with the trip's own ratio.
func NewTripResponse(t *domain.PlannedTrip) TripResponse {
	scale := 0.0
	if t.LengthUnits > 0 {
		scale = t.DistanceMeters / t.LengthUnits
	}

	res := TripResponse{
		ShopID:         t.ShopID,
		Reachable:      true,
		Order:          t.WaypointNames(),
		Stops:          make([]TripStopResponse, 0, len(t.Stops)),
		Legs:           make([]TripLegResponse, 0, len(t.Legs)),
		Path:           t.Path,
		DistanceMeters: t.DistanceMeters,
		TimeMinutes:    t.TimeMinutes,
	}

	for _, s := range t.Stops {
		stop := TripStopResponse{
			Name:         s.Name,
			Point:        s.Point,
			OffsetMeters: s.Offset * scale,
		}
		if s.Waypoint != nil {
			stop.CategoryID = s.Waypoint.CategoryID
			stop.Commodities = s.Waypoint.Commodities
		}
		res.Stops = append(res.Stops, stop)
	}

	for i, l := range t.Legs {
		res.Legs = append(res.Legs, TripLegResponse{
			From:           t.Stops[i].Name,
			To:             t.Stops[i+1].Name,
			Points:         l.Points,
			DistanceMeters: l.DistanceMeters,
			TimeMinutes:    l.TimeMinutes,
		})
	}

	return res
}

func UnreachableTrip(shopID int64, reason string) TripResponse {
	return TripResponse{
		ShopID:    shopID,
		Reachable: false,
		Reason:    reason,
		Order:     []string{},
		Stops:     []TripStopResponse{},
		Legs:      []TripLegResponse{},
		Path:      []domain.Point{},
	}
}
