package dto

import (
	"store-route-service/internal/domain"

	"github.com/google/uuid"
)

type RouteRequest struct {
	ShopID      int64       `json:"shop_id"`
	Source      AnchorInput `json:"source"`
	Destination AnchorInput `json:"destination"`
	ActivityID  *uuid.UUID  `json:"activity_id,omitempty"`
}

type RouteResponse struct {
	ShopID         int64          `json:"shop_id"`
	Reachable      bool           `json:"reachable"`
	Points         []domain.Point `json:"points"`
	LengthUnits    float64        `json:"length_units"`
	DistanceMeters float64        `json:"distance_meters"`
	TimeMinutes    float64        `json:"time_minutes"`
	Reason         string         `json:"reason,omitempty"`
}

func NewRouteResponse(shopID int64, r *domain.Route) RouteResponse {
	return RouteResponse{
		ShopID:         shopID,
		Reachable:      true,
		Points:         r.Points,
		LengthUnits:    r.LengthUnits,
		DistanceMeters: r.DistanceMeters,
		TimeMinutes:    r.TimeMinutes,
	}
}

// UnreachableRoute is the body returned when both points are valid but no
// walkable path joins them. reason carries the engine's explanation.
func UnreachableRoute(shopID int64, reason string) RouteResponse {
	return RouteResponse{ShopID: shopID, Reachable: false, Points: []domain.Point{}, Reason: reason}
}
