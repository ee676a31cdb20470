package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"store-route-service/internal/api/dto"
	"store-route-service/internal/domain"
	"store-route-service/internal/services"
	"strings"
)

const maxWaypoints = 64

type TripHandler struct {
	Service *services.RouteService
}

// Plan orders a shopping list between the trip's start and end and returns
// the stitched route.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ShopID <= 0 {
		writeError(w, r, http.StatusBadRequest, "shop_id must be positive")
		return
	}
	if len(req.Waypoints) > maxWaypoints {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d waypoints are allowed", maxWaypoints))
		return
	}

	svcReq := services.TripRequest{
		ShopID:     req.ShopID,
		Waypoints:  make([]domain.Waypoint, 0, len(req.Waypoints)),
		ActivityID: req.ActivityID,
	}

	for i, wp := range req.Waypoints {
		if wp.Point == nil && wp.CategoryID == nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("waypoint %d needs a point or a category_id", i+1))
			return
		}
		wp.Name = strings.TrimSpace(wp.Name)
		if wp.Name == "" {
			wp.Name = fmt.Sprintf("waypoint-%d", i+1)
		}
		svcReq.Waypoints = append(svcReq.Waypoints, wp.ToDomain())
	}

	if req.Start != nil {
		a := req.Start.Anchor()
		svcReq.Start = &a
	}
	if req.End != nil {
		a := req.End.Anchor()
		svcReq.End = &a
	}

	trip, err := h.Service.PlanTrip(r.Context(), svcReq)
	if errors.Is(err, domain.ErrNotReachable) {
		writeJSON(w, r, http.StatusOK, dto.UnreachableTrip(req.ShopID, err.Error()))
		return
	}
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, dto.TripGeoJSON(trip))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}
