package handlers

import (
	"errors"
	"net/http"
	"store-route-service/internal/api/dto"
	"store-route-service/internal/domain"
	"store-route-service/internal/services"
)

type RouteHandler struct {
	Service *services.RouteService
}

// Plan answers a point-to-point route request.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ShopID <= 0 {
		writeError(w, r, http.StatusBadRequest, "shop_id must be positive")
		return
	}
	if !req.Source.Set() || !req.Destination.Set() {
		writeError(w, r, http.StatusBadRequest, "source and destination are required")
		return
	}

	route, err := h.Service.PlanRoute(r.Context(), services.RouteRequest{
		ShopID:      req.ShopID,
		Source:      req.Source.Anchor(),
		Destination: req.Destination.Anchor(),
		ActivityID:  req.ActivityID,
	})
	if errors.Is(err, domain.ErrNotReachable) {
		writeJSON(w, r, http.StatusOK, dto.UnreachableRoute(req.ShopID, err.Error()))
		return
	}
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	if wantsGeoJSON(r) {
		writeGeoJSON(w, r, http.StatusOK, dto.RouteGeoJSON(req.ShopID, route))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(req.ShopID, route))
}
