package api

import (
	"net/http"
	"store-route-service/internal/api/handlers"
	"store-route-service/internal/ports"
	"store-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// invalidator may be nil when no floor-plan cache is configured.
func NewRouter(svc *services.RouteService, invalidator ports.FloorPlanInvalidator) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Service: svc}
	tripHandler := &handlers.TripHandler{Service: svc}
	floorPlanHandler := &handlers.FloorPlanHandler{Invalidator: invalidator}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /routes", routeHandler.Plan)
	mux.HandleFunc("POST /trips", tripHandler.Plan)
	mux.HandleFunc("POST /shops/{id}/floorplan/invalidate", floorPlanHandler.Invalidate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
