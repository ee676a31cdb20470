package services

import (
	"context"
	"fmt"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/obs"

	"github.com/google/uuid"
)

type RouteRequest struct {
	ShopID      int64
	Source      domain.Anchor
	Destination domain.Anchor
	// Optional; when set the result is recorded against this activity.
	ActivityID *uuid.UUID
}

// PlanRoute computes the shortest walkable route between two anchors.
// It returns an error wrapping domain.ErrNotReachable when the points are
// valid but no path connects them.
func (s *RouteService) PlanRoute(ctx context.Context, req RouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "services.PlanRoute")(&err)

	plan, err := s.loadFloorPlan(ctx, req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	from, err := s.locate(plan, req.Source)
	if err != nil {
		return nil, fmt.Errorf("plan route: source %v: %w", req.Source, err)
	}
	to, err := s.locate(plan, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("plan route: destination %v: %w", req.Destination, err)
	}

	g := BuildVisibilityGraph(plan, s.Config.ClearanceMargin, []domain.Point{from, to})

	route, err := ShortestPath(g, from, to)
	if err != nil {
		return nil, fmt.Errorf("plan route: shop %d: %w", plan.ShopID, err)
	}

	MetricsFor(plan, s.Config).annotate(&route)
	route.Bounds = plan.Bounds

	s.record(ctx, req.ActivityID,
		[]string{req.Source.String(), req.Destination.String()},
		route.DistanceMeters, route.TimeMinutes,
	)

	return &route, nil
}
