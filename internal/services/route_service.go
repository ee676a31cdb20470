package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/obs"
	"store-route-service/internal/ports"
	"time"

	"github.com/google/uuid"
)

// recordTimeout bounds the activity sink write, which outlives the caller's
// context so an abandoned request still gets recorded.
const recordTimeout = 5 * time.Second

// RouteService answers point-to-point and multi-waypoint route requests for a
// shop. It keeps no state between requests; each call reads one floor-plan
// snapshot and computes on it alone.
type RouteService struct {
	Provider  ports.FloorPlanProvider
	Sink      ports.ActivitySink
	Sequencer Sequencer
	Config    EngineConfig
}

// NewRouteService wires the service with the default sequencer for cfg.
// sink may be nil when activity tracking is disabled.
func NewRouteService(provider ports.FloorPlanProvider, sink ports.ActivitySink, cfg EngineConfig) *RouteService {
	return &RouteService{
		Provider:  provider,
		Sink:      sink,
		Sequencer: NewSequencer(cfg),
		Config:    cfg,
	}
}

func (s *RouteService) loadFloorPlan(ctx context.Context, shopID int64) (*domain.FloorPlan, error) {
	if s.Provider == nil {
		return nil, errors.New("load floor plan: provider is nil")
	}

	plan, err := s.Provider.GetFloorPlan(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load floor plan: shop %d: %w", shopID, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("load floor plan: %w", err)
	}

	return plan, nil
}

// locate resolves an anchor on the plan and snaps it onto walkable space.
// Only the stored entrance and exit may be pushed out of an obstacle.
func (s *RouteService) locate(plan *domain.FloorPlan, a domain.Anchor) (domain.Point, error) {
	p, err := a.Resolve(plan)
	if err != nil {
		return domain.Point{}, err
	}
	return snapPoint(plan, p, s.Config.ClearanceMargin, s.Config.SnapRadius, a.Kind != domain.AnchorPoint)
}

// record hands a finished route to the activity sink. Failures are logged
// and never change the routing result.
func (s *RouteService) record(ctx context.Context, activityID *uuid.UUID, waypoints []string, meters, minutes float64) {
	if s.Sink == nil || activityID == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.Sink.RecordRoute(ctx, *activityID, waypoints, meters, minutes); err != nil {
		log.Printf("req_id=%s record route failed: activity_id=%s err=%v", obs.RequestID(ctx), activityID, err)
	}
}
