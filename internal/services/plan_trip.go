package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/obs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type TripRequest struct {
	ShopID    int64
	Waypoints []domain.Waypoint
	// Nil Start and End default to the shop's entrance and exit.
	Start *domain.Anchor
	End   *domain.Anchor
	// Optional; when set the result is recorded against this activity.
	ActivityID *uuid.UUID
}

// tripPoint is one row of the pairwise matrix.
type tripPoint struct {
	name     string
	point    domain.Point
	waypoint *domain.Waypoint
}

// PlanTrip orders the requested waypoints between the start and end anchors
// and stitches the routes between consecutive stops.
//
// The full pairwise matrix is computed once on a single visibility graph and
// handed to the sequencer. If any stop cannot be reached the whole trip fails
// with domain.ErrNotReachable; stops are never dropped.
func (s *RouteService) PlanTrip(ctx context.Context, req TripRequest) (_ *domain.PlannedTrip, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	plan, err := s.loadFloorPlan(ctx, req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	start := domain.Entrance()
	if req.Start != nil {
		start = *req.Start
	}
	end := domain.Exit()
	if req.End != nil {
		end = *req.End
	}

	points := make([]tripPoint, 0, len(req.Waypoints)+2)

	startPt, err := s.locate(plan, start)
	if err != nil {
		return nil, fmt.Errorf("plan trip: start %v: %w", start, err)
	}
	points = append(points, tripPoint{name: anchorName(start, "start"), point: startPt})

	for i := range req.Waypoints {
		w := &req.Waypoints[i]
		p, err := s.resolveWaypoint(ctx, plan, w)
		if err != nil {
			return nil, fmt.Errorf("plan trip: waypoint %q: %w", w.Name, err)
		}
		p, err = snapPoint(plan, p, s.Config.ClearanceMargin, s.Config.SnapRadius, w.Point == nil)
		if err != nil {
			return nil, fmt.Errorf("plan trip: waypoint %q: %w", w.Name, err)
		}
		points = append(points, tripPoint{name: w.Name, point: p, waypoint: w})
	}

	endPt, err := s.locate(plan, end)
	if err != nil {
		return nil, fmt.Errorf("plan trip: end %v: %w", end, err)
	}
	points = append(points, tripPoint{name: anchorName(end, "end"), point: endPt})

	coords := make([]domain.Point, len(points))
	for i, p := range points {
		coords[i] = p.point
	}
	g := BuildVisibilityGraph(plan, s.Config.ClearanceMargin, coords)

	legs, dist, err := pairwiseRoutes(ctx, g, coords, s.Config.MatrixWorkers)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	// The graph is undirected, so every stop must share the start's component.
	for k := 1; k < len(points); k++ {
		if math.IsInf(dist[0][k], 1) {
			return nil, fmt.Errorf("plan trip: stop %q cannot be reached from %q: %w",
				points[k].name, points[0].name, domain.ErrNotReachable)
		}
	}

	order := s.Sequencer.Order(dist)
	if len(order) != len(points) {
		return nil, fmt.Errorf("plan trip: sequencer returned %d stops, want %d", len(order), len(points))
	}

	trip := stitchTrip(plan, order, points, legs, MetricsFor(plan, s.Config))

	s.record(ctx, req.ActivityID, trip.WaypointNames(), trip.DistanceMeters, trip.TimeMinutes)

	return trip, nil
}

// resolveWaypoint returns the waypoint's explicit point, or its category's
// stored location from the snapshot, asking the provider for categories the
// snapshot does not carry. Lookups are scoped to the plan's shop.
func (s *RouteService) resolveWaypoint(ctx context.Context, plan *domain.FloorPlan, w *domain.Waypoint) (domain.Point, error) {
	if w.Point != nil {
		return *w.Point, nil
	}
	if w.CategoryID == nil {
		return domain.Point{}, fmt.Errorf("resolve waypoint: neither point nor category given: %w", domain.ErrInvalidPoint)
	}

	id := *w.CategoryID
	if c, ok := plan.Category(id); ok {
		if c.Point == nil {
			return domain.Point{}, fmt.Errorf("resolve waypoint: category %d has no location: %w", id, domain.ErrInvalidPoint)
		}
		return *c.Point, nil
	}

	p, err := s.Provider.GetCategoryPoint(ctx, plan.ShopID, id)
	if err != nil {
		return domain.Point{}, fmt.Errorf("resolve waypoint: category %d: %w", id, err)
	}
	if p == nil {
		return domain.Point{}, fmt.Errorf("resolve waypoint: category %d has no location: %w", id, domain.ErrInvalidPoint)
	}
	return *p, nil
}

// pairwiseRoutes fills the symmetric distance matrix over points, one row per
// goroutine. Row i computes the pairs (i, j>i) and writes only those slots and
// their mirrors, so the result does not depend on scheduling. Unreachable
// pairs get +Inf.
func pairwiseRoutes(
	ctx context.Context,
	g *VisibilityGraph,
	points []domain.Point,
	workers int,
) ([][]domain.Route, [][]float64, error) {
	size := len(points)
	legs := make([][]domain.Route, size)
	dist := make([][]float64, size)
	for i := range legs {
		legs[i] = make([]domain.Route, size)
		dist[i] = make([]float64, size)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))

	for i := 0; i < size-1; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < size; j++ {
				r, err := ShortestPath(g, points[i], points[j])
				switch {
				case errors.Is(err, domain.ErrNotReachable):
					dist[i][j] = math.Inf(1)
					dist[j][i] = math.Inf(1)
				case err != nil:
					return fmt.Errorf("pairwise routes: %d -> %d: %w", i, j, err)
				default:
					legs[i][j] = r
					dist[i][j] = r.LengthUnits
					dist[j][i] = r.LengthUnits
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return legs, dist, nil
}

// stitchTrip walks the chosen order and joins the legs. Lengths are summed in
// floor-plan units and converted once at the end.
func stitchTrip(
	plan *domain.FloorPlan,
	order []int,
	points []tripPoint,
	legs [][]domain.Route,
	m Metrics,
) *domain.PlannedTrip {
	trip := &domain.PlannedTrip{
		ShopID: plan.ShopID,
		Bounds: plan.Bounds,
		Stops:  make([]domain.TripStop, 0, len(order)),
		Legs:   make([]domain.Route, 0, len(order)-1),
	}

	total := 0.0
	for k, idx := range order {
		p := points[idx]
		trip.Stops = append(trip.Stops, domain.TripStop{
			Name:     p.name,
			Point:    p.point,
			Waypoint: p.waypoint,
			Offset:   total,
		})

		if k+1 == len(order) {
			break
		}

		next := order[k+1]
		var leg domain.Route
		if idx < next {
			leg = legs[idx][next]
		} else {
			leg = reverseRoute(legs[next][idx])
		}
		m.annotate(&leg)
		trip.Legs = append(trip.Legs, leg)

		for i, pt := range leg.Points {
			if i == 0 && len(trip.Path) > 0 && trip.Path[len(trip.Path)-1] == pt {
				continue
			}
			trip.Path = append(trip.Path, pt)
		}
		total += leg.LengthUnits
	}

	trip.LengthUnits = total
	trip.DistanceMeters = m.ToMeters(total)
	trip.TimeMinutes = m.ToMinutes(trip.DistanceMeters)

	return trip
}

func anchorName(a domain.Anchor, explicit string) string {
	if a.Kind == domain.AnchorPoint {
		return explicit
	}
	return a.Kind.String()
}
