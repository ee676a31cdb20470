package services

import (
	"fmt"
	"store-route-service/internal/domain"
)

// snapPoint moves p onto walkable space within radius, or fails.
//
// Points outside the bounds are clipped onto them; farther than radius away
// they are invalid. A point strictly inside an obstacle is not reachable
// unless pushOut is set. pushOut is for stored locations (anchors and
// category points), which are often recorded on the shelf they label. Those
// and boundary points move to the nearest free projection onto an inflated
// obstacle side; if none lies within radius the point is enclosed and not
// reachable.
func snapPoint(plan *domain.FloorPlan, p domain.Point, margin, radius float64, pushOut bool) (domain.Point, error) {
	if !domain.InsideBounds(p, plan.Bounds) {
		c := plan.Bounds.Clamp(p)
		if c.Distance(p) > radius {
			return domain.Point{}, fmt.Errorf("snap point: %v outside shop bounds %gx%g: %w",
				p, plan.Bounds.Width, plan.Bounds.Height, domain.ErrInvalidPoint)
		}
		p = c
	}

	if !plan.Blocked(p) {
		return p, nil
	}
	if !pushOut {
		for _, o := range plan.Obstacles {
			if o.Rect().Interior(p) {
				return domain.Point{}, fmt.Errorf("snap point: %v lies inside obstacle %d: %w", p, o.ID, domain.ErrNotReachable)
			}
		}
	}

	// A zero margin would leave projections on the closed boundary.
	push := margin
	if push <= 0 {
		push = 1e-6
	}

	var (
		best     domain.Point
		bestDist = radius
		found    bool
	)
	for _, o := range plan.Obstacles {
		if !o.Contains(p) {
			continue
		}
		for _, c := range o.Rect().SideProjections(p, push) {
			if !domain.InsideBounds(c, plan.Bounds) || plan.Blocked(c) {
				continue
			}
			if d := c.Distance(p); d <= bestDist && (!found || d < bestDist) {
				best, bestDist, found = c, d, true
			}
		}
	}

	if !found {
		return domain.Point{}, fmt.Errorf("snap point: %v is enclosed by obstacles: %w", p, domain.ErrNotReachable)
	}
	return best, nil
}
