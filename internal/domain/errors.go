package domain

import "errors"

var (
	// ErrShopNotFound is returned by floor-plan providers for an unknown shop id.
	ErrShopNotFound = errors.New("shop not found")

	// ErrCategoryNotFound is returned when a waypoint names an unknown category.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidPoint marks a coordinate outside the shop bounds (beyond the
	// snap radius) or an anchor the shop does not define.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrNotReachable is a normal routing outcome: the points are valid but no
	// walkable path connects them.
	ErrNotReachable = errors.New("not reachable")

	// ErrDegenerateFloorPlan marks floor-plan data that cannot be routed on
	// until it is corrected upstream.
	ErrDegenerateFloorPlan = errors.New("degenerate floor plan")
)
