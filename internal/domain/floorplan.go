package domain

import "fmt"

// Category is a named point of interest (a commodity location) in a shop.
// Point is nil when the category has not been placed on the map yet.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Point *Point `json:"point,omitempty"`
}

// FloorPlan is the immutable snapshot of one shop's layout used for a single
// routing computation. It is a plain value: the engine never mutates it.
type FloorPlan struct {
	ShopID  int64  `json:"shop_id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
	Bounds  Bounds `json:"bounds"`

	// Physical dimensions of the mapped area, when known. Zero means unknown.
	PhysicalWidthMeters  float64 `json:"physical_width_meters,omitempty"`
	PhysicalHeightMeters float64 `json:"physical_height_meters,omitempty"`

	Entrance   *Point     `json:"entrance,omitempty"`
	Exit       *Point     `json:"exit,omitempty"`
	Obstacles  []Obstacle `json:"obstacles"`
	Categories []Category `json:"categories"`
}

// Validate rejects floor plans that cannot be routed on. It is applied when a
// snapshot is ingested, so geometry queries never see malformed obstacles.
func (f *FloorPlan) Validate() error {
	if f == nil {
		return fmt.Errorf("validate floor plan: nil snapshot: %w", ErrDegenerateFloorPlan)
	}

	if f.Bounds.Width <= 0 || f.Bounds.Height <= 0 {
		return fmt.Errorf(
			"validate floor plan: shop %d: zero-area bounds %gx%g: %w",
			f.ShopID, f.Bounds.Width, f.Bounds.Height, ErrDegenerateFloorPlan,
		)
	}

	for _, o := range f.Obstacles {
		if err := o.validate(); err != nil {
			return fmt.Errorf("validate floor plan: shop %d: %v: %w", f.ShopID, err, ErrDegenerateFloorPlan)
		}
	}

	if f.Entrance != nil && !InsideBounds(*f.Entrance, f.Bounds) {
		return fmt.Errorf("validate floor plan: shop %d: entrance %v outside bounds: %w", f.ShopID, *f.Entrance, ErrDegenerateFloorPlan)
	}
	if f.Exit != nil && !InsideBounds(*f.Exit, f.Bounds) {
		return fmt.Errorf("validate floor plan: shop %d: exit %v outside bounds: %w", f.ShopID, *f.Exit, ErrDegenerateFloorPlan)
	}

	return nil
}

// Category returns the category with the given id from the snapshot.
func (f *FloorPlan) Category(id int64) (Category, bool) {
	for _, c := range f.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Blocked reports whether p lies inside any obstacle of the floor plan.
func (f *FloorPlan) Blocked(p Point) bool {
	for _, o := range f.Obstacles {
		if o.Contains(p) {
			return true
		}
	}
	return false
}
