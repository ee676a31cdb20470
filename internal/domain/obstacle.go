package domain

import "fmt"

// ObstacleType classifies an impassable floor-plan element.
type ObstacleType string

const (
	ObstacleShelf    ObstacleType = "shelf"
	ObstacleWall     ObstacleType = "wall"
	ObstacleCounter  ObstacleType = "counter"
	ObstacleCheckout ObstacleType = "checkout"
)

// Valid reports whether t is one of the known obstacle types.
func (t ObstacleType) Valid() bool {
	switch t {
	case ObstacleShelf, ObstacleWall, ObstacleCounter, ObstacleCheckout:
		return true
	}
	return false
}

// Obstacle is an axis-aligned rectangle that path search may not enter.
// Geometry is in storage units; (X, Y) is the top-left corner.
type Obstacle struct {
	ID     int64        `json:"id"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Type   ObstacleType `json:"type"`
}

// Rect returns the closed rectangle covered by o.
func (o Obstacle) Rect() Rect {
	return Rect{
		MinX: float64(o.X),
		MinY: float64(o.Y),
		MaxX: float64(o.X + o.Width),
		MaxY: float64(o.Y + o.Height),
	}
}

// Contains reports whether p is blocked by o. Points on the boundary are blocked.
func (o Obstacle) Contains(p Point) bool { return o.Rect().Contains(p) }

func (o Obstacle) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("obstacle %d has non-positive size %dx%d", o.ID, o.Width, o.Height)
	}
	if o.X < 0 || o.Y < 0 {
		return fmt.Errorf("obstacle %d has negative origin (%d,%d)", o.ID, o.X, o.Y)
	}
	if !o.Type.Valid() {
		return fmt.Errorf("obstacle %d has unknown type %q", o.ID, o.Type)
	}
	return nil
}
