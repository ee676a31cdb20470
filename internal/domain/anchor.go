package domain

import "fmt"

// AnchorKind distinguishes an explicit coordinate from the shop-level anchors.
type AnchorKind int

const (
	AnchorPoint AnchorKind = iota
	AnchorEntrance
	AnchorExit
)

func (k AnchorKind) String() string {
	switch k {
	case AnchorEntrance:
		return "entrance"
	case AnchorExit:
		return "exit"
	default:
		return "point"
	}
}

// Anchor is a route endpoint: either an explicit point or one of the shop's
// named anchors. Point is only meaningful when Kind is AnchorPoint.
type Anchor struct {
	Kind  AnchorKind
	Point Point
}

func Explicit(p Point) Anchor { return Anchor{Kind: AnchorPoint, Point: p} }

func Entrance() Anchor { return Anchor{Kind: AnchorEntrance} }

func Exit() Anchor { return Anchor{Kind: AnchorExit} }

// Resolve turns the anchor into a concrete point on the given floor plan.
// A named anchor the shop does not define is an invalid point.
func (a Anchor) Resolve(f *FloorPlan) (Point, error) {
	switch a.Kind {
	case AnchorPoint:
		return a.Point, nil
	case AnchorEntrance:
		if f.Entrance == nil {
			return Point{}, fmt.Errorf("resolve anchor: shop %d has no entrance: %w", f.ShopID, ErrInvalidPoint)
		}
		return *f.Entrance, nil
	case AnchorExit:
		if f.Exit == nil {
			return Point{}, fmt.Errorf("resolve anchor: shop %d has no exit: %w", f.ShopID, ErrInvalidPoint)
		}
		return *f.Exit, nil
	}
	return Point{}, fmt.Errorf("resolve anchor: unknown kind %d: %w", a.Kind, ErrInvalidPoint)
}

func (a Anchor) String() string {
	if a.Kind == AnchorPoint {
		return a.Point.String()
	}
	return a.Kind.String()
}
