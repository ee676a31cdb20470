package ports

import (
	"context"

	"github.com/google/uuid"
)

// Port: records a computed route against a tracked user activity.
type ActivitySink interface {
	RecordRoute(ctx context.Context, activityID uuid.UUID, waypoints []string, distanceMeters, timeMinutes float64) error
}
