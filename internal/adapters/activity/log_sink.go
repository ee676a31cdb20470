package activity

import (
	"context"
	"log"
	"store-route-service/internal/platform/obs"

	"github.com/google/uuid"
)

// LogSink records routes to the process log. It is the sink used when no
// database is configured.
type LogSink struct{}

func (LogSink) RecordRoute(
	ctx context.Context,
	activityID uuid.UUID,
	waypoints []string,
	distanceMeters float64,
	timeMinutes float64,
) error {
	log.Printf(
		"req_id=%s route activity: activity_id=%s waypoints=%q distance_m=%.2f time_min=%.2f",
		obs.RequestID(ctx), activityID, waypoints, distanceMeters, timeMinutes,
	)
	return nil
}
