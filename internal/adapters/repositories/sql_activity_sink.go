package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"store-route-service/internal/platform/db"
	"store-route-service/internal/platform/obs"
	"time"

	"github.com/google/uuid"
)

// SQLActivitySink implements the ActivitySink port by appending one row per
// computed route to route_activities.
type SQLActivitySink struct {
	DB     *sql.DB
	Driver string
	now    func() time.Time
}

func NewSQLActivitySink(conn *sql.DB, driver string) *SQLActivitySink {
	return &SQLActivitySink{DB: conn, Driver: driver, now: time.Now}
}

func (s *SQLActivitySink) RecordRoute(
	ctx context.Context,
	activityID uuid.UUID,
	waypoints []string,
	distanceMeters float64,
	timeMinutes float64,
) (err error) {
	defer obs.Time(ctx, "activity.sink.RecordRoute")(&err)

	if s.DB == nil {
		return errors.New("sql activity sink: DB is nil")
	}
	if activityID == uuid.Nil {
		return errors.New("record route: activity id must not be nil")
	}

	if waypoints == nil {
		waypoints = []string{}
	}
	encoded, err := json.Marshal(waypoints)
	if err != nil {
		return fmt.Errorf("record route: encode waypoints: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, db.Rebind(s.Driver, `
	INSERT INTO route_activities (
		record_id, activity_id, waypoints, distance_meters, time_minutes, recorded_at
	)
	VALUES ($1, $2, $3, $4, $5, $6);
	`),
		uuid.NewString(), activityID.String(), string(encoded),
		distanceMeters, timeMinutes, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record route: insert activity_id=%s: %w", activityID, err)
	}

	return nil
}
