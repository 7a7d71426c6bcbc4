package postgres

import (
	"context"
	"fmt"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// GetRoutineDefinitions retrieves the stable's routine definitions
func (d *DB) GetRoutineDefinitions(ctx context.Context, stableID string) ([]db.RoutineDefinition, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, stable_id, title, rrule, points_value, active
		FROM routine_definition
		WHERE stable_id = $1
	`, stableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query routine definitions: %w", err)
	}
	defer rows.Close()

	var routines []db.RoutineDefinition
	for rows.Next() {
		var r db.RoutineDefinition
		if err := rows.Scan(&r.ID, &r.StableID, &r.Title, &r.RRule, &r.PointsValue, &r.Active); err != nil {
			return nil, fmt.Errorf("failed to scan routine definition: %w", err)
		}
		routines = append(routines, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routine definitions: %w", err)
	}

	return routines, nil
}

// InsertRoutineDefinition inserts a new routine definition record
func (d *DB) InsertRoutineDefinition(routine *db.RoutineDefinition) error {
	_, err := d.pool.Exec(context.Background(), `
		INSERT INTO routine_definition (id, stable_id, title, rrule, points_value, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, routine.ID, routine.StableID, routine.Title, routine.RRule, routine.PointsValue, routine.Active)
	if err != nil {
		return fmt.Errorf("failed to insert routine definition: %w", err)
	}
	return nil
}
