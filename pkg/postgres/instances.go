package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

const instanceColumns = `
	id, stable_id, routine_id, title, scheduled_date, points_value,
	assignment_type, assigned_to, completed_by, status
`

// GetCompletedInstances retrieves completed chore instances scheduled inside
// the inclusive [from, to] range
func (d *DB) GetCompletedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM chore_instance
		WHERE stable_id = $1
		  AND scheduled_date BETWEEN $2 AND $3
		  AND completed_by IS NOT NULL
	`, stableID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed instances: %w", err)
	}
	defer rows.Close()

	return scanInstances(rows)
}

// GetUnassignedInstances retrieves the distributable pool: unassigned chore
// instances scheduled inside the inclusive [from, to] range. Backed by the
// composite index on (scheduled_date, assignment_type).
func (d *DB) GetUnassignedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM chore_instance
		WHERE stable_id = $1
		  AND scheduled_date BETWEEN $2 AND $3
		  AND assignment_type = 'unassigned'
	`, stableID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query unassigned instances: %w", err)
	}
	defer rows.Close()

	return scanInstances(rows)
}

// GetInstancesInRange retrieves all chore instances scheduled inside the
// inclusive [from, to] range regardless of assignment type
func (d *DB) GetInstancesInRange(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM chore_instance
		WHERE stable_id = $1
		  AND scheduled_date BETWEEN $2 AND $3
	`, stableID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query instances: %w", err)
	}
	defer rows.Close()

	return scanInstances(rows)
}

// InsertChoreInstances inserts a batch of chore instance records
func (d *DB) InsertChoreInstances(instances []db.ChoreInstance) error {
	ctx := context.Background()

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, instance := range instances {
		var assignedTo, completedBy *string
		if instance.AssignedTo != "" {
			assignedTo = &instance.AssignedTo
		}
		if instance.CompletedBy != "" {
			completedBy = &instance.CompletedBy
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO chore_instance
				(id, stable_id, routine_id, title, scheduled_date, points_value,
				 assignment_type, assigned_to, completed_by, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, instance.ID, instance.StableID, instance.RoutineID, instance.Title,
			instance.ScheduledDate, instance.PointsValue, instance.AssignmentType,
			assignedTo, completedBy, instance.Status)
		if err != nil {
			return fmt.Errorf("failed to insert chore instance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chore instances: %w", err)
	}
	return nil
}

// AssignInstance marks an instance as auto-assigned to the given member
func (d *DB) AssignInstance(ctx context.Context, instanceID, userID string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE chore_instance
		SET assignment_type = 'auto', assigned_to = $2
		WHERE id = $1 AND assignment_type = 'unassigned'
	`, instanceID, userID)
	if err != nil {
		return fmt.Errorf("failed to assign instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("instance %s is not unassigned", instanceID)
	}
	return nil
}

// scanInstances scans chore instance rows into records
func scanInstances(rows pgx.Rows) ([]db.ChoreInstance, error) {
	var instances []db.ChoreInstance
	for rows.Next() {
		var instance db.ChoreInstance
		var scheduledDate time.Time
		var routineID, assignedTo, completedBy *string
		if err := rows.Scan(&instance.ID, &instance.StableID, &routineID,
			&instance.Title, &scheduledDate, &instance.PointsValue,
			&instance.AssignmentType, &assignedTo, &completedBy, &instance.Status); err != nil {
			return nil, fmt.Errorf("failed to scan chore instance: %w", err)
		}
		instance.ScheduledDate = scheduledDate.Format("2006-01-02")
		if routineID != nil {
			instance.RoutineID = *routineID
		}
		if assignedTo != nil {
			instance.AssignedTo = *assignedTo
		}
		if completedBy != nil {
			instance.CompletedBy = *completedBy
		}
		instances = append(instances, instance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chore instances: %w", err)
	}

	return instances, nil
}
