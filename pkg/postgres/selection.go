package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// InsertSelectionProcess inserts a selection process with its ordered turns
// in a single transaction
func (d *DB) InsertSelectionProcess(process *db.SelectionProcess, turns []db.SelectionTurn) error {
	ctx := context.Background()

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO selection_process
			(id, stable_id, algorithm, range_start, range_end,
			 total_available_points, quota_per_member, current_turn_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, process.ID, process.StableID, process.Algorithm, process.RangeStart,
		process.RangeEnd, process.TotalAvailablePoints, process.QuotaPerMember,
		process.CurrentTurnIndex)
	if err != nil {
		return fmt.Errorf("failed to insert selection process: %w", err)
	}

	for _, turn := range turns {
		_, err := tx.Exec(ctx, `
			INSERT INTO selection_turn (id, process_id, position, user_id, historical_points)
			VALUES ($1, $2, $3, $4, $5)
		`, turn.ID, turn.ProcessID, turn.Position, turn.UserID, turn.HistoricalPoints)
		if err != nil {
			return fmt.Errorf("failed to insert selection turn: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit selection process: %w", err)
	}
	return nil
}

// GetSelectionProcess retrieves a selection process and its turns by ID
func (d *DB) GetSelectionProcess(ctx context.Context, processID string) (*db.SelectionProcess, []db.SelectionTurn, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, stable_id, algorithm, range_start, range_end,
		       total_available_points, quota_per_member, current_turn_index
		FROM selection_process
		WHERE id = $1
	`, processID)

	return d.scanProcessWithTurns(ctx, row)
}

// GetLatestSelectionProcess retrieves the stable's most recently created
// selection process and its turns. Returns nil without error when the stable
// has no processes.
func (d *DB) GetLatestSelectionProcess(ctx context.Context, stableID string) (*db.SelectionProcess, []db.SelectionTurn, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, stable_id, algorithm, range_start, range_end,
		       total_available_points, quota_per_member, current_turn_index
		FROM selection_process
		WHERE stable_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, stableID)

	process, turns, err := d.scanProcessWithTurns(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	return process, turns, err
}

// AdvanceSelectionTurn moves a selection process to the given turn index
func (d *DB) AdvanceSelectionTurn(ctx context.Context, processID string, nextIndex int) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE selection_process SET current_turn_index = $2 WHERE id = $1
	`, processID, nextIndex)
	if err != nil {
		return fmt.Errorf("failed to advance selection turn: %w", err)
	}
	return nil
}

func (d *DB) scanProcessWithTurns(ctx context.Context, row pgx.Row) (*db.SelectionProcess, []db.SelectionTurn, error) {
	var p db.SelectionProcess
	var rangeStart, rangeEnd time.Time
	if err := row.Scan(&p.ID, &p.StableID, &p.Algorithm, &rangeStart, &rangeEnd,
		&p.TotalAvailablePoints, &p.QuotaPerMember, &p.CurrentTurnIndex); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to scan selection process: %w", err)
	}
	p.RangeStart = rangeStart.Format("2006-01-02")
	p.RangeEnd = rangeEnd.Format("2006-01-02")

	rows, err := d.pool.Query(ctx, `
		SELECT id, process_id, position, user_id, historical_points
		FROM selection_turn
		WHERE process_id = $1
		ORDER BY position
	`, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query selection turns: %w", err)
	}
	defer rows.Close()

	var turns []db.SelectionTurn
	for rows.Next() {
		var t db.SelectionTurn
		if err := rows.Scan(&t.ID, &t.ProcessID, &t.Position, &t.UserID, &t.HistoricalPoints); err != nil {
			return nil, nil, fmt.Errorf("failed to scan selection turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating selection turns: %w", err)
	}

	return &p, turns, nil
}
