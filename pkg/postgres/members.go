package postgres

import (
	"context"
	"fmt"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// GetEligibleMembers retrieves the stable's active members
func (d *DB) GetEligibleMembers(ctx context.Context, stableID string) ([]db.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT user_id, stable_id, display_name, status
		FROM member
		WHERE stable_id = $1 AND status = 'active'
	`, stableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		if err := rows.Scan(&m.UserID, &m.StableID, &m.DisplayName, &m.Status); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
