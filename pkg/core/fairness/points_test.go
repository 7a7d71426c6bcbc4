package fairness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func completedInstance(completedBy string, scheduled string, points float64) model.ChoreInstance {
	return model.ChoreInstance{
		ID:             "instance-" + completedBy + "-" + scheduled,
		ScheduledDate:  date(scheduled),
		PointsValue:    points,
		AssignmentType: model.AssignmentAuto,
		CompletedBy:    completedBy,
		Status:         model.StatusCompleted,
	}
}

func TestAggregatePoints_CompleteKeySet(t *testing.T) {
	members := []model.Member{
		{UserID: "user-a", DisplayName: "Anna"},
		{UserID: "user-b", DisplayName: "Bertil"},
		{UserID: "user-c", DisplayName: "Cecilia"},
	}
	completed := []model.ChoreInstance{
		completedInstance("user-b", "2026-02-10", 5),
	}

	points := AggregatePoints(members, date("2026-01-01"), date("2026-03-31"), completed, zap.NewNop())

	// Every member appears, however sparse the history
	require.Len(t, points, 3)
	assert.Contains(t, points, "user-a")
	assert.Contains(t, points, "user-b")
	assert.Contains(t, points, "user-c")
}

func TestAggregatePoints_ZeroPointsMembersIncluded(t *testing.T) {
	members := []model.Member{
		{UserID: "user-a", DisplayName: "Anna"},
		{UserID: "user-b", DisplayName: "Bertil"},
	}
	completed := []model.ChoreInstance{
		completedInstance("user-b", "2026-02-10", 3),
		completedInstance("user-b", "2026-02-17", 2),
	}

	points := AggregatePoints(members, date("2026-01-01"), date("2026-03-31"), completed, zap.NewNop())

	assert.Equal(t, 0.0, points["user-a"])
	assert.Equal(t, 5.0, points["user-b"])
}

func TestAggregatePoints_IgnoresOutsideMembers(t *testing.T) {
	members := []model.Member{
		{UserID: "user-a", DisplayName: "Anna"},
	}
	completed := []model.ChoreInstance{
		completedInstance("user-a", "2026-02-10", 4),
		completedInstance("former-member", "2026-02-11", 9),
	}

	points := AggregatePoints(members, date("2026-01-01"), date("2026-03-31"), completed, zap.NewNop())

	require.Len(t, points, 1)
	assert.Equal(t, 4.0, points["user-a"])
	assert.NotContains(t, points, "former-member")
}

func TestAggregatePoints_LookbackWindowIsInclusive(t *testing.T) {
	members := []model.Member{
		{UserID: "user-a", DisplayName: "Anna"},
	}
	completed := []model.ChoreInstance{
		completedInstance("user-a", "2025-12-31", 1), // before window
		completedInstance("user-a", "2026-01-01", 2), // window start
		completedInstance("user-a", "2026-03-31", 3), // window end
		completedInstance("user-a", "2026-04-01", 4), // after window
	}

	points := AggregatePoints(members, date("2026-01-01"), date("2026-03-31"), completed, zap.NewNop())

	assert.Equal(t, 5.0, points["user-a"])
}

func TestAggregatePoints_EmptyMembers(t *testing.T) {
	completed := []model.ChoreInstance{
		completedInstance("user-a", "2026-02-10", 4),
	}

	points := AggregatePoints(nil, date("2026-01-01"), date("2026-03-31"), completed, zap.NewNop())

	assert.Empty(t, points)
}

func TestAggregatePoints_DuplicateMemberIDsLogged(t *testing.T) {
	// Duplicate user IDs collapse to one map entry; the aggregator logs the
	// cardinality mismatch but still returns its best-effort result
	members := []model.Member{
		{UserID: "user-a", DisplayName: "Anna"},
		{UserID: "user-a", DisplayName: "Anna (duplicate)"},
	}

	points := AggregatePoints(members, date("2026-01-01"), date("2026-03-31"), nil, zap.NewNop())

	assert.Len(t, points, 1)
	assert.Equal(t, 0.0, points["user-a"])
}
