package fairness

import (
	"time"

	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
)

// AggregatePoints scores each member by points earned from completed chore
// instances inside the inclusive lookback window [lookbackStart, lookbackEnd].
//
// Every member of the input set appears in the returned map, initialised to
// an explicit zero before any history is scored. Members must never be left
// absent because their history happens to be sparse - a missing key here is
// what silently drops a member from the downstream turn order.
//
// Completed instances credited to someone outside the member set are ignored.
// An empty member set returns an empty map without error.
func AggregatePoints(
	members []model.Member,
	lookbackStart time.Time,
	lookbackEnd time.Time,
	completed []model.ChoreInstance,
	logger *zap.Logger,
) PointsMap {
	points := make(PointsMap, len(members))

	// Zero-fill first, before touching any history
	for _, member := range members {
		points[member.UserID] = 0
	}

	for _, instance := range completed {
		if instance.CompletedBy == "" {
			continue
		}
		if instance.ScheduledDate.Before(lookbackStart) || instance.ScheduledDate.After(lookbackEnd) {
			continue
		}
		if _, eligible := points[instance.CompletedBy]; !eligible {
			continue
		}
		points[instance.CompletedBy] += instance.PointsValue
	}

	// Cardinality check: one entry per member. A mismatch means duplicate
	// user IDs in the input, which is an upstream data inconsistency rather
	// than a reason to fail this computation.
	if len(points) != len(members) {
		logger.Error("Points map cardinality mismatch",
			zap.Int("member_count", len(members)),
			zap.Int("points_map_size", len(points)))
	}

	return points
}
