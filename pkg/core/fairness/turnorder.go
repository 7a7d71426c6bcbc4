package fairness

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
)

// ComputeTurnOrder produces a deterministic ordering in which members take
// turns selecting or receiving work, biased toward members with fewer
// historical points. For the quota_based algorithm it also computes the total
// distributable points in the pool and each member's unrounded fair share.
//
// The ordering depends only on the inputs - never on input slice order,
// map iteration order or wall-clock time. Degenerate inputs (no members,
// empty pool, zero total points) produce well-formed zero results, never
// an error.
func ComputeTurnOrder(
	members []model.Member,
	points PointsMap,
	unassigned []model.ChoreInstance,
	algorithm model.Algorithm,
	rangeStart time.Time,
	rangeEnd time.Time,
	logger *zap.Logger,
) TurnOrderResult {
	if len(members) == 0 {
		return TurnOrderResult{
			Turns:     []string{},
			Algorithm: algorithm,
			Metadata:  TurnOrderMetadata{MemberPointsMap: PointsMap{}},
		}
	}

	result := TurnOrderResult{
		Turns:     orderMembers(members, points),
		Algorithm: algorithm,
		Metadata:  TurnOrderMetadata{MemberPointsMap: points},
	}

	switch algorithm {
	case model.AlgorithmPointsBalance:
		// Ordering alone is the output

	case model.AlgorithmQuotaBased:
		pool := FilterDistributablePool(unassigned, rangeStart, rangeEnd)
		result.TotalAvailablePoints = sumPoints(pool)
		result.QuotaPerMember = result.TotalAvailablePoints / float64(len(members))
	}

	if len(result.Turns) != len(members) {
		logger.Error("Turn order cardinality mismatch",
			zap.Int("member_count", len(members)),
			zap.Int("turn_count", len(result.Turns)),
			zap.String("algorithm", string(algorithm)))
	}

	return result
}

// FilterDistributablePool returns the instances eligible for distribution:
// scheduled inside the inclusive [rangeStart, rangeEnd] range AND still
// unassigned. Assignment type and date range are the only criteria - an
// instance's lifecycle status is irrelevant to pool membership. Filtering
// on status here has historically produced either a spuriously empty pool
// or double-counted already-assigned work.
func FilterDistributablePool(instances []model.ChoreInstance, rangeStart, rangeEnd time.Time) []model.ChoreInstance {
	pool := make([]model.ChoreInstance, 0, len(instances))
	for _, instance := range instances {
		if instance.AssignmentType != model.AssignmentUnassigned {
			continue
		}
		if instance.ScheduledDate.Before(rangeStart) || instance.ScheduledDate.After(rangeEnd) {
			continue
		}
		pool = append(pool, instance)
	}
	return pool
}

// orderMembers sorts members ascending by accumulated points, so members
// who are "owed" work take their turn first. Ties are broken by display
// name, then user ID, keeping the order stable across shuffled inputs.
func orderMembers(members []model.Member, points PointsMap) []string {
	sorted := make([]model.Member, len(members))
	copy(sorted, members)

	sort.Slice(sorted, func(i, j int) bool {
		// Coalesce missing keys to zero: the aggregator guarantees
		// completeness, but a member absent from the map must still sort
		// rather than vanish
		pi := points[sorted[i].UserID]
		pj := points[sorted[j].UserID]
		if pi != pj {
			return pi < pj
		}
		if sorted[i].DisplayName != sorted[j].DisplayName {
			return sorted[i].DisplayName < sorted[j].DisplayName
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	turns := make([]string, len(sorted))
	for i, member := range sorted {
		turns[i] = member.UserID
	}
	return turns
}

func sumPoints(instances []model.ChoreInstance) float64 {
	total := 0.0
	for _, instance := range instances {
		total += instance.PointsValue
	}
	return total
}
