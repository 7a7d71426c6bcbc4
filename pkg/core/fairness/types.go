package fairness

import "github.com/maxton76/stall-bokning-sub001/pkg/core/model"

// PointsMap maps a member's user ID to their accumulated workload points.
// A well-formed map carries exactly one entry per member of the input member
// set, including explicit zeros for members with no scored history.
type PointsMap map[string]float64

// TurnOrderResult is the computed output of a turn-order computation.
// It is produced fresh on every invocation; the caller owns persistence.
type TurnOrderResult struct {
	// Turns is the ordered sequence of member user IDs, one entry per input
	// member, members with fewer historical points first
	Turns []string

	// Algorithm is the variant that produced this result
	Algorithm model.Algorithm

	// TotalAvailablePoints is the sum of points over the distributable pool.
	// Populated for the quota_based algorithm only.
	TotalAvailablePoints float64

	// QuotaPerMember is TotalAvailablePoints divided by the member count,
	// unrounded. Populated for the quota_based algorithm only.
	QuotaPerMember float64

	Metadata TurnOrderMetadata
}

// TurnOrderMetadata carries the inputs the ordering was derived from
type TurnOrderMetadata struct {
	MemberPointsMap PointsMap
}
