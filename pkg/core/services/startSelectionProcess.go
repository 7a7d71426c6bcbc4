package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/internal/config"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/fairness"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// StartSelectionParams contains the caller-supplied inputs for a selection process
type StartSelectionParams struct {
	Algorithm  model.Algorithm
	RangeStart time.Time
	RangeEnd   time.Time
	DryRun     bool
}

// StartSelectionResult contains the computed selection process
type StartSelectionResult struct {
	ProcessID   string
	StableID    string
	MemberCount int
	PoolSize    int
	TurnOrder   fairness.TurnOrderResult
	Members     map[string]model.Member // keyed by user ID, for display
}

// StartSelectionStore defines the database operations needed for starting a
// selection process
type StartSelectionStore interface {
	GetEligibleMembers(ctx context.Context, stableID string) ([]db.Member, error)
	GetCompletedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error)
	GetUnassignedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error)
	InsertSelectionProcess(process *db.SelectionProcess, turns []db.SelectionTurn) error
}

// StartSelectionProcess computes a fair turn order for the stable's
// unassigned chore instances in the target date range and persists it as a
// selection process. Historical points are aggregated over the lookback
// window ending the day before the target range starts.
// If DryRun is set, the computed result is returned without being saved.
func StartSelectionProcess(
	ctx context.Context,
	database StartSelectionStore,
	cfg *config.Config,
	logger *zap.Logger,
	params StartSelectionParams,
) (*StartSelectionResult, error) {
	if !params.Algorithm.IsValid() {
		return nil, fmt.Errorf("unknown turn order algorithm %q", params.Algorithm)
	}
	if params.RangeEnd.Before(params.RangeStart) {
		return nil, fmt.Errorf("range end %s is before range start %s",
			params.RangeEnd.Format("2006-01-02"), params.RangeStart.Format("2006-01-02"))
	}

	logger.Debug("Starting selection process",
		zap.String("stable_id", cfg.StableID),
		zap.String("algorithm", string(params.Algorithm)),
		zap.Bool("dry_run", params.DryRun))

	// Step 1: DB query - Fetch eligible members
	logger.Debug("Fetching eligible members")
	memberRecords, err := database.GetEligibleMembers(ctx, cfg.StableID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligible members: %w", err)
	}
	logger.Debug("Found eligible members", zap.Int("count", len(memberRecords)))

	members := convertToModelMembers(memberRecords)

	// Step 2: DB query - Fetch completed instances in the lookback window
	lookbackEnd := params.RangeStart.AddDate(0, 0, -1)
	lookbackStart := params.RangeStart.AddDate(0, 0, -cfg.LookbackDays)
	logger.Debug("Fetching completed instances",
		zap.String("lookback_start", lookbackStart.Format("2006-01-02")),
		zap.String("lookback_end", lookbackEnd.Format("2006-01-02")))

	completedRecords, err := database.GetCompletedInstances(ctx, cfg.StableID, lookbackStart, lookbackEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completed instances: %w", err)
	}
	logger.Debug("Found completed instances", zap.Int("count", len(completedRecords)))

	completed, err := convertToModelInstances(completedRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert completed instances: %w", err)
	}

	// Step 3: DB query - Fetch the unassigned pool for the target range
	logger.Debug("Fetching unassigned instances",
		zap.String("range_start", params.RangeStart.Format("2006-01-02")),
		zap.String("range_end", params.RangeEnd.Format("2006-01-02")))

	unassignedRecords, err := database.GetUnassignedInstances(ctx, cfg.StableID, params.RangeStart, params.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned instances: %w", err)
	}
	logger.Debug("Found unassigned instances", zap.Int("count", len(unassignedRecords)))

	unassigned, err := convertToModelInstances(unassignedRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert unassigned instances: %w", err)
	}

	// Step 4: Aggregate historical points and compute the turn order
	logger.Info("Computing turn order",
		zap.String("algorithm", string(params.Algorithm)),
		zap.Int("members", len(members)),
		zap.Int("unassigned", len(unassigned)))

	points := fairness.AggregatePoints(members, lookbackStart, lookbackEnd, completed, logger)
	turnOrder := fairness.ComputeTurnOrder(
		members,
		points,
		unassigned,
		params.Algorithm,
		params.RangeStart,
		params.RangeEnd,
		logger,
	)

	logger.Info("Turn order computed",
		zap.Int("turns", len(turnOrder.Turns)),
		zap.Float64("total_available_points", turnOrder.TotalAvailablePoints),
		zap.Float64("quota_per_member", turnOrder.QuotaPerMember))

	result := &StartSelectionResult{
		StableID:    cfg.StableID,
		MemberCount: len(members),
		PoolSize:    len(fairness.FilterDistributablePool(unassigned, params.RangeStart, params.RangeEnd)),
		TurnOrder:   turnOrder,
		Members:     membersByID(members),
	}

	if params.DryRun {
		logger.Info("Dry run mode - selection process not saved")
		return result, nil
	}

	// Step 5: Persist the process with its ordered turns
	process := &db.SelectionProcess{
		ID:                   uuid.New().String(),
		StableID:             cfg.StableID,
		Algorithm:            string(params.Algorithm),
		RangeStart:           params.RangeStart.Format("2006-01-02"),
		RangeEnd:             params.RangeEnd.Format("2006-01-02"),
		TotalAvailablePoints: turnOrder.TotalAvailablePoints,
		QuotaPerMember:       turnOrder.QuotaPerMember,
		CurrentTurnIndex:     0,
	}

	turns := make([]db.SelectionTurn, len(turnOrder.Turns))
	for i, userID := range turnOrder.Turns {
		turns[i] = db.SelectionTurn{
			ID:               uuid.New().String(),
			ProcessID:        process.ID,
			Position:         i,
			UserID:           userID,
			HistoricalPoints: points[userID],
		}
	}

	if err := database.InsertSelectionProcess(process, turns); err != nil {
		return nil, fmt.Errorf("failed to save selection process: %w", err)
	}
	logger.Info("Selection process saved",
		zap.String("process_id", process.ID),
		zap.Int("turns", len(turns)))

	result.ProcessID = process.ID
	return result, nil
}
