package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/core/fairness"
	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// ClaimTurnResult contains the outcome of a claim
type ClaimTurnResult struct {
	ProcessID     string
	InstanceID    string
	UserID        string
	NextTurnIndex int
	NextUserID    string
}

// ClaimTurnStore defines the database operations needed for claiming a turn
type ClaimTurnStore interface {
	GetSelectionProcess(ctx context.Context, processID string) (*db.SelectionProcess, []db.SelectionTurn, error)
	GetUnassignedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error)
	AssignInstance(ctx context.Context, instanceID, userID string) error
	AdvanceSelectionTurn(ctx context.Context, processID string, nextIndex int) error
}

// ClaimNextTurn lets the member whose turn is next claim an unassigned chore
// instance from the process's distributable pool. The claim is rejected when
// it is not the member's turn or the instance is not in the pool. On success
// the instance is assigned and the process advances to the next turn,
// wrapping around so members keep cycling until the pool is exhausted.
func ClaimNextTurn(
	ctx context.Context,
	database ClaimTurnStore,
	logger *zap.Logger,
	processID string,
	userID string,
	instanceID string,
) (*ClaimTurnResult, error) {
	logger.Debug("Claiming turn",
		zap.String("process_id", processID),
		zap.String("user_id", userID),
		zap.String("instance_id", instanceID))

	process, turns, err := database.GetSelectionProcess(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch selection process: %w", err)
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("selection process %s has no turns", processID)
	}
	if process.CurrentTurnIndex < 0 || process.CurrentTurnIndex >= len(turns) {
		return nil, fmt.Errorf("selection process %s has invalid turn index %d", processID, process.CurrentTurnIndex)
	}

	currentTurn := turns[process.CurrentTurnIndex]
	if currentTurn.UserID != userID {
		return nil, fmt.Errorf("it is not the turn of member %s (current turn: %s)", userID, currentTurn.UserID)
	}

	rangeStart, err := time.Parse("2006-01-02", process.RangeStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse process range start: %w", err)
	}
	rangeEnd, err := time.Parse("2006-01-02", process.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse process range end: %w", err)
	}

	unassignedRecords, err := database.GetUnassignedInstances(ctx, process.StableID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned instances: %w", err)
	}
	unassigned, err := convertToModelInstances(unassignedRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert unassigned instances: %w", err)
	}

	pool := fairness.FilterDistributablePool(unassigned, rangeStart, rangeEnd)
	inPool := false
	for _, instance := range pool {
		if instance.ID == instanceID {
			inPool = true
			break
		}
	}
	if !inPool {
		return nil, fmt.Errorf("instance %s is not in the distributable pool of process %s", instanceID, processID)
	}

	if err := database.AssignInstance(ctx, instanceID, userID); err != nil {
		return nil, fmt.Errorf("failed to assign instance: %w", err)
	}

	nextIndex := (process.CurrentTurnIndex + 1) % len(turns)
	if err := database.AdvanceSelectionTurn(ctx, processID, nextIndex); err != nil {
		return nil, fmt.Errorf("failed to advance selection turn: %w", err)
	}

	logger.Info("Turn claimed",
		zap.String("process_id", processID),
		zap.String("user_id", userID),
		zap.String("instance_id", instanceID),
		zap.Int("next_turn_index", nextIndex))

	return &ClaimTurnResult{
		ProcessID:     processID,
		InstanceID:    instanceID,
		UserID:        userID,
		NextTurnIndex: nextIndex,
		NextUserID:    turns[nextIndex].UserID,
	}, nil
}
