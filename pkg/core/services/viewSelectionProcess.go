package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// ViewSelectionResult contains a selection process and its ordered turns
type ViewSelectionResult struct {
	Process *db.SelectionProcess
	Turns   []db.SelectionTurn
}

// ViewSelectionProcess fetches a selection process with its turn order.
// An empty processID resolves to the stable's latest process.
func ViewSelectionProcess(
	ctx context.Context,
	database db.SelectionStore,
	logger *zap.Logger,
	stableID string,
	processID string,
) (*ViewSelectionResult, error) {
	var (
		process *db.SelectionProcess
		turns   []db.SelectionTurn
		err     error
	)

	if processID != "" {
		logger.Debug("Fetching selection process", zap.String("process_id", processID))
		process, turns, err = database.GetSelectionProcess(ctx, processID)
	} else {
		logger.Debug("Fetching latest selection process", zap.String("stable_id", stableID))
		process, turns, err = database.GetLatestSelectionProcess(ctx, stableID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch selection process: %w", err)
	}
	if process == nil {
		return nil, fmt.Errorf("no selection process found")
	}

	logger.Debug("Found selection process",
		zap.String("process_id", process.ID),
		zap.String("algorithm", process.Algorithm),
		zap.Int("turns", len(turns)))

	return &ViewSelectionResult{
		Process: process,
		Turns:   turns,
	}, nil
}
