package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/internal/config"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/recurrence"
	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// GenerateInstancesResult contains the generated chore instances
type GenerateInstancesResult struct {
	RoutineCount int
	Generated    []db.ChoreInstance
	Skipped      int // occurrences that already had an instance
}

// GenerateInstancesStore defines the database operations needed for
// generating chore instances from routine definitions
type GenerateInstancesStore interface {
	GetRoutineDefinitions(ctx context.Context, stableID string) ([]db.RoutineDefinition, error)
	GetInstancesInRange(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error)
	InsertChoreInstances(instances []db.ChoreInstance) error
}

// GenerateInstances expands the stable's active routine definitions into
// unassigned chore instances for the target date range. Dates that already
// have an instance for the same routine are skipped, so re-running for an
// unchanged routine set inserts nothing.
// If dryRun is true, instances are not saved to the database.
func GenerateInstances(
	ctx context.Context,
	database GenerateInstancesStore,
	cfg *config.Config,
	logger *zap.Logger,
	rangeStart time.Time,
	rangeEnd time.Time,
	dryRun bool,
) (*GenerateInstancesResult, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("range end %s is before range start %s",
			rangeEnd.Format("2006-01-02"), rangeStart.Format("2006-01-02"))
	}

	logger.Debug("Generating chore instances",
		zap.String("stable_id", cfg.StableID),
		zap.String("range_start", rangeStart.Format("2006-01-02")),
		zap.String("range_end", rangeEnd.Format("2006-01-02")),
		zap.Bool("dry_run", dryRun))

	// Step 1: DB query - Fetch routine definitions
	routines, err := database.GetRoutineDefinitions(ctx, cfg.StableID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch routine definitions: %w", err)
	}
	logger.Debug("Found routine definitions", zap.Int("count", len(routines)))

	// Step 2: DB query - Fetch existing instances for dedupe
	existing, err := database.GetInstancesInRange(ctx, cfg.StableID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing instances: %w", err)
	}
	logger.Debug("Found existing instances", zap.Int("count", len(existing)))

	existingKeys := make(map[string]bool, len(existing))
	for _, instance := range existing {
		existingKeys[instance.RoutineID+"|"+instance.ScheduledDate] = true
	}

	// Step 3: Expand each active routine over the range
	result := &GenerateInstancesResult{}
	for _, routine := range routines {
		if !routine.Active {
			continue
		}
		result.RoutineCount++

		occurrences, err := recurrence.ExpandRRule(routine.RRule, rangeStart, rangeEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand routine %s: %w", routine.ID, err)
		}
		logger.Debug("Expanded routine",
			zap.String("routine_id", routine.ID),
			zap.String("title", routine.Title),
			zap.Int("occurrences", len(occurrences)))

		for _, occurrence := range occurrences {
			dateStr := occurrence.Format("2006-01-02")
			if existingKeys[routine.ID+"|"+dateStr] {
				result.Skipped++
				continue
			}

			pointsValue, err := resolvePointsValue(routine, occurrence, rangeStart, rangeEnd, cfg.RoutineOverrides)
			if err != nil {
				return nil, err
			}

			result.Generated = append(result.Generated, db.ChoreInstance{
				ID:             uuid.New().String(),
				StableID:       cfg.StableID,
				RoutineID:      routine.ID,
				Title:          routine.Title,
				ScheduledDate:  dateStr,
				PointsValue:    pointsValue,
				AssignmentType: string(model.AssignmentUnassigned),
				Status:         string(model.StatusScheduled),
			})
		}
	}

	logger.Info("Instance generation computed",
		zap.Int("routines", result.RoutineCount),
		zap.Int("generated", len(result.Generated)),
		zap.Int("skipped", result.Skipped))

	if dryRun {
		logger.Info("Dry run mode - instances not saved")
		return result, nil
	}

	if len(result.Generated) > 0 {
		if err := database.InsertChoreInstances(result.Generated); err != nil {
			return nil, fmt.Errorf("failed to save chore instances: %w", err)
		}
		logger.Info("Chore instances saved", zap.Int("count", len(result.Generated)))
	}

	return result, nil
}

// resolvePointsValue picks the points value for one occurrence, applying the
// first matching override (e.g. heavier weekend points) over the routine's
// own value
func resolvePointsValue(
	routine db.RoutineDefinition,
	occurrence time.Time,
	rangeStart time.Time,
	rangeEnd time.Time,
	overrides []config.RoutineOverride,
) (float64, error) {
	for i, override := range overrides {
		if override.PointsValue == nil {
			continue
		}
		matches, err := recurrence.Matches(override.RRule, occurrence, rangeStart, rangeEnd)
		if err != nil {
			return 0, fmt.Errorf("failed to evaluate routine override %d: %w", i, err)
		}
		if matches {
			return *override.PointsValue, nil
		}
	}
	return routine.PointsValue, nil
}
