package db

import (
	"context"
	"time"
)

// SelectionStore defines the interface for selection process reads
type SelectionStore interface {
	GetSelectionProcess(ctx context.Context, processID string) (*SelectionProcess, []SelectionTurn, error)
	GetLatestSelectionProcess(ctx context.Context, stableID string) (*SelectionProcess, []SelectionTurn, error)
}

// Database defines the interface for all database operations implemented by
// the postgres-backed store
type Database interface {
	GetEligibleMembers(ctx context.Context, stableID string) ([]Member, error)
	GetRoutineDefinitions(ctx context.Context, stableID string) ([]RoutineDefinition, error)
	GetCompletedInstances(ctx context.Context, stableID string, from, to time.Time) ([]ChoreInstance, error)
	GetUnassignedInstances(ctx context.Context, stableID string, from, to time.Time) ([]ChoreInstance, error)
	GetInstancesInRange(ctx context.Context, stableID string, from, to time.Time) ([]ChoreInstance, error)
	InsertChoreInstances(instances []ChoreInstance) error
	AssignInstance(ctx context.Context, instanceID, userID string) error
	InsertSelectionProcess(process *SelectionProcess, turns []SelectionTurn) error
	GetSelectionProcess(ctx context.Context, processID string) (*SelectionProcess, []SelectionTurn, error)
	GetLatestSelectionProcess(ctx context.Context, stableID string) (*SelectionProcess, []SelectionTurn, error)
	AdvanceSelectionTurn(ctx context.Context, processID string, nextIndex int) error
}
