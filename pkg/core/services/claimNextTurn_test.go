package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// mockClaimTurnStore implements ClaimTurnStore for testing
type mockClaimTurnStore struct {
	process    *db.SelectionProcess
	turns      []db.SelectionTurn
	unassigned []db.ChoreInstance

	assignedInstanceID string
	assignedUserID     string
	advancedTo         int
	advanced           bool
}

func (m *mockClaimTurnStore) GetSelectionProcess(ctx context.Context, processID string) (*db.SelectionProcess, []db.SelectionTurn, error) {
	return m.process, m.turns, nil
}

func (m *mockClaimTurnStore) GetUnassignedInstances(ctx context.Context, stableID string, from, to time.Time) ([]db.ChoreInstance, error) {
	return m.unassigned, nil
}

func (m *mockClaimTurnStore) AssignInstance(ctx context.Context, instanceID, userID string) error {
	m.assignedInstanceID = instanceID
	m.assignedUserID = userID
	return nil
}

func (m *mockClaimTurnStore) AdvanceSelectionTurn(ctx context.Context, processID string, nextIndex int) error {
	m.advanced = true
	m.advancedTo = nextIndex
	return nil
}

func claimTestStore() *mockClaimTurnStore {
	return &mockClaimTurnStore{
		process: &db.SelectionProcess{
			ID:               "process-1",
			StableID:         "stable-1",
			Algorithm:        "quota_based",
			RangeStart:       "2026-05-01",
			RangeEnd:         "2026-05-31",
			CurrentTurnIndex: 0,
		},
		turns: []db.SelectionTurn{
			{ID: "t1", ProcessID: "process-1", Position: 0, UserID: "user-a"},
			{ID: "t2", ProcessID: "process-1", Position: 1, UserID: "user-c"},
			{ID: "t3", ProcessID: "process-1", Position: 2, UserID: "user-b"},
		},
		unassigned: []db.ChoreInstance{
			{ID: "u1", StableID: "stable-1", ScheduledDate: "2026-05-02", PointsValue: 4, AssignmentType: "unassigned", Status: "scheduled"},
		},
	}
}

func TestClaimNextTurn_Success(t *testing.T) {
	store := claimTestStore()

	result, err := ClaimNextTurn(context.Background(), store, zap.NewNop(), "process-1", "user-a", "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", store.assignedInstanceID)
	assert.Equal(t, "user-a", store.assignedUserID)
	assert.True(t, store.advanced)
	assert.Equal(t, 1, store.advancedTo)
	assert.Equal(t, "user-c", result.NextUserID)
}

func TestClaimNextTurn_NotYourTurn(t *testing.T) {
	store := claimTestStore()

	_, err := ClaimNextTurn(context.Background(), store, zap.NewNop(), "process-1", "user-b", "u1")
	assert.ErrorContains(t, err, "not the turn of member user-b")
	assert.Empty(t, store.assignedInstanceID)
	assert.False(t, store.advanced)
}

func TestClaimNextTurn_InstanceNotInPool(t *testing.T) {
	store := claimTestStore()
	// Already-assigned instances are never claimable, whatever their status
	store.unassigned = []db.ChoreInstance{
		{ID: "u1", StableID: "stable-1", ScheduledDate: "2026-05-02", PointsValue: 4, AssignmentType: "manual", Status: "scheduled"},
	}

	_, err := ClaimNextTurn(context.Background(), store, zap.NewNop(), "process-1", "user-a", "u1")
	assert.ErrorContains(t, err, "not in the distributable pool")
	assert.False(t, store.advanced)
}

func TestClaimNextTurn_WrapsAroundToFirstTurn(t *testing.T) {
	store := claimTestStore()
	store.process.CurrentTurnIndex = 2

	result, err := ClaimNextTurn(context.Background(), store, zap.NewNop(), "process-1", "user-b", "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.NextTurnIndex)
	assert.Equal(t, "user-a", result.NextUserID)
}

func TestClaimNextTurn_NoTurns(t *testing.T) {
	store := claimTestStore()
	store.turns = nil

	_, err := ClaimNextTurn(context.Background(), store, zap.NewNop(), "process-1", "user-a", "u1")
	assert.ErrorContains(t, err, "has no turns")
}
