package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// mockSelectionStore implements db.SelectionStore for testing
type mockSelectionStore struct {
	byID    map[string]*db.SelectionProcess
	latest  *db.SelectionProcess
	turns   []db.SelectionTurn
	lastArg string
}

func (m *mockSelectionStore) GetSelectionProcess(ctx context.Context, processID string) (*db.SelectionProcess, []db.SelectionTurn, error) {
	m.lastArg = processID
	return m.byID[processID], m.turns, nil
}

func (m *mockSelectionStore) GetLatestSelectionProcess(ctx context.Context, stableID string) (*db.SelectionProcess, []db.SelectionTurn, error) {
	m.lastArg = stableID
	return m.latest, m.turns, nil
}

func TestViewSelectionProcess_ByID(t *testing.T) {
	process := &db.SelectionProcess{ID: "process-1", StableID: "stable-1", Algorithm: "points_balance"}
	store := &mockSelectionStore{
		byID:  map[string]*db.SelectionProcess{"process-1": process},
		turns: []db.SelectionTurn{{ID: "t1", ProcessID: "process-1", Position: 0, UserID: "user-a"}},
	}

	result, err := ViewSelectionProcess(context.Background(), store, zap.NewNop(), "stable-1", "process-1")
	require.NoError(t, err)

	assert.Equal(t, process, result.Process)
	assert.Len(t, result.Turns, 1)
	assert.Equal(t, "process-1", store.lastArg)
}

func TestViewSelectionProcess_DefaultsToLatest(t *testing.T) {
	latest := &db.SelectionProcess{ID: "process-2", StableID: "stable-1", Algorithm: "quota_based"}
	store := &mockSelectionStore{latest: latest}

	result, err := ViewSelectionProcess(context.Background(), store, zap.NewNop(), "stable-1", "")
	require.NoError(t, err)

	assert.Equal(t, latest, result.Process)
	assert.Equal(t, "stable-1", store.lastArg)
}

func TestViewSelectionProcess_NotFound(t *testing.T) {
	store := &mockSelectionStore{}

	_, err := ViewSelectionProcess(context.Background(), store, zap.NewNop(), "stable-1", "")
	assert.ErrorContains(t, err, "no selection process found")
}
