package model

import "time"

// AssignmentType describes how a chore instance came to be assigned (or not)
type AssignmentType string

const (
	AssignmentUnassigned AssignmentType = "unassigned"
	AssignmentAuto       AssignmentType = "auto"
	AssignmentManual     AssignmentType = "manual"
	AssignmentSelfBooked AssignmentType = "selfBooked"
	AssignmentSelf       AssignmentType = "self"
)

func (a AssignmentType) IsValid() bool {
	switch a {
	case AssignmentUnassigned, AssignmentAuto, AssignmentManual, AssignmentSelfBooked, AssignmentSelf:
		return true
	}
	return false
}

// InstanceStatus describes the lifecycle state of a chore instance.
// Status never determines whether an instance belongs in the distributable
// pool - that is decided by AssignmentType and date range alone.
type InstanceStatus string

const (
	StatusScheduled  InstanceStatus = "scheduled"
	StatusStarted    InstanceStatus = "started"
	StatusInProgress InstanceStatus = "in_progress"
	StatusCompleted  InstanceStatus = "completed"
	StatusCancelled  InstanceStatus = "cancelled"
)

func (s InstanceStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Algorithm selects the turn-order variant used by a selection process
type Algorithm string

const (
	AlgorithmPointsBalance Algorithm = "points_balance"
	AlgorithmQuotaBased    Algorithm = "quota_based"
)

func (a Algorithm) IsValid() bool {
	return a == AlgorithmPointsBalance || a == AlgorithmQuotaBased
}

// Member represents one eligible participant in a stable's selection process.
// DisplayName is used only as a tie-break key when sorting, never for identity.
type Member struct {
	UserID      string
	DisplayName string
}

// ChoreInstance represents one schedulable unit of work, either a completed
// historical instance or an unassigned instance in the distributable pool
type ChoreInstance struct {
	ID             string
	StableID       string
	RoutineID      string
	Title          string
	ScheduledDate  time.Time
	PointsValue    float64
	AssignmentType AssignmentType
	AssignedTo     string // empty unless assigned
	CompletedBy    string // set only on completed historical instances
	Status         InstanceStatus
}
