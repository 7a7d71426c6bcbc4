package services

import (
	"fmt"
	"time"

	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
	"github.com/maxton76/stall-bokning-sub001/pkg/db"
)

// convertToModelMembers converts db member records to domain members
func convertToModelMembers(records []db.Member) []model.Member {
	members := make([]model.Member, len(records))
	for i, record := range records {
		members[i] = model.Member{
			UserID:      record.UserID,
			DisplayName: record.DisplayName,
		}
	}
	return members
}

// convertToModelInstances converts db chore instance records to domain
// instances, parsing scheduled dates
func convertToModelInstances(records []db.ChoreInstance) ([]model.ChoreInstance, error) {
	instances := make([]model.ChoreInstance, len(records))
	for i, record := range records {
		scheduledDate, err := time.Parse("2006-01-02", record.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scheduled date for instance %s: %w", record.ID, err)
		}

		instances[i] = model.ChoreInstance{
			ID:             record.ID,
			StableID:       record.StableID,
			RoutineID:      record.RoutineID,
			Title:          record.Title,
			ScheduledDate:  scheduledDate,
			PointsValue:    record.PointsValue,
			AssignmentType: model.AssignmentType(record.AssignmentType),
			AssignedTo:     record.AssignedTo,
			CompletedBy:    record.CompletedBy,
			Status:         model.InstanceStatus(record.Status),
		}
	}
	return instances, nil
}

// membersByID builds a lookup map of members keyed by user ID
func membersByID(members []model.Member) map[string]model.Member {
	byID := make(map[string]model.Member, len(members))
	for _, member := range members {
		byID[member.UserID] = member
	}
	return byID
}
