package services

import (
	"fmt"
	"math"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recomputeInitiativeAggregates refreshes an initiative's derived progress
// and work_items_count columns from the live set of work items referencing
// it. It must run inside the same transaction as the work item mutation that
// triggered it, so no reader ever observes a stale aggregate.
//
// Progress is a plain percentage of items in a done or closed state,
// rounded to the nearest integer. It is NOT estimation-weighted; only sprint
// velocity weights by estimation.
func recomputeInitiativeAggregates(tx *gorm.DB, initiativeID uuid.UUID) error {
	var total int64
	if err := tx.Model(&models.WorkItem{}).
		Where("initiative_id = ?", initiativeID).
		Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count work items: %w", err)
	}

	progress := 0
	if total > 0 {
		var completed int64
		if err := tx.Model(&models.WorkItem{}).
			Where("initiative_id = ? AND status IN ?", initiativeID,
				[]models.WorkItemStatus{models.WorkItemStatusDone, models.WorkItemStatusClosed}).
			Count(&completed).Error; err != nil {
			return fmt.Errorf("failed to count completed work items: %w", err)
		}
		progress = int(math.Round(float64(completed) / float64(total) * 100))
	}

	if err := tx.Model(&models.Initiative{}).
		Where("id = ?", initiativeID).
		Updates(map[string]interface{}{
			"progress":         progress,
			"work_items_count": total,
		}).Error; err != nil {
		return fmt.Errorf("failed to update initiative aggregates: %w", err)
	}
	return nil
}
