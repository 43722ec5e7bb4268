package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkItemService owns work item CRUD. Every mutation that touches an
// initiative's work item set recomputes that initiative's aggregates inside
// the mutation's own transaction.
type WorkItemService struct {
	db *gorm.DB
}

func NewWorkItemService(db *gorm.DB) *WorkItemService {
	return &WorkItemService{db: db}
}

type CreateWorkItemRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Type        models.WorkItemType   `json:"type"`
	Priority    models.Priority       `json:"priority"`
	Status      models.WorkItemStatus `json:"status"`
	Estimation  *float64              `json:"estimation"`

	InitiativeID *uuid.UUID `json:"initiative_id"`
	SprintID     *uuid.UUID `json:"sprint_id"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	CreatedByID  *uuid.UUID `json:"-"`
}

// UpdateWorkItemRequest carries the full replacement state (PUT semantics).
// A nil InitiativeID or SprintID clears the association.
type UpdateWorkItemRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Type        models.WorkItemType   `json:"type"`
	Priority    models.Priority       `json:"priority"`
	Status      models.WorkItemStatus `json:"status"`
	Estimation  *float64              `json:"estimation"`

	InitiativeID *uuid.UUID `json:"initiative_id"`
	SprintID     *uuid.UUID `json:"sprint_id"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
}

// Create stores a new work item, assigns its project-scoped reference
// (WI-<n>) and, when parented, recomputes the initiative's aggregates.
func (s *WorkItemService) Create(orgID, projectID uuid.UUID, req CreateWorkItemRequest) (*models.WorkItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if req.Type == "" {
		req.Type = models.WorkItemTypeUserStory
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Status == "" {
		req.Status = models.WorkItemStatusPlanned
	}

	item := &models.WorkItem{
		OrgID:        orgID,
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Priority:     req.Priority,
		Status:       req.Status,
		Estimation:   req.Estimation,
		InitiativeID: req.InitiativeID,
		SprintID:     req.SprintID,
		AssignedToID: req.AssignedToID,
		CreatedByID:  req.CreatedByID,
	}
	if item.IsCompleted() {
		now := time.Now().UTC()
		item.CompletedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ref, err := nextReference(tx, orgID, projectID, "WI", "work_items_count")
		if err != nil {
			return err
		}
		item.Reference = ref

		if req.InitiativeID != nil {
			if err := initiativeExists(tx, orgID, projectID, *req.InitiativeID); err != nil {
				return err
			}
		}
		if req.SprintID != nil {
			if err := sprintExists(tx, orgID, projectID, *req.SprintID); err != nil {
				return err
			}
		}

		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create work item: %w", err)
		}

		if req.InitiativeID != nil {
			return recomputeInitiativeAggregates(tx, *req.InitiativeID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkItemMutation("create")
	return item, nil
}

// Get returns a work item with comments and attachments, tenant-scoped.
func (s *WorkItemService) Get(orgID, projectID, itemID uuid.UUID) (*models.WorkItem, error) {
	var item models.WorkItem
	err := s.db.Preload("Comments").Preload("Attachments").
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: work item %s", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns a project's work items, newest first.
func (s *WorkItemService) List(orgID, projectID uuid.UUID) ([]models.WorkItem, error) {
	var items []models.WorkItem
	err := s.db.Where("org_id = ? AND project_id = ?", orgID, projectID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Update replaces a work item's mutable state. When the parent initiative
// changes, both the old and the new parent's aggregates are recomputed in
// the same transaction, so no intermediate state is observable. CompletedAt
// is stamped on entering done/closed and cleared on leaving.
func (s *WorkItemService) Update(orgID, projectID, itemID uuid.UUID, req UpdateWorkItemRequest) (*models.WorkItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	var item models.WorkItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, itemID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: work item %s", ErrNotFound, itemID)
			}
			return err
		}

		if req.InitiativeID != nil {
			if err := initiativeExists(tx, orgID, projectID, *req.InitiativeID); err != nil {
				return err
			}
		}
		if req.SprintID != nil {
			if err := sprintExists(tx, orgID, projectID, *req.SprintID); err != nil {
				return err
			}
		}

		oldInitiativeID := item.InitiativeID
		wasCompleted := item.IsCompleted()

		item.Title = req.Title
		item.Description = req.Description
		if req.Type != "" {
			item.Type = req.Type
		}
		if req.Priority != "" {
			item.Priority = req.Priority
		}
		if req.Status != "" {
			item.Status = req.Status
		}
		item.Estimation = req.Estimation
		item.InitiativeID = req.InitiativeID
		item.SprintID = req.SprintID
		item.AssignedToID = req.AssignedToID

		if item.IsCompleted() && !wasCompleted {
			now := time.Now().UTC()
			item.CompletedAt = &now
		} else if !item.IsCompleted() {
			item.CompletedAt = nil
		}

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update work item: %w", err)
		}

		// Re-parenting recomputes both sides atomically; a plain status
		// change only the current parent.
		for _, id := range affectedInitiatives(oldInitiativeID, item.InitiativeID) {
			if err := recomputeInitiativeAggregates(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkItemMutation("update")
	return &item, nil
}

// Delete removes a work item and recomputes its parent initiative's
// aggregates in the same transaction.
func (s *WorkItemService) Delete(orgID, projectID, itemID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.WorkItem
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, itemID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: work item %s", ErrNotFound, itemID)
			}
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete work item: %w", err)
		}

		if item.InitiativeID != nil {
			return recomputeInitiativeAggregates(tx, *item.InitiativeID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordWorkItemMutation("delete")
	return nil
}

// affectedInitiatives returns the distinct non-nil initiative IDs among the
// old and new parent of a work item.
func affectedInitiatives(oldID, newID *uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	if oldID != nil {
		ids = append(ids, *oldID)
	}
	if newID != nil && (oldID == nil || *newID != *oldID) {
		ids = append(ids, *newID)
	}
	return ids
}

func initiativeExists(tx *gorm.DB, orgID, projectID, initiativeID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Initiative{}).
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, initiativeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: initiative %s", ErrNotFound, initiativeID)
	}
	return nil
}

func sprintExists(tx *gorm.DB, orgID, projectID, sprintID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Sprint{}).
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, sprintID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: sprint %s", ErrNotFound, sprintID)
	}
	return nil
}

// nextReference bumps the project's per-entity counter and formats the
// human-readable reference, e.g. WI-7 or I-3. The bump is a single
// UPDATE ... SET n = n + 1, so the row lock it takes serializes concurrent
// creates; a read-then-write here would let two transactions mint the same
// number under READ COMMITTED.
func nextReference(tx *gorm.DB, orgID, projectID uuid.UUID, prefix, counterColumn string) (string, error) {
	switch counterColumn {
	case "work_items_count", "initiatives_count":
	default:
		return "", fmt.Errorf("unknown counter column %q", counterColumn)
	}

	res := tx.Model(&models.Project{}).
		Where("org_id = ? AND id = ?", orgID, projectID).
		UpdateColumn(counterColumn, gorm.Expr(counterColumn+" + 1"))
	if res.Error != nil {
		return "", fmt.Errorf("failed to bump %s: %w", counterColumn, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	var next int
	if err := tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Select(counterColumn).
		Scan(&next).Error; err != nil {
		return "", fmt.Errorf("failed to read %s: %w", counterColumn, err)
	}
	return fmt.Sprintf("%s-%d", prefix, next), nil
}
