package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InitiativeService owns initiative CRUD. Progress and work item counts are
// derived columns maintained by the work item service; this service never
// lets callers write them directly.
type InitiativeService struct {
	db *gorm.DB
}

func NewInitiativeService(db *gorm.DB) *InitiativeService {
	return &InitiativeService{db: db}
}

type CreateInitiativeRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Priority     models.Priority `json:"priority"`
	AssignedToID *uuid.UUID      `json:"assigned_to_id"`
}

type UpdateInitiativeRequest struct {
	Title        string                  `json:"title" binding:"required"`
	Description  string                  `json:"description"`
	Priority     models.Priority         `json:"priority"`
	Status       models.InitiativeStatus `json:"status"`
	AssignedToID *uuid.UUID              `json:"assigned_to_id"`
}

// Create stores a new initiative with its project-scoped reference (I-<n>).
func (s *InitiativeService) Create(orgID, projectID uuid.UUID, req CreateInitiativeRequest) (*models.Initiative, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	initiative := &models.Initiative{
		OrgID:        orgID,
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Status:       models.InitiativeStatusPlanned,
		AssignedToID: req.AssignedToID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ref, err := nextReference(tx, orgID, projectID, "I", "initiatives_count")
		if err != nil {
			return err
		}
		initiative.Reference = ref

		if err := tx.Create(initiative).Error; err != nil {
			return fmt.Errorf("failed to create initiative: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return initiative, nil
}

// Get returns an initiative with its work items, tenant-scoped.
func (s *InitiativeService) Get(orgID, projectID, initiativeID uuid.UUID) (*models.Initiative, error) {
	var initiative models.Initiative
	err := s.db.Preload("WorkItems").Preload("Comments").
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, initiativeID).
		First(&initiative).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: initiative %s", ErrNotFound, initiativeID)
	}
	if err != nil {
		return nil, err
	}
	return &initiative, nil
}

// Update replaces an initiative's user-settable state. Moving into a
// completed-like status stamps CompletedAt; moving back out clears it.
func (s *InitiativeService) Update(orgID, projectID, initiativeID uuid.UUID, req UpdateInitiativeRequest) (*models.Initiative, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	var initiative models.Initiative
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, initiativeID).
			First(&initiative).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: initiative %s", ErrNotFound, initiativeID)
			}
			return err
		}

		wasDone := initiative.IsDone()

		initiative.Title = req.Title
		initiative.Description = req.Description
		if req.Priority != "" {
			initiative.Priority = req.Priority
		}
		if req.Status != "" {
			initiative.Status = req.Status
		}
		initiative.AssignedToID = req.AssignedToID

		if initiative.IsDone() && !wasDone {
			now := time.Now().UTC()
			initiative.CompletedAt = &now
		} else if !initiative.IsDone() {
			initiative.CompletedAt = nil
		}

		if err := tx.Save(&initiative).Error; err != nil {
			return fmt.Errorf("failed to update initiative: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &initiative, nil
}

// Delete removes an initiative. Its work items survive with the parent
// reference cleared, mirroring sprint deletion.
func (s *InitiativeService) Delete(orgID, projectID, initiativeID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var initiative models.Initiative
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, initiativeID).
			First(&initiative).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: initiative %s", ErrNotFound, initiativeID)
			}
			return err
		}

		if err := tx.Model(&models.WorkItem{}).
			Where("initiative_id = ?", initiative.ID).
			Update("initiative_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach work items: %w", err)
		}

		if err := tx.Delete(&initiative).Error; err != nil {
			return fmt.Errorf("failed to delete initiative: %w", err)
		}
		return nil
	})
}

// List returns all of a project's initiatives in the default list ordering
// (priority first, then recency).
func (s *InitiativeService) List(orgID, projectID uuid.UUID) ([]models.Initiative, error) {
	var initiatives []models.Initiative
	err := s.db.Where("org_id = ? AND project_id = ?", orgID, projectID).
		Order(priorityOrder).Order("created_at DESC").
		Find(&initiatives).Error
	return initiatives, err
}

// Search builds a filtered query over the project's initiatives.
func (s *InitiativeService) Search(orgID, projectID uuid.UUID, search InitiativeSearch) *InitiativeQuery {
	return NewInitiativeQuery(s.db, orgID, projectID, search)
}
