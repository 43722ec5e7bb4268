package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeatureRequestService owns user-submitted feature requests and their
// voting counter.
type FeatureRequestService struct {
	db *gorm.DB
}

func NewFeatureRequestService(db *gorm.DB) *FeatureRequestService {
	return &FeatureRequestService{db: db}
}

type CreateFeatureRequestRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	CreatedByID *uuid.UUID `json:"-"`
}

func (s *FeatureRequestService) Create(orgID, projectID uuid.UUID, req CreateFeatureRequestRequest) (*models.FeatureRequest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if err := projectExists(s.db, orgID, projectID); err != nil {
		return nil, err
	}

	fr := &models.FeatureRequest{
		OrgID:       orgID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.FeatureRequestStatusPending,
		CreatedByID: req.CreatedByID,
	}
	if err := s.db.Create(fr).Error; err != nil {
		return nil, fmt.Errorf("failed to create feature request: %w", err)
	}
	return fr, nil
}

// List returns a project's feature requests, most voted first.
func (s *FeatureRequestService) List(orgID, projectID uuid.UUID) ([]models.FeatureRequest, error) {
	var requests []models.FeatureRequest
	err := s.db.Where("org_id = ? AND project_id = ?", orgID, projectID).
		Order("votes DESC").Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// Vote increments the vote counter atomically.
func (s *FeatureRequestService) Vote(orgID, projectID, requestID uuid.UUID) error {
	result := s.db.Model(&models.FeatureRequest{}).
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, requestID).
		UpdateColumn("votes", gorm.Expr("votes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: feature request %s", ErrNotFound, requestID)
	}
	return nil
}

// UpdateStatus moves a feature request through its triage states.
func (s *FeatureRequestService) UpdateStatus(orgID, projectID, requestID uuid.UUID, status models.FeatureRequestStatus) (*models.FeatureRequest, error) {
	switch status {
	case models.FeatureRequestStatusPending, models.FeatureRequestStatusApproved,
		models.FeatureRequestStatusShipped, models.FeatureRequestStatusDeclined:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var fr models.FeatureRequest
	err := s.db.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, requestID).
		First(&fr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: feature request %s", ErrNotFound, requestID)
	}
	if err != nil {
		return nil, err
	}

	fr.Status = status
	if err := s.db.Save(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}
