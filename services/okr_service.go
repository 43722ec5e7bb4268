package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OKRService owns objectives and key results. An objective's progress is the
// mean of its key results' progress, recomputed in the transaction of every
// key result change.
type OKRService struct {
	db *gorm.DB
}

func NewOKRService(db *gorm.DB) *OKRService {
	return &OKRService{db: db}
}

type CreateObjectiveRequest struct {
	Title      string   `json:"title" binding:"required"`
	KeyResults []string `json:"key_results"`
}

func (s *OKRService) CreateObjective(orgID, projectID uuid.UUID, req CreateObjectiveRequest) (*models.Objective, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: objective title must not be empty", ErrValidation)
	}
	if err := projectExists(s.db, orgID, projectID); err != nil {
		return nil, err
	}

	objective := &models.Objective{
		OrgID:     orgID,
		ProjectID: projectID,
		Title:     req.Title,
		Status:    models.OKRStatusOnTrack,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(objective).Error; err != nil {
			return fmt.Errorf("failed to create objective: %w", err)
		}
		for _, title := range req.KeyResults {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("%w: key result title must not be empty", ErrValidation)
			}
			kr := models.KeyResult{
				ObjectiveID: objective.ID,
				Title:       title,
				Status:      models.OKRStatusOnTrack,
			}
			if err := tx.Create(&kr).Error; err != nil {
				return fmt.Errorf("failed to create key result: %w", err)
			}
			objective.KeyResults = append(objective.KeyResults, kr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objective, nil
}

func (s *OKRService) GetObjective(orgID, projectID, objectiveID uuid.UUID) (*models.Objective, error) {
	var objective models.Objective
	err := s.db.Preload("KeyResults").
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, objectiveID).
		First(&objective).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: objective %s", ErrNotFound, objectiveID)
	}
	if err != nil {
		return nil, err
	}
	return &objective, nil
}

func (s *OKRService) ListObjectives(orgID, projectID uuid.UUID) ([]models.Objective, error) {
	var objectives []models.Objective
	err := s.db.Preload("KeyResults").
		Where("org_id = ? AND project_id = ?", orgID, projectID).
		Order("created_at DESC").
		Find(&objectives).Error
	return objectives, err
}

// UpdateKeyResult sets a key result's progress (0-100) and status, then
// recomputes the parent objective's progress as the mean over all its key
// results, atomically.
func (s *OKRService) UpdateKeyResult(orgID, projectID, objectiveID, keyResultID uuid.UUID, progress float64, status models.OKRStatus) (*models.KeyResult, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	}

	var kr models.KeyResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The objective lookup carries the tenant scope; the key result is
		// reached only through its objective.
		var objective models.Objective
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, objectiveID).
			First(&objective).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: objective %s", ErrNotFound, objectiveID)
			}
			return err
		}

		if err := tx.Where("objective_id = ? AND id = ?", objective.ID, keyResultID).
			First(&kr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: key result %s", ErrNotFound, keyResultID)
			}
			return err
		}

		kr.Progress = progress
		if status != "" {
			kr.Status = status
		}
		if err := tx.Save(&kr).Error; err != nil {
			return fmt.Errorf("failed to update key result: %w", err)
		}

		var mean float64
		if err := tx.Model(&models.KeyResult{}).
			Where("objective_id = ?", objective.ID).
			Select("COALESCE(AVG(progress), 0)").
			Scan(&mean).Error; err != nil {
			return fmt.Errorf("failed to average key results: %w", err)
		}

		if err := tx.Model(&models.Objective{}).
			Where("id = ?", objective.ID).
			Update("progress", mean).Error; err != nil {
			return fmt.Errorf("failed to update objective progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &kr, nil
}

func (s *OKRService) DeleteObjective(orgID, projectID, objectiveID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var objective models.Objective
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, objectiveID).
			First(&objective).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: objective %s", ErrNotFound, objectiveID)
			}
			return err
		}

		if err := tx.Where("objective_id = ?", objective.ID).
			Delete(&models.KeyResult{}).Error; err != nil {
			return fmt.Errorf("failed to delete key results: %w", err)
		}
		if err := tx.Delete(&objective).Error; err != nil {
			return fmt.Errorf("failed to delete objective: %w", err)
		}
		return nil
	})
}
