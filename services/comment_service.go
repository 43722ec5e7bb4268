package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentService owns comments on work items and initiatives. Content is
// validated before any write; edits and deletes are restricted to the
// comment's author.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) CreateWorkItemComment(orgID, projectID, workItemID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content must not be empty", ErrValidation)
	}
	if err := workItemExists(s.db, orgID, projectID, workItemID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		OrgID:       orgID,
		ProjectID:   projectID,
		WorkItemID:  &workItemID,
		CreatedByID: authorID,
		Content:     content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) CreateInitiativeComment(orgID, projectID, initiativeID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content must not be empty", ErrValidation)
	}
	if err := initiativeExists(s.db, orgID, projectID, initiativeID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		OrgID:        orgID,
		ProjectID:    projectID,
		InitiativeID: &initiativeID,
		CreatedByID:  authorID,
		Content:      content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Update(orgID uuid.UUID, commentID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content must not be empty", ErrValidation)
	}

	var comment models.Comment
	err := s.db.Where("org_id = ? AND id = ?", orgID, commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	if err != nil {
		return nil, err
	}
	if comment.CreatedByID != authorID {
		return nil, fmt.Errorf("%w: only the author can edit a comment", ErrForbidden)
	}

	comment.Content = content
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

func (s *CommentService) Delete(orgID uuid.UUID, commentID, authorID uuid.UUID) error {
	var comment models.Comment
	err := s.db.Where("org_id = ? AND id = ?", orgID, commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	if err != nil {
		return err
	}
	if comment.CreatedByID != authorID {
		return fmt.Errorf("%w: only the author can delete a comment", ErrForbidden)
	}
	return s.db.Delete(&comment).Error
}

func workItemExists(tx *gorm.DB, orgID, projectID, workItemID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.WorkItem{}).
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, workItemID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: work item %s", ErrNotFound, workItemID)
	}
	return nil
}
