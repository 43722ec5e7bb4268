package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxAttachmentSize caps a single attachment at 50 MiB.
const maxAttachmentSize = 50 << 20

// FileAttachmentService tracks attachment metadata on work items. The file
// bytes live in object storage; this service only records where.
type FileAttachmentService struct {
	db *gorm.DB
}

func NewFileAttachmentService(db *gorm.DB) *FileAttachmentService {
	return &FileAttachmentService{db: db}
}

type AttachFileRequest struct {
	FileName    string         `json:"file_name" binding:"required"`
	FileSize    int64          `json:"file_size" binding:"required"`
	ContentType string         `json:"content_type"`
	Metadata    datatypes.JSON `json:"metadata"`
}

// Attach records an attachment on a work item and derives its storage key.
func (s *FileAttachmentService) Attach(orgID, projectID, workItemID uuid.UUID, req AttachFileRequest) (*models.FileAttachment, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("%w: file name must not be empty", ErrValidation)
	}
	if req.FileSize <= 0 || req.FileSize > maxAttachmentSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", ErrValidation, maxAttachmentSize)
	}
	if err := workItemExists(s.db, orgID, projectID, workItemID); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment := &models.FileAttachment{
		ID:          uuid.New(),
		OrgID:       orgID,
		ProjectID:   projectID,
		WorkItemID:  &workItemID,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ContentType: contentType,
		Metadata:    req.Metadata,
	}
	attachment.StoragePath = fmt.Sprintf("%s/%s/%s/%s", orgID, projectID, attachment.ID, req.FileName)

	if err := s.db.Create(attachment).Error; err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return attachment, nil
}

// List returns a work item's attachments, newest first.
func (s *FileAttachmentService) List(orgID, projectID, workItemID uuid.UUID) ([]models.FileAttachment, error) {
	var attachments []models.FileAttachment
	err := s.db.Where("org_id = ? AND project_id = ? AND work_item_id = ?", orgID, projectID, workItemID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

// Delete removes an attachment record, tenant-scoped.
func (s *FileAttachmentService) Delete(orgID, projectID, attachmentID uuid.UUID) error {
	var attachment models.FileAttachment
	err := s.db.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, attachmentID).
		First(&attachment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: attachment %s", ErrNotFound, attachmentID)
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&attachment).Error
}
