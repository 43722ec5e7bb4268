package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileAttachment holds attachment metadata. The bytes themselves live in
// object storage; StoragePath is the key there.
type FileAttachment struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID      uuid.UUID  `json:"org_id" gorm:"type:uuid;not null;index"`
	ProjectID  uuid.UUID  `json:"project_id" gorm:"type:uuid;not null"`
	WorkItemID *uuid.UUID `json:"work_item_id" gorm:"type:uuid;index"`

	FileName    string `json:"file_name" gorm:"size:255;not null"`
	FileSize    int64  `json:"file_size" gorm:"not null"`
	ContentType string `json:"content_type" gorm:"size:100;not null"`
	StoragePath string `json:"-" gorm:"size:500;not null"`

	// Metadata carries client-supplied extras (checksums, image dimensions).
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (f *FileAttachment) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (FileAttachment) TableName() string {
	return "file_attachments"
}
