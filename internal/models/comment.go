package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment attaches to exactly one of a work item or an initiative.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null"`

	Content string `json:"content" gorm:"type:text;not null"`

	WorkItemID   *uuid.UUID `json:"work_item_id" gorm:"type:uuid;index"`
	InitiativeID *uuid.UUID `json:"initiative_id" gorm:"type:uuid;index"`
	CreatedByID  uuid.UUID  `json:"created_by_id" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Comment) TableName() string {
	return "comments"
}
