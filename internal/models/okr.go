package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OKRStatus is shared by objectives and key results.
type OKRStatus string

const (
	OKRStatusOnTrack   OKRStatus = "on-track"
	OKRStatusOffTrack  OKRStatus = "off-track"
	OKRStatusAtRisk    OKRStatus = "at-risk"
	OKRStatusCompleted OKRStatus = "completed"
)

// Objective groups key results. Progress is the mean of the key results'
// progress, recomputed whenever a key result changes.
type Objective struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_objectives_org_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_objectives_org_project"`

	Title    string    `json:"title" gorm:"size:500;not null"`
	Status   OKRStatus `json:"status" gorm:"size:20;not null;default:'on-track'"`
	Progress float64   `json:"progress" gorm:"not null;default:0"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	KeyResults []KeyResult `json:"key_results,omitempty" gorm:"foreignKey:ObjectiveID;constraint:OnDelete:CASCADE"`
}

func (o *Objective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Objective) TableName() string {
	return "objectives"
}

type KeyResult struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ObjectiveID uuid.UUID `json:"objective_id" gorm:"type:uuid;not null;index"`

	Title    string    `json:"title" gorm:"size:500;not null"`
	Status   OKRStatus `json:"status" gorm:"size:20;not null;default:'on-track'"`
	Progress float64   `json:"progress" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (k *KeyResult) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (KeyResult) TableName() string {
	return "key_results"
}
