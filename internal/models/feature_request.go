package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureRequestStatus string

const (
	FeatureRequestStatusPending   FeatureRequestStatus = "pending"
	FeatureRequestStatusApproved  FeatureRequestStatus = "approved"
	FeatureRequestStatusShipped   FeatureRequestStatus = "shipped"
	FeatureRequestStatusDeclined  FeatureRequestStatus = "declined"
)

// FeatureRequest is user-submitted feedback on the public page of a project.
type FeatureRequest struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_feature_requests_org_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_feature_requests_org_project"`

	Title       string               `json:"title" gorm:"size:500;not null"`
	Description string               `json:"description" gorm:"type:text"`
	Status      FeatureRequestStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	Votes       int                  `json:"votes" gorm:"not null;default:0"`
	CreatedByID *uuid.UUID           `json:"created_by_id" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (f *FeatureRequest) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (FeatureRequest) TableName() string {
	return "feature_requests"
}
