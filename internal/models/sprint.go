package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SprintStatus lifecycle enum. Transitions only move forward:
// planned -> active -> completed.
type SprintStatus string

const (
	SprintStatusPlanned   SprintStatus = "planned"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
)

// Sprint is a fixed-duration execution window. StartDate/EndDate hold the
// planned window; ActualStartDate/ActualEndDate are stamped when the sprint
// is started and completed. At most one sprint per org is active at a time.
type Sprint struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_sprints_org_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_sprints_org_project"`

	Title string `json:"title" gorm:"size:255;not null"`
	Goal  string `json:"goal" gorm:"type:text"`

	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	ActualStartDate *time.Time `json:"actual_start_date"`
	ActualEndDate   *time.Time `json:"actual_end_date"`

	// Duration is the sprint length in weeks.
	Duration int          `json:"duration" gorm:"not null;default:2"`
	Velocity *float64     `json:"velocity"`
	Status   SprintStatus `json:"status" gorm:"size:20;not null;default:'planned';index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	WorkItems []WorkItem `json:"work_items,omitempty" gorm:"foreignKey:SprintID"`
}

func (s *Sprint) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Sprint) TableName() string {
	return "sprints"
}

func (s *Sprint) IsActive() bool {
	return s.Status == SprintStatusActive
}

func (s *Sprint) IsCompleted() bool {
	return s.Status == SprintStatusCompleted
}
