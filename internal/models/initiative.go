package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority is shared by initiatives and work items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// InitiativeStatus lifecycle enum.
type InitiativeStatus string

const (
	InitiativeStatusPlanned      InitiativeStatus = "planned"
	InitiativeStatusReadyToStart InitiativeStatus = "ready-to-start"
	InitiativeStatusInProgress   InitiativeStatus = "in-progress"
	InitiativeStatusCompleted    InitiativeStatus = "completed"
	InitiativeStatusClosed       InitiativeStatus = "closed"
)

// Initiative is a roadmap-level grouping of work items. Progress and
// WorkItemsCount are derived from the associated work items and are never
// written directly by callers; they are recomputed inside the transaction of
// every work item mutation that touches this initiative.
type Initiative struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_initiatives_org_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_initiatives_org_project"`

	Reference   string           `json:"reference" gorm:"size:20;not null;index"`
	Title       string           `json:"title" gorm:"size:500;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Priority    Priority         `json:"priority" gorm:"size:10;not null;default:'medium'"`
	Status      InitiativeStatus `json:"status" gorm:"size:20;not null;default:'planned'"`

	// Derived aggregates, see services progress recomputation.
	Progress       int `json:"progress" gorm:"not null;default:0"`
	WorkItemsCount int `json:"work_items_count" gorm:"not null;default:0"`

	CompletedAt  *time.Time `json:"completed_at"`
	AssignedToID *uuid.UUID `json:"assigned_to_id" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	AssignedTo *User      `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`
	WorkItems  []WorkItem `json:"work_items,omitempty" gorm:"foreignKey:InitiativeID"`
	Comments   []Comment  `json:"comments,omitempty" gorm:"foreignKey:InitiativeID"`
}

func (i *Initiative) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (Initiative) TableName() string {
	return "initiatives"
}

// IsDone reports whether the initiative reached a completed-like state.
func (i *Initiative) IsDone() bool {
	return i.Status == InitiativeStatusCompleted || i.Status == InitiativeStatusClosed
}
