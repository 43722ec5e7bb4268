package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkItemType enum.
type WorkItemType string

const (
	WorkItemTypeUserStory     WorkItemType = "user-story"
	WorkItemTypeBug           WorkItemType = "bug"
	WorkItemTypeTask          WorkItemType = "task"
	WorkItemTypeTechnicalDebt WorkItemType = "technical-debt"
	WorkItemTypeSpike         WorkItemType = "spike"
)

// WorkItemStatus enum. Done and closed count as completed for progress and
// velocity purposes; deployed is a post-completion marker.
type WorkItemStatus string

const (
	WorkItemStatusPlanned      WorkItemStatus = "planned"
	WorkItemStatusReadyToStart WorkItemStatus = "ready-to-start"
	WorkItemStatusInProgress   WorkItemStatus = "in-progress"
	WorkItemStatusDone         WorkItemStatus = "done"
	WorkItemStatusClosed       WorkItemStatus = "closed"
	WorkItemStatusDeployed     WorkItemStatus = "deployed"
)

// WorkItem is the smallest unit of execution. Its sprint and initiative
// references are non-owning and may change independently of either side's
// lifecycle.
type WorkItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_work_items_org_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_work_items_org_project"`

	Reference   string         `json:"reference" gorm:"size:20;not null;index"`
	Title       string         `json:"title" gorm:"size:500;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Type        WorkItemType   `json:"type" gorm:"size:20;not null;default:'user-story'"`
	Priority    Priority       `json:"priority" gorm:"size:10;not null;default:'medium'"`
	Status      WorkItemStatus `json:"status" gorm:"size:20;not null;default:'planned'"`

	// Estimation is the effort estimate in story points; nil means
	// unestimated. Unestimated items still count toward progress but
	// contribute nothing to sprint velocity.
	Estimation *float64 `json:"estimation"`

	InitiativeID *uuid.UUID `json:"initiative_id" gorm:"type:uuid;index"`
	SprintID     *uuid.UUID `json:"sprint_id" gorm:"type:uuid;index"`
	AssignedToID *uuid.UUID `json:"assigned_to_id" gorm:"type:uuid;index"`
	CreatedByID  *uuid.UUID `json:"created_by_id" gorm:"type:uuid"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Initiative  *Initiative      `json:"initiative,omitempty" gorm:"foreignKey:InitiativeID"`
	Sprint      *Sprint          `json:"sprint,omitempty" gorm:"foreignKey:SprintID"`
	AssignedTo  *User            `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`
	Comments    []Comment        `json:"comments,omitempty" gorm:"foreignKey:WorkItemID"`
	Attachments []FileAttachment `json:"attachments,omitempty" gorm:"foreignKey:WorkItemID"`
}

func (w *WorkItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (WorkItem) TableName() string {
	return "work_items"
}

// IsCompleted reports whether the item counts as done for progress and
// velocity computations.
func (w *WorkItem) IsCompleted() bool {
	return w.Status == WorkItemStatusDone || w.Status == WorkItemStatusClosed
}
