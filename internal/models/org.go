package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org is the top-level tenant. Every other row in the system hangs off an
// org, and every query must be scoped by it.
type Org struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE"`
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE"`
}

func (o *Org) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Org) TableName() string {
	return "orgs"
}

// Project is a workspace within an org: the scope for sprints, initiatives
// and work items. The per-project counters feed human-readable references
// (I-1, WI-42); they are only ever incremented inside the transaction that
// creates the referenced row.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index:idx_projects_org"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`

	InitiativesCount int `json:"-" gorm:"not null;default:0"`
	WorkItemsCount   int `json:"-" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Org *Org `json:"org,omitempty" gorm:"foreignKey:OrgID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Project) TableName() string {
	return "projects"
}
