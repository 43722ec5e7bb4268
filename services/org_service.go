package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrgService owns org and project CRUD. Org creation notifies the wired
// OrgEvents subscriber after the transaction commits.
type OrgService struct {
	db     *gorm.DB
	events OrgEvents
}

func NewOrgService(db *gorm.DB, events OrgEvents) *OrgService {
	if events == nil {
		events = NopOrgEvents{}
	}
	return &OrgService{db: db, events: events}
}

// CreateOrg creates an org together with its default project.
func (s *OrgService) CreateOrg(name string) (*models.Org, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: org name must not be empty", ErrValidation)
	}

	org := &models.Org{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("failed to create org: %w", err)
		}

		project := &models.Project{
			OrgID: org.ID,
			Name:  name,
		}
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to create default project: %w", err)
		}
		org.Projects = []models.Project{*project}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.OnOrgCreated(org)
	return org, nil
}

// CreateOrgWithOwner creates an org, its default project and the org's
// first user in one transaction. A failed user insert (e.g. the email is
// already taken) rolls the org and project back with it.
func (s *OrgService) CreateOrgWithOwner(orgName string, owner *models.User) (*models.Org, error) {
	if strings.TrimSpace(orgName) == "" {
		return nil, fmt.Errorf("%w: org name must not be empty", ErrValidation)
	}

	org := &models.Org{Name: orgName}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("failed to create org: %w", err)
		}

		project := &models.Project{
			OrgID: org.ID,
			Name:  orgName,
		}
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to create default project: %w", err)
		}
		org.Projects = []models.Project{*project}

		owner.OrgID = org.ID
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.OnOrgCreated(org)
	return org, nil
}

// GetOrg returns an org with its projects.
func (s *OrgService) GetOrg(orgID uuid.UUID) (*models.Org, error) {
	var org models.Org
	err := s.db.Preload("Projects").First(&org, "id = ?", orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: org %s", ErrNotFound, orgID)
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// CreateProject adds a project to an org.
func (s *OrgService) CreateProject(orgID uuid.UUID, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name must not be empty", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Org{}).Where("id = ?", orgID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: org %s", ErrNotFound, orgID)
	}

	project := &models.Project{
		OrgID:       orgID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// GetProject returns a project scoped to its org.
func (s *OrgService) GetProject(orgID, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("org_id = ? AND id = ?", orgID, projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns an org's projects.
func (s *OrgService) ListProjects(orgID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Where("org_id = ?", orgID).Order("created_at ASC").Find(&projects).Error
	return projects, err
}

// ListMembers returns an org's users.
func (s *OrgService) ListMembers(orgID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("org_id = ?", orgID).Order("created_at ASC").Find(&users).Error
	return users, err
}
