package services

import (
	"fmt"
	"testing"

	"github.com/Floumy/floumy-sub002/internal/database"
	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema
// applied. The shared cache keeps the database alive across the pooled
// connections GORM opens for transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// seedTenant creates an org with one project and returns both.
func seedTenant(t *testing.T, db *gorm.DB, name string) (*models.Org, *models.Project) {
	t.Helper()

	org := &models.Org{Name: name}
	require.NoError(t, db.Create(org).Error)

	project := &models.Project{OrgID: org.ID, Name: name}
	require.NoError(t, db.Create(project).Error)
	return org, project
}

// seedUser creates a user in the given org.
func seedUser(t *testing.T, db *gorm.DB, org *models.Org, email string) *models.User {
	t.Helper()

	user := &models.User{
		OrgID:        org.ID,
		Name:         email,
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func floatPtr(v float64) *float64 { return &v }

// updateReqFrom builds a full-replacement update request mirroring the
// item's current state, so tests can change one field at a time.
func updateReqFrom(item *models.WorkItem) UpdateWorkItemRequest {
	return UpdateWorkItemRequest{
		Title:        item.Title,
		Description:  item.Description,
		Type:         item.Type,
		Priority:     item.Priority,
		Status:       item.Status,
		Estimation:   item.Estimation,
		InitiativeID: item.InitiativeID,
		SprintID:     item.SprintID,
		AssignedToID: item.AssignedToID,
	}
}
