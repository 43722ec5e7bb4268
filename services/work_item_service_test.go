package services

import (
	"testing"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkItemService_Create_AssignsReference(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewWorkItemService(db)

	first, err := svc.Create(org.ID, project.ID, CreateWorkItemRequest{Title: "one"})
	require.NoError(t, err)
	second, err := svc.Create(org.ID, project.ID, CreateWorkItemRequest{Title: "two"})
	require.NoError(t, err)

	assert.Equal(t, "WI-1", first.Reference)
	assert.Equal(t, "WI-2", second.Reference)
	assert.Equal(t, models.WorkItemStatusPlanned, first.Status)
	assert.Equal(t, models.WorkItemTypeUserStory, first.Type)
}

func TestWorkItemService_Create_ReferenceFollowsStoredCounter(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewWorkItemService(db)

	// Another writer already advanced the counter; the next reference must
	// come from the stored value, not from a stale in-memory read.
	require.NoError(t, db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		UpdateColumn("work_items_count", 41).Error)

	item, err := svc.Create(org.ID, project.ID, CreateWorkItemRequest{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "WI-42", item.Reference)

	var stored models.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.Equal(t, 42, stored.WorkItemsCount)
}

func TestWorkItemService_Create_RejectsEmptyTitle(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewWorkItemService(db)

	_, err := svc.Create(org.ID, project.ID, CreateWorkItemRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWorkItemService_Create_UnknownInitiative(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewWorkItemService(db)

	ghost := uuid.New()
	_, err := svc.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title:        "orphan",
		InitiativeID: &ghost,
	})
	require.ErrorIs(t, err, ErrNotFound)

	// Nothing was written.
	var count int64
	require.NoError(t, db.Model(&models.WorkItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWorkItemService_Create_InitiativeFromOtherTenantIsNotFound(t *testing.T) {
	db := newTestDB(t)
	orgA, projectA := seedTenant(t, db, "org-a")
	orgB, projectB := seedTenant(t, db, "org-b")

	initiatives := NewInitiativeService(db)
	foreign, err := initiatives.Create(orgB.ID, projectB.ID, CreateInitiativeRequest{Title: "theirs"})
	require.NoError(t, err)

	svc := NewWorkItemService(db)
	_, err = svc.Create(orgA.ID, projectA.ID, CreateWorkItemRequest{
		Title:        "mine",
		InitiativeID: &foreign.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgress_CountBasedPercentage(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiative, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "checkout revamp"})
	require.NoError(t, err)
	assert.Equal(t, 0, initiative.Progress)

	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "a", InitiativeID: &initiative.ID, Status: models.WorkItemStatusDone,
	})
	require.NoError(t, err)
	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "b", InitiativeID: &initiative.ID,
	})
	require.NoError(t, err)

	var got models.Initiative
	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 2, got.WorkItemsCount)
}

func TestProgress_IgnoresEstimationWeighting(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiative, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "big vs small"})
	require.NoError(t, err)

	// A 10-point done item and a 1-point open item: progress is still 50%,
	// because progress counts items while only velocity weights by points.
	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "big", InitiativeID: &initiative.ID, Status: models.WorkItemStatusDone, Estimation: floatPtr(10),
	})
	require.NoError(t, err)
	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "small", InitiativeID: &initiative.ID, Estimation: floatPtr(1),
	})
	require.NoError(t, err)

	var got models.Initiative
	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 50, got.Progress)
}

func TestProgress_StatusChangeRecomputes(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiative, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "x"})
	require.NoError(t, err)

	item, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "a", InitiativeID: &initiative.ID,
	})
	require.NoError(t, err)

	req := updateReqFrom(item)
	req.Status = models.WorkItemStatusClosed
	updated, err := workItems.Update(org.ID, project.ID, item.ID, req)
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	var got models.Initiative
	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 100, got.Progress)

	// Reopening clears CompletedAt and drops progress back.
	req = updateReqFrom(updated)
	req.Status = models.WorkItemStatusInProgress
	updated, err = workItems.Update(org.ID, project.ID, item.ID, req)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 0, got.Progress)
}

func TestProgress_ReparentRecomputesBothInitiatives(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiativeA, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "A"})
	require.NoError(t, err)
	initiativeB, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "B"})
	require.NoError(t, err)

	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "done", InitiativeID: &initiativeA.ID, Status: models.WorkItemStatusDone,
	})
	require.NoError(t, err)
	openItem, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "open", InitiativeID: &initiativeA.ID,
	})
	require.NoError(t, err)

	// A: 2 items, 1 done -> 50%.
	var a models.Initiative
	require.NoError(t, db.First(&a, "id = ?", initiativeA.ID).Error)
	assert.Equal(t, 50, a.Progress)
	assert.Equal(t, 2, a.WorkItemsCount)

	// Move the open item to B.
	req := updateReqFrom(openItem)
	req.InitiativeID = &initiativeB.ID
	_, err = workItems.Update(org.ID, project.ID, openItem.ID, req)
	require.NoError(t, err)

	var b models.Initiative
	require.NoError(t, db.First(&a, "id = ?", initiativeA.ID).Error)
	require.NoError(t, db.First(&b, "id = ?", initiativeB.ID).Error)

	assert.Equal(t, 1, a.WorkItemsCount)
	assert.Equal(t, 100, a.Progress)
	assert.Equal(t, 1, b.WorkItemsCount)
	assert.Equal(t, 0, b.Progress)
}

func TestProgress_UnparentingClearsContribution(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiative, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "x"})
	require.NoError(t, err)

	item, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "a", InitiativeID: &initiative.ID, Status: models.WorkItemStatusDone,
	})
	require.NoError(t, err)

	req := updateReqFrom(item)
	req.InitiativeID = nil
	_, err = workItems.Update(org.ID, project.ID, item.ID, req)
	require.NoError(t, err)

	var got models.Initiative
	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 0, got.WorkItemsCount)
	assert.Equal(t, 0, got.Progress)
}

func TestProgress_DeleteRecomputes(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	initiatives := NewInitiativeService(db)
	workItems := NewWorkItemService(db)

	initiative, err := initiatives.Create(org.ID, project.ID, CreateInitiativeRequest{Title: "x"})
	require.NoError(t, err)

	open, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "open", InitiativeID: &initiative.ID,
	})
	require.NoError(t, err)
	_, err = workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
		Title: "done", InitiativeID: &initiative.ID, Status: models.WorkItemStatusDone,
	})
	require.NoError(t, err)

	require.NoError(t, workItems.Delete(org.ID, project.ID, open.ID))

	var got models.Initiative
	require.NoError(t, db.First(&got, "id = ?", initiative.ID).Error)
	assert.Equal(t, 1, got.WorkItemsCount)
	assert.Equal(t, 100, got.Progress)
}

func TestWorkItemService_TenantIsolation(t *testing.T) {
	db := newTestDB(t)
	orgA, projectA := seedTenant(t, db, "org-a")
	orgB, projectB := seedTenant(t, db, "org-b")
	svc := NewWorkItemService(db)

	item, err := svc.Create(orgA.ID, projectA.ID, CreateWorkItemRequest{Title: "secret"})
	require.NoError(t, err)

	_, err = svc.Get(orgB.ID, projectB.ID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := svc.List(orgB.ID, projectB.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.Delete(orgB.ID, projectB.ID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
