package services

import (
	"testing"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSprintTitle(t *testing.T) {
	// ISO week 1 of 2026 runs Mon 2025-12-29 through Sun 2026-01-04.
	weekOneMonday := time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)

	oneWeekEnd := weekOneMonday.AddDate(0, 0, 7).Add(-time.Millisecond)
	assert.Equal(t, "Sprint CW1 2026", sprintTitle(weekOneMonday, oneWeekEnd))

	twoWeekEnd := weekOneMonday.AddDate(0, 0, 14).Add(-time.Millisecond)
	assert.Equal(t, "Sprint CW1-CW2 2026", sprintTitle(weekOneMonday, twoWeekEnd))
}

func TestSprintService_Create(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	// Start date with a time-of-day component must be normalised to UTC midnight.
	sprint, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		Goal:          "ship the roadmap view",
		StartDate:     time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC),
		DurationWeeks: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SprintStatusPlanned, sprint.Status)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), *sprint.StartDate)
	assert.Equal(t, time.Date(2026, time.March, 15, 23, 59, 59, 999000000, time.UTC), *sprint.EndDate)
	assert.Equal(t, "Sprint CW10-CW11 2026", sprint.Title)
	assert.Nil(t, sprint.ActualStartDate)
	assert.Nil(t, sprint.Velocity)
}

func TestSprintService_Create_UnknownProject(t *testing.T) {
	db := newTestDB(t)
	org, _ := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	_, err := svc.Create(org.ID, uuid.New(), CreateSprintRequest{
		StartDate:     time.Now(),
		DurationWeeks: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSprintService_Create_RejectsZeroDuration(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	_, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSprintService_Start_SingleActivePerOrg(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	// The second sprint lives in another project of the same org: the
	// single-active invariant is org-wide.
	otherProject := &models.Project{OrgID: org.ID, Name: "second"}
	require.NoError(t, db.Create(otherProject).Error)

	first, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		StartDate: time.Now(), DurationWeeks: 1,
	})
	require.NoError(t, err)
	second, err := svc.Create(org.ID, otherProject.ID, CreateSprintRequest{
		StartDate: time.Now(), DurationWeeks: 1,
	})
	require.NoError(t, err)

	_, err = svc.Start(org.ID, project.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Start(org.ID, otherProject.ID, second.ID)
	require.NoError(t, err)

	var active []models.Sprint
	require.NoError(t, db.Where("org_id = ? AND status = ?", org.ID, models.SprintStatusActive).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	var completed models.Sprint
	require.NoError(t, db.First(&completed, "id = ?", first.ID).Error)
	assert.Equal(t, models.SprintStatusCompleted, completed.Status)
	assert.NotNil(t, completed.ActualEndDate)
}

func TestSprintService_Start_DoesNotTouchOtherOrgs(t *testing.T) {
	db := newTestDB(t)
	orgA, projectA := seedTenant(t, db, "org-a")
	orgB, projectB := seedTenant(t, db, "org-b")
	svc := NewSprintService(db)

	sprintA, err := svc.Create(orgA.ID, projectA.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)
	sprintB, err := svc.Create(orgB.ID, projectB.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)

	_, err = svc.Start(orgA.ID, projectA.ID, sprintA.ID)
	require.NoError(t, err)
	_, err = svc.Start(orgB.ID, projectB.ID, sprintB.ID)
	require.NoError(t, err)

	// One active sprint per org, both still active.
	var active []models.Sprint
	require.NoError(t, db.Where("status = ?", models.SprintStatusActive).Find(&active).Error)
	assert.Len(t, active, 2)
}

func TestSprintService_Start_RecomputesEndDateFromActualStart(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	// Planned to start far in the past; the actual start supersedes it.
	sprint, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		StartDate: time.Date(2020, time.January, 6, 0, 0, 0, 0, time.UTC), DurationWeeks: 1,
	})
	require.NoError(t, err)

	started, err := svc.Start(org.ID, project.ID, sprint.ID)
	require.NoError(t, err)

	require.NotNil(t, started.ActualStartDate)
	expectedEnd := utcMidnight(*started.ActualStartDate).AddDate(0, 0, 7).Add(-time.Millisecond)
	assert.Equal(t, expectedEnd, started.EndDate.UTC())
	assert.Equal(t, models.SprintStatusActive, started.Status)
}

func TestSprintService_Start_RejectsCompleted(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	sprint, err := svc.Create(org.ID, project.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)
	_, err = svc.Start(org.ID, project.ID, sprint.ID)
	require.NoError(t, err)
	_, err = svc.Complete(org.ID, project.ID, sprint.ID)
	require.NoError(t, err)

	_, err = svc.Start(org.ID, project.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSprintService_Complete_Velocity(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	sprints := NewSprintService(db)
	workItems := NewWorkItemService(db)

	sprint, err := sprints.Create(org.ID, project.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 2})
	require.NoError(t, err)
	_, err = sprints.Start(org.ID, project.ID, sprint.ID)
	require.NoError(t, err)

	for _, est := range []*float64{floatPtr(3), floatPtr(5), nil} {
		_, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
			Title:      "item",
			Estimation: est,
			SprintID:   &sprint.ID,
		})
		require.NoError(t, err)
	}

	completed, err := sprints.Complete(org.ID, project.ID, sprint.ID)
	require.NoError(t, err)

	require.NotNil(t, completed.Velocity)
	assert.Equal(t, 8.0, *completed.Velocity)
	assert.Equal(t, models.SprintStatusCompleted, completed.Status)
	assert.NotNil(t, completed.ActualEndDate)
}

func TestSprintService_Complete_RequiresActive(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	sprint, err := svc.Create(org.ID, project.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)

	_, err = svc.Complete(org.ID, project.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSprintService_Delete_DetachesWorkItems(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	sprints := NewSprintService(db)
	workItems := NewWorkItemService(db)

	sprint, err := sprints.Create(org.ID, project.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)

	var itemIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		item, err := workItems.Create(org.ID, project.ID, CreateWorkItemRequest{
			Title:    "item",
			SprintID: &sprint.ID,
		})
		require.NoError(t, err)
		itemIDs = append(itemIDs, item.ID)
	}

	require.NoError(t, sprints.Delete(org.ID, project.ID, sprint.ID))

	for _, id := range itemIDs {
		var item models.WorkItem
		require.NoError(t, db.First(&item, "id = ?", id).Error)
		assert.Nil(t, item.SprintID)
	}

	_, err = sprints.Get(org.ID, project.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSprintService_FindForTimeline(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewSprintService(db)

	// A sprint starting today always falls in the current quarter.
	current, err := svc.Create(org.ID, project.ID, CreateSprintRequest{StartDate: time.Now().UTC(), DurationWeeks: 1})
	require.NoError(t, err)

	past, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		StartDate: time.Now().UTC().AddDate(-1, 0, 0), DurationWeeks: 1,
	})
	require.NoError(t, err)

	future, err := svc.Create(org.ID, project.ID, CreateSprintRequest{
		StartDate: time.Now().UTC().AddDate(1, 0, 0), DurationWeeks: 1,
	})
	require.NoError(t, err)

	// A sprint without dates belongs to the later bucket.
	unscheduled := &models.Sprint{
		OrgID: org.ID, ProjectID: project.ID,
		Title: "Backlog sprint", Status: models.SprintStatusPlanned, Duration: 1,
	}
	require.NoError(t, db.Create(unscheduled).Error)

	got, err := svc.FindForTimeline(org.ID, project.ID, TimelineThisQuarter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, current.ID, got[0].ID)

	got, err = svc.FindForTimeline(org.ID, project.ID, TimelinePast)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, past.ID, got[0].ID)

	got, err = svc.FindForTimeline(org.ID, project.ID, TimelineLater)
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []uuid.UUID{got[0].ID, got[1].ID}
	assert.Contains(t, ids, future.ID)
	assert.Contains(t, ids, unscheduled.ID)
}

func TestSprintService_TenantIsolation(t *testing.T) {
	db := newTestDB(t)
	orgA, projectA := seedTenant(t, db, "org-a")
	orgB, projectB := seedTenant(t, db, "org-b")
	svc := NewSprintService(db)

	sprint, err := svc.Create(orgA.ID, projectA.ID, CreateSprintRequest{StartDate: time.Now(), DurationWeeks: 1})
	require.NoError(t, err)

	// Guessing the right ID from the wrong tenant must not work, for reads
	// or for lifecycle operations.
	_, err = svc.Get(orgB.ID, projectB.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Start(orgB.ID, projectB.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.Delete(orgB.ID, projectB.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
