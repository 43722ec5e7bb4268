package services

import (
	"testing"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureRequestService_VoteOrdering(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewFeatureRequestService(db)

	quiet, err := svc.Create(org.ID, project.ID, CreateFeatureRequestRequest{Title: "quiet"})
	require.NoError(t, err)
	popular, err := svc.Create(org.ID, project.ID, CreateFeatureRequestRequest{Title: "popular"})
	require.NoError(t, err)

	require.NoError(t, svc.Vote(org.ID, project.ID, popular.ID))
	require.NoError(t, svc.Vote(org.ID, project.ID, popular.ID))
	require.NoError(t, svc.Vote(org.ID, project.ID, quiet.ID))

	requests, err := svc.List(org.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "popular", requests[0].Title)
	assert.Equal(t, 2, requests[0].Votes)
	assert.Equal(t, 1, requests[1].Votes)
}

func TestFeatureRequestService_VoteUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	orgOther, projectOther := seedTenant(t, db, "other")
	svc := NewFeatureRequestService(db)

	fr, err := svc.Create(org.ID, project.ID, CreateFeatureRequestRequest{Title: "x"})
	require.NoError(t, err)

	// Voting from another tenant hits zero rows.
	err = svc.Vote(orgOther.ID, projectOther.ID, fr.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeatureRequestService_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	org, project := seedTenant(t, db, "acme")
	svc := NewFeatureRequestService(db)

	fr, err := svc.Create(org.ID, project.ID, CreateFeatureRequestRequest{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.FeatureRequestStatusPending, fr.Status)

	updated, err := svc.UpdateStatus(org.ID, project.ID, fr.ID, models.FeatureRequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.FeatureRequestStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(org.ID, project.ID, fr.ID, "wontfix")
	assert.ErrorIs(t, err, ErrValidation)
}
