package handlers

import (
	"errors"
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps service errors to HTTP status codes: NotFound -> 404,
// Validation -> 400, Forbidden -> 403, everything else -> 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// orgScope parses the org from the path and checks it against the org in the
// authenticated token. A mismatch means the caller is trying to reach another
// tenant's data and is rejected with 403 before any query runs.
func orgScope(c *gin.Context) (uuid.UUID, bool) {
	orgID, err := uuid.Parse(c.Param("orgId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid org id"})
		return uuid.Nil, false
	}
	if tokenOrg := c.GetString("org_id"); tokenOrg != orgID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "org access denied"})
		return uuid.Nil, false
	}
	return orgID, true
}

// projectScope parses both tenant keys from the path, after the org check.
func projectScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orgID, ok := orgScope(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, projectID, true
}

// pathID parses a uuid path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id from the JWT context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
