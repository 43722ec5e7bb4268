package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type SprintHandler struct {
	sprints *services.SprintService
}

func NewSprintHandler(sprints *services.SprintService) *SprintHandler {
	return &SprintHandler{sprints: sprints}
}

// Create adds a planned sprint to the project.
// @Summary Create sprint
// @Tags Sprints
// @Accept json
// @Produce json
// @Param request body services.CreateSprintRequest true "sprint"
// @Success 201 {object} models.Sprint
// @Router /api/v1/orgs/{orgId}/projects/{projectId}/sprints [post]
func (h *SprintHandler) Create(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req services.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := h.sprints.Create(orgID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sprint)
}

// List returns the project's sprints. With ?timeline=, only the sprints in
// that roadmap bucket (past, this-quarter, next-quarter, later).
func (h *SprintHandler) List(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	if raw := c.Query("timeline"); raw != "" {
		timeline, err := services.ParseTimeline(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		sprints, err := h.sprints.FindForTimeline(orgID, projectID, timeline)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sprints": sprints})
		return
	}

	sprints, err := h.sprints.List(orgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprints": sprints})
}

func (h *SprintHandler) Get(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	sprintID, ok := pathID(c, "sprintId")
	if !ok {
		return
	}

	sprint, err := h.sprints.Get(orgID, projectID, sprintID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprint)
}

// Start activates the sprint, force-completing any sprint that was active in
// the org before.
func (h *SprintHandler) Start(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	sprintID, ok := pathID(c, "sprintId")
	if !ok {
		return
	}

	sprint, err := h.sprints.Start(orgID, projectID, sprintID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprint)
}

// Complete finishes the sprint and computes its velocity.
func (h *SprintHandler) Complete(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	sprintID, ok := pathID(c, "sprintId")
	if !ok {
		return
	}

	sprint, err := h.sprints.Complete(orgID, projectID, sprintID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprint)
}

func (h *SprintHandler) Delete(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	sprintID, ok := pathID(c, "sprintId")
	if !ok {
		return
	}

	if err := h.sprints.Delete(orgID, projectID, sprintID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sprint deleted"})
}
