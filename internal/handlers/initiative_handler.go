package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InitiativeHandler struct {
	initiatives *services.InitiativeService
}

func NewInitiativeHandler(initiatives *services.InitiativeService) *InitiativeHandler {
	return &InitiativeHandler{initiatives: initiatives}
}

// Create adds an initiative to the project.
// @Summary Create initiative
// @Tags Initiatives
// @Accept json
// @Produce json
// @Param request body services.CreateInitiativeRequest true "initiative"
// @Success 201 {object} models.Initiative
// @Router /api/v1/orgs/{orgId}/projects/{projectId}/initiatives [post]
func (h *InitiativeHandler) Create(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req services.CreateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	initiative, err := h.initiatives.Create(orgID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, initiative)
}

// Search runs the filtered, paginated initiative search. Query params:
// term, reference (exact, wins over term), status, priority, assignee
// (repeatable), completed_after, completed_before (RFC 3339), page,
// page_size. Returns the page plus the total match count.
func (h *InitiativeHandler) Search(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	search := services.InitiativeSearch{
		Term:      c.Query("term"),
		Reference: c.Query("reference"),
	}

	for _, s := range c.QueryArray("status") {
		search.Filters.Statuses = append(search.Filters.Statuses, models.InitiativeStatus(s))
	}
	for _, p := range c.QueryArray("priority") {
		search.Filters.Priorities = append(search.Filters.Priorities, models.Priority(p))
	}
	for _, a := range c.QueryArray("assignee") {
		id, err := uuid.Parse(a)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee id"})
			return
		}
		search.Filters.AssigneeIDs = append(search.Filters.AssigneeIDs, id)
	}
	if raw := c.Query("completed_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_after"})
			return
		}
		search.Filters.CompletedAfter = &t
	}
	if raw := c.Query("completed_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_before"})
			return
		}
		search.Filters.CompletedBefore = &t
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	query := h.initiatives.Search(orgID, projectID, search)
	initiatives, err := query.Execute(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := query.Count()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"initiatives": initiatives,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

func (h *InitiativeHandler) Get(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	initiativeID, ok := pathID(c, "initiativeId")
	if !ok {
		return
	}

	initiative, err := h.initiatives.Get(orgID, projectID, initiativeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, initiative)
}

func (h *InitiativeHandler) Update(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	initiativeID, ok := pathID(c, "initiativeId")
	if !ok {
		return
	}

	var req services.UpdateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	initiative, err := h.initiatives.Update(orgID, projectID, initiativeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, initiative)
}

func (h *InitiativeHandler) Delete(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	initiativeID, ok := pathID(c, "initiativeId")
	if !ok {
		return
	}

	if err := h.initiatives.Delete(orgID, projectID, initiativeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "initiative deleted"})
}
