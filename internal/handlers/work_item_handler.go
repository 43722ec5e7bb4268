package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type WorkItemHandler struct {
	workItems *services.WorkItemService
}

func NewWorkItemHandler(workItems *services.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{workItems: workItems}
}

// Create adds a work item to the project.
// @Summary Create work item
// @Tags WorkItems
// @Accept json
// @Produce json
// @Param request body services.CreateWorkItemRequest true "work item"
// @Success 201 {object} models.WorkItem
// @Router /api/v1/orgs/{orgId}/projects/{projectId}/work-items [post]
func (h *WorkItemHandler) Create(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req services.CreateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if userID, ok := currentUserID(c); ok {
		req.CreatedByID = &userID
	} else {
		return
	}

	item, err := h.workItems.Create(orgID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *WorkItemHandler) List(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	items, err := h.workItems.List(orgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_items": items})
}

func (h *WorkItemHandler) Get(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}

	item, err := h.workItems.Get(orgID, projectID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update replaces the work item's state (PUT semantics). Changing the parent
// initiative moves the item's contribution between both initiatives'
// aggregates atomically.
func (h *WorkItemHandler) Update(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}

	var req services.UpdateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.workItems.Update(orgID, projectID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WorkItemHandler) Delete(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}

	if err := h.workItems.Delete(orgID, projectID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "work item deleted"})
}
