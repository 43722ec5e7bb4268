package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type OKRHandler struct {
	okrs *services.OKRService
}

func NewOKRHandler(okrs *services.OKRService) *OKRHandler {
	return &OKRHandler{okrs: okrs}
}

func (h *OKRHandler) CreateObjective(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req services.CreateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	objective, err := h.okrs.CreateObjective(orgID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, objective)
}

func (h *OKRHandler) ListObjectives(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	objectives, err := h.okrs.ListObjectives(orgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objectives": objectives})
}

func (h *OKRHandler) GetObjective(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	objectiveID, ok := pathID(c, "objectiveId")
	if !ok {
		return
	}

	objective, err := h.okrs.GetObjective(orgID, projectID, objectiveID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, objective)
}

type UpdateKeyResultRequest struct {
	Progress float64          `json:"progress"`
	Status   models.OKRStatus `json:"status"`
}

// UpdateKeyResult sets a key result's progress and rolls the mean up into
// the objective.
func (h *OKRHandler) UpdateKeyResult(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	objectiveID, ok := pathID(c, "objectiveId")
	if !ok {
		return
	}
	keyResultID, ok := pathID(c, "keyResultId")
	if !ok {
		return
	}

	var req UpdateKeyResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kr, err := h.okrs.UpdateKeyResult(orgID, projectID, objectiveID, keyResultID, req.Progress, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kr)
}

func (h *OKRHandler) DeleteObjective(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	objectiveID, ok := pathID(c, "objectiveId")
	if !ok {
		return
	}

	if err := h.okrs.DeleteObjective(orgID, projectID, objectiveID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "objective deleted"})
}
