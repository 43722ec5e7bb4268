package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type FeatureRequestHandler struct {
	featureRequests *services.FeatureRequestService
}

func NewFeatureRequestHandler(featureRequests *services.FeatureRequestService) *FeatureRequestHandler {
	return &FeatureRequestHandler{featureRequests: featureRequests}
}

func (h *FeatureRequestHandler) Create(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req services.CreateFeatureRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if userID, ok := currentUserID(c); ok {
		req.CreatedByID = &userID
	} else {
		return
	}

	fr, err := h.featureRequests.Create(orgID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fr)
}

func (h *FeatureRequestHandler) List(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	requests, err := h.featureRequests.List(orgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feature_requests": requests})
}

func (h *FeatureRequestHandler) Vote(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	if err := h.featureRequests.Vote(orgID, projectID, requestID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}

type UpdateFeatureRequestStatusRequest struct {
	Status models.FeatureRequestStatus `json:"status" binding:"required"`
}

func (h *FeatureRequestHandler) UpdateStatus(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	var req UpdateFeatureRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fr, err := h.featureRequests.UpdateStatus(orgID, projectID, requestID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fr)
}
