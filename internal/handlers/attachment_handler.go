package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	attachments *services.FileAttachmentService
}

func NewAttachmentHandler(attachments *services.FileAttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// Attach records attachment metadata on a work item.
// @Summary Attach file metadata to work item
// @Tags Attachments
// @Accept json
// @Produce json
// @Param request body services.AttachFileRequest true "attachment"
// @Success 201 {object} models.FileAttachment
// @Router /api/v1/orgs/{orgId}/projects/{projectId}/work-items/{workItemId}/attachments [post]
func (h *AttachmentHandler) Attach(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	workItemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}

	var req services.AttachFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachment, err := h.attachments.Attach(orgID, projectID, workItemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) List(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	workItemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}

	attachments, err := h.attachments.List(orgID, projectID, workItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.attachments.Delete(orgID, projectID, attachmentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attachment deleted"})
}
