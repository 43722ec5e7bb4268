package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) CreateWorkItemComment(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	workItemID, ok := pathID(c, "workItemId")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.CreateWorkItemComment(orgID, projectID, workItemID, authorID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) CreateInitiativeComment(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}
	initiativeID, ok := pathID(c, "initiativeId")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.CreateInitiativeComment(orgID, projectID, initiativeID, authorID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Update(orgID, commentID, authorID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.comments.Delete(orgID, commentID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
