package router

import (
	"github.com/Floumy/floumy-sub002/internal/handlers"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupWorkItemRoutes(orgs *gin.RouterGroup, db *gorm.DB) {
	project := orgs.Group("/projects/:projectId")

	workItemHandler := handlers.NewWorkItemHandler(services.NewWorkItemService(db))
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(db))
	attachmentHandler := handlers.NewAttachmentHandler(services.NewFileAttachmentService(db))

	items := project.Group("/work-items")
	{
		items.POST("", workItemHandler.Create)
		items.GET("", workItemHandler.List)
		items.GET("/:workItemId", workItemHandler.Get)
		items.PUT("/:workItemId", workItemHandler.Update)
		items.DELETE("/:workItemId", workItemHandler.Delete)
		items.POST("/:workItemId/comments", commentHandler.CreateWorkItemComment)
		items.POST("/:workItemId/attachments", attachmentHandler.Attach)
		items.GET("/:workItemId/attachments", attachmentHandler.List)
	}

	attachments := project.Group("/attachments")
	{
		attachments.DELETE("/:attachmentId", attachmentHandler.Delete)
	}

	comments := orgs.Group("/comments")
	{
		comments.PUT("/:commentId", commentHandler.Update)
		comments.DELETE("/:commentId", commentHandler.Delete)
	}
}
