package router

import (
	"github.com/Floumy/floumy-sub002/internal/handlers"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupOKRRoutes(orgs *gin.RouterGroup, db *gorm.DB) {
	project := orgs.Group("/projects/:projectId")

	okrHandler := handlers.NewOKRHandler(services.NewOKRService(db))
	okrs := project.Group("/okrs")
	{
		okrs.POST("", okrHandler.CreateObjective)
		okrs.GET("", okrHandler.ListObjectives)
		okrs.GET("/:objectiveId", okrHandler.GetObjective)
		okrs.PUT("/:objectiveId/key-results/:keyResultId", okrHandler.UpdateKeyResult)
		okrs.DELETE("/:objectiveId", okrHandler.DeleteObjective)
	}
}
