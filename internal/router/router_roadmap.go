package router

import (
	"github.com/Floumy/floumy-sub002/internal/handlers"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// setupRoadmapRoutes wires sprints and initiatives, the roadmap surface.
func setupRoadmapRoutes(orgs *gin.RouterGroup, db *gorm.DB) {
	project := orgs.Group("/projects/:projectId")

	sprintHandler := handlers.NewSprintHandler(services.NewSprintService(db))
	sprints := project.Group("/sprints")
	{
		sprints.POST("", sprintHandler.Create)
		sprints.GET("", sprintHandler.List)
		sprints.GET("/:sprintId", sprintHandler.Get)
		sprints.POST("/:sprintId/start", sprintHandler.Start)
		sprints.POST("/:sprintId/complete", sprintHandler.Complete)
		sprints.DELETE("/:sprintId", sprintHandler.Delete)
	}

	initiativeService := services.NewInitiativeService(db)
	initiativeHandler := handlers.NewInitiativeHandler(initiativeService)
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(db))
	initiatives := project.Group("/initiatives")
	{
		initiatives.POST("", initiativeHandler.Create)
		initiatives.GET("", initiativeHandler.Search)
		initiatives.GET("/:initiativeId", initiativeHandler.Get)
		initiatives.PUT("/:initiativeId", initiativeHandler.Update)
		initiatives.DELETE("/:initiativeId", initiativeHandler.Delete)
		initiatives.POST("/:initiativeId/comments", commentHandler.CreateInitiativeComment)
	}
}
