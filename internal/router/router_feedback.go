package router

import (
	"github.com/Floumy/floumy-sub002/internal/handlers"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupFeedbackRoutes(orgs *gin.RouterGroup, db *gorm.DB) {
	project := orgs.Group("/projects/:projectId")

	frHandler := handlers.NewFeatureRequestHandler(services.NewFeatureRequestService(db))
	featureRequests := project.Group("/feature-requests")
	{
		featureRequests.POST("", frHandler.Create)
		featureRequests.GET("", frHandler.List)
		featureRequests.POST("/:requestId/vote", frHandler.Vote)
		featureRequests.PUT("/:requestId/status", frHandler.UpdateStatus)
	}
}
