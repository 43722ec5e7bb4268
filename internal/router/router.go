package router

import (
	"github.com/Floumy/floumy-sub002/internal/config"
	"github.com/Floumy/floumy-sub002/internal/handlers"
	"github.com/Floumy/floumy-sub002/internal/middleware"
	"github.com/Floumy/floumy-sub002/internal/observability/health"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Logger())
	r.Use(metrics.HTTPMetricsMiddleware(metrics.GetRegistry()))

	health.RegisterRoutes(r, db)

	// Prometheus metrics on the business port
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.DeepLinking(true),
		ginSwagger.DocExpansion("list"),
	))

	orgService := services.NewOrgService(db, services.LogOrgEvents{})

	api := r.Group("/api/v1")

	// Auth routes (no JWT)
	auth := api.Group("/auth")
	{
		authHandler := handlers.NewAuthHandler(db, orgService, config.Load().JWT)
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)
		api.GET("/auth/me", middleware.JWTAuth(), authHandler.GetMe)
	}

	// Everything below is tenant-scoped and requires a token
	orgs := api.Group("/orgs/:orgId")
	orgs.Use(middleware.JWTAuth())

	setupOrgRoutes(orgs, orgService)
	setupRoadmapRoutes(orgs, db)
	setupWorkItemRoutes(orgs, db)
	setupOKRRoutes(orgs, db)
	setupFeedbackRoutes(orgs, db)

	return r
}

func setupOrgRoutes(orgs *gin.RouterGroup, orgService *services.OrgService) {
	orgHandler := handlers.NewOrgHandler(orgService)
	orgs.GET("", orgHandler.Get)
	orgs.GET("/members", orgHandler.ListMembers)
	orgs.POST("/projects", orgHandler.CreateProject)
	orgs.GET("/projects", orgHandler.ListProjects)
	orgs.GET("/projects/:projectId", orgHandler.GetProject)
}
