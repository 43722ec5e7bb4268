package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// startupReady flips to true once main has finished wiring services. Consumed
// by /health/startup.
var startupReady atomic.Bool

// MarkStartupReady is called from main after initialisation completes, so the
// startup probe begins returning 200.
func MarkStartupReady() {
	startupReady.Store(true)
}

const dbCheckTimeout = 2 * time.Second

// RegisterRoutes registers the health-check endpoints:
//
//	GET /health         – plain {"status":"ok"}, for simple uptime checks
//	GET /health/live    – liveness probe, always 200
//	GET /health/ready   – readiness probe, checks DB connectivity
//	GET /health/startup – startup probe, checks DB + the startup flag
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// If the process can serve HTTP, it is alive.
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/health/ready", func(c *gin.Context) {
		if err := CheckDatabase(db, dbCheckTimeout); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"checks": gin.H{"database": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"checks": gin.H{"database": "ok"},
		})
	})

	r.GET("/health/startup", func(c *gin.Context) {
		if !startupReady.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"checks": gin.H{"startup": "not ready"},
			})
			return
		}
		if err := CheckDatabase(db, dbCheckTimeout); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"checks": gin.H{"database": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"checks": gin.H{
				"startup":  "ready",
				"database": "ok",
			},
		})
	})
}
