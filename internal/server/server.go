package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crossplay/mcwgen/internal/auth"
	"github.com/crossplay/mcwgen/internal/middleware"
	"github.com/crossplay/mcwgen/internal/realtime"
)

// NewRouter builds the gin router for the generator service: health and
// metrics endpoints, the puzzle surface, the admin scheduling surface, and
// the WebSocket subscription endpoint, following the teacher's grouped
// apiGroup layout.
func NewRouter(h *Handlers, authService *auth.AuthService, hub *realtime.Hub) *gin.Engine {
	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.PerformanceMonitor())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetMetrics())
	})

	apiGroup := router.Group("/api")
	{
		puzzlesGroup := apiGroup.Group("/puzzles")
		{
			puzzlesGroup.POST("/generate", h.GeneratePuzzle)
			puzzlesGroup.GET("/daily", h.GetDailyPuzzle)
		}

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/login", h.AdminLogin)

			adminProtected := adminGroup.Group("")
			adminProtected.Use(authMiddleware.RequireAuth())
			adminProtected.POST("/assign-daily", h.AssignDaily)
			adminProtected.POST("/reset-daily", h.ResetDaily)
		}

		apiGroup.Any("/*mcwgenNotFound", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "API endpoint does not exist",
				"path":    c.Request.URL.Path,
			})
		})
	}

	router.GET("/ws", func(c *gin.Context) {
		realtime.ServeWs(hub, c.Writer, c.Request)
	})

	return router
}
