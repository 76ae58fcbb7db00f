package api

import (
	stdhttp "net/http"
	"time"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:     env.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", middleware.RequireAuth([]byte(env.JWTSecret)), h.Me)

		analytics := api.Group("/analytics")
		if !env.AuthDisabled {
			analytics.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		}
		analytics.GET("/dashboard", h.GetDashboard)
		analytics.GET("/dashboard/export", h.ExportDashboardPDF)
		analytics.GET("/bookings/stats", h.GetBookingStats)
		analytics.GET("/revenue/stats", h.GetRevenueStats)
		analytics.GET("/popular-routes", h.GetPopularRoutes)
		analytics.GET("/daily-trends", h.GetDailyTrends)
		analytics.GET("/class-distribution", h.GetClassDistribution)
		analytics.GET("/passengers/top-spenders", h.GetTopSpenders)
		analytics.GET("/journeys/performance", h.GetJourneyPerformance)
	}

	return r
}
