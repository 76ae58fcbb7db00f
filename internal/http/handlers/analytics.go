package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/http/middleware"
	"backend/internal/metrics"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultDays  = 30
	defaultLimit = 10
)

func analyticsService() services.AnalyticsService {
	return services.AnalyticsService{Repo: repositories.AnalyticsRepository{}}
}

// intQuery parses an integer query parameter with a default. A malformed
// value answers 400 and returns ok=false; range checks stay in the service.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return v, true
}

func dateParams(c *gin.Context) (string, string) {
	return strings.TrimSpace(c.Query("start_date")), strings.TrimSpace(c.Query("end_date"))
}

// GET /api/analytics/dashboard?days=30
func GetDashboard(c *gin.Context) {
	days, ok := intQuery(c, "days", defaultDays)
	if !ok {
		return
	}

	report, err := analyticsService().GetDashboard(days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("dashboard").Inc()
	c.JSON(http.StatusOK, report)
}

// GET /api/analytics/bookings/stats?start_date=&end_date=
func GetBookingStats(c *gin.Context) {
	start, end := dateParams(c)

	overview, err := analyticsService().GetOverview(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("booking_stats").Inc()
	c.JSON(http.StatusOK, overview)
}

// GET /api/analytics/revenue/stats?start_date=&end_date=
func GetRevenueStats(c *gin.Context) {
	start, end := dateParams(c)

	stats, err := analyticsService().GetRevenueStats(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("revenue_stats").Inc()
	c.JSON(http.StatusOK, stats)
}

// GET /api/analytics/popular-routes?limit=10&start_date=&end_date=
func GetPopularRoutes(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultLimit)
	if !ok {
		return
	}
	start, end := dateParams(c)

	routes, err := analyticsService().GetPopularRoutes(limit, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("popular_routes").Inc()
	c.JSON(http.StatusOK, routes)
}

// GET /api/analytics/daily-trends?days=30
func GetDailyTrends(c *gin.Context) {
	days, ok := intQuery(c, "days", defaultDays)
	if !ok {
		return
	}

	trends, err := analyticsService().GetDailyTrends(days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("daily_trends").Inc()
	c.JSON(http.StatusOK, trends)
}

// GET /api/analytics/class-distribution?start_date=&end_date=
func GetClassDistribution(c *gin.Context) {
	start, end := dateParams(c)

	entries, err := analyticsService().GetClassDistribution(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("class_distribution").Inc()
	c.JSON(http.StatusOK, entries)
}

// GET /api/analytics/passengers/top-spenders?limit=10&start_date=&end_date=
func GetTopSpenders(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultLimit)
	if !ok {
		return
	}
	start, end := dateParams(c)

	spenders, err := analyticsService().GetTopSpenders(limit, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("top_spenders").Inc()
	c.JSON(http.StatusOK, spenders)
}

// GET /api/analytics/journeys/performance?limit=10&start_date=&end_date=
func GetJourneyPerformance(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultLimit)
	if !ok {
		return
	}
	start, end := dateParams(c)

	journeys, err := analyticsService().GetJourneyPerformance(limit, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("journey_performance").Inc()
	c.JSON(http.StatusOK, journeys)
}

// GET /api/analytics/dashboard/export?days=30
func ExportDashboardPDF(c *gin.Context) {
	days, ok := intQuery(c, "days", defaultDays)
	if !ok {
		return
	}

	svc := services.ReportDocService{
		Analytics: analyticsService(),
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateDashboardPDF(days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("dashboard_pdf").Inc()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
