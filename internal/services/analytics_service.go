package services

import (
	"math"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

const (
	dashboardRouteLimit = 10

	// Bounds on caller-supplied window sizes. A trend request materializes
	// one point per day, so the window cannot be unbounded.
	maxTrendDays = 365
	maxListLimit = 50
)

// AnalyticsService validates parameters, derives metrics and composes the
// dashboard report. It is stateless: every call is a pure function of the
// database contents and its arguments.
type AnalyticsService struct {
	Repo repositories.AnalyticsRepository

	// Now is injectable so "today" is deterministic in tests.
	Now func() time.Time
}

func (s AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// checkRange validates optional ISO date bounds. Empty bounds leave the
// window open; a start after the end is rejected.
func checkRange(start, end string) error {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	var startT, endT time.Time
	var err error
	if start != "" {
		if startT, err = utils.ParseDate(start); err != nil {
			return domain.ValidationError{Field: "start_date", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	if end != "" {
		if endT, err = utils.ParseDate(end); err != nil {
			return domain.ValidationError{Field: "end_date", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	if start != "" && end != "" && startT.After(endT) {
		return domain.InvalidRangeError{Start: start, End: end}
	}
	return nil
}

func checkDays(days int) error {
	if days < 1 {
		return domain.ValidationError{Field: "days", Msg: "must be a positive integer"}
	}
	if days > maxTrendDays {
		return domain.ValidationError{Field: "days", Msg: "must be at most 365"}
	}
	return nil
}

func checkLimit(limit int) error {
	if limit < 1 {
		return domain.ValidationError{Field: "limit", Msg: "must be a positive integer"}
	}
	if limit > maxListLimit {
		return domain.ValidationError{Field: "limit", Msg: "must be at most 50"}
	}
	return nil
}

// GetOverview returns booking totals for the window. Bookings of every
// status count toward revenue, matching the booking system's reports.
func (s AnalyticsService) GetOverview(start, end string) (models.Overview, error) {
	if err := checkRange(start, end); err != nil {
		return models.Overview{}, err
	}

	out, err := s.Repo.Overview(start, end)
	if err != nil {
		return models.Overview{}, err
	}
	if out.TotalBookings > 0 {
		out.AverageBookingValue = out.TotalRevenue / float64(out.TotalBookings)
	}
	return out, nil
}

// GetDailyTrends returns exactly days points ending today, in chronological
// order, with zero-filled gaps for days without bookings.
func (s AnalyticsService) GetDailyTrends(days int) ([]models.DailyTrendPoint, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}

	end := utils.Today(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.Repo.DailyTotals(utils.FormatDate(start), utils.FormatDate(end))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyTrendPoint, len(rows))
	for _, p := range rows {
		byDate[p.Date] = p
	}

	out := make([]models.DailyTrendPoint, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		if p, ok := byDate[key]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, models.DailyTrendPoint{Date: key})
	}
	return out, nil
}

func (s AnalyticsService) GetPopularRoutes(limit int, start, end string) ([]models.RouteSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.Repo.PopularRoutes(limit, start, end)
}

// GetClassDistribution returns per-class shares. Percentages are rounded to
// two decimals and sum to 100 within rounding tolerance.
func (s AnalyticsService) GetClassDistribution(start, end string) ([]models.ClassDistributionEntry, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	entries, err := s.Repo.ClassDistribution(start, end)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, e := range entries {
		total += e.BookingCount
	}
	if total == 0 {
		return entries, nil
	}
	for i := range entries {
		entries[i].Percentage = round2(float64(entries[i].BookingCount) / float64(total) * 100)
	}
	return entries, nil
}

func (s AnalyticsService) GetTopSpenders(limit int, start, end string) ([]models.TopSpender, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.Repo.TopSpenders(limit, start, end)
}

func (s AnalyticsService) GetJourneyPerformance(limit int, start, end string) ([]models.JourneyPerformance, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.Repo.JourneyPerformance(limit, start, end)
}

// GetRevenueStats breaks revenue down by date, class and route (top 10).
func (s AnalyticsService) GetRevenueStats(start, end string) (models.RevenueStats, error) {
	if err := checkRange(start, end); err != nil {
		return models.RevenueStats{}, err
	}

	out := models.RevenueStats{
		RevenueByDate:  []models.DatedRevenue{},
		RevenueByClass: []models.ClassRevenue{},
	}

	daily, err := s.Repo.DailyTotals(start, end)
	if err != nil {
		return models.RevenueStats{}, err
	}
	for _, p := range daily {
		out.RevenueByDate = append(out.RevenueByDate, models.DatedRevenue{Date: p.Date, Revenue: p.Revenue})
		out.TotalRevenue += p.Revenue
	}

	classes, err := s.Repo.ClassDistribution(start, end)
	if err != nil {
		return models.RevenueStats{}, err
	}
	for _, c := range classes {
		out.RevenueByClass = append(out.RevenueByClass, models.ClassRevenue{Class: c.ClassName, Revenue: c.Revenue})
	}

	routes, err := s.Repo.RouteRevenue(dashboardRouteLimit, start, end)
	if err != nil {
		return models.RevenueStats{}, err
	}
	out.RevenueByRoute = routes

	return out, nil
}

// GetDashboard composes overview, daily trends, popular routes and class
// distribution over the same days-derived window. It fails as a whole when
// any constituent query fails; there is no partially filled report.
func (s AnalyticsService) GetDashboard(days int) (models.DashboardReport, error) {
	if err := checkDays(days); err != nil {
		return models.DashboardReport{}, err
	}

	end := utils.Today(s.now())
	start := end.AddDate(0, 0, -(days - 1))
	startStr, endStr := utils.FormatDate(start), utils.FormatDate(end)

	overview, err := s.GetOverview(startStr, endStr)
	if err != nil {
		return models.DashboardReport{}, err
	}
	trends, err := s.GetDailyTrends(days)
	if err != nil {
		return models.DashboardReport{}, err
	}
	routes, err := s.GetPopularRoutes(dashboardRouteLimit, startStr, endStr)
	if err != nil {
		return models.DashboardReport{}, err
	}
	classes, err := s.GetClassDistribution(startStr, endStr)
	if err != nil {
		return models.DashboardReport{}, err
	}

	return models.DashboardReport{
		Overview:          overview,
		DailyTrends:       trends,
		PopularRoutes:     routes,
		ClassDistribution: classes,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
