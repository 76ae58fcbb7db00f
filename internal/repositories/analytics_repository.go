package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// AnalyticsRepository issues the grouped read-only queries feeding every
// report. Dates are ISO YYYY-MM-DD strings; an empty bound leaves that side
// of the window open (all-time when both are empty).
type AnalyticsRepository struct {
	DB *sql.DB
}

func (r AnalyticsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// dateWindow builds the optional booking_date WHERE clause shared by all
// aggregate queries.
func dateWindow(start, end string) (string, []any) {
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(start); s != "" {
		where = append(where, "b.booking_date >= ?")
		args = append(args, s)
	}
	if e := strings.TrimSpace(end); e != "" {
		where = append(where, "b.booking_date <= ?")
		args = append(args, e)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func storageErr(op string, err error) error {
	return domain.StorageUnavailableError{Op: op, Err: err}
}

// Overview returns booking totals plus by-status and by-class breakdowns.
func (r AnalyticsRepository) Overview(start, end string) (models.Overview, error) {
	out := models.Overview{
		BookingsByStatus: map[string]int{},
		BookingsByClass:  map[string]int{},
	}
	db := r.db()
	clause, args := dateWindow(start, end)

	err := db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(b.amount_paid), 0) FROM booking b`+clause,
		args...,
	).Scan(&out.TotalBookings, &out.TotalRevenue)
	if err != nil {
		return out, storageErr("overview totals", err)
	}

	if err := r.groupCounts(
		`SELECT bs.name, COUNT(*)
		 FROM booking b
		 JOIN booking_status bs ON b.status_id = bs.id`+clause+`
		 GROUP BY bs.name`,
		args, out.BookingsByStatus,
	); err != nil {
		return out, storageErr("overview by status", err)
	}

	if err := r.groupCounts(
		`SELECT cc.class_name, COUNT(*)
		 FROM booking b
		 JOIN carriage_class cc ON b.ticket_class_id = cc.id`+clause+`
		 GROUP BY cc.class_name`,
		args, out.BookingsByClass,
	); err != nil {
		return out, storageErr("overview by class", err)
	}

	return out, nil
}

func (r AnalyticsRepository) groupCounts(query string, args []any, dst map[string]int) error {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dst[key] = count
	}
	return rows.Err()
}

// DailyTotals returns per-day counts and revenue for days that have at least
// one booking; gap filling happens in the service.
func (r AnalyticsRepository) DailyTotals(start, end string) ([]models.DailyTrendPoint, error) {
	clause, args := dateWindow(start, end)

	rows, err := r.db().Query(
		`SELECT DATE_FORMAT(b.booking_date, '%Y-%m-%d'), COUNT(*), COALESCE(SUM(b.amount_paid), 0)
		 FROM booking b`+clause+`
		 GROUP BY b.booking_date
		 ORDER BY b.booking_date ASC`,
		args...,
	)
	if err != nil {
		return nil, storageErr("daily totals", err)
	}
	defer rows.Close()

	out := []models.DailyTrendPoint{}
	for rows.Next() {
		var p models.DailyTrendPoint
		if err := rows.Scan(&p.Date, &p.BookingCount, &p.Revenue); err != nil {
			return nil, storageErr("daily totals scan", err)
		}
		out = append(out, p)
	}
	return out, storageOrNil("daily totals", rows.Err())
}

// PopularRoutes aggregates bookings per origin/destination pair. Ordering is
// booking count first, then revenue, then station names so equal rows always
// come back in the same order.
func (r AnalyticsRepository) PopularRoutes(limit int, start, end string) ([]models.RouteSummary, error) {
	clause, args := dateWindow(start, end)
	args = append(args, limit)

	rows, err := r.db().Query(
		`SELECT s1.station_name, s2.station_name, COUNT(*) AS booking_count,
		        COALESCE(SUM(b.amount_paid), 0) AS total_revenue,
		        COALESCE(AVG(b.amount_paid), 0)
		 FROM booking b
		 JOIN train_station s1 ON b.starting_station_id = s1.id
		 JOIN train_station s2 ON b.ending_station_id = s2.id`+clause+`
		 GROUP BY s1.station_name, s2.station_name
		 ORDER BY booking_count DESC, total_revenue DESC, s1.station_name ASC, s2.station_name ASC
		 LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, storageErr("popular routes", err)
	}
	defer rows.Close()

	out := []models.RouteSummary{}
	for rows.Next() {
		var rec models.RouteSummary
		if err := rows.Scan(&rec.Origin, &rec.Destination, &rec.BookingCount, &rec.TotalRevenue, &rec.AveragePrice); err != nil {
			return nil, storageErr("popular routes scan", err)
		}
		out = append(out, rec)
	}
	return out, storageOrNil("popular routes", rows.Err())
}

// ClassDistribution returns raw per-class counts and revenue. Only classes
// with at least one booking in range appear; percentages are computed by the
// service.
func (r AnalyticsRepository) ClassDistribution(start, end string) ([]models.ClassDistributionEntry, error) {
	clause, args := dateWindow(start, end)

	rows, err := r.db().Query(
		`SELECT cc.class_name, COUNT(*) AS booking_count, COALESCE(SUM(b.amount_paid), 0)
		 FROM booking b
		 JOIN carriage_class cc ON b.ticket_class_id = cc.id`+clause+`
		 GROUP BY cc.class_name
		 ORDER BY booking_count DESC, cc.class_name ASC`,
		args...,
	)
	if err != nil {
		return nil, storageErr("class distribution", err)
	}
	defer rows.Close()

	out := []models.ClassDistributionEntry{}
	for rows.Next() {
		var rec models.ClassDistributionEntry
		if err := rows.Scan(&rec.ClassName, &rec.BookingCount, &rec.Revenue); err != nil {
			return nil, storageErr("class distribution scan", err)
		}
		out = append(out, rec)
	}
	return out, storageOrNil("class distribution", rows.Err())
}

// TopSpenders ranks passengers by total spend; equal spenders come back in
// passenger id order.
func (r AnalyticsRepository) TopSpenders(limit int, start, end string) ([]models.TopSpender, error) {
	clause, args := dateWindow(start, end)
	args = append(args, limit)

	rows, err := r.db().Query(
		`SELECT p.id, CONCAT(p.first_name, ' ', p.last_name), p.email_address,
		        COUNT(*) AS total_bookings, COALESCE(SUM(b.amount_paid), 0) AS total_spent
		 FROM booking b
		 JOIN passenger p ON b.passenger_id = p.id`+clause+`
		 GROUP BY p.id, p.first_name, p.last_name, p.email_address
		 ORDER BY total_spent DESC, p.id ASC
		 LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, storageErr("top spenders", err)
	}
	defer rows.Close()

	out := []models.TopSpender{}
	for rows.Next() {
		var rec models.TopSpender
		if err := rows.Scan(&rec.PassengerID, &rec.Name, &rec.Email, &rec.TotalBookings, &rec.TotalSpent); err != nil {
			return nil, storageErr("top spenders scan", err)
		}
		out = append(out, rec)
	}
	return out, storageOrNil("top spenders", rows.Err())
}

// JourneyPerformance aggregates bookings per journey. Origin and destination
// are the journey's first and last scheduled stops.
func (r AnalyticsRepository) JourneyPerformance(limit int, start, end string) ([]models.JourneyPerformance, error) {
	clause, args := dateWindow(start, end)
	args = append(args, limit)

	rows, err := r.db().Query(
		`SELECT tj.id, tj.name,
		        COALESCE((SELECT s.station_name FROM journey_station js
		                  JOIN train_station s ON js.station_id = s.id
		                  WHERE js.journey_id = tj.id
		                  ORDER BY js.stop_order ASC LIMIT 1), ''),
		        COALESCE((SELECT s.station_name FROM journey_station js
		                  JOIN train_station s ON js.station_id = s.id
		                  WHERE js.journey_id = tj.id
		                  ORDER BY js.stop_order DESC LIMIT 1), ''),
		        COUNT(*) AS total_bookings,
		        COALESCE(SUM(b.amount_paid), 0) AS total_revenue,
		        COALESCE(AVG(b.amount_paid), 0)
		 FROM booking b
		 JOIN train_journey tj ON b.train_journey_id = tj.id`+clause+`
		 GROUP BY tj.id, tj.name
		 ORDER BY total_bookings DESC, total_revenue DESC, tj.name ASC
		 LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, storageErr("journey performance", err)
	}
	defer rows.Close()

	out := []models.JourneyPerformance{}
	for rows.Next() {
		var rec models.JourneyPerformance
		if err := rows.Scan(&rec.JourneyID, &rec.JourneyName, &rec.Origin, &rec.Destination,
			&rec.TotalBookings, &rec.TotalRevenue, &rec.AverageBookingValue); err != nil {
			return nil, storageErr("journey performance scan", err)
		}
		out = append(out, rec)
	}
	return out, storageOrNil("journey performance", rows.Err())
}

// RouteRevenue returns the top revenue-earning routes as a single label per
// origin/destination pair.
func (r AnalyticsRepository) RouteRevenue(limit int, start, end string) ([]models.RouteRevenue, error) {
	clause, args := dateWindow(start, end)
	args = append(args, limit)

	rows, err := r.db().Query(
		`SELECT CONCAT(s1.station_name, ' → ', s2.station_name) AS route,
		        COALESCE(SUM(b.amount_paid), 0) AS revenue
		 FROM booking b
		 JOIN train_station s1 ON b.starting_station_id = s1.id
		 JOIN train_station s2 ON b.ending_station_id = s2.id`+clause+`
		 GROUP BY route
		 ORDER BY revenue DESC, route ASC
		 LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, storageErr("route revenue", err)
	}
	defer rows.Close()

	out := []models.RouteRevenue{}
	for rows.Next() {
		var rec models.RouteRevenue
		if err := rows.Scan(&rec.Route, &rec.Revenue); err != nil {
			return nil, storageErr("route revenue scan", err)
		}
		out = append(out, rec)
	}
	return out, storageOrNil("route revenue", rows.Err())
}

func storageOrNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return storageErr(op, err)
}
