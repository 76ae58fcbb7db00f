package repositories

import (
	"errors"
	"testing"

	"backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var errConn = errors.New("connection refused")

func newRepo(t *testing.T) (AnalyticsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return AnalyticsRepository{DB: db}, mock
}

func TestPopularRoutesOrderingAndArgs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`ORDER BY booking_count DESC, total_revenue DESC, s1.station_name ASC, s2.station_name ASC`).
		WithArgs("2024-01-01", "2024-01-31", 2).
		WillReturnRows(sqlmock.NewRows([]string{"origin", "destination", "count", "revenue", "avg"}).
			AddRow("C", "D", 5, 600, 120).
			AddRow("A", "B", 5, 500, 100))

	routes, err := repo.PopularRoutes(2, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("PopularRoutes returned error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Origin != "C" || routes[0].Destination != "D" {
		t.Fatalf("revenue tie-break lost: first route is %s->%s", routes[0].Origin, routes[0].Destination)
	}
	if routes[0].AveragePrice != 120 {
		t.Fatalf("average price scanned wrong: %v", routes[0].AveragePrice)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPopularRoutesAllTimeOmitsWindow(t *testing.T) {
	repo, mock := newRepo(t)

	// only the limit is bound when both dates are empty
	mock.ExpectQuery("train_station s1").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"origin", "destination", "count", "revenue", "avg"}))

	if _, err := repo.PopularRoutes(10, "", ""); err != nil {
		t.Fatalf("PopularRoutes returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopSpendersScan(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`ORDER BY total_spent DESC, p.id ASC`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "bookings", "spent"}).
			AddRow(7, "Ada Lovelace", "ada@example.com", 3, 420.0))

	spenders, err := repo.TopSpenders(5, "", "")
	if err != nil {
		t.Fatalf("TopSpenders returned error: %v", err)
	}
	if len(spenders) != 1 {
		t.Fatalf("expected 1 spender, got %d", len(spenders))
	}
	s := spenders[0]
	if s.PassengerID != 7 || s.Name != "Ada Lovelace" || s.TotalBookings != 3 || s.TotalSpent != 420 {
		t.Fatalf("spender scanned wrong: %+v", s)
	}
}

func TestJourneyPerformanceScan(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("train_journey tj").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin", "destination", "bookings", "revenue", "avg"}).
			AddRow(2, "Morning Express", "Leeds", "London", 12, 1440.0, 120.0))

	journeys, err := repo.JourneyPerformance(3, "", "")
	if err != nil {
		t.Fatalf("JourneyPerformance returned error: %v", err)
	}
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}
	j := journeys[0]
	if j.JourneyName != "Morning Express" || j.Origin != "Leeds" || j.Destination != "London" {
		t.Fatalf("journey scanned wrong: %+v", j)
	}
	if j.AverageBookingValue != 120 {
		t.Fatalf("average booking value scanned wrong: %v", j.AverageBookingValue)
	}
}

func TestOverviewWrapsStorageError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errConn)

	_, err := repo.Overview("", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsStorageUnavailable(err) {
		t.Fatalf("expected StorageUnavailableError, got %T: %v", err, err)
	}
}

func TestDailyTotalsWindowArgs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("DATE_FORMAT").
		WithArgs("2024-01-01", "2024-01-03").
		WillReturnRows(sqlmock.NewRows([]string{"date", "count", "revenue"}).
			AddRow("2024-01-01", 3, 300))

	rows, err := repo.DailyTotals("2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("DailyTotals returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2024-01-01" {
		t.Fatalf("daily totals scanned wrong: %+v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
