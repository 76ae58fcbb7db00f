package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDashboardDecodesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/dashboard", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"overview": {
				"total_bookings": 3,
				"total_revenue": 410,
				"average_booking_value": 136.67,
				"bookings_by_status": {"Confirmed": 3},
				"bookings_by_class": {"First Class": 1, "Standard": 2}
			},
			"daily_trends": [
				{"date": "2024-01-02", "booking_count": 1, "revenue": 120},
				{"date": "2024-01-03", "booking_count": 2, "revenue": 290}
			],
			"popular_routes": [],
			"class_distribution": []
		}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Token: "tok-123"}
	report, err := c.FetchDashboard(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Overview.TotalBookings)
	assert.Equal(t, 410.0, report.Overview.TotalRevenue)
	assert.Equal(t, 3, report.Overview.BookingsByStatus["Confirmed"])
	require.Len(t, report.DailyTrends, 2)
	assert.Equal(t, "2024-01-03", report.DailyTrends[1].Date)
	assert.Equal(t, 290.0, report.DailyTrends[1].Revenue)
}

func TestFetchDashboardUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Token: "stale"}
	_, err := c.FetchDashboard(context.Background(), 30)
	require.Error(t, err)
	assert.True(t, domain.IsAuthExpired(err))
}

func TestFetchDashboardServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	_, err := c.FetchDashboard(context.Background(), 30)
	require.Error(t, err)
	assert.False(t, domain.IsAuthExpired(err))
	assert.Contains(t, err.Error(), "status 500")
}
