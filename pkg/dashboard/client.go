package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// Client fetches the composite dashboard report from the analytics API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// FetchDashboard issues one GET /api/analytics/dashboard request for the
// given range. A 401 comes back as AuthError so the caller can clear its
// session.
func (c *Client) FetchDashboard(ctx context.Context, days int) (models.DashboardReport, error) {
	var report models.DashboardReport

	url := c.BaseURL + "/api/analytics/dashboard?days=" + strconv.Itoa(days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return report, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return report, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return report, domain.AuthError{Msg: "session expired", Expired: true}
	case resp.StatusCode != http.StatusOK:
		return report, fmt.Errorf("dashboard request failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return report, fmt.Errorf("decode dashboard report: %w", err)
	}
	return report, nil
}
