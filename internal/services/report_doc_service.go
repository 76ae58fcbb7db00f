package services

import (
	"bytes"
	"fmt"
	"time"

	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportDocService renders the composite dashboard report as a PDF summary.
type ReportDocService struct {
	Analytics AnalyticsService
	RequestID string

	// Loader overrides report loading in tests.
	Loader func(days int) (models.DashboardReport, error)
}

func (s ReportDocService) GenerateDashboardPDF(days int) ([]byte, string, error) {
	report, err := s.loadReport(days)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "generate_dashboard_pdf", fmt.Sprintf("days=%d", days))
	return buildDashboardPDF(report, days)
}

func (s ReportDocService) loadReport(days int) (models.DashboardReport, error) {
	if s.Loader != nil {
		return s.Loader(days)
	}
	return s.Analytics.GetDashboard(days)
}

func buildDashboardPDF(rep models.DashboardReport, days int) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Analytics Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING ANALYTICS REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Generated : %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period    : last %d days", days))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Overview")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Total bookings        : %d", rep.Overview.TotalBookings),
		fmt.Sprintf("Total revenue         : %s", formatMoney(rep.Overview.TotalRevenue)),
		fmt.Sprintf("Average booking value : %s", formatMoney(rep.Overview.AverageBookingValue)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Top Routes")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(rep.PopularRoutes) == 0 {
		pdf.Cell(0, 6, "No bookings in period.")
		pdf.Ln(6)
	}
	for i, rt := range rep.PopularRoutes {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s -> %s  bookings=%d  revenue=%s",
			i+1, rt.Origin, rt.Destination, rt.BookingCount, formatMoney(rt.TotalRevenue)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Class Distribution")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(rep.ClassDistribution) == 0 {
		pdf.Cell(0, 6, "No bookings in period.")
		pdf.Ln(6)
	}
	for _, cl := range rep.ClassDistribution {
		pdf.Cell(0, 6, fmt.Sprintf("%-10s bookings=%d  revenue=%s  share=%.2f%%",
			cl.ClassName, cl.BookingCount, formatMoney(cl.Revenue), cl.Percentage))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Figures are recomputed from the booking tables at generation time.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ANALYTICS_%dD_%s.pdf", days, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
