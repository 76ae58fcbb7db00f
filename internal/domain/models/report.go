package models

// Derived report records. All of these are recomputed per request from the
// booking tables; nothing here is persisted.

// Overview summarizes bookings over a date window. AverageBookingValue is
// revenue/bookings and stays 0 when there are no bookings.
type Overview struct {
	TotalBookings       int            `json:"total_bookings"`
	TotalRevenue        float64        `json:"total_revenue"`
	AverageBookingValue float64        `json:"average_booking_value"`
	BookingsByStatus    map[string]int `json:"bookings_by_status"`
	BookingsByClass     map[string]int `json:"bookings_by_class"`
}

// DailyTrendPoint is one calendar day in a trend series. Days without
// bookings still appear with zero values.
type DailyTrendPoint struct {
	Date         string  `json:"date"`
	BookingCount int     `json:"booking_count"`
	Revenue      float64 `json:"revenue"`
}

// RouteSummary aggregates bookings per origin/destination pair.
type RouteSummary struct {
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	BookingCount int     `json:"booking_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AveragePrice float64 `json:"average_price"`
}

// ClassDistributionEntry is one carriage class share of all bookings in
// range. Percentage is booking_count / total x 100, rounded to 2 decimals.
type ClassDistributionEntry struct {
	ClassName    string  `json:"class_name"`
	BookingCount int     `json:"booking_count"`
	Revenue      float64 `json:"revenue"`
	Percentage   float64 `json:"percentage"`
}

type TopSpender struct {
	PassengerID   int64   `json:"passenger_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	TotalBookings int     `json:"total_bookings"`
	TotalSpent    float64 `json:"total_spent"`
}

type JourneyPerformance struct {
	JourneyID           int64   `json:"journey_id"`
	JourneyName         string  `json:"journey_name"`
	Origin              string  `json:"origin"`
	Destination         string  `json:"destination"`
	TotalBookings       int     `json:"total_bookings"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

type DatedRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type ClassRevenue struct {
	Class   string  `json:"class"`
	Revenue float64 `json:"revenue"`
}

type RouteRevenue struct {
	Route   string  `json:"route"`
	Revenue float64 `json:"revenue"`
}

// RevenueStats breaks total revenue down by date, class and route.
type RevenueStats struct {
	TotalRevenue   float64        `json:"total_revenue"`
	RevenueByDate  []DatedRevenue `json:"revenue_by_date"`
	RevenueByClass []ClassRevenue `json:"revenue_by_class"`
	RevenueByRoute []RouteRevenue `json:"revenue_by_route"`
}

// DashboardReport is the single composite payload the dashboard client
// fetches per time range.
type DashboardReport struct {
	Overview          Overview                 `json:"overview"`
	DailyTrends       []DailyTrendPoint        `json:"daily_trends"`
	PopularRoutes     []RouteSummary           `json:"popular_routes"`
	ClassDistribution []ClassDistributionEntry `json:"class_distribution"`
}
