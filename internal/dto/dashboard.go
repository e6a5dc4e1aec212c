package dto

// DashboardSummaryResponse carries the four KPI cards.
type DashboardSummaryResponse struct {
	PendingReports int     `json:"pendingReports"`
	ActiveBans     int     `json:"activeBans"`
	PaidTodayTHB   float64 `json:"paidTodayTHB"`
	PaidTodayLabel string  `json:"paidTodayLabel"`
	NewUsersToday  int     `json:"newUsersToday"`
}

// DailySeriesPoint is one calendar-day bucket of paid volume. Date is the
// epoch millisecond of that day's local midnight.
type DailySeriesPoint struct {
	Date     int64   `json:"date"`
	Label    string  `json:"label"`
	ValueTHB float64 `json:"valueTHB"`
}

// DailySeriesResponse is the trailing paid-volume series, oldest day first.
type DailySeriesResponse struct {
	WindowDays int                `json:"windowDays"`
	Points     []DailySeriesPoint `json:"points"`
}

// UserCompositionResponse is a two-bucket account histogram. The order is
// fixed (teacher first) so the chart legend stays stable.
type UserCompositionResponse struct {
	Teacher    int `json:"teacher"`
	NonTeacher int `json:"nonTeacher"`
}
