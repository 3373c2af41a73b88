package dto

type DashboardStatsResponse struct {
	TotalAppointments int64   `json:"total_appointments"`
	TotalBookings     int64   `json:"total_bookings"`
	TotalUsers        int64   `json:"total_users"`
	TodayAppointments int64   `json:"today_appointments"`
	TodayBookings     int64   `json:"today_bookings"`
	UtilizationRate   float64 `json:"utilization_rate"`
}
