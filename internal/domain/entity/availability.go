package entity

import "github.com/google/uuid"

// AvailabilitySnapshot is an advisory view of remaining capacity, used
// by display callers to pre-check before booking. It can be stale the
// moment it is produced; the authoritative capacity check is the
// conditional update inside the booking create path.
type AvailabilitySnapshot struct {
	AppointmentID       uuid.UUID `json:"appointment_id"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	AvailableSlots      int       `json:"available_slots"`
	IsAvailable         bool      `json:"is_available"`
	UtilizationRate     float64   `json:"utilization_rate"`
}

// NewAvailabilitySnapshot derives the advisory view from an appointment row.
func NewAvailabilitySnapshot(a *Appointment) *AvailabilitySnapshot {
	return &AvailabilitySnapshot{
		AppointmentID:       a.ID,
		MaxParticipants:     a.MaxParticipants,
		CurrentParticipants: a.CurrentParticipants,
		AvailableSlots:      a.AvailableSlots(),
		IsAvailable:         !a.IsFull(),
		UtilizationRate:     a.UtilizationRate(),
	}
}

// DashboardStats aggregates booking activity for the admin dashboard.
type DashboardStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	TotalBookings     int64   `json:"total_bookings"`
	TotalUsers        int64   `json:"total_users"`
	TodayAppointments int64   `json:"today_appointments"`
	TodayBookings     int64   `json:"today_bookings"`
	UtilizationRate   float64 `json:"utilization_rate"`
}
