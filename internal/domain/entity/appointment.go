package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType distinguishes auction pickup slots from viewing slots
type AppointmentType string

const (
	AppointmentTypePickup  AppointmentType = "PICKUP"
	AppointmentTypeViewing AppointmentType = "VIEWING"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusActive    AppointmentStatus = "ACTIVE"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a capacity-bearing viewing or pickup slot.
// CurrentParticipants is maintained incrementally by the booking
// create/cancel paths and must never be written directly.
type Appointment struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type                AppointmentType   `gorm:"type:varchar(20);not null;index" json:"type"`
	AuctionNumber       string            `gorm:"type:varchar(50);not null;index" json:"auction_number"`
	Title               string            `gorm:"type:varchar(200);not null" json:"title"`
	Description         string            `gorm:"type:text" json:"description,omitempty"`
	Date                time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime           string            `gorm:"type:time;not null" json:"start_time"`
	EndTime             string            `gorm:"type:time;not null" json:"end_time"`
	Location            string            `gorm:"type:varchar(200);not null" json:"location"`
	MaxParticipants     int               `gorm:"not null" json:"max_participants"`
	CurrentParticipants int               `gorm:"not null;default:0" json:"current_participants"`
	Status              AppointmentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt           time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Bookings []Booking `gorm:"foreignKey:AppointmentID" json:"bookings,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive checks if the appointment accepts new bookings
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusActive
}

// IsTerminal checks if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

// AvailableSlots returns the remaining capacity
func (a *Appointment) AvailableSlots() int {
	return a.MaxParticipants - a.CurrentParticipants
}

// IsFull checks whether all capacity is consumed
func (a *Appointment) IsFull() bool {
	return a.CurrentParticipants >= a.MaxParticipants
}

// UtilizationRate returns consumed capacity as a percentage (0-100)
func (a *Appointment) UtilizationRate() float64 {
	if a.MaxParticipants == 0 {
		return 0
	}
	return float64(a.CurrentParticipants) / float64(a.MaxParticipants) * 100
}

// CounterMismatch reports an appointment whose incremental counter has
// diverged from the count of its confirmed bookings. Produced by the
// reconciliation query, consumed by the reconciler for logging.
type CounterMismatch struct {
	AppointmentID       uuid.UUID
	CurrentParticipants int
	ConfirmedBookings   int64
}
