package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// Booking represents a reservation against an appointment. Contact
// fields are a denormalized copy taken at booking time, not a live
// reference to the user record. UserID is nil for guest bookings.
type Booking struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"appointment_id"`
	UserID             *uuid.UUID    `gorm:"type:uuid;index" json:"user_id,omitempty"`
	FirstName          string        `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName           string        `gorm:"type:varchar(50);not null" json:"last_name"`
	Email              string        `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone              string        `gorm:"type:varchar(20);not null" json:"phone"`
	BidderAccount      string        `gorm:"type:varchar(50)" json:"bidder_account,omitempty"`
	PrivacyAccepted    bool          `gorm:"not null" json:"privacy_accepted"`
	MarketingAccepted  bool          `gorm:"not null;default:false" json:"marketing_accepted"`
	Status             BookingStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED';index" json:"status"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CancellationReason string        `gorm:"type:varchar(500)" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	User        *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsConfirmed checks if the booking currently consumes capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsNoShow checks if the booking was administratively marked a no-show
func (b *Booking) IsNoShow() bool {
	return b.Status == BookingStatusNoShow
}

// IsTerminal checks if no further transition is permitted. CANCELLED and
// NO_SHOW are both final states.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusNoShow
}
