package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	AppointmentID     uuid.UUID  `json:"appointment_id" validate:"required"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
	FirstName         string     `json:"first_name" validate:"required,min=2,max=50"`
	LastName          string     `json:"last_name" validate:"required,min=2,max=50"`
	Email             string     `json:"email" validate:"required,email"`
	Phone             string     `json:"phone" validate:"required,min=8,max=20"`
	BidderAccount     string     `json:"bidder_account" validate:"omitempty,max=50"`
	PrivacyAccepted   bool       `json:"privacy_accepted" validate:"eq=true"`
	MarketingAccepted bool       `json:"marketing_accepted"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// BookingFilterRequest is populated from query parameters.
type BookingFilterRequest struct {
	AppointmentID string
	Status        string
	Search        string
	Limit         int
	Offset        int
}

// Response DTOs

type BookingResponse struct {
	ID                 uuid.UUID            `json:"id"`
	AppointmentID      uuid.UUID            `json:"appointment_id"`
	UserID             *uuid.UUID           `json:"user_id,omitempty"`
	FirstName          string               `json:"first_name"`
	LastName           string               `json:"last_name"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	BidderAccount      string               `json:"bidder_account,omitempty"`
	Status             string               `json:"status"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	Appointment        *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}
