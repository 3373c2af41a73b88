package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Type            string `json:"type" validate:"required,oneof=PICKUP VIEWING"`
	AuctionNumber   string `json:"auction_number" validate:"required,max=50"`
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	Location        string `json:"location" validate:"required,min=5,max=200"`
	MaxParticipants int    `json:"max_participants" validate:"required,min=1,max=100"`
}

type UpdateAppointmentRequest struct {
	Type            *string `json:"type" validate:"omitempty,oneof=PICKUP VIEWING"`
	AuctionNumber   *string `json:"auction_number" validate:"omitempty,max=50"`
	Title           *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	Date            *string `json:"date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	Location        *string `json:"location" validate:"omitempty,min=5,max=200"`
	MaxParticipants *int    `json:"max_participants" validate:"omitempty,min=1,max=100"`
}

// AppointmentFilterRequest is populated from query parameters.
type AppointmentFilterRequest struct {
	Type     string
	Status   string
	DateFrom string
	DateTo   string
	Search   string
	Limit    int
	Offset   int
}

// Response DTOs

type AppointmentResponse struct {
	ID                  uuid.UUID `json:"id"`
	Type                string    `json:"type"`
	AuctionNumber       string    `json:"auction_number"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Date                string    `json:"date"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	AvailableSlots      int       `json:"available_slots"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

type AvailabilityResponse struct {
	AppointmentID       uuid.UUID `json:"appointment_id"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	AvailableSlots      int       `json:"available_slots"`
	IsAvailable         bool      `json:"is_available"`
	UtilizationRate     float64   `json:"utilization_rate"`
}
