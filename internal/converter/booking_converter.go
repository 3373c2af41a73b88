package converter

import (
	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to its response DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:                 booking.ID,
		AppointmentID:      booking.AppointmentID,
		UserID:             booking.UserID,
		FirstName:          booking.FirstName,
		LastName:           booking.LastName,
		Email:              booking.Email,
		Phone:              booking.Phone,
		BidderAccount:      booking.BidderAccount,
		Status:             string(booking.Status),
		CancelledAt:        booking.CancelledAt,
		CancellationReason: booking.CancellationReason,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	// Include appointment info if loaded
	if booking.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&booking.Appointment)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
