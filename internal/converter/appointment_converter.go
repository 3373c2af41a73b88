package converter

import (
	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                  appointment.ID,
		Type:                string(appointment.Type),
		AuctionNumber:       appointment.AuctionNumber,
		Title:               appointment.Title,
		Description:         appointment.Description,
		Date:                appointment.Date.Format("2006-01-02"),
		StartTime:           appointment.StartTime,
		EndTime:             appointment.EndTime,
		Location:            appointment.Location,
		MaxParticipants:     appointment.MaxParticipants,
		CurrentParticipants: appointment.CurrentParticipants,
		AvailableSlots:      appointment.AvailableSlots(),
		Status:              string(appointment.Status),
		CreatedAt:           appointment.CreatedAt,
		UpdatedAt:           appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AvailabilityToResponse converts an advisory availability snapshot
func AvailabilityToResponse(snapshot *entity.AvailabilitySnapshot) *dto.AvailabilityResponse {
	if snapshot == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		AppointmentID:       snapshot.AppointmentID,
		MaxParticipants:     snapshot.MaxParticipants,
		CurrentParticipants: snapshot.CurrentParticipants,
		AvailableSlots:      snapshot.AvailableSlots,
		IsAvailable:         snapshot.IsAvailable,
		UtilizationRate:     snapshot.UtilizationRate,
	}
}
