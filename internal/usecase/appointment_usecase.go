package usecase

import (
	"context"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/converter"
	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	"github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) error
	CompleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	cache           AvailabilityCache
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	cache AvailabilityCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		cache:           cache,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTimeWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		Type:            entity.AppointmentType(req.Type),
		AuctionNumber:   req.AuctionNumber,
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		Status:          entity.AppointmentStatusActive,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, auction=%s, capacity=%d",
		appointment.ID, appointment.AuctionNumber, appointment.MaxParticipants)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	entityFilter := &entity.AppointmentFilter{}
	if filter != nil {
		entityFilter.Type = filter.Type
		entityFilter.Status = filter.Status
		entityFilter.DateFrom = filter.DateFrom
		entityFilter.DateTo = filter.DateTo
		entityFilter.Search = filter.Search
		entityFilter.Limit = filter.Limit
		entityFilter.Offset = filter.Offset
	}

	appointments, total, err := u.appointmentRepo.FindAll(ctx, entityFilter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

// UpdateAppointment applies administrative edits. The participant
// counter is never written here; shrinking MaxParticipants below the
// number of confirmed bookings is rejected.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentNotEditable
	}

	if req.Type != nil {
		appointment.Type = entity.AppointmentType(*req.Type)
	}
	if req.AuctionNumber != nil {
		appointment.AuctionNumber = *req.AuctionNumber
	}
	if req.Title != nil {
		appointment.Title = *req.Title
	}
	if req.Description != nil {
		appointment.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseAppointmentDate(*req.Date)
		if err != nil {
			return nil, err
		}
		appointment.Date = date
	}
	if req.StartTime != nil {
		appointment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		appointment.EndTime = *req.EndTime
	}
	if err := validateTimeWindow(appointment.StartTime, appointment.EndTime); err != nil {
		return nil, err
	}
	if req.Location != nil {
		appointment.Location = *req.Location
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < appointment.CurrentParticipants {
			return nil, ErrCapacityBelowBooked
		}
		appointment.MaxParticipants = *req.MaxParticipants
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, id)

	u.log.Infof("Appointment updated: id=%s", id)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	return u.transitionAppointment(ctx, id, entity.AppointmentStatusCancelled)
}

func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, id uuid.UUID) error {
	return u.transitionAppointment(ctx, id, entity.AppointmentStatusCompleted)
}

// transitionAppointment moves an ACTIVE appointment to a terminal
// status. The conditional update in the repository makes terminal
// states sticky; when it matches no row the appointment is fetched once
// to report the precise reason.
func (u *appointmentUsecase) transitionAppointment(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	affected, err := u.appointmentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		u.log.Warnf("Failed to transition appointment %s to %s: %+v", id, status, err)
		return err
	}
	if affected == 0 {
		appointment, err := u.appointmentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		return ErrAppointmentNotActive
	}

	u.cache.Invalidate(ctx, id)

	u.log.Infof("Appointment %s transitioned to %s", id, status)
	return nil
}

func parseAppointmentDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return time.Time{}, ErrPastDate
	}
	return date, nil
}

func validateTimeWindow(start, end string) error {
	startAt, err := time.Parse("15:04", start)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	endAt, err := time.Parse("15:04", end)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if !endAt.After(startAt) {
		return ErrInvalidTimeRange
	}
	return nil
}
