package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/arslanrestlos/terminbuchung/config"
	"github.com/arslanrestlos/terminbuchung/internal/converter"
	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	"github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AvailabilityCache is the advisory cache consulted by display reads.
// Implementations must treat every method as best-effort: a cache
// failure never fails the operation that triggered it.
type AvailabilityCache interface {
	Fetch(ctx context.Context, appointmentID uuid.UUID) (*entity.AvailabilitySnapshot, bool)
	Store(ctx context.Context, snapshot *entity.AvailabilitySnapshot)
	Invalidate(ctx context.Context, appointmentID uuid.UUID)
}

type ReservationUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error)
	GetAvailableSlots(ctx context.Context, appointmentID uuid.UUID) (*dto.AvailabilityResponse, error)
}

type reservationUsecase struct {
	log             *logrus.Logger
	bookingRepo     repository.BookingRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	cache           AvailabilityCache
	maxRetries      int
	retryBackoff    time.Duration
}

func NewReservationUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	cache AvailabilityCache,
	cfg config.ReservationConfig,
) ReservationUsecase {
	return &reservationUsecase{
		log:             log,
		bookingRepo:     bookingRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		cache:           cache,
		maxRetries:      cfg.MaxRetries,
		retryBackoff:    cfg.RetryBackoff,
	}
}

// CreateBooking reserves one unit of appointment capacity and persists
// the booking. Contact fields arrive pre-validated by the delivery
// layer; the invariants re-checked here are the ones this service owns:
// appointment existence, ACTIVE status and capacity. The check and the
// reservation are a single atomic store operation, so concurrent
// callers on the last slot resolve to exactly one success. No ordering
// between concurrent callers is promised: first-attempted is not
// necessarily first-served.
func (u *reservationUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if req.UserID != nil {
		user, err := u.userRepo.FindByID(ctx, *req.UserID)
		if err != nil {
			u.log.Warnf("Failed to look up user %s: %+v", *req.UserID, err)
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	booking := &entity.Booking{
		AppointmentID:     req.AppointmentID,
		UserID:            req.UserID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		BidderAccount:     req.BidderAccount,
		PrivacyAccepted:   req.PrivacyAccepted,
		MarketingAccepted: req.MarketingAccepted,
	}

	err := u.withRetry(ctx, "create booking", func() error {
		return u.bookingRepo.CreateConfirmed(ctx, booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, repository.ErrAppointmentNotActive):
			return nil, ErrAppointmentNotActive
		case errors.Is(err, repository.ErrCapacityExceeded):
			// Expected under contention, not an error-level event.
			u.log.Debugf("Appointment %s fully booked", req.AppointmentID)
			return nil, ErrCapacityExceeded
		case errors.Is(err, ErrTransientStore):
			return nil, err
		}
		u.log.Warnf("Failed to create booking for appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, booking.AppointmentID)

	u.log.Infof("Booking created: id=%s, appointment=%s, participants=%d/%d",
		booking.ID, booking.AppointmentID,
		booking.Appointment.CurrentParticipants, booking.Appointment.MaxParticipants)
	return converter.BookingToResponse(booking), nil
}

// CancelBooking releases the booking's slot exactly once. A repeated
// cancel fails with ErrBookingAlreadyCancelled and leaves the counter
// untouched; the guard and the decrement commit atomically in the
// repository.
func (u *reservationUsecase) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*dto.BookingResponse, error) {
	var booking *entity.Booking

	err := u.withRetry(ctx, "cancel booking", func() error {
		var innerErr error
		booking, innerErr = u.bookingRepo.CancelAndRelease(ctx, bookingID, reason, time.Now().UTC())
		return innerErr
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrBookingAlreadyCancelled):
			return nil, ErrBookingAlreadyCancelled
		case errors.Is(err, repository.ErrBookingNotCancellable):
			return nil, ErrBookingNotCancellable
		case errors.Is(err, ErrTransientStore):
			return nil, err
		}
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, booking.AppointmentID)

	u.log.Infof("Booking cancelled: id=%s, appointment=%s, participants=%d/%d",
		bookingID, booking.AppointmentID,
		booking.Appointment.CurrentParticipants, booking.Appointment.MaxParticipants)
	return converter.BookingToResponse(booking), nil
}

// MarkNoShow flags a confirmed booking whose participant did not
// appear. Capacity is not released: the slot was consumed either way.
func (u *reservationUsecase) MarkNoShow(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.MarkNoShow(ctx, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrBookingNotCancellable):
			return nil, ErrBookingNotCancellable
		}
		u.log.Warnf("Failed to mark booking %s as no-show: %+v", bookingID, err)
		return nil, err
	}

	u.log.Infof("Booking marked no-show: id=%s", bookingID)
	return converter.BookingToResponse(booking), nil
}

func (u *reservationUsecase) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

func (u *reservationUsecase) ListBookings(ctx context.Context, filter *dto.BookingFilterRequest) (*dto.BookingListResponse, error) {
	entityFilter := &entity.BookingFilter{}
	if filter != nil {
		entityFilter.AppointmentID = filter.AppointmentID
		entityFilter.Status = filter.Status
		entityFilter.Search = filter.Search
		entityFilter.Limit = filter.Limit
		entityFilter.Offset = filter.Offset
	}

	bookings, total, err := u.bookingRepo.FindAll(ctx, entityFilter)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    total,
	}, nil
}

// GetAvailableSlots is an advisory read for display callers. The result
// can be stale immediately after return under concurrent writes; it is
// never a substitute for the atomic check inside CreateBooking. The
// cache is invalidated by every create/cancel, so a serial
// read-after-write sees the fresh counter.
func (u *reservationUsecase) GetAvailableSlots(ctx context.Context, appointmentID uuid.UUID) (*dto.AvailabilityResponse, error) {
	if snapshot, ok := u.cache.Fetch(ctx, appointmentID); ok {
		return converter.AvailabilityToResponse(snapshot), nil
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	snapshot := entity.NewAvailabilitySnapshot(appointment)
	u.cache.Store(ctx, snapshot)
	return converter.AvailabilityToResponse(snapshot), nil
}

// withRetry runs fn, retrying transient store failures a bounded number
// of times with linear backoff. Both booking paths are safe to retry:
// atomic commit means a failed attempt left no partial state behind.
func (u *reservationUsecase) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		if attempt > 0 {
			u.log.Warnf("Retrying %s after transient store failure (attempt %d/%d): %+v", op, attempt, u.maxRetries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(u.retryBackoff * time.Duration(attempt)):
			}
		}
		err = fn()
		if err == nil || !isTransientError(err) {
			return err
		}
	}
	u.log.Errorf("Store still failing after %d retries for %s: %+v", u.maxRetries, op, err)
	return ErrTransientStore
}
