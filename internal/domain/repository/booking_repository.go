package repository

import (
	"context"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
)

type BookingRepository interface {
	// CreateConfirmed atomically reserves one unit of appointment
	// capacity and persists the booking in a single transaction. The
	// reservation is a conditional increment on current_participants
	// guarded by status and capacity, so two racing callers can never
	// both consume the last slot. Returns ErrAppointmentNotFound,
	// ErrAppointmentNotActive or ErrCapacityExceeded when the guard
	// does not hold.
	CreateConfirmed(ctx context.Context, booking *entity.Booking) error

	// CancelAndRelease flips a CONFIRMED booking to CANCELLED and
	// decrements the owning appointment's counter in one transaction.
	// The status flip is a conditional update, so a second cancel
	// observes zero affected rows and fails with
	// ErrBookingAlreadyCancelled instead of double-decrementing.
	CancelAndRelease(ctx context.Context, id uuid.UUID, reason string, at time.Time) (*entity.Booking, error)

	// MarkNoShow transitions CONFIRMED -> NO_SHOW. Capacity is left
	// untouched: the slot was consumed whether or not the participant
	// appeared.
	MarkNoShow(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter *entity.BookingFilter) ([]entity.Booking, int64, error)

	// Dashboard aggregates
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)
	CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
