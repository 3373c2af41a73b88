package repository

import (
	"context"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	Update(ctx context.Context, appointment *entity.Appointment) error

	// UpdateStatus transitions an ACTIVE appointment to a terminal
	// status. Returns the number of rows affected: 0 means the
	// appointment was missing or already terminal.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error)

	// Dashboard aggregates
	CountByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error)
	CountActiveOnDate(ctx context.Context, date string) (int64, error)
	CapacityTotals(ctx context.Context) (capacity int64, booked int64, err error)

	// FindCounterMismatches returns appointments whose incremental
	// participant counter diverges from the count of their CONFIRMED
	// bookings. Used by the reconciler; a non-empty result indicates an
	// integrity bug or an external write to the counter.
	FindCounterMismatches(ctx context.Context) ([]entity.CounterMismatch, error)
}
