package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotActive    = errors.New("appointment is not active")
	ErrAppointmentNotEditable  = errors.New("appointment is in a terminal state")
	ErrCapacityExceeded        = errors.New("appointment is fully booked")
	ErrCapacityBelowBooked     = errors.New("max participants cannot be lower than current bookings")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrBookingNotCancellable   = errors.New("booking is in a terminal state")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrInvalidDateFormat       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat       = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange        = errors.New("end time must be after start time")
	ErrPastDate                = errors.New("date must not be in the past")

	// ErrTransientStore is returned once bounded retries against the
	// store are exhausted. Safe for the caller to retry later; internal
	// store details are deliberately not exposed.
	ErrTransientStore = errors.New("temporary storage failure, please retry")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isTransientError reports whether the store failure is worth retrying:
// serialization aborts, deadlocks, connection-level faults and resource
// exhaustion. Precondition violations and constraint errors are not
// retried.
func isTransientError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch {
	case pgErr.Code == "40001": // serialization_failure
		return true
	case pgErr.Code == "40P01": // deadlock_detected
		return true
	case strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
		return true
	case strings.HasPrefix(pgErr.Code, "53"): // insufficient resources
		return true
	}
	return false
}
