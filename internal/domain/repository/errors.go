package repository

import "errors"

// Sentinel errors surfaced by the persistence layer. The usecase layer
// translates these into its own error vocabulary before they reach
// handlers.
var (
	// ErrAppointmentNotFound is returned when the referenced appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAppointmentNotActive is returned when bookings are attempted
	// against a cancelled or completed appointment.
	ErrAppointmentNotActive = errors.New("appointment is not active")

	// ErrCapacityExceeded is returned when the conditional increment on
	// current_participants matched no row because capacity was full at
	// the moment of the attempt. Expected under contention.
	ErrCapacityExceeded = errors.New("appointment capacity exceeded")

	// ErrBookingNotFound is returned when the referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingAlreadyCancelled guards cancel idempotency: a second
	// cancel must fail instead of double-releasing capacity.
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrBookingNotCancellable is returned for transitions out of a
	// terminal state other than CANCELLED (a NO_SHOW booking).
	ErrBookingNotCancellable = errors.New("booking is in a terminal state and cannot be cancelled")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)
