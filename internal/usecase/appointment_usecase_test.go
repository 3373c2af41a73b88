package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
)

func newAppointmentStack(t *testing.T) (*memoryStore, *memoryCache, AppointmentUsecase) {
	t.Helper()
	store := newMemoryStore()
	cache := newMemoryCache()
	log, _ := test.NewNullLogger()
	uc := NewAppointmentUsecase(log, &fakeAppointmentRepo{store: store}, cache)
	return store, cache, uc
}

func createAppointmentRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		Type:            string(entity.AppointmentTypeViewing),
		AuctionNumber:   "A-2044",
		Title:           "Preview day",
		Date:            time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02"),
		StartTime:       "10:00",
		EndTime:         "16:00",
		Location:        "Showroom, Hamburg",
		MaxParticipants: 20,
	}
}

func TestCreateAppointmentStartsActiveAndEmpty(t *testing.T) {
	t.Parallel()
	_, _, uc := newAppointmentStack(t)

	appointment, err := uc.CreateAppointment(context.Background(), createAppointmentRequest())
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appointment.Status != string(entity.AppointmentStatusActive) {
		t.Errorf("status: got %q, want ACTIVE", appointment.Status)
	}
	if appointment.CurrentParticipants != 0 {
		t.Errorf("participants: got %d, want 0", appointment.CurrentParticipants)
	}
	if appointment.AvailableSlots != 20 {
		t.Errorf("available slots: got %d, want 20", appointment.AvailableSlots)
	}
}

func TestCreateAppointmentRejectsBadDates(t *testing.T) {
	t.Parallel()
	_, _, uc := newAppointmentStack(t)

	cases := []struct {
		name    string
		mutate  func(req *dto.CreateAppointmentRequest)
		wantErr error
	}{
		{"malformed date", func(req *dto.CreateAppointmentRequest) { req.Date = "14.02.2027" }, ErrInvalidDateFormat},
		{"past date", func(req *dto.CreateAppointmentRequest) { req.Date = "2020-01-01" }, ErrPastDate},
		{"malformed time", func(req *dto.CreateAppointmentRequest) { req.StartTime = "10am" }, ErrInvalidTimeFormat},
		{"end before start", func(req *dto.CreateAppointmentRequest) { req.StartTime = "16:00"; req.EndTime = "10:00" }, ErrInvalidTimeRange},
		{"zero-length window", func(req *dto.CreateAppointmentRequest) { req.StartTime = "10:00"; req.EndTime = "10:00" }, ErrInvalidTimeRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createAppointmentRequest()
			tc.mutate(req)
			_, err := uc.CreateAppointment(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	t.Parallel()
	_, _, uc := newAppointmentStack(t)

	_, err := uc.GetAppointment(context.Background(), uuid.New())
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("got %v, want ErrAppointmentNotFound", err)
	}
}

func TestUpdateAppointmentCannotShrinkBelowBooked(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	id := store.addAppointment(activeAppointment(10, 6))

	smaller := 5
	_, err := uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{
		MaxParticipants: &smaller,
	})
	if !errors.Is(err, ErrCapacityBelowBooked) {
		t.Errorf("got %v, want ErrCapacityBelowBooked", err)
	}
}

func TestUpdateAppointmentAllowsShrinkToBooked(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	id := store.addAppointment(activeAppointment(10, 6))

	exact := 6
	updated, err := uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{
		MaxParticipants: &exact,
	})
	if err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if updated.MaxParticipants != 6 || updated.AvailableSlots != 0 {
		t.Errorf("got max=%d slots=%d, want max=6 slots=0", updated.MaxParticipants, updated.AvailableSlots)
	}
}

func TestUpdateAppointmentTerminalRejected(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	appointment := activeAppointment(10, 0)
	appointment.Status = entity.AppointmentStatusCompleted
	id := store.addAppointment(appointment)

	title := "New title"
	_, err := uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{
		Title: &title,
	})
	if !errors.Is(err, ErrAppointmentNotEditable) {
		t.Errorf("got %v, want ErrAppointmentNotEditable", err)
	}
}

func TestUpdateAppointmentNeverTouchesCounter(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	id := store.addAppointment(activeAppointment(10, 4))

	title := "Extended preview"
	updated, err := uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{
		Title: &title,
	})
	if err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if updated.CurrentParticipants != 4 {
		t.Errorf("participants: got %d, want 4", updated.CurrentParticipants)
	}
	if got := store.participants(id); got != 4 {
		t.Errorf("stored participants: got %d, want 4", got)
	}
}

func TestCancelAppointmentIsSticky(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	id := store.addAppointment(activeAppointment(10, 0))

	if err := uc.CancelAppointment(context.Background(), id); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}

	// A second transition must fail: terminal states are final.
	err := uc.CompleteAppointment(context.Background(), id)
	if !errors.Is(err, ErrAppointmentNotActive) {
		t.Errorf("got %v, want ErrAppointmentNotActive", err)
	}
}

func TestCancelAppointmentStopsNewBookings(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()
	cache := newMemoryCache()
	log, _ := test.NewNullLogger()
	appointmentUC := NewAppointmentUsecase(log, &fakeAppointmentRepo{store: store}, cache)

	logB, _ := test.NewNullLogger()
	reservationUC := NewReservationUsecase(
		logB,
		&fakeBookingRepo{store: store},
		&fakeAppointmentRepo{store: store},
		&fakeUserRepo{store: store},
		cache,
		testReservationConfig(),
	)

	id := store.addAppointment(activeAppointment(10, 0))
	if err := appointmentUC.CancelAppointment(context.Background(), id); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}

	_, err := reservationUC.CreateBooking(context.Background(), bookingRequest(id))
	if !errors.Is(err, ErrAppointmentNotActive) {
		t.Errorf("got %v, want ErrAppointmentNotActive", err)
	}
}

func TestTransitionMissingAppointment(t *testing.T) {
	t.Parallel()
	_, _, uc := newAppointmentStack(t)

	err := uc.CancelAppointment(context.Background(), uuid.New())
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("got %v, want ErrAppointmentNotFound", err)
	}
}

func TestListAppointmentsFiltersByType(t *testing.T) {
	t.Parallel()
	store, _, uc := newAppointmentStack(t)
	store.addAppointment(activeAppointment(5, 0))
	viewing := activeAppointment(5, 0)
	viewing.Type = entity.AppointmentTypeViewing
	store.addAppointment(viewing)

	list, err := uc.ListAppointments(context.Background(), &dto.AppointmentFilterRequest{
		Type: string(entity.AppointmentTypeViewing),
	})
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("total: got %d, want 1", list.Total)
	}
}
