package entity

import "testing"

func TestAvailableSlots(t *testing.T) {
	t.Parallel()
	a := &Appointment{MaxParticipants: 10, CurrentParticipants: 4}
	if got := a.AvailableSlots(); got != 6 {
		t.Errorf("AvailableSlots: got %d, want 6", got)
	}
}

func TestIsFull(t *testing.T) {
	t.Parallel()
	cases := []struct {
		max, current int
		want         bool
	}{
		{10, 0, false},
		{10, 9, false},
		{10, 10, true},
		{0, 0, true},
	}
	for _, tc := range cases {
		a := &Appointment{MaxParticipants: tc.max, CurrentParticipants: tc.current}
		if got := a.IsFull(); got != tc.want {
			t.Errorf("IsFull(%d/%d): got %v, want %v", tc.current, tc.max, got, tc.want)
		}
	}
}

func TestUtilizationRate(t *testing.T) {
	t.Parallel()
	a := &Appointment{MaxParticipants: 8, CurrentParticipants: 2}
	if got := a.UtilizationRate(); got != 25 {
		t.Errorf("UtilizationRate: got %v, want 25", got)
	}

	// Zero capacity must not divide by zero.
	empty := &Appointment{}
	if got := empty.UtilizationRate(); got != 0 {
		t.Errorf("UtilizationRate of empty appointment: got %v, want 0", got)
	}
}

func TestAppointmentTerminalStates(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status   AppointmentStatus
		active   bool
		terminal bool
	}{
		{AppointmentStatusActive, true, false},
		{AppointmentStatusCancelled, false, true},
		{AppointmentStatusCompleted, false, true},
	}
	for _, tc := range cases {
		a := &Appointment{Status: tc.status}
		if got := a.IsActive(); got != tc.active {
			t.Errorf("IsActive(%s): got %v, want %v", tc.status, got, tc.active)
		}
		if got := a.IsTerminal(); got != tc.terminal {
			t.Errorf("IsTerminal(%s): got %v, want %v", tc.status, got, tc.terminal)
		}
	}
}

func TestNewAvailabilitySnapshot(t *testing.T) {
	t.Parallel()
	a := &Appointment{MaxParticipants: 4, CurrentParticipants: 4, Status: AppointmentStatusActive}
	snapshot := NewAvailabilitySnapshot(a)
	if snapshot.IsAvailable {
		t.Error("full appointment reported available")
	}
	if snapshot.AvailableSlots != 0 {
		t.Errorf("AvailableSlots: got %d, want 0", snapshot.AvailableSlots)
	}
	if snapshot.UtilizationRate != 100 {
		t.Errorf("UtilizationRate: got %v, want 100", snapshot.UtilizationRate)
	}
}
