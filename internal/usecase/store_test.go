package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arslanrestlos/terminbuchung/config"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	"github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/google/uuid"
)

func testReservationConfig() config.ReservationConfig {
	return config.ReservationConfig{MaxRetries: 3, RetryBackoff: time.Millisecond}
}

// memoryStore backs the fake repositories used by the usecase tests.
// Every mutation holds the mutex for its full duration, mirroring the
// transactional atomicity the real store provides: the capacity guard
// and the booking insert are observed as a single step by concurrent
// callers.
type memoryStore struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
	bookings     map[uuid.UUID]*entity.Booking
	users        map[uuid.UUID]*entity.User

	// Injected faults, consumed one per call before the real logic
	// runs. A nil entry means the call succeeds.
	createFaults     []error
	cancelFaults     []error
	userCreateFaults []error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		appointments: make(map[uuid.UUID]*entity.Appointment),
		bookings:     make(map[uuid.UUID]*entity.Booking),
		users:        make(map[uuid.UUID]*entity.User),
	}
}

func (s *memoryStore) addAppointment(a *entity.Appointment) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	stored := *a
	s.appointments[a.ID] = &stored
	return a.ID
}

func (s *memoryStore) addUser(u *entity.User) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := *u
	s.users[u.ID] = &stored
	return u.ID
}

func (s *memoryStore) participants(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id].CurrentParticipants
}

func popFault(queue *[]error) (error, bool) {
	if len(*queue) == 0 {
		return nil, false
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err, true
}

type fakeBookingRepo struct {
	store *memoryStore
}

func (r *fakeBookingRepo) CreateConfirmed(ctx context.Context, booking *entity.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := popFault(&s.createFaults); ok && err != nil {
		return err
	}

	appointment, ok := s.appointments[booking.AppointmentID]
	if !ok {
		return repository.ErrAppointmentNotFound
	}
	if appointment.Status != entity.AppointmentStatusActive {
		return repository.ErrAppointmentNotActive
	}
	if appointment.CurrentParticipants >= appointment.MaxParticipants {
		return repository.ErrCapacityExceeded
	}

	appointment.CurrentParticipants++
	booking.ID = uuid.New()
	booking.Status = entity.BookingStatusConfirmed
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	stored := *booking
	stored.Appointment = entity.Appointment{}
	s.bookings[booking.ID] = &stored
	booking.Appointment = *appointment
	return nil
}

func (r *fakeBookingRepo) CancelAndRelease(ctx context.Context, id uuid.UUID, reason string, at time.Time) (*entity.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := popFault(&s.cancelFaults); ok && err != nil {
		return nil, err
	}

	booking, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, repository.ErrBookingAlreadyCancelled
	case entity.BookingStatusConfirmed:
	default:
		return nil, repository.ErrBookingNotCancellable
	}

	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &at
	booking.CancellationReason = reason
	booking.UpdatedAt = at

	appointment := s.appointments[booking.AppointmentID]
	if appointment != nil && appointment.CurrentParticipants > 0 {
		appointment.CurrentParticipants--
	}

	out := *booking
	if appointment != nil {
		out.Appointment = *appointment
	}
	return &out, nil
}

func (r *fakeBookingRepo) MarkNoShow(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, repository.ErrBookingNotCancellable
	}
	booking.Status = entity.BookingStatusNoShow
	booking.UpdatedAt = time.Now().UTC()

	out := *booking
	if appointment := s.appointments[booking.AppointmentID]; appointment != nil {
		out.Appointment = *appointment
	}
	return &out, nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	out := *booking
	if appointment := s.appointments[booking.AppointmentID]; appointment != nil {
		out.Appointment = *appointment
	}
	return &out, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, filter *entity.BookingFilter) ([]entity.Booking, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entity.Booking
	for _, booking := range s.bookings {
		if filter.AppointmentID != "" && booking.AppointmentID.String() != filter.AppointmentID {
			continue
		}
		if filter.Status != "" && string(booking.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(booking.Email), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, *booking)
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, booking := range s.bookings {
		if booking.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, booking := range s.bookings {
		if booking.Status == entity.BookingStatusConfirmed &&
			!booking.CreatedAt.Before(from) && booking.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeAppointmentRepo struct {
	store *memoryStore
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.store.addAppointment(appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	out := *appointment
	return &out, nil
}

func (r *fakeAppointmentRepo) FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entity.Appointment
	for _, appointment := range s.appointments {
		if filter.Type != "" && string(appointment.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(appointment.Status) != filter.Status {
			continue
		}
		result = append(result, *appointment)
	}
	return result, int64(len(result)), nil
}

// Update mirrors the real implementation: the participant counter and
// the status are never written through this path.
func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[appointment.ID]
	if !ok {
		return repository.ErrAppointmentNotFound
	}
	updated := *appointment
	updated.CurrentParticipants = current.CurrentParticipants
	updated.Status = current.Status
	s.appointments[appointment.ID] = &updated
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok || appointment.Status != entity.AppointmentStatusActive {
		return 0, nil
	}
	appointment.Status = status
	return 1, nil
}

func (r *fakeAppointmentRepo) CountByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, appointment := range s.appointments {
		if appointment.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CountActiveOnDate(ctx context.Context, date string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, appointment := range s.appointments {
		if appointment.Status == entity.AppointmentStatusActive &&
			appointment.Date.Format("2006-01-02") == date {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CapacityTotals(ctx context.Context) (int64, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var capacity, booked int64
	for _, appointment := range s.appointments {
		if appointment.Status != entity.AppointmentStatusActive {
			continue
		}
		capacity += int64(appointment.MaxParticipants)
		booked += int64(appointment.CurrentParticipants)
	}
	return capacity, booked, nil
}

func (r *fakeAppointmentRepo) FindCounterMismatches(ctx context.Context) ([]entity.CounterMismatch, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmed := make(map[uuid.UUID]int64)
	for _, booking := range s.bookings {
		if booking.Status == entity.BookingStatusConfirmed {
			confirmed[booking.AppointmentID]++
		}
	}

	var mismatches []entity.CounterMismatch
	for id, appointment := range s.appointments {
		if int64(appointment.CurrentParticipants) != confirmed[id] {
			mismatches = append(mismatches, entity.CounterMismatch{
				AppointmentID:       id,
				CurrentParticipants: appointment.CurrentParticipants,
				ConfirmedBookings:   confirmed[id],
			})
		}
	}
	return mismatches, nil
}

type fakeUserRepo struct {
	store *memoryStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	if err, ok := popFault(&s.userCreateFaults); ok && err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	r.store.addUser(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CountActive(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, user := range s.users {
		if user.IsActive {
			count++
		}
	}
	return count, nil
}

// memoryCache is an in-process AvailabilityCache and StatsCache. Unlike
// the Redis-backed service it never expires entries, which lets tests
// assert invalidation directly.
type memoryCache struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*entity.AvailabilitySnapshot
	stats     *entity.DashboardStats
}

func newMemoryCache() *memoryCache {
	return &memoryCache{snapshots: make(map[uuid.UUID]*entity.AvailabilitySnapshot)}
}

func (c *memoryCache) Fetch(ctx context.Context, appointmentID uuid.UUID) (*entity.AvailabilitySnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, ok := c.snapshots[appointmentID]
	return snapshot, ok
}

func (c *memoryCache) Store(ctx context.Context, snapshot *entity.AvailabilitySnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.AppointmentID] = snapshot
}

func (c *memoryCache) Invalidate(ctx context.Context, appointmentID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, appointmentID)
}

func (c *memoryCache) FetchStats(ctx context.Context) (*entity.DashboardStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, c.stats != nil
}

func (c *memoryCache) StoreStats(ctx context.Context, stats *entity.DashboardStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = stats
}
