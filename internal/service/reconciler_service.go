package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Timeout for a single reconciliation pass
const reconcileTimeout = 30 * time.Second

// ReconcilerService periodically verifies that every appointment's
// incremental participant counter matches the count of its CONFIRMED
// bookings. The booking paths maintain the counter atomically, so any
// divergence means an integrity bug or a forbidden external write to
// the counter; divergences are logged, not silently repaired.
//
// Call Stop() during graceful shutdown.
type ReconcilerService struct {
	appointmentRepo repository.AppointmentRepository
	log             *logrus.Logger
	interval        time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewReconcilerService creates the reconciler and starts its background loop.
func NewReconcilerService(appointmentRepo repository.AppointmentRepository, log *logrus.Logger, interval time.Duration) *ReconcilerService {
	svc := &ReconcilerService{
		appointmentRepo: appointmentRepo,
		log:             log,
		interval:        interval,
		stopChan:        make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.loop()

	return svc
}

// Stop gracefully shuts down the reconciler. Safe to call multiple times.
func (s *ReconcilerService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ReconcilerService stopped")
	}
}

// RunOnce performs a single reconciliation pass and returns the number
// of divergent appointments found.
func (s *ReconcilerService) RunOnce(ctx context.Context) (int, error) {
	mismatches, err := s.appointmentRepo.FindCounterMismatches(ctx)
	if err != nil {
		s.log.Warnf("Reconciliation query failed: %+v", err)
		return 0, err
	}

	for _, m := range mismatches {
		s.log.Errorf("counter inconsistency: appointment %s has current_participants=%d but %d confirmed bookings",
			m.AppointmentID, m.CurrentParticipants, m.ConfirmedBookings)
	}

	if len(mismatches) == 0 {
		s.log.Debug("Reconciliation pass clean")
	}
	return len(mismatches), nil
}

func (s *ReconcilerService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
			_, _ = s.RunOnce(ctx)
			cancel()
		}
	}
}
