package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for display caches
	availabilityKeyPrefix = "availability:appointment:"
	dashboardStatsKey     = "dashboard:stats"
)

// AvailabilityCacheService caches advisory availability snapshots and
// dashboard aggregates in Redis for display reads. Everything here is
// best-effort: Redis being down degrades reads to the database, never
// to an error. The authoritative capacity state lives exclusively in
// PostgreSQL; booking create/cancel invalidate the affected key so a
// serial read-after-write always sees the fresh counter.
type AvailabilityCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewAvailabilityCacheService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *AvailabilityCacheService {
	return &AvailabilityCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Fetch returns the cached snapshot for an appointment, or a miss.
func (s *AvailabilityCacheService) Fetch(ctx context.Context, appointmentID uuid.UUID) (*entity.AvailabilitySnapshot, bool) {
	payload, err := s.redisClient.Get(ctx, s.availabilityKey(appointmentID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read availability cache for appointment %s: %+v", appointmentID, err)
		}
		return nil, false
	}

	var snapshot entity.AvailabilitySnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		s.log.Warnf("Corrupt availability cache entry for appointment %s: %+v", appointmentID, err)
		return nil, false
	}
	return &snapshot, true
}

// Store caches a snapshot with the configured TTL.
func (s *AvailabilityCacheService) Store(ctx context.Context, snapshot *entity.AvailabilitySnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warnf("Failed to encode availability snapshot for appointment %s: %+v", snapshot.AppointmentID, err)
		return
	}
	if err := s.redisClient.Set(ctx, s.availabilityKey(snapshot.AppointmentID), payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to cache availability for appointment %s: %+v", snapshot.AppointmentID, err)
	}
}

// Invalidate drops the cached snapshot after a capacity change.
func (s *AvailabilityCacheService) Invalidate(ctx context.Context, appointmentID uuid.UUID) {
	if err := s.redisClient.Del(ctx, s.availabilityKey(appointmentID)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate availability cache for appointment %s: %+v", appointmentID, err)
	}
}

// FetchStats returns the cached dashboard aggregate, or a miss.
func (s *AvailabilityCacheService) FetchStats(ctx context.Context) (*entity.DashboardStats, bool) {
	payload, err := s.redisClient.Get(ctx, dashboardStatsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read dashboard stats cache: %+v", err)
		}
		return nil, false
	}

	var stats entity.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		s.log.Warnf("Corrupt dashboard stats cache entry: %+v", err)
		return nil, false
	}
	return &stats, true
}

// StoreStats caches the dashboard aggregate with the configured TTL.
func (s *AvailabilityCacheService) StoreStats(ctx context.Context, stats *entity.DashboardStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		s.log.Warnf("Failed to encode dashboard stats: %+v", err)
		return
	}
	if err := s.redisClient.Set(ctx, dashboardStatsKey, payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to cache dashboard stats: %+v", err)
	}
}

func (s *AvailabilityCacheService) availabilityKey(appointmentID uuid.UUID) string {
	return fmt.Sprintf("%s%s", availabilityKeyPrefix, appointmentID)
}
