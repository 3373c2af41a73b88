package usecase

import (
	"context"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	"github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// StatsCache holds the most recent dashboard aggregate. Best-effort,
// like AvailabilityCache.
type StatsCache interface {
	FetchStats(ctx context.Context) (*entity.DashboardStats, bool)
	StoreStats(ctx context.Context, stats *entity.DashboardStats)
}

type DashboardUsecase interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	bookingRepo     repository.BookingRepository
	userRepo        repository.UserRepository
	cache           StatsCache
}

func NewDashboardUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	cache StatsCache,
) DashboardUsecase {
	return &dashboardUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		bookingRepo:     bookingRepo,
		userRepo:        userRepo,
		cache:           cache,
	}
}

// GetStats aggregates counts for the admin dashboard. Display-only
// numbers; the short cache TTL bounds their staleness.
func (u *dashboardUsecase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if stats, ok := u.cache.FetchStats(ctx); ok {
		return statsToResponse(stats), nil
	}

	totalAppointments, err := u.appointmentRepo.CountByStatus(ctx, entity.AppointmentStatusActive)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	totalBookings, err := u.bookingRepo.CountByStatus(ctx, entity.BookingStatusConfirmed)
	if err != nil {
		u.log.Warnf("Failed to count bookings: %+v", err)
		return nil, err
	}

	totalUsers, err := u.userRepo.CountActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}

	now := time.Now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)

	todayAppointments, err := u.appointmentRepo.CountActiveOnDate(ctx, startOfDay.Format("2006-01-02"))
	if err != nil {
		u.log.Warnf("Failed to count today's appointments: %+v", err)
		return nil, err
	}

	todayBookings, err := u.bookingRepo.CountConfirmedCreatedBetween(ctx, startOfDay, startOfDay.Add(24*time.Hour))
	if err != nil {
		u.log.Warnf("Failed to count today's bookings: %+v", err)
		return nil, err
	}

	capacity, booked, err := u.appointmentRepo.CapacityTotals(ctx)
	if err != nil {
		u.log.Warnf("Failed to read capacity totals: %+v", err)
		return nil, err
	}

	var utilization float64
	if capacity > 0 {
		utilization = float64(booked) / float64(capacity) * 100
	}

	stats := &entity.DashboardStats{
		TotalAppointments: totalAppointments,
		TotalBookings:     totalBookings,
		TotalUsers:        totalUsers,
		TodayAppointments: todayAppointments,
		TodayBookings:     todayBookings,
		UtilizationRate:   utilization,
	}

	u.cache.StoreStats(ctx, stats)
	return statsToResponse(stats), nil
}

func statsToResponse(stats *entity.DashboardStats) *dto.DashboardStatsResponse {
	return &dto.DashboardStatsResponse{
		TotalAppointments: stats.TotalAppointments,
		TotalBookings:     stats.TotalBookings,
		TotalUsers:        stats.TotalUsers,
		TodayAppointments: stats.TodayAppointments,
		TodayBookings:     stats.TodayBookings,
		UtilizationRate:   stats.UtilizationRate,
	}
}
