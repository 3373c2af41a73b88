package repository

import (
	"context"
	"errors"
	"time"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	domainRepo "github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateConfirmed reserves capacity and inserts the booking in one
// transaction. The reservation is a single conditional UPDATE, not a
// read followed by a write: the row only changes when the appointment
// is ACTIVE and has a free slot, and RowsAffected reports whether the
// guard held. That closes the oversell race even against writers
// outside this process.
func (r *bookingRepository) CreateConfirmed(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Appointment{}).
			Where("id = ? AND status = ? AND current_participants < max_participants",
				booking.AppointmentID, entity.AppointmentStatusActive).
			Update("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The guard failed; look at the row to tell the caller why.
			var appointment entity.Appointment
			err := tx.Where("id = ?", booking.AppointmentID).First(&appointment).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrAppointmentNotFound
			}
			if err != nil {
				return err
			}
			if !appointment.IsActive() {
				return domainRepo.ErrAppointmentNotActive
			}
			return domainRepo.ErrCapacityExceeded
		}

		booking.Status = entity.BookingStatusConfirmed
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		// Reload so the caller sees the post-increment counter.
		return tx.Where("id = ?", booking.AppointmentID).First(&booking.Appointment).Error
	})
}

// CancelAndRelease flips the booking to CANCELLED and releases one unit
// of capacity, committing both or neither. The status flip is guarded
// on status = CONFIRMED so a retried cancel cannot decrement twice.
func (r *bookingRepository) CancelAndRelease(ctx context.Context, id uuid.UUID, reason string, at time.Time) (*entity.Booking, error) {
	var cancelled entity.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Booking{}).
			Where("id = ? AND status = ?", id, entity.BookingStatusConfirmed).
			Updates(map[string]interface{}{
				"status":              entity.BookingStatusCancelled,
				"cancelled_at":        at,
				"cancellation_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existing entity.Booking
			err := tx.Where("id = ?", id).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrBookingNotFound
			}
			if err != nil {
				return err
			}
			if existing.IsCancelled() {
				return domainRepo.ErrBookingAlreadyCancelled
			}
			return domainRepo.ErrBookingNotCancellable
		}

		if err := tx.Where("id = ?", id).First(&cancelled).Error; err != nil {
			return err
		}

		// The decrement cannot go below zero if the counter invariant
		// held before this call; clamp anyway and flag the anomaly.
		dec := tx.Model(&entity.Appointment{}).
			Where("id = ? AND current_participants > 0", cancelled.AppointmentID).
			Update("current_participants", gorm.Expr("current_participants - 1"))
		if dec.Error != nil {
			return dec.Error
		}
		if dec.RowsAffected == 0 {
			logrus.Errorf("counter inconsistency: cancel of booking %s found appointment %s at zero participants",
				id, cancelled.AppointmentID)
		}

		return tx.Where("id = ?", cancelled.AppointmentID).First(&cancelled.Appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// MarkNoShow transitions CONFIRMED -> NO_SHOW without touching the
// appointment counter.
func (r *bookingRepository) MarkNoShow(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var updated entity.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Booking{}).
			Where("id = ? AND status = ?", id, entity.BookingStatusConfirmed).
			Update("status", entity.BookingStatusNoShow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existing entity.Booking
			err := tx.Where("id = ?", id).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrBookingNotFound
			}
			if err != nil {
				return err
			}
			return domainRepo.ErrBookingNotCancellable
		}
		return tx.Preload("Appointment").Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Appointment").Preload("User").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter *entity.BookingFilter) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Booking{})
	if filter != nil {
		if filter.AppointmentID != "" {
			query = query.Where("appointment_id = ?", filter.AppointmentID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil {
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	err := query.Preload("Appointment").Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", entity.BookingStatusConfirmed, from, to).
		Count(&count).Error
	return count, err
}
