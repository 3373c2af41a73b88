package repository

import (
	"context"
	"errors"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"
	domainRepo "github.com/arslanrestlos/terminbuchung/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Appointment{})
	if filter != nil {
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DateFrom != "" {
			query = query.Where("date >= ?", filter.DateFrom)
		}
		if filter.DateTo != "" {
			query = query.Where("date <= ?", filter.DateTo)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("title ILIKE ? OR auction_number ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
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

	err := query.Order("date ASC, start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// Update persists administrative edits. The participant counter and the
// status are deliberately excluded: the counter belongs to the booking
// paths and the status to UpdateStatus.
func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Model(appointment).
		Select("type", "auction_number", "title", "description", "date",
			"start_time", "end_time", "location", "max_participants").
		Updates(appointment).Error
}

// UpdateStatus moves an ACTIVE appointment to a terminal status. The
// WHERE guard makes terminal states sticky; 0 affected rows means the
// appointment was missing or already terminal.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusActive).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountActiveOnDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("status = ? AND date = ?", entity.AppointmentStatusActive, date).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CapacityTotals(ctx context.Context) (int64, int64, error) {
	var totals struct {
		Capacity int64
		Booked   int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("COALESCE(SUM(max_participants), 0) AS capacity, COALESCE(SUM(current_participants), 0) AS booked").
		Where("status = ?", entity.AppointmentStatusActive).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Capacity, totals.Booked, nil
}

func (r *appointmentRepository) FindCounterMismatches(ctx context.Context) ([]entity.CounterMismatch, error) {
	var mismatches []entity.CounterMismatch
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id AS appointment_id,
		       a.current_participants,
		       COUNT(b.id) AS confirmed_bookings
		FROM appointments a
		LEFT JOIN bookings b ON b.appointment_id = a.id AND b.status = ?
		GROUP BY a.id, a.current_participants
		HAVING a.current_participants <> COUNT(b.id)`,
		string(entity.BookingStatusConfirmed)).
		Scan(&mismatches).Error
	if err != nil {
		return nil, err
	}
	return mismatches, nil
}
