package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carepulse/carepulse-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetching appointment %s: %w", id, err)
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"status":              a.Status,
			"schedule":            a.Schedule,
			"primary_physician":   a.PrimaryPhysician,
			"cancellation_reason": a.CancellationReason,
		})
	if res.Error != nil {
		return fmt.Errorf("updating appointment %s: %w", a.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

// ListRecent produces the dashboard payload: per-status counts over the
// whole table plus a page of the newest appointments.
func (r *AppointmentRepository) ListRecent(ctx context.Context, q *appointment.RecentListQuery) (*appointment.RecentAppointments, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 || size > 100 {
		size = 50
	}

	type statusCount struct {
		Status appointment.Status
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	out := &appointment.RecentAppointments{Documents: []*appointment.Appointment{}}
	for _, c := range counts {
		out.TotalCount += c.Count
		switch c.Status {
		case appointment.StatusScheduled:
			out.ScheduledCount = c.Count
		case appointment.StatusPending:
			out.PendingCount = c.Count
		case appointment.StatusCancelled:
			out.CancelledCount = c.Count
		}
	}

	err = r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&out.Documents).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent appointments: %w", err)
	}
	return out, nil
}
