package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key.
	// Returns ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update persists a status transition and whatever fields it changed.
	Update(ctx context.Context, a *Appointment) error

	// ListRecent returns the summary counts and the recent documents,
	// newest first, as one combined result.
	ListRecent(ctx context.Context, q *RecentListQuery) (*RecentAppointments, error)
}
