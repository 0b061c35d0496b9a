package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyRegistered
	// when the user already has a record.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByUserID retrieves the patient record belonging to an intake user.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)
}
