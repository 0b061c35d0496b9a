package appointment

import (
	"time"

	"github.com/google/uuid"
)

// State transitions possibilities:
//
//	pending → scheduled
//	pending → cancelled
//
// No reverse transitions are exposed; a cancelled appointment stays
// cancelled and always carries a reason.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	// Matched against the static roster, not a foreign key.
	PrimaryPhysician string    `gorm:"column:primary_physician;type:varchar(100);not null" json:"primary_physician"`
	Schedule         time.Time `gorm:"column:schedule;not null;index" json:"schedule"`
	Reason           string    `gorm:"column:reason;type:text;not null" json:"reason"`
	Note             string    `gorm:"column:note;type:text" json:"note"`

	Status             Status `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	CancellationReason string `gorm:"column:cancellation_reason;type:text" json:"cancellation_reason,omitempty"`
}

func (Appointment) TableName() string {
	return "booking.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusPending:   {StatusScheduled, StatusCancelled},
		StatusScheduled: {},
		StatusCancelled: {},
	}

	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// MarkScheduled confirms a pending request, optionally moving it to the
// slot and physician the admin picked.
func (a *Appointment) MarkScheduled(schedule *time.Time, physician *string) error {
	if !a.CanTransitionTo(StatusScheduled) {
		return ErrInvalidStatusTransition
	}
	if schedule != nil {
		a.Schedule = *schedule
	}
	if physician != nil {
		a.PrimaryPhysician = *physician
	}
	a.Status = StatusScheduled
	return nil
}

// MarkCancelled rejects a pending request. The reason is mandatory.
func (a *Appointment) MarkCancelled(reason string) error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	if reason == "" {
		return ErrCancellationReasonMissing
	}
	a.Status = StatusCancelled
	a.CancellationReason = reason
	return nil
}

type CreateAppointmentCommand struct {
	PatientID        uuid.UUID
	UserID           uuid.UUID
	PrimaryPhysician string
	Schedule         time.Time
	Reason           string
	Note             string
}

// UpdateAppointmentCommand drives the two admin transitions. Status selects
// the branch; the pointer fields apply only when non-nil.
type UpdateAppointmentCommand struct {
	Status             Status
	Schedule           *time.Time
	PrimaryPhysician   *string
	CancellationReason *string
	ActingUserID       uuid.UUID
}

type RecentListQuery struct {
	Page     int
	PageSize int
}

// RecentAppointments is the combined payload behind the admin dashboard:
// the three summary counts and the recent documents, fetched in one call.
type RecentAppointments struct {
	ScheduledCount int64          `json:"scheduled_count"`
	PendingCount   int64          `json:"pending_count"`
	CancelledCount int64          `json:"cancelled_count"`
	TotalCount     int64          `json:"total_count"`
	Documents      []*Appointment `json:"documents"`
}
