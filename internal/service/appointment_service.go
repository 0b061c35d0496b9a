package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/internal/notify"
	"github.com/carepulse/carepulse-api/internal/roster"
	"github.com/carepulse/carepulse-api/internal/validation"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

type AppointmentService struct {
	repo     appointment.Repository
	patients patient.Repository
	users    domain.UserRepository
	notifier *notify.Notifier
	auditSvc *AuditService
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewAppointmentService(
	repo appointment.Repository,
	patients patient.Repository,
	users domain.UserRepository,
	notifier *notify.Notifier,
	auditSvc *AuditService,
	log *zap.Logger,
	m *metrics.Collector,
) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		patients: patients,
		users:    users,
		notifier: notifier,
		auditSvc: auditSvc,
		log:      log,
		metrics:  m,
	}
}

// CreateAppointment records a patient's request. New appointments always
// start pending; only an admin transition moves them on.
func (s *AppointmentService) CreateAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand, ip string) (*appointment.Appointment, error) {
	errs := validation.AppointmentCreate().Validate(validation.Values{
		"primaryPhysician": cmd.PrimaryPhysician,
		"schedule":         cmd.Schedule,
		"reason":           cmd.Reason,
	})
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if _, ok := roster.FindDoctor(cmd.PrimaryPhysician); !ok {
		return nil, appointment.ErrUnknownPhysician
	}

	p, err := s.patients.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	a := &appointment.Appointment{
		PatientID:        p.ID,
		UserID:           cmd.UserID,
		PrimaryPhysician: cmd.PrimaryPhysician,
		Schedule:         cmd.Schedule,
		Reason:           cmd.Reason,
		Note:             cmd.Note,
		Status:           appointment.StatusPending,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusPending)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		ActorID:      cmd.UserID.String(),
		Action:       string(domain.ActionCreate),
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateAppointment applies one of the two admin transitions. Status
// selects the branch; anything else is rejected before touching the row.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]string{"from": string(a.Status), "to": string(cmd.Status)}

	switch cmd.Status {
	case appointment.StatusScheduled:
		if err := s.validateSchedule(cmd); err != nil {
			return nil, err
		}
		if err := a.MarkScheduled(cmd.Schedule, cmd.PrimaryPhysician); err != nil {
			return nil, err
		}

	case appointment.StatusCancelled:
		reason := ""
		if cmd.CancellationReason != nil {
			reason = *cmd.CancellationReason
		}
		errs := validation.AppointmentCancel().Validate(validation.Values{
			"status":             string(appointment.StatusCancelled),
			"cancellationReason": reason,
		})
		if len(errs) > 0 {
			return nil, &ValidationError{Fields: errs}
		}
		if err := a.MarkCancelled(reason); err != nil {
			return nil, err
		}
		changes["reason"] = reason

	default:
		return nil, appointment.ErrInvalidStatusTransition
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.log.Error("failed to update appointment",
			zap.String("appointment_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		ActorID:      cmd.ActingUserID.String(),
		Action:       string(domain.ActionUpdate),
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
		Changes:      changesJSON(changes),
	})

	go s.notifyTransition(a)

	return a, nil
}

func (s *AppointmentService) validateSchedule(cmd *appointment.UpdateAppointmentCommand) error {
	physician := ""
	if cmd.PrimaryPhysician != nil {
		physician = *cmd.PrimaryPhysician
	}
	var schedule time.Time
	if cmd.Schedule != nil {
		schedule = *cmd.Schedule
	}
	errs := validation.AppointmentSchedule().Validate(validation.Values{
		"primaryPhysician": physician,
		"schedule":         schedule,
	})
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	if _, ok := roster.FindDoctor(physician); !ok {
		return appointment.ErrUnknownPhysician
	}
	return nil
}

// RecentAppointments backs the admin dashboard: the status counts and the
// latest requests in one call.
func (s *AppointmentService) RecentAppointments(ctx context.Context, q *appointment.RecentListQuery) (*appointment.RecentAppointments, error) {
	return s.repo.ListRecent(ctx, q)
}

// notifyTransition delivers the status change to the patient's devices.
// Failures are logged and counted, never surfaced to the admin.
func (s *AppointmentService) notifyTransition(a *appointment.Appointment) {
	if !s.notifier.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, err := s.users.DeviceTokens(ctx, a.UserID)
	if err != nil {
		s.log.Warn("device token lookup failed",
			zap.String("user_id", a.UserID.String()),
			zap.Error(err),
		)
		return
	}

	switch a.Status {
	case appointment.StatusScheduled:
		s.notifier.AppointmentScheduled(ctx, a, tokens)
	case appointment.StatusCancelled:
		s.notifier.AppointmentCancelled(ctx, a, tokens)
	}
}
