package service

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/internal/storage"
	"github.com/carepulse/carepulse-api/internal/validation"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

// DocumentUpload is the optional file attached to a registration.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
	SizeBytes   int64
}

type PatientService struct {
	repo     patient.Repository
	users    domain.UserRepository
	docs     *storage.DocumentStore
	auditSvc *AuditService
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewPatientService(
	repo patient.Repository,
	users domain.UserRepository,
	docs *storage.DocumentStore,
	auditSvc *AuditService,
	log *zap.Logger,
	m *metrics.Collector,
) *PatientService {
	return &PatientService{
		repo:     repo,
		users:    users,
		docs:     docs,
		auditSvc: auditSvc,
		log:      log,
		metrics:  m,
	}
}

// RegisterPatient extends an intake user into a full patient record.
// The document is optional; when one is supplied, a store failure aborts
// the registration rather than persisting a record pointing at nothing.
func (s *PatientService) RegisterPatient(ctx context.Context, cmd *patient.CreatePatientCommand, doc *DocumentUpload, ip string) (*patient.Patient, error) {
	errs := validation.FullPatient().Validate(validation.Values{
		"name":                   cmd.Name,
		"email":                  cmd.Email,
		"phone":                  cmd.Phone,
		"birthDate":              cmd.BirthDate,
		"gender":                 string(cmd.Gender),
		"address":                cmd.Address,
		"occupation":             cmd.Occupation,
		"emergencyContactName":   cmd.EmergencyContactName,
		"emergencyContactNumber": cmd.EmergencyContactNumber,
		"primaryPhysician":       cmd.PrimaryPhysician,
		"insuranceProvider":      cmd.InsuranceProvider,
		"insurancePolicyNumber":  cmd.InsurancePolicyNumber,
		"identificationType":     cmd.IdentificationType,
	})
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	p := &patient.Patient{
		UserID: cmd.UserID,

		Name:  strings.TrimSpace(cmd.Name),
		Email: domain.NormalizeEmail(cmd.Email),
		Phone: strings.TrimSpace(cmd.Phone),

		BirthDate:  cmd.BirthDate,
		Gender:     cmd.Gender,
		Address:    strings.TrimSpace(cmd.Address),
		Occupation: strings.TrimSpace(cmd.Occupation),

		EmergencyContactName:   strings.TrimSpace(cmd.EmergencyContactName),
		EmergencyContactNumber: strings.TrimSpace(cmd.EmergencyContactNumber),

		PrimaryPhysician: cmd.PrimaryPhysician,

		InsuranceProvider:     strings.TrimSpace(cmd.InsuranceProvider),
		InsurancePolicyNumber: strings.TrimSpace(cmd.InsurancePolicyNumber),

		Allergies:            strings.TrimSpace(cmd.Allergies),
		CurrentMedication:    strings.TrimSpace(cmd.CurrentMedication),
		FamilyMedicalHistory: strings.TrimSpace(cmd.FamilyMedicalHistory),
		PastMedicalHistory:   strings.TrimSpace(cmd.PastMedicalHistory),

		IdentificationType:   cmd.IdentificationType,
		IdentificationNumber: strings.TrimSpace(cmd.IdentificationNumber),

		TreatmentConsent:  cmd.TreatmentConsent,
		DisclosureConsent: cmd.DisclosureConsent,
		PrivacyConsent:    cmd.PrivacyConsent,
	}

	if !p.HasConsented() {
		return nil, patient.ErrConsentRequired
	}

	if _, err := s.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	if doc != nil {
		stored, err := s.docs.Upload(ctx, cmd.UserID, doc.FileName, doc.ContentType, doc.Body, doc.SizeBytes)
		if err != nil {
			s.metrics.DocumentUploadsTotal.WithLabelValues("failure").Inc()
			return nil, err
		}
		s.metrics.DocumentUploadsTotal.WithLabelValues("success").Inc()
		p.IdentificationDocument = stored
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, err
	}

	s.metrics.PatientsRegisteredTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		ActorID:      cmd.UserID.String(),
		Action:       string(domain.ActionCreate),
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})

	s.log.Info("patient registered",
		zap.String("patient_id", p.ID.String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.Bool("has_document", p.IdentificationDocument != nil),
	)

	return p, nil
}

// GetPatientByUser returns the registration record for an intake user.
func (s *PatientService) GetPatientByUser(ctx context.Context, userID uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByUserID(ctx, userID)
}
