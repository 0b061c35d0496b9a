package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/validation"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

type UserService struct {
	repo     domain.UserRepository
	auditSvc *AuditService
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewUserService(repo domain.UserRepository, auditSvc *AuditService, log *zap.Logger, m *metrics.Collector) *UserService {
	return &UserService{
		repo:     repo,
		auditSvc: auditSvc,
		log:      log,
		metrics:  m,
	}
}

type CreateUserCommand struct {
	Name  string
	Email string
	Phone string
}

// CreateUser handles the intake form. A duplicate email resolves to the
// existing identity via DuplicateIdentityError so the caller can resume
// the flow with that user instead of failing outright.
func (s *UserService) CreateUser(ctx context.Context, cmd *CreateUserCommand, ip string) (*domain.User, error) {
	errs := validation.UserIntake().Validate(validation.Values{
		"name":  cmd.Name,
		"email": cmd.Email,
		"phone": cmd.Phone,
	})
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	u := &domain.User{
		Name:  strings.TrimSpace(cmd.Name),
		Email: domain.NormalizeEmail(cmd.Email),
		Phone: strings.TrimSpace(cmd.Phone),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			existing, lookupErr := s.repo.GetByEmail(ctx, u.Email)
			if lookupErr != nil {
				s.log.Error("duplicate intake but existing user lookup failed", zap.Error(lookupErr))
				return nil, fmt.Errorf("resolving existing user: %w", lookupErr)
			}
			s.log.Info("intake resumed with existing identity",
				zap.String("user_id", existing.ID.String()),
			)
			return nil, &DuplicateIdentityError{Existing: existing}
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.metrics.UsersCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		ActorID:      u.ID.String(),
		Action:       string(domain.ActionCreate),
		ResourceType: "user",
		ResourceID:   u.ID.String(),
		IPAddress:    ip,
	})

	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// RegisterDeviceToken stores a push token for the user after verifying
// the user exists.
func (s *UserService) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error {
	if strings.TrimSpace(token) == "" {
		return &ValidationError{Fields: map[string]string{"token": "Device token is required."}}
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.SaveDeviceToken(ctx, &domain.DeviceToken{
		UserID: userID,
		Value:  strings.TrimSpace(token),
	})
}
