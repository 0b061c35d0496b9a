package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/gate"
	"github.com/carepulse/carepulse-api/pkg/auth"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

// GateService wraps the access gate with session minting, auditing, and
// metrics. A successful verification hands back both the encoded key for
// the client to store and a server-issued admin session token.
type GateService struct {
	gate     *gate.Gate
	jwt      *auth.JWTManager
	auditSvc *AuditService
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewGateService(g *gate.Gate, jwt *auth.JWTManager, auditSvc *AuditService, log *zap.Logger, m *metrics.Collector) *GateService {
	return &GateService{
		gate:     g,
		jwt:      jwt,
		auditSvc: auditSvc,
		log:      log,
		metrics:  m,
	}
}

// GateSession is the unlock payload: what the client stores, where it
// navigates, and the session token admin calls must present.
type GateSession struct {
	State        gate.State `json:"state"`
	EncodedKey   string     `json:"encoded_key,omitempty"`
	Navigate     bool       `json:"navigate"`
	Route        string     `json:"route,omitempty"`
	SessionToken string     `json:"session_token,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at,omitzero"`
}

// Verify checks an entered passkey. Failures return ErrInvalidPasskey
// without detail about which digit was wrong.
func (s *GateService) Verify(ctx context.Context, entered, ip string) (*GateSession, error) {
	encoded, err := s.gate.Submit(entered)
	if err != nil {
		if errors.Is(err, gate.ErrInvalidPasskey) {
			s.metrics.GateAttemptsTotal.WithLabelValues("denied").Inc()
			s.log.Warn("admin gate attempt denied", zap.String("ip", ip))
		}
		return nil, err
	}
	return s.unlock(ctx, encoded, true, ip)
}

// Mount evaluates the key the client already holds. An invalid or absent
// key leaves the gate locked without error; navigation fires only on the
// mount that flips the gate open.
func (s *GateService) Mount(ctx context.Context, storedEncoded string, alreadyUnlocked bool, ip string) (*GateSession, error) {
	res := s.gate.Mount(storedEncoded, alreadyUnlocked)
	if res.State != gate.StateUnlocked {
		return &GateSession{State: gate.StateLocked}, nil
	}
	if !res.Navigate {
		return &GateSession{State: gate.StateUnlocked}, nil
	}
	return s.unlock(ctx, storedEncoded, true, ip)
}

func (s *GateService) unlock(ctx context.Context, encoded string, navigate bool, ip string) (*GateSession, error) {
	token, expiresAt, err := s.jwt.GenerateSession()
	if err != nil {
		s.log.Error("failed to mint admin session", zap.Error(err))
		return nil, err
	}

	s.metrics.GateAttemptsTotal.WithLabelValues("granted").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		ActorID:      auth.SessionRole,
		Action:       string(domain.ActionUnlock),
		ResourceType: "admin_gate",
		IPAddress:    ip,
	})

	return &GateSession{
		State:        gate.StateUnlocked,
		EncodedKey:   encoded,
		Navigate:     navigate,
		Route:        gate.DashboardRoute,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}, nil
}
