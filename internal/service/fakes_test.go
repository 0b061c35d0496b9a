package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

// promauto registers against the default registry, so the collector is
// shared across the test binary.
var testMetrics = metrics.NewCollector("service_test")

func newTestAudit() (*AuditService, *fakeAuditRepo) {
	repo := &fakeAuditRepo{}
	return NewAuditService(repo, zap.NewNop(), testMetrics), repo
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

type fakeUserRepo struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
	tokens  map[uuid.UUID][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
		tokens:  make(map[uuid.UUID][]string),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.ErrDuplicateIdentity
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) SaveDeviceToken(ctx context.Context, t *domain.DeviceToken) error {
	f.tokens[t.UserID] = append(f.tokens[t.UserID], t.Value)
	return nil
}

func (f *fakeUserRepo) DeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.tokens[userID], nil
}

type fakePatientRepo struct {
	byID     map[uuid.UUID]*patient.Patient
	byUserID map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		byID:     make(map[uuid.UUID]*patient.Patient),
		byUserID: make(map[uuid.UUID]*patient.Patient),
	}
}

func (f *fakePatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if _, exists := f.byUserID[p.UserID]; exists {
		return patient.ErrPatientAlreadyRegistered
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.byID[p.ID] = p
	f.byUserID[p.UserID] = p
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*patient.Patient, error) {
	p, ok := f.byUserID[userID]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

type fakeAppointmentRepo struct {
	byID map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Appointment)}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, a *appointment.Appointment) error {
	if _, ok := f.byID[a.ID]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	copied := *a
	f.byID[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) ListRecent(ctx context.Context, q *appointment.RecentListQuery) (*appointment.RecentAppointments, error) {
	out := &appointment.RecentAppointments{Documents: []*appointment.Appointment{}}
	for _, a := range f.byID {
		out.TotalCount++
		switch a.Status {
		case appointment.StatusScheduled:
			out.ScheduledCount++
		case appointment.StatusPending:
			out.PendingCount++
		case appointment.StatusCancelled:
			out.CancelledCount++
		}
		out.Documents = append(out.Documents, a)
	}
	return out, nil
}
