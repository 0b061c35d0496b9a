package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (m *memAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
	tokens  map[uuid.UUID][]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
		tokens:  make(map[uuid.UUID][]string),
	}
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[u.Email]; exists {
		return domain.ErrDuplicateIdentity
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) SaveDeviceToken(ctx context.Context, t *domain.DeviceToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.UserID] = append(m.tokens[t.UserID], t.Value)
	return nil
}

func (m *memUserRepo) DeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[userID], nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*patient.Patient
	byUserID map[uuid.UUID]*patient.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{
		byID:     make(map[uuid.UUID]*patient.Patient),
		byUserID: make(map[uuid.UUID]*patient.Patient),
	}
}

func (m *memPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byUserID[p.UserID]; exists {
		return patient.ErrPatientAlreadyRegistered
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.byID[p.ID] = p
	m.byUserID[p.UserID] = p
	return nil
}

func (m *memPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (m *memPatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*patient.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byUserID[userID]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

type memAppointmentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*appointment.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Appointment)}
}

func (m *memAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.byID[a.ID] = a
	return nil
}

func (m *memAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAppointmentRepo) Update(ctx context.Context, a *appointment.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[a.ID]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	copied := *a
	m.byID[a.ID] = &copied
	return nil
}

func (m *memAppointmentRepo) ListRecent(ctx context.Context, q *appointment.RecentListQuery) (*appointment.RecentAppointments, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := &appointment.RecentAppointments{Documents: []*appointment.Appointment{}}
	for _, a := range m.byID {
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
	sort.Slice(out.Documents, func(i, j int) bool {
		return out.Documents[i].CreatedAt.After(out.Documents[j].CreatedAt)
	})
	return out, nil
}
