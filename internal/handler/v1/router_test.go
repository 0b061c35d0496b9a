package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/config"
	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/internal/gate"
	"github.com/carepulse/carepulse-api/internal/notify"
	"github.com/carepulse/carepulse-api/internal/service"
	"github.com/carepulse/carepulse-api/internal/storage"
	"github.com/carepulse/carepulse-api/pkg/auth"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

var testMetrics = metrics.NewCollector("handler_test")

const testPasskey = "123456"

type fixture struct {
	router       http.Handler
	jwt          *auth.JWTManager
	users        *memUserRepo
	patients     *memPatientRepo
	appointments *memAppointmentRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		App:   config.AppConfig{Name: "carepulse-test", Environment: "test", Version: "test"},
		Admin: config.AdminConfig{Passkey: testPasskey},
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-sec",
			SessionTTL: time.Hour,
			Issuer:     "carepulse-test",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         time.Hour,
		},
	}

	log := zap.NewNop()
	users := newMemUserRepo()
	patients := newMemPatientRepo()
	appointments := newMemAppointmentRepo()

	audit := service.NewAuditService(&memAuditRepo{}, log, testMetrics)
	t.Cleanup(audit.Shutdown)

	jwt := auth.NewJWTManager(cfg.JWT)
	docs := storage.NewDocumentStore(nil, "", log)
	notifier := notify.NewNotifier(nil, log)

	userSvc := service.NewUserService(users, audit, log, testMetrics)
	patientSvc := service.NewPatientService(patients, users, docs, audit, log, testMetrics)
	appointmentSvc := service.NewAppointmentService(appointments, patients, users, notifier, audit, log, testMetrics)
	gateSvc := service.NewGateService(gate.New(cfg.Admin.Passkey), jwt, audit, log, testMetrics)

	router := NewRouter(RouterDeps{
		Config:       cfg,
		Log:          log,
		Metrics:      testMetrics,
		JWT:          jwt,
		Users:        userSvc,
		Patients:     patientSvc,
		Appointments: appointmentSvc,
		Gate:         gateSvc,
	})

	return &fixture{
		router:       router,
		jwt:          jwt,
		users:        users,
		patients:     patients,
		appointments: appointments,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := f.jwt.GenerateSession()
	require.NoError(t, err)
	return token
}

func (f *fixture) seedAppointments(t *testing.T, scheduled, pending, cancelled int) {
	t.Helper()
	ctx := context.Background()

	u := &domain.User{Name: "Jane Doe", Email: "jane@example.com", Phone: "+923456789012"}
	require.NoError(t, f.users.Create(ctx, u))
	p := &patient.Patient{UserID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	require.NoError(t, f.patients.Create(ctx, p))

	mk := func(status appointment.Status, reason string) {
		a := &appointment.Appointment{
			PatientID:          p.ID,
			UserID:             u.ID,
			PrimaryPhysician:   "John Green",
			Schedule:           time.Now().Add(72 * time.Hour),
			Reason:             "Check-up",
			Status:             status,
			CancellationReason: reason,
		}
		require.NoError(t, f.appointments.Create(ctx, a))
	}

	for range scheduled {
		mk(appointment.StatusScheduled, "")
	}
	for range pending {
		mk(appointment.StatusPending, "")
	}
	for range cancelled {
		mk(appointment.StatusCancelled, "Double booked")
	}
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Data
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIntakeFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/users", map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "+923456789012",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	u := decodeData[*domain.User](t, rec)
	require.Equal(t, "Jane Doe", u.Name)

	rec = f.do(t, http.MethodGet, "/api/v1/users/"+u.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIntakeValidationErrorListsFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/users", map[string]string{
		"name":  "J",
		"email": "nope",
		"phone": "123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Fields, 3)
}

func TestIntakeDuplicateReturnsExistingUser(t *testing.T) {
	f := newFixture(t)

	body := map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "+923456789012",
	}
	first := f.do(t, http.MethodPost, "/api/v1/users", body, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := f.do(t, http.MethodPost, "/api/v1/users", body, "")
	require.Equal(t, http.StatusConflict, second.Code)

	var resp DuplicateIdentityResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&resp))
	require.NotNil(t, resp.User)
}

func TestAdminEndpointsRequireSessionToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/admin/appointments", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/admin/appointments", nil, "bogus")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/v1/appointments/"+uuid.NewString(), map[string]string{"status": "cancelled"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminDashboardCounts(t *testing.T) {
	f := newFixture(t)
	f.seedAppointments(t, 3, 5, 1)

	rec := f.do(t, http.MethodGet, "/api/v1/admin/appointments", nil, f.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)

	recent := decodeData[*appointment.RecentAppointments](t, rec)
	require.Equal(t, int64(3), recent.ScheduledCount)
	require.Equal(t, int64(5), recent.PendingCount)
	require.Equal(t, int64(1), recent.CancelledCount)
	require.Equal(t, int64(9), recent.TotalCount)
	require.Len(t, recent.Documents, 9)
}

func TestGateVerifyAndAdminAccess(t *testing.T) {
	f := newFixture(t)

	denied := f.do(t, http.MethodPost, "/api/v1/gate/verify", map[string]string{"passkey": "000000"}, "")
	require.Equal(t, http.StatusUnauthorized, denied.Code)

	granted := f.do(t, http.MethodPost, "/api/v1/gate/verify", map[string]string{"passkey": testPasskey}, "")
	require.Equal(t, http.StatusOK, granted.Code)

	session := decodeData[*service.GateSession](t, granted)
	require.Equal(t, gate.StateUnlocked, session.State)
	require.True(t, session.Navigate)
	require.NotEmpty(t, session.SessionToken)

	rec := f.do(t, http.MethodGet, "/api/v1/admin/appointments", nil, session.SessionToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGateMountNavigatesExactlyOnce(t *testing.T) {
	f := newFixture(t)

	granted := f.do(t, http.MethodPost, "/api/v1/gate/verify", map[string]string{"passkey": testPasskey}, "")
	session := decodeData[*service.GateSession](t, granted)

	first := decodeData[*service.GateSession](t, f.do(t, http.MethodPost, "/api/v1/gate/mount",
		map[string]any{"encoded_key": session.EncodedKey, "unlocked": false}, ""))
	require.True(t, first.Navigate)
	require.Equal(t, gate.DashboardRoute, first.Route)

	second := decodeData[*service.GateSession](t, f.do(t, http.MethodPost, "/api/v1/gate/mount",
		map[string]any{"encoded_key": session.EncodedKey, "unlocked": true}, ""))
	require.False(t, second.Navigate)
}

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &domain.User{Name: "Jane Doe", Email: "jane@example.com", Phone: "+923456789012"}
	require.NoError(t, f.users.Create(ctx, u))
	p := &patient.Patient{UserID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	require.NoError(t, f.patients.Create(ctx, p))

	created := f.do(t, http.MethodPost, "/api/v1/appointments", map[string]any{
		"patient_id":        p.ID,
		"user_id":           u.ID,
		"primary_physician": "John Green",
		"schedule":          time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"reason":            "Annual check-up",
	}, "")
	require.Equal(t, http.StatusCreated, created.Code)

	a := decodeData[*appointment.Appointment](t, created)
	require.Equal(t, appointment.StatusPending, a.Status)

	cancelled := f.do(t, http.MethodPatch, "/api/v1/appointments/"+a.ID.String(), map[string]any{
		"status":              "cancelled",
		"cancellation_reason": "Physician unavailable",
		"acting_user_id":      u.ID,
	}, f.adminToken(t))
	require.Equal(t, http.StatusOK, cancelled.Code)

	got := decodeData[*appointment.Appointment](t, cancelled)
	require.Equal(t, appointment.StatusCancelled, got.Status)
	require.Equal(t, "Physician unavailable", got.CancellationReason)
}

func TestReferenceEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/reference/doctors", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	doctors := decodeData[[]map[string]string](t, rec)
	require.Len(t, doctors, 9)

	rec = f.do(t, http.MethodGet, "/api/v1/reference/genders", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"Male", "Female", "Other"}, decodeData[[]string](t, rec))
}

func TestFormDefinitionEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/forms/intake", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/forms/appointment-cancel", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/forms/checkout", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
