package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	audit, _ := newTestAudit()
	t.Cleanup(audit.Shutdown)
	return NewUserService(repo, audit, zap.NewNop(), testMetrics), repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.CreateUser(context.Background(), &CreateUserCommand{
		Name:  "Jane Doe",
		Email: "Jane@Example.com",
		Phone: "+923456789012",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, "", u.ID.String())
	assert.Equal(t, "Jane Doe", u.Name)
	assert.Equal(t, "jane@example.com", u.Email, "email must be normalized")
	assert.Equal(t, "+923456789012", u.Phone)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), &CreateUserCommand{
		Name:  "J",
		Email: "nope",
		Phone: "123",
	}, "10.0.0.1")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)
}

func TestCreateUserDuplicateResolvesExisting(t *testing.T) {
	svc, _ := newUserService(t)

	first, err := svc.CreateUser(context.Background(), &CreateUserCommand{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+923456789012",
	}, "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &CreateUserCommand{
		Name:  "Jane Again",
		Email: "JANE@example.com",
		Phone: "+923456789099",
	}, "10.0.0.1")

	var dupErr *DuplicateIdentityError
	require.ErrorAs(t, err, &dupErr)

	existing, ok := dupErr.Existing.(*domain.User)
	require.True(t, ok)
	assert.Equal(t, first.ID, existing.ID, "the conflict must carry the original identity")
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterDeviceToken(t *testing.T) {
	svc, repo := newUserService(t)

	u, err := svc.CreateUser(context.Background(), &CreateUserCommand{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+923456789012",
	}, "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RegisterDeviceToken(context.Background(), u.ID, "fcm-token-1"))

	tokens, err := repo.DeviceTokens(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fcm-token-1"}, tokens)
}

func TestRegisterDeviceTokenUnknownUser(t *testing.T) {
	svc, _ := newUserService(t)

	err := svc.RegisterDeviceToken(context.Background(), uuid.New(), "fcm-token-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
