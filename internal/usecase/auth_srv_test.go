package usecase

import (
	"context"
	"testing"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/dto/request"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App:     utils.AppConfig{FrontendURL: "http://localhost:5173/"},
		Session: utils.SessionConfig{ExpiryHours: 12},
		Auth: utils.AuthConfig{
			AllowedDomain: "pilani.bits-pilani.ac.in",
			AdminEmails:   []string{"warden@pilani.bits-pilani.ac.in"},
		},
	}
}

func TestSignUp(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Name:     "Ravi",
		Email:    "Ravi@Pilani.Bits-Pilani.ac.in",
		Password: "secret123",
	}, ClientInfo{UserAgent: "test", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleStudent, resp.Role)
	assert.Equal(t, "ravi@pilani.bits-pilani.ac.in", resp.Email)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), resp.ExpiresAt, time.Minute)

	require.Len(t, store.sessions, 1)
	require.NotNil(t, store.sessions[0].IPAddress)
	assert.Equal(t, "10.0.0.1", *store.sessions[0].IPAddress)

	user, _ := store.user.FindByEmail(context.Background(), "ravi@pilani.bits-pilani.ac.in")
	require.NotNil(t, user)
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))
	assert.Equal(t, entity.ProviderLocal, user.Provider)
}

func TestSignUp_AdminEmailGetsAdminRole(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Name:     "Warden",
		Email:    "warden@pilani.bits-pilani.ac.in",
		Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
}

func TestSignUp_Rejections(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())
	ctx := context.Background()
	store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)

	_, err := svc.SignUp(ctx, &request.SignUpRequest{Name: "Eve", Email: "eve@gmail.com", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInstitutionalEmail)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SignUp(ctx, &request.SignUpRequest{Name: "Ravi", Email: "ravi@pilani.bits-pilani.ac.in", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.SignUp(ctx, &request.SignUpRequest{Name: "R", Email: "not-an-email", Password: "1"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignIn(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())
	ctx := context.Background()

	user := store.addUser("Warden", "warden@pilani.bits-pilani.ac.in", entity.RoleStudent)
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user.PasswordHash = hash

	resp, err := svc.SignIn(ctx, &request.SignInRequest{Email: "warden@pilani.bits-pilani.ac.in", Password: "secret123"}, ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	_, err = svc.SignIn(ctx, &request.SignInRequest{Email: "warden@pilani.bits-pilani.ac.in", Password: "wrong"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.SignIn(ctx, &request.SignInRequest{Email: "nobody@pilani.bits-pilani.ac.in", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	user.IsActive = false
	_, err = svc.SignIn(ctx, &request.SignInRequest{Email: "warden@pilani.bits-pilani.ac.in", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestSignIn_GoogleAccountHasNoPassword(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())

	user := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	user.Provider = entity.ProviderGoogle

	_, err := svc.SignIn(context.Background(), &request.SignInRequest{Email: user.Email, Password: "anything"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store.repo(), testConfig(), zap.NewNop())

	token := uuid.NewString()
	store.session.RevokeFunc = func(_ context.Context, got string) error {
		assert.Equal(t, token, got)
		return nil
	}

	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.ErrorIs(t, svc.Logout(context.Background(), "garbage"), ErrUnauthorized)
}
