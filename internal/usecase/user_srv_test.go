package usecase

import (
	"context"
	"testing"

	"mess-review/internal/data/entity"
	"mess-review/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetProfile(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.repo(), zap.NewNop())
	user := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)

	resp, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", resp.Name)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsers_Paginates(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.repo(), zap.NewNop())

	store.user.FindAllFunc = func(_ context.Context, limit, offset int) ([]*entity.User, error) {
		assert.Equal(t, 10, limit)
		assert.Equal(t, 10, offset)
		return []*entity.User{{Name: "Ravi"}}, nil
	}
	store.user.CountAllFunc = func(context.Context) (int64, error) { return 11, nil }

	resp, err := svc.GetAllUsers(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, int64(11), resp.Pagination.Total)
}

func TestDeactivateUser_RevokesSessions(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.repo(), zap.NewNop())
	ctx := context.Background()

	user := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	_, err := createSession(ctx, store.session, user.ID, sessionTTL(testConfig().Session), ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, user.ID.String()))

	assert.False(t, user.IsActive)
	require.Len(t, store.sessions, 1)
	assert.NotNil(t, store.sessions[0].RevokedAt)

	assert.ErrorIs(t, svc.DeactivateUser(ctx, uuid.NewString()), ErrNotFound)
}
