// Package mocks holds func-field implementations of the repository
// interfaces for service and handler tests.
package mocks

import (
	"context"
	"errors"

	"mess-review/internal/data/entity"

	"github.com/google/uuid"
)

var errNotImplemented = errors.New("mock function not implemented")

// MockTransactor runs fn inline. Set Err to fail the transaction before fn runs.
type MockTransactor struct {
	Calls int
	Err   error
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindAllFunc     func(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAllFunc    func(ctx context.Context) (int64, error)
	UpdateFunc      func(ctx context.Context, user *entity.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return errNotImplemented
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return nil, errNotImplemented
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, errNotImplemented
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return errNotImplemented
}

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	CreateFunc                func(ctx context.Context, session *entity.Session) error
	FindValidSessionFunc      func(ctx context.Context, token string) (*entity.Session, error)
	RevokeFunc                func(ctx context.Context, token string) error
	RevokeAllUserSessionsFunc func(ctx context.Context, userID uuid.UUID) error
	CleanExpiredSessionsFunc  func(ctx context.Context) (int64, error)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return errNotImplemented
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if m.FindValidSessionFunc != nil {
		return m.FindValidSessionFunc(ctx, token)
	}
	return nil, errNotImplemented
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	return errNotImplemented
}

func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if m.RevokeAllUserSessionsFunc != nil {
		return m.RevokeAllUserSessionsFunc(ctx, userID)
	}
	return errNotImplemented
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	if m.CleanExpiredSessionsFunc != nil {
		return m.CleanExpiredSessionsFunc(ctx)
	}
	return 0, errNotImplemented
}
