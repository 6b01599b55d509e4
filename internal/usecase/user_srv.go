package usecase

import (
	"context"
	"fmt"

	"mess-review/internal/data/repository"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeactivateUser(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.Limit()

	// Get users with pagination
	users, err := us.repo.User.FindAll(ctx, perPage, req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", page),
			zap.Int("per_page", perPage),
		)
		return nil, fmt.Errorf("get users: %w", err)
	}

	// Get total count
	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", page),
		zap.Int("per_page", perPage),
	)

	return response.NewPaginatedResponse(userResponses, page, perPage, total), nil
}

// DeactivateUser blocks the account and revokes every open session.
func (us *userService) DeactivateUser(ctx context.Context, userID string) error {
	id, err := parseID("user", userID)
	if err != nil {
		return err
	}

	err = us.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := us.repo.User.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}

		user.IsActive = false
		user.UpdatedAt = utils.Now()
		if err := us.repo.User.Update(ctx, user); err != nil {
			return err
		}
		return us.repo.Session.RevokeAllUserSessions(ctx, id)
	})
	if err != nil {
		us.log.Warn("Failed to deactivate user", zap.Error(err), zap.String("user_id", userID))
		return err
	}

	us.log.Info("User deactivated", zap.String("user_id", userID))
	return nil
}
