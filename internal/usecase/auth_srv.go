package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo describes the client a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest, client ClientInfo) (*response.AuthResponse, error)
	SignIn(ctx context.Context, req *request.SignInRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Sign up validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Institutional domain only
	if !s.config.Auth.IsInstitutionalEmail(email) {
		s.log.Warn("Sign up with non-institutional email", zap.String("email", email))
		return nil, fmt.Errorf("%w: only @%s email addresses are allowed", ErrInstitutionalEmail, s.config.Auth.AllowedDomain)
	}

	// 3. Email must be unused
	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 5. Create user
	now := utils.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hashedPassword,
		Role:          s.roleFor(email),
		Provider:      entity.ProviderLocal,
		EmailVerified: true,
		IsActive:      true,
	}

	var session *entity.Session
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		session, err = createSession(ctx, s.repo.Session, user.ID, s.sessionTTL(), client)
		return err
	})
	if err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) SignIn(ctx context.Context, req *request.SignInRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		s.log.Warn("Sign in validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !s.config.Auth.IsInstitutionalEmail(email) {
		return nil, fmt.Errorf("%w: only @%s email addresses are allowed", ErrInstitutionalEmail, s.config.Auth.AllowedDomain)
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Check credentials, OAuth accounts have no password
	if user == nil || user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to sign in", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDeactivated
	}

	if err := syncRole(ctx, s.repo.User, user, s.roleFor(user.Email)); err != nil {
		s.log.Warn("Failed to sync role", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	// 5. Create session
	session, err := createSession(ctx, s.repo.Session, user.ID, s.sessionTTL(), client)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return fmt.Errorf("%w: invalid token format", ErrUnauthorized)
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: session not found or already revoked", ErrUnauthorized)
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) roleFor(email string) entity.UserRole {
	if s.config.Auth.IsAdminEmail(email) {
		return entity.RoleAdmin
	}
	return entity.RoleStudent
}

func (s *authService) sessionTTL() time.Duration {
	return sessionTTL(s.config.Session)
}

// ==================== HELPERS ====================

func sessionTTL(cfg utils.SessionConfig) time.Duration {
	if cfg.ExpiryHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(cfg.ExpiryHours) * time.Hour
}

func createSession(ctx context.Context, sessions repository.SessionRepository, userID uuid.UUID, ttl time.Duration, client ClientInfo) (*entity.Session, error) {
	now := utils.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(ttl),
	}

	if err := sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// syncRole persists role when the admin list changed since the user was created.
func syncRole(ctx context.Context, users repository.UserRepository, user *entity.User, role entity.UserRole) error {
	if user.Role == role {
		return nil
	}
	previous := user.Role
	user.Role = role
	user.UpdatedAt = utils.Now()
	if err := users.Update(ctx, user); err != nil {
		user.Role = previous
		return err
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
