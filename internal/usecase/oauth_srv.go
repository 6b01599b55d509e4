package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/dto/response"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrOAuthDisabled = errors.New("google login is not configured")

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

type OAuthService interface {
	Enabled() bool
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string
	// Callback exchanges code, then finds or creates the Google user and issues a session.
	Callback(ctx context.Context, code string, client ClientInfo) (*response.AuthResponse, error)
	// SuccessRedirect and ErrorRedirect build the frontend sign-in URL.
	SuccessRedirect(auth *response.AuthResponse) string
	ErrorRedirect(code string) string
}

type oauthService struct {
	repo        *repository.Repository
	config      *utils.Config
	oauth       *oauth2.Config
	userInfoURL string
	log         *zap.Logger
}

func NewOAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) OAuthService {
	return newOAuthService(repo, config, &oauth2.Config{
		ClientID:     config.OAuth.GoogleClientID,
		ClientSecret: config.OAuth.GoogleClientSecret,
		RedirectURL:  config.OAuth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, googleUserInfoURL, log)
}

func newOAuthService(repo *repository.Repository, config *utils.Config, oauthCfg *oauth2.Config, userInfoURL string, log *zap.Logger) *oauthService {
	return &oauthService{
		repo:        repo,
		config:      config,
		oauth:       oauthCfg,
		userInfoURL: userInfoURL,
		log:         log.With(zap.String("service", "oauth")),
	}
}

func (s *oauthService) Enabled() bool {
	return s.config.OAuth.Enabled()
}

func (s *oauthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *oauthService) Callback(ctx context.Context, code string, client ClientInfo) (*response.AuthResponse, error) {
	if !s.Enabled() {
		return nil, ErrOAuthDisabled
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", ErrValidation)
	}

	// 1. Exchange code
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.log.Warn("Failed to exchange authorization code", zap.Error(err))
		return nil, fmt.Errorf("%w: exchange code: %v", ErrUnauthorized, err)
	}

	// 2. Read profile
	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		s.log.Error("Failed to get google user info", zap.Error(err))
		return nil, fmt.Errorf("get user info: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" || !s.config.Auth.IsInstitutionalEmail(email) {
		s.log.Warn("Google login with non-institutional email", zap.String("email", email))
		return nil, ErrInstitutionalEmail
	}

	role := entity.RoleStudent
	if s.config.Auth.IsAdminEmail(email) {
		role = entity.RoleAdmin
	}

	// 3. Find or create user, then issue a session
	var (
		user    *entity.User
		session *entity.Session
	)
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err = s.repo.User.FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		if user == nil {
			user = newGoogleUser(info, email, role)
			if err := s.repo.User.Create(ctx, user); err != nil {
				return err
			}
			s.log.Info("Google user created", zap.String("user_id", user.ID.String()), zap.String("email", email))
		} else {
			if !user.IsActive {
				return ErrAccountDeactivated
			}
			if err := syncRole(ctx, s.repo.User, user, role); err != nil {
				return err
			}
		}

		session, err = createSession(ctx, s.repo.Session, user.ID, sessionTTL(s.config.Session), client)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrForbidden) {
			s.log.Error("Failed to complete google login", zap.Error(err), zap.String("email", email))
		}
		return nil, err
	}

	s.log.Info("User signed in with google",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	httpClient := s.oauth.Client(ctx, token)
	httpClient.Timeout = 10 * time.Second

	resp, err := httpClient.Get(s.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}

func newGoogleUser(info *GoogleUserInfo, email string, role entity.UserRole) *entity.User {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	var providerID *string
	if info.ID != "" {
		id := info.ID
		providerID = &id
	}

	now := utils.Now()
	return &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          name,
		Email:         email,
		Role:          role,
		Provider:      entity.ProviderGoogle,
		ProviderID:    providerID,
		EmailVerified: true,
		IsActive:      true,
	}
}

func (s *oauthService) SuccessRedirect(auth *response.AuthResponse) string {
	params := url.Values{}
	params.Set("token", auth.Token)
	params.Set("name", auth.Name)
	params.Set("email", auth.Email)
	params.Set("role", string(auth.Role))
	return s.signInURL(params)
}

func (s *oauthService) ErrorRedirect(code string) string {
	params := url.Values{}
	params.Set("error", code)
	return s.signInURL(params)
}

func (s *oauthService) signInURL(params url.Values) string {
	return strings.TrimRight(s.config.App.FrontendURL, "/") + "/signin?" + params.Encode()
}
