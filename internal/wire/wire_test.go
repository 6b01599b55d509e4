package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/data/repository/mocks"
	"mess-review/pkg/cache"
	"mess-review/pkg/mailer"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router       http.Handler
	studentToken string
	adminToken   string
}

func newTestApp(t *testing.T, rate string) *testApp {
	t.Helper()

	student := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Role: entity.RoleStudent, IsActive: true}
	admin := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Role: entity.RoleAdmin, IsActive: true}
	sessions := map[string]uuid.UUID{
		uuid.NewString(): student.ID,
		uuid.NewString(): admin.ID,
	}

	app := &testApp{}
	for token, id := range sessions {
		if id == student.ID {
			app.studentToken = token
		} else {
			app.adminToken = token
		}
	}

	repo := &repository.Repository{
		Tx: &mocks.MockTransactor{},
		User: &mocks.MockUserRepository{
			FindByIDFunc: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
				switch id {
				case student.ID:
					return student, nil
				case admin.ID:
					return admin, nil
				}
				return nil, nil
			},
		},
		Session: &mocks.MockSessionRepository{
			FindValidSessionFunc: func(_ context.Context, token string) (*entity.Session, error) {
				id, ok := sessions[token]
				if !ok {
					return nil, nil
				}
				return &entity.Session{UserID: id}, nil
			},
		},
		Outlet: &mocks.MockOutletRepository{
			FindAllFunc: func(context.Context, *entity.OutletType) ([]*entity.Outlet, error) {
				return []*entity.Outlet{}, nil
			},
		},
		FoodItem:  &mocks.MockFoodItemRepository{},
		Rating:    &mocks.MockRatingRepository{},
		Complaint: &mocks.MockComplaintRepository{},
	}

	config := &utils.Config{
		App:       utils.AppConfig{FrontendURL: "http://localhost:5173"},
		Session:   utils.SessionConfig{ExpiryHours: 24},
		RateLimit: utils.RateLimitConfig{Rate: rate},
	}

	feedCache, err := cache.New(16, time.Minute)
	require.NoError(t, err)

	wired, err := Wiring(repo, config, feedCache, mailer.New(config.Email), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, wired.Service)

	app.router = wired.Router
	return app
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, r)
	return w
}

func TestWiring_Routes(t *testing.T) {
	app := newTestApp(t, "100-M")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"public outlets", http.MethodGet, "/api/outlets", "", http.StatusOK},
		{"bad outlet type", http.MethodGet, "/api/outlets/type/cafe", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/menus", "", http.StatusNotFound},
		{"rate needs session", http.MethodPost, "/api/ratings/outlet", "", http.StatusUnauthorized},
		{"rate with unknown token", http.MethodPost, "/api/ratings/outlet", uuid.NewString(), http.StatusUnauthorized},
		{"rate validates", http.MethodPost, "/api/ratings/outlet", "student", http.StatusBadRequest},
		{"delete rating needs admin", http.MethodDelete, "/api/ratings/" + uuid.NewString(), "student", http.StatusForbidden},
		{"delete rating bad id", http.MethodDelete, "/api/ratings/not-a-uuid", "admin", http.StatusBadRequest},
		{"complaints list needs admin", http.MethodGet, "/api/complaints", "student", http.StatusForbidden},
		{"admin users needs session", http.MethodGet, "/api/admin/users", "", http.StatusUnauthorized},
		{"create outlet needs admin", http.MethodPost, "/api/admin/outlets", "student", http.StatusForbidden},
		{"create outlet validates", http.MethodPost, "/api/admin/outlets", "admin", http.StatusBadRequest},
		{"google login disabled", http.MethodGet, "/api/auth/google/login", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			switch token {
			case "student":
				token = app.studentToken
			case "admin":
				token = app.adminToken
			}
			w := app.do(tt.method, tt.path, token, `{}`)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestWiring_RateLimitsWrites(t *testing.T) {
	app := newTestApp(t, "2-M")

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/complaints", app.studentToken, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/complaints", app.studentToken, `{}`).Code)

	w := app.do(http.MethodPost, "/api/complaints", app.studentToken, `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	// reads are not limited
	for range 5 {
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/outlets", "", "").Code)
	}
}

func TestWiring_InvalidRate(t *testing.T) {
	_, err := Wiring(&repository.Repository{}, &utils.Config{RateLimit: utils.RateLimitConfig{Rate: "fast"}}, nil, nil, zap.NewNop())
	assert.Error(t, err)
}
