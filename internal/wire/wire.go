// internal/wire/wire.go
package wire

import (
	"net/http"

	"mess-review/internal/adaptor"
	"mess-review/internal/data/repository"
	"mess-review/internal/usecase"
	"mess-review/pkg/cache"
	"mess-review/pkg/mailer"
	"mess-review/pkg/middleware"
	"mess-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and services.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	feedCache *cache.Cache,
	sender mailer.Sender,
	logger *zap.Logger,
) (*App, error) {
	service := usecase.NewService(repo, config, feedCache, sender, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router, err := setupRouter(handler, repo, config, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendURL))

	// writes by students share one limiter
	limit, err := middleware.RateLimit(config.RateLimit.Rate, logger)
	if err != nil {
		return nil, err
	}

	authed := middleware.AuthSession(repo.Session, repo.User, logger)
	admin := middleware.Admin(logger)

	// Apply routes
	wireAuth(r, handler.Auth, handler.OAuth, authed)
	wireUser(r, handler.User, authed, admin)
	wireOutlet(r, handler.Outlet, authed, admin)
	wireRating(r, handler.Rating, authed, admin, limit)
	wireComplaint(r, handler.Complaint, authed, admin, limit)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r, nil
}
