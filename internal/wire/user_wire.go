package wire

import (
	"net/http"

	"mess-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authed, admin func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(authed).Get("/api/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authed, admin)

		r.Get("/api/admin/users", userHandler.GetAllUsers)
		r.Delete("/api/admin/users/{id}", userHandler.DeactivateUser)
	})
}
