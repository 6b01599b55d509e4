package wire

import (
	"net/http"

	"mess-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	oauthHandler *adaptor.OAuthHandler,
	authed func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/signup", authHandler.SignUp)
	r.Post("/api/auth/signin", authHandler.SignIn)

	// Google login, redirects back to the frontend
	r.Get("/api/auth/google/login", oauthHandler.GoogleLogin)
	r.Get("/api/auth/google/callback", oauthHandler.GoogleCallback)

	// ==================== PROTECTED ROUTES ====================
	r.With(authed).Post("/api/auth/logout", authHandler.Logout)
}
