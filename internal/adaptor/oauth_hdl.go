package adaptor

import (
	"errors"
	"net/http"
	"time"

	"mess-review/internal/usecase"
	"mess-review/pkg/utils"

	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

type OAuthHandler struct {
	service usecase.OAuthService
	secure  bool
	log     *zap.Logger
}

func NewOAuthHandler(service usecase.OAuthService, config *utils.Config, log *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		service: service,
		secure:  !config.App.Debug,
		log:     log.With(zap.String("handler", "oauth")),
	}
}

// GoogleLogin handles GET /api/auth/google/login
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.service.Enabled() {
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Google login is not configured", nil, nil)
		return
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		h.log.Error("Failed to generate oauth state", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.service.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		h.log.Warn("OAuth state mismatch", zap.String("ip", r.RemoteAddr))
		http.Redirect(w, r, h.service.ErrorRedirect("invalid_state"), http.StatusTemporaryRedirect)
		return
	}

	// single use
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/api/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
	})

	if reason := query.Get("error"); reason != "" {
		h.log.Warn("Google consent denied", zap.String("reason", reason))
		http.Redirect(w, r, h.service.ErrorRedirect("oauth_failed"), http.StatusTemporaryRedirect)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Redirect(w, r, h.service.ErrorRedirect("oauth_failed"), http.StatusTemporaryRedirect)
		return
	}

	auth, err := h.service.Callback(r.Context(), code, clientInfo(r))
	if err != nil {
		reason := "oauth_failed"
		switch {
		case errors.Is(err, usecase.ErrInstitutionalEmail):
			reason = "only_institutional_email"
		case errors.Is(err, usecase.ErrAccountDeactivated):
			reason = "account_deactivated"
		}
		h.log.Warn("Google callback failed", zap.Error(err), zap.String("reason", reason))
		http.Redirect(w, r, h.service.ErrorRedirect(reason), http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, h.service.SuccessRedirect(auth), http.StatusTemporaryRedirect)
}
