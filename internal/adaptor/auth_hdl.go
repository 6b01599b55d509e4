package adaptor

import (
	"net/http"

	"mess-review/internal/dto/request"
	"mess-review/internal/usecase"
	"mess-review/pkg/middleware"
	"mess-review/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.SignUp(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "sign up")
		return
	}

	utils.ResponseCreated(w, "Sign up successful", resp)
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.SignIn(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "sign in")
		return
	}

	utils.ResponseSuccess(w, "Sign in successful", resp)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		// route may be mounted without AuthSession
		if token, ok = middleware.BearerToken(r); !ok {
			utils.ResponseUnauthorized(w, "Missing authorization token")
			return
		}
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}
