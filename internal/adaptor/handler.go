package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"mess-review/internal/usecase"
	"mess-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	OAuth     *OAuthHandler
	User      *UserHandler
	Outlet    *OutletHandler
	Rating    *RatingHandler
	Complaint *ComplaintHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		OAuth:     NewOAuthHandler(service.OAuth, config, log),
		User:      NewUserHandler(service.User, log),
		Outlet:    NewOutletHandler(service.Outlet, log),
		Rating:    NewRatingHandler(service.Rating, log),
		Complaint: NewComplaintHandler(service.Complaint, log),
	}
}

// decodeBody decodes a JSON request body and answers 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	}
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
