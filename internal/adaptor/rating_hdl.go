package adaptor

import (
	"net/http"

	"mess-review/internal/data/entity"
	"mess-review/internal/dto/request"
	"mess-review/internal/usecase"
	"mess-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// RateOutlet handles POST /api/ratings/outlet (protected)
func (h *RatingHandler) RateOutlet(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RateOutletRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rating, err := h.service.RateOutlet(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate outlet")
		return
	}

	utils.ResponseCreated(w, "Rating submitted", rating)
}

// RateFoodItem handles POST /api/ratings/food-item (protected)
func (h *RatingHandler) RateFoodItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RateFoodItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rating, err := h.service.RateFoodItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate food item")
		return
	}

	utils.ResponseCreated(w, "Rating submitted", rating)
}

// GetOutletRatings handles GET /api/ratings/outlet/{outletId}
func (h *RatingHandler) GetOutletRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetOutletRatings(r.Context(), chi.URLParam(r, "outletId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlet ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetFoodItemRatings handles GET /api/ratings/food-item/{foodItemId}
func (h *RatingHandler) GetFoodItemRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetFoodItemRatings(r.Context(), chi.URLParam(r, "foodItemId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get food item ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetOutletReviews handles GET /api/ratings/outlet/{outletId}/reviews
func (h *RatingHandler) GetOutletReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetOutletReviews(r.Context(), chi.URLParam(r, "outletId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlet reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetFoodItemReviews handles GET /api/ratings/food-item/{foodItemId}/reviews
func (h *RatingHandler) GetFoodItemReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetFoodItemReviews(r.Context(), chi.URLParam(r, "foodItemId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get food item reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetAllReviewsForOutlet handles GET /api/ratings/outlet/{outletId}/all-reviews
func (h *RatingHandler) GetAllReviewsForOutlet(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAllReviewsForOutlet(r.Context(), chi.URLParam(r, "outletId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get all outlet reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetOutletSummary handles GET /api/ratings/outlet/{outletId}/summary
func (h *RatingHandler) GetOutletSummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, entity.TargetOutlet, chi.URLParam(r, "outletId"))
}

// GetFoodItemSummary handles GET /api/ratings/food-item/{foodItemId}/summary
func (h *RatingHandler) GetFoodItemSummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, entity.TargetFoodItem, chi.URLParam(r, "foodItemId"))
}

func (h *RatingHandler) summary(w http.ResponseWriter, r *http.Request, kind entity.TargetKind, targetID string) {
	summary, err := h.service.GetRatingSummary(r.Context(), kind, targetID)
	if err != nil {
		handleServiceError(w, h.log, err, "get rating summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// DeleteRating handles DELETE /api/ratings/{ratingId} (admin)
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRating(r.Context(), chi.URLParam(r, "ratingId")); err != nil {
		handleServiceError(w, h.log, err, "delete rating")
		return
	}

	utils.ResponseSuccess(w, "Rating deleted", nil)
}
