package wire

import (
	"net/http"

	"mess-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	authed, admin, limit func(http.Handler) http.Handler,
) {
	r.Route("/api/ratings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/outlet/{outletId}", ratingHandler.GetOutletRatings)
		r.Get("/outlet/{outletId}/reviews", ratingHandler.GetOutletReviews)
		r.Get("/outlet/{outletId}/all-reviews", ratingHandler.GetAllReviewsForOutlet)
		r.Get("/outlet/{outletId}/summary", ratingHandler.GetOutletSummary)
		r.Get("/food-item/{foodItemId}", ratingHandler.GetFoodItemRatings)
		r.Get("/food-item/{foodItemId}/reviews", ratingHandler.GetFoodItemReviews)
		r.Get("/food-item/{foodItemId}/summary", ratingHandler.GetFoodItemSummary)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authed, limit)

			r.Post("/outlet", ratingHandler.RateOutlet)
			r.Post("/food-item", ratingHandler.RateFoodItem)
		})

		// ==================== ADMIN ROUTES ====================
		r.With(authed, admin).Delete("/{ratingId}", ratingHandler.DeleteRating)
	})
}
