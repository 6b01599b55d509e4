package wire

import (
	"net/http"

	"mess-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOutlet(
	r chi.Router,
	outletHandler *adaptor.OutletHandler,
	authed, admin func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/outlets", outletHandler.GetOutlets)
	r.Get("/api/outlets/top-rated", outletHandler.GetTopRatedOutlets)
	r.Get("/api/outlets/type/{type}", outletHandler.GetOutletsByType)
	r.Get("/api/outlets/{id}", outletHandler.GetOutletByID)
	r.Get("/api/outlets/{id}/food-items", outletHandler.GetFoodItems)
	r.Get("/api/food-items/{id}", outletHandler.GetFoodItemByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authed, admin)

		r.Post("/api/admin/outlets", outletHandler.CreateOutlet)
		r.Put("/api/admin/outlets/{id}", outletHandler.UpdateOutlet)
		r.Delete("/api/admin/outlets/{id}", outletHandler.DeleteOutlet)
		r.Post("/api/admin/outlets/{id}/food-items", outletHandler.CreateFoodItem)
		r.Delete("/api/admin/food-items/{id}", outletHandler.DeleteFoodItem)
	})
}
