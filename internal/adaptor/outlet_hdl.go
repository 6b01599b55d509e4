package adaptor

import (
	"net/http"

	"mess-review/internal/dto/request"
	"mess-review/internal/usecase"
	"mess-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OutletHandler struct {
	service usecase.OutletService
	log     *zap.Logger
}

func NewOutletHandler(service usecase.OutletService, log *zap.Logger) *OutletHandler {
	return &OutletHandler{
		service: service,
		log:     log.With(zap.String("handler", "outlet")),
	}
}

// GetOutlets handles GET /api/outlets[?type=]
func (h *OutletHandler) GetOutlets(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.service.GetOutlets(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlets")
		return
	}

	utils.ResponseSuccess(w, "success", outlets)
}

// GetOutletsByType handles GET /api/outlets/type/{type}
func (h *OutletHandler) GetOutletsByType(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.service.GetOutletsByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlets by type")
		return
	}

	utils.ResponseSuccess(w, "success", outlets)
}

// GetTopRatedOutlets handles GET /api/outlets/top-rated[?limit=]
func (h *OutletHandler) GetTopRatedOutlets(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 0)

	outlets, err := h.service.GetTopRatedOutlets(r.Context(), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "get top rated outlets")
		return
	}

	utils.ResponseSuccess(w, "success", outlets)
}

// GetOutletByID handles GET /api/outlets/{id}
func (h *OutletHandler) GetOutletByID(w http.ResponseWriter, r *http.Request) {
	outlet, err := h.service.GetOutletByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlet")
		return
	}

	utils.ResponseSuccess(w, "success", outlet)
}

// GetFoodItems handles GET /api/outlets/{id}/food-items
func (h *OutletHandler) GetFoodItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetFoodItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get food items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// GetFoodItemByID handles GET /api/food-items/{id}
func (h *OutletHandler) GetFoodItemByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetFoodItemByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get food item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// CreateOutlet handles POST /api/admin/outlets (admin)
func (h *OutletHandler) CreateOutlet(w http.ResponseWriter, r *http.Request) {
	var req request.OutletRequest
	if !decodeBody(w, r, &req) {
		return
	}

	outlet, err := h.service.CreateOutlet(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create outlet")
		return
	}

	utils.ResponseCreated(w, "Outlet created", outlet)
}

// UpdateOutlet handles PUT /api/admin/outlets/{id} (admin)
func (h *OutletHandler) UpdateOutlet(w http.ResponseWriter, r *http.Request) {
	var req request.OutletUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	outlet, err := h.service.UpdateOutlet(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update outlet")
		return
	}

	utils.ResponseSuccess(w, "Outlet updated", outlet)
}

// DeleteOutlet handles DELETE /api/admin/outlets/{id} (admin)
func (h *OutletHandler) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOutlet(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete outlet")
		return
	}

	utils.ResponseSuccess(w, "Outlet deleted", nil)
}

// CreateFoodItem handles POST /api/admin/outlets/{id}/food-items (admin)
func (h *OutletHandler) CreateFoodItem(w http.ResponseWriter, r *http.Request) {
	var req request.FoodItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.CreateFoodItem(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create food item")
		return
	}

	utils.ResponseCreated(w, "Food item created", item)
}

// DeleteFoodItem handles DELETE /api/admin/food-items/{id} (admin)
func (h *OutletHandler) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFoodItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete food item")
		return
	}

	utils.ResponseSuccess(w, "Food item deleted", nil)
}
