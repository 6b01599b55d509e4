package adaptor

import (
	"net/http"

	"mess-review/internal/dto/request"
	"mess-review/internal/usecase"
	"mess-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	service usecase.ComplaintService
	log     *zap.Logger
}

func NewComplaintHandler(service usecase.ComplaintService, log *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		service: service,
		log:     log.With(zap.String("handler", "complaint")),
	}
}

// CreateComplaint handles POST /api/complaints (protected)
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ComplaintRequest
	if !decodeBody(w, r, &req) {
		return
	}

	complaint, err := h.service.CreateComplaint(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create complaint")
		return
	}

	utils.ResponseCreated(w, "Complaint submitted", complaint)
}

// GetAllComplaints handles GET /api/complaints (admin)
func (h *ComplaintHandler) GetAllComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.service.GetAllComplaints(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get complaints")
		return
	}

	utils.ResponseSuccess(w, "success", complaints)
}

// GetComplaintsByOutlet handles GET /api/complaints/outlet/{outletId} (admin)
func (h *ComplaintHandler) GetComplaintsByOutlet(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.service.GetComplaintsByOutlet(r.Context(), chi.URLParam(r, "outletId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get outlet complaints")
		return
	}

	utils.ResponseSuccess(w, "success", complaints)
}

// ResolveComplaint handles PUT /api/complaints/{id}/resolve (admin)
func (h *ComplaintHandler) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.service.ResolveComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "resolve complaint")
		return
	}

	utils.ResponseSuccess(w, "Complaint resolved", complaint)
}

// DeleteComplaint handles DELETE /api/complaints/{id} (admin)
func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteComplaint(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete complaint")
		return
	}

	utils.ResponseSuccess(w, "Complaint deleted", nil)
}
