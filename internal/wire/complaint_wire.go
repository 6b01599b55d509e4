package wire

import (
	"net/http"

	"mess-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComplaint(
	r chi.Router,
	complaintHandler *adaptor.ComplaintHandler,
	authed, admin, limit func(http.Handler) http.Handler,
) {
	r.Route("/api/complaints", func(r chi.Router) {
		r.Use(authed)

		// ==================== PROTECTED ROUTES ====================
		r.With(limit).Post("/", complaintHandler.CreateComplaint)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(admin)

			r.Get("/", complaintHandler.GetAllComplaints)
			r.Get("/outlet/{outletId}", complaintHandler.GetComplaintsByOutlet)
			r.Put("/{id}/resolve", complaintHandler.ResolveComplaint)
			r.Delete("/{id}", complaintHandler.DeleteComplaint)
		})
	})
}
