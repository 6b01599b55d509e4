package response

import (
	"time"

	"mess-review/internal/data/entity"
)

type ComplaintResponse struct {
	ID            string    `json:"id"`
	OutletID      string    `json:"outletId"`
	OutletName    string    `json:"outletName"`
	ComplaintText string    `json:"complaintText"`
	IsAnonymous   bool      `json:"isAnonymous"`
	IsResolved    bool      `json:"isResolved"`
	UserName      string    `json:"userName"`
	UserEmail     *string   `json:"userEmail"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ComplaintToResponse(complaint *entity.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:            complaint.ID.String(),
		OutletID:      complaint.OutletID.String(),
		OutletName:    complaint.OutletName,
		ComplaintText: complaint.ComplaintText,
		IsAnonymous:   complaint.IsAnonymous,
		IsResolved:    complaint.IsResolved,
		UserName:      AnonymousName,
		CreatedAt:     complaint.CreatedAt,
		UpdatedAt:     complaint.UpdatedAt,
	}
	if !complaint.IsAnonymous {
		resp.UserName = complaint.AuthorName
		if complaint.AuthorEmail != "" {
			email := complaint.AuthorEmail
			resp.UserEmail = &email
		}
	}
	return resp
}

func ComplaintsToResponse(complaints []*entity.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, len(complaints))
	for i, complaint := range complaints {
		out[i] = ComplaintToResponse(complaint)
	}
	return out
}
