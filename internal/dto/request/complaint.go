package request

type ComplaintRequest struct {
	OutletID      string `json:"outletId" validate:"required,uuid"`
	ComplaintText string `json:"complaintText" validate:"required,min=1,max=2000"`
	IsAnonymous   bool   `json:"isAnonymous"`
}
