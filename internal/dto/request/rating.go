package request

type RateOutletRequest struct {
	OutletID    string  `json:"outletId" validate:"required,uuid"`
	Stars       int     `json:"stars" validate:"gte=1,lte=5"`
	ReviewText  *string `json:"reviewText,omitempty" validate:"omitempty,max=1000"`
	IsAnonymous *bool   `json:"isAnonymous,omitempty"`
}

// Anonymous defaults to true when the client omits the flag.
func (r RateOutletRequest) Anonymous() bool {
	return r.IsAnonymous == nil || *r.IsAnonymous
}

type RateFoodItemRequest struct {
	FoodItemID  string  `json:"foodItemId" validate:"required,uuid"`
	Stars       int     `json:"stars" validate:"gte=1,lte=5"`
	ReviewText  *string `json:"reviewText,omitempty" validate:"omitempty,max=1000"`
	IsAnonymous *bool   `json:"isAnonymous,omitempty"`
}

// Anonymous defaults to true when the client omits the flag.
func (r RateFoodItemRequest) Anonymous() bool {
	return r.IsAnonymous == nil || *r.IsAnonymous
}
