package request

type OutletRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Type        string  `json:"type" validate:"required,oneof=MESS RESTAURANT"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type OutletUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=MESS RESTAURANT"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type FoodItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
