package response

import (
	"time"

	"mess-review/internal/data/entity"
)

type OutletResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Type          entity.OutletType  `json:"type"`
	Description   *string            `json:"description"`
	AverageRating float64            `json:"averageRating"`
	TotalRatings  int                `json:"totalRatings"`
	FoodItems     []FoodItemResponse `json:"foodItems,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type FoodItemResponse struct {
	ID            string    `json:"id"`
	OutletID      string    `json:"outletId"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func OutletToResponse(outlet *entity.Outlet) OutletResponse {
	resp := OutletResponse{
		ID:            outlet.ID.String(),
		Name:          outlet.Name,
		Type:          outlet.Type,
		Description:   outlet.Description,
		AverageRating: outlet.AverageRating,
		TotalRatings:  outlet.TotalRatings,
		CreatedAt:     outlet.CreatedAt,
		UpdatedAt:     outlet.UpdatedAt,
	}
	if len(outlet.FoodItems) > 0 {
		resp.FoodItems = FoodItemsToResponse(outlet.FoodItems)
	}
	return resp
}

func OutletsToResponse(outlets []*entity.Outlet) []OutletResponse {
	out := make([]OutletResponse, len(outlets))
	for i, outlet := range outlets {
		out[i] = OutletToResponse(outlet)
	}
	return out
}

func FoodItemToResponse(item *entity.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:            item.ID.String(),
		OutletID:      item.OutletID.String(),
		Name:          item.Name,
		Description:   item.Description,
		AverageRating: item.AverageRating,
		TotalRatings:  item.TotalRatings,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func FoodItemsToResponse(items []*entity.FoodItem) []FoodItemResponse {
	out := make([]FoodItemResponse, len(items))
	for i, item := range items {
		out[i] = FoodItemToResponse(item)
	}
	return out
}
