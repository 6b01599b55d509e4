package entity

import "github.com/google/uuid"

type FoodItem struct {
	BaseNoDelete
	OutletID      uuid.UUID `db:"outlet_id"`
	Name          string    `db:"name"`
	Description   *string   `db:"description"`
	AverageRating float64   `db:"average_rating"`
	TotalRatings  int       `db:"total_ratings"`
}
