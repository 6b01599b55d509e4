package entity

type OutletType string

const (
	OutletTypeMess       OutletType = "MESS"
	OutletTypeRestaurant OutletType = "RESTAURANT"
)

func (t OutletType) Valid() bool {
	return t == OutletTypeMess || t == OutletTypeRestaurant
}

type Outlet struct {
	BaseNoDelete
	Name          string     `db:"name"`
	Type          OutletType `db:"type"`
	Description   *string    `db:"description"`
	AverageRating float64    `db:"average_rating"`
	TotalRatings  int        `db:"total_ratings"`

	FoodItems []*FoodItem `db:"-"`
}
