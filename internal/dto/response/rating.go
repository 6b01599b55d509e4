package response

import (
	"time"

	"mess-review/internal/data/entity"
)

// AnonymousName replaces the author name of anonymous ratings and complaints.
const AnonymousName = "Anonymous"

type RatingResponse struct {
	ID           string    `json:"id"`
	Stars        int       `json:"stars"`
	ReviewText   *string   `json:"reviewText"`
	IsAnonymous  bool      `json:"isAnonymous"`
	UserName     string    `json:"userName"`
	FoodItemName *string   `json:"foodItemName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RatingToResponse is the only place the author name leaves the service, so
// redaction of anonymous ratings happens here.
func RatingToResponse(rating *entity.Rating) RatingResponse {
	userName := rating.AuthorName
	if rating.IsAnonymous {
		userName = AnonymousName
	}

	var foodItemName *string
	if rating.Target.IsFoodItem() {
		foodItemName = rating.FoodItemName
	}

	return RatingResponse{
		ID:           rating.ID.String(),
		Stars:        rating.Stars,
		ReviewText:   rating.ReviewText,
		IsAnonymous:  rating.IsAnonymous,
		UserName:     userName,
		FoodItemName: foodItemName,
		CreatedAt:    rating.CreatedAt,
		UpdatedAt:    rating.UpdatedAt,
	}
}

func RatingsToResponse(ratings []*entity.Rating) []RatingResponse {
	out := make([]RatingResponse, len(ratings))
	for i, rating := range ratings {
		out[i] = RatingToResponse(rating)
	}
	return out
}

type RatingSummaryResponse struct {
	TargetType    entity.TargetKind `json:"targetType"`
	TargetID      string            `json:"targetId"`
	AverageRating float64           `json:"averageRating"`
	TotalRatings  int               `json:"totalRatings"`
	// Distribution maps each star value 1..5 to its count.
	Distribution map[int]int `json:"distribution"`
}
