package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTarget_Columns(t *testing.T) {
	id := uuid.New()

	outletID, foodItemID := OutletTarget(id).Columns()
	assert.Equal(t, &id, outletID)
	assert.Nil(t, foodItemID)

	outletID, foodItemID = FoodItemTarget(id).Columns()
	assert.Nil(t, outletID)
	assert.Equal(t, &id, foodItemID)
}

func TestTargetFromColumns(t *testing.T) {
	id := uuid.New()

	target, err := TargetFromColumns(&id, nil)
	assert.NoError(t, err)
	assert.Equal(t, OutletTarget(id), target)

	target, err = TargetFromColumns(nil, &id)
	assert.NoError(t, err)
	assert.True(t, target.IsFoodItem())

	_, err = TargetFromColumns(&id, &id)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = TargetFromColumns(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRating_IsPublicReview(t *testing.T) {
	text := "Good"
	blank := "  \t"

	tests := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"named with text", Rating{ReviewText: &text}, true},
		{"anonymous with text", Rating{ReviewText: &text, IsAnonymous: true}, false},
		{"named without text", Rating{}, false},
		{"named with blank text", Rating{ReviewText: &blank}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rating.IsPublicReview())
		})
	}
}

func TestOutletType_Valid(t *testing.T) {
	assert.True(t, OutletTypeMess.Valid())
	assert.True(t, OutletTypeRestaurant.Valid())
	assert.False(t, OutletType("CAFE").Valid())
}
