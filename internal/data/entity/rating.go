package entity

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type TargetKind string

const (
	TargetOutlet   TargetKind = "outlet"
	TargetFoodItem TargetKind = "food_item"
)

// Target identifies the rated subject. A rating refers to exactly one
// outlet or one food item, never both.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func OutletTarget(id uuid.UUID) Target {
	return Target{Kind: TargetOutlet, ID: id}
}

func FoodItemTarget(id uuid.UUID) Target {
	return Target{Kind: TargetFoodItem, ID: id}
}

func (t Target) IsOutlet() bool   { return t.Kind == TargetOutlet }
func (t Target) IsFoodItem() bool { return t.Kind == TargetFoodItem }

func (t Target) String() string {
	return string(t.Kind) + ":" + t.ID.String()
}

// Columns splits the target into the nullable outlet_id / food_item_id pair.
func (t Target) Columns() (outletID, foodItemID *uuid.UUID) {
	id := t.ID
	switch t.Kind {
	case TargetOutlet:
		return &id, nil
	case TargetFoodItem:
		return nil, &id
	}
	return nil, nil
}

var ErrInvalidTarget = errors.New("rating must reference exactly one outlet or food item")

// TargetFromColumns rebuilds a Target from its storage columns.
func TargetFromColumns(outletID, foodItemID *uuid.UUID) (Target, error) {
	switch {
	case outletID != nil && foodItemID == nil:
		return OutletTarget(*outletID), nil
	case outletID == nil && foodItemID != nil:
		return FoodItemTarget(*foodItemID), nil
	}
	return Target{}, ErrInvalidTarget
}

type Rating struct {
	BaseNoDelete
	UserID      uuid.UUID `db:"user_id"`
	Target      Target    `db:"-"`
	Stars       int       `db:"stars"`
	ReviewText  *string   `db:"review_text"`
	IsAnonymous bool      `db:"is_anonymous"`

	// filled by read queries
	AuthorName   string  `db:"-"`
	FoodItemName *string `db:"-"`
}

// IsPublicReview reports whether the rating may be shown as a public review:
// it carries non-blank text and its author chose to be named.
func (r *Rating) IsPublicReview() bool {
	return r.ReviewText != nil && strings.TrimSpace(*r.ReviewText) != "" && !r.IsAnonymous
}
