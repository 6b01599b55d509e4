package usecase

import (
	"context"
	"fmt"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"

	"go.uber.org/zap"
)

// Aggregate is the stored (average, count) pair of an outlet or food item.
type Aggregate struct {
	Average float64
	Count   int
}

// ComputeAggregate returns the mean star value rounded half-up to one decimal
// place. The rounding is done on integers: tenths = floor((20*sum + n) / 2n).
// ok is false for an empty set.
func ComputeAggregate(ratings []*entity.Rating) (agg Aggregate, ok bool) {
	n := len(ratings)
	if n == 0 {
		return Aggregate{}, false
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}

	tenths := (20*sum + n) / (2 * n)
	return Aggregate{Average: float64(tenths) / 10, Count: n}, true
}

// StarDistribution counts ratings per star value. Every value 1..5 is present.
func StarDistribution(ratings []*entity.Rating) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range ratings {
		if r.Stars >= 1 && r.Stars <= 5 {
			dist[r.Stars]++
		}
	}
	return dist
}

// recalculator rewrites a target's aggregate from its full rating set.
type recalculator struct {
	ratings   repository.RatingRepository
	outlets   repository.OutletRepository
	foodItems repository.FoodItemRepository
	log       *zap.Logger
}

func newRecalculator(repo *repository.Repository, log *zap.Logger) *recalculator {
	return &recalculator{
		ratings:   repo.Rating,
		outlets:   repo.Outlet,
		foodItems: repo.FoodItem,
		log:       log,
	}
}

// recalculate is a no-op when the target has no ratings left: the previous
// aggregate stays in place.
func (rc *recalculator) recalculate(ctx context.Context, target entity.Target) error {
	ratings, err := rc.ratings.FindByTarget(ctx, target)
	if err != nil {
		return fmt.Errorf("load ratings for %s: %w", target, err)
	}

	agg, ok := ComputeAggregate(ratings)
	if !ok {
		rc.log.Debug("No ratings left, keeping previous aggregate", zap.Stringer("target", target))
		return nil
	}

	switch target.Kind {
	case entity.TargetOutlet:
		err = rc.outlets.UpdateRating(ctx, target.ID, agg.Average, agg.Count)
	case entity.TargetFoodItem:
		err = rc.foodItems.UpdateRating(ctx, target.ID, agg.Average, agg.Count)
	default:
		err = entity.ErrInvalidTarget
	}
	if err != nil {
		return fmt.Errorf("write aggregate for %s: %w", target, err)
	}

	rc.log.Debug("Aggregate recalculated",
		zap.Stringer("target", target),
		zap.Float64("average", agg.Average),
		zap.Int("count", agg.Count),
	)
	return nil
}
