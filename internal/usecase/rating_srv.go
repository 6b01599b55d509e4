package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/cache"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxReviewFanout bounds concurrent food item queries when merging an outlet feed.
const maxReviewFanout = 4

type RatingService interface {
	RateOutlet(ctx context.Context, userID uuid.UUID, req *request.RateOutletRequest) (*response.RatingResponse, error)
	RateFoodItem(ctx context.Context, userID uuid.UUID, req *request.RateFoodItemRequest) (*response.RatingResponse, error)

	// Raw mode: every rating, for numeric consumers.
	GetOutletRatings(ctx context.Context, outletID string) ([]response.RatingResponse, error)
	GetFoodItemRatings(ctx context.Context, foodItemID string) ([]response.RatingResponse, error)

	// Public mode: named ratings with text only.
	GetOutletReviews(ctx context.Context, outletID string) ([]response.RatingResponse, error)
	GetFoodItemReviews(ctx context.Context, foodItemID string) ([]response.RatingResponse, error)
	GetAllReviewsForOutlet(ctx context.Context, outletID string) ([]response.RatingResponse, error)

	GetRatingSummary(ctx context.Context, kind entity.TargetKind, targetID string) (*response.RatingSummaryResponse, error)

	// Admin
	DeleteRating(ctx context.Context, ratingID string) error
}

type ratingService struct {
	repo   *repository.Repository
	recalc *recalculator
	cache  *cache.Cache
	log    *zap.Logger
}

func NewRatingService(repo *repository.Repository, feedCache *cache.Cache, log *zap.Logger) RatingService {
	log = log.With(zap.String("service", "rating"))
	return &ratingService{
		repo:   repo,
		recalc: newRecalculator(repo, log),
		cache:  feedCache,
		log:    log,
	}
}

func outletFeedKey(outletID uuid.UUID) string {
	return "outlet-reviews:" + outletID.String()
}

func (s *ratingService) RateOutlet(ctx context.Context, userID uuid.UUID, req *request.RateOutletRequest) (*response.RatingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Rate outlet validation failed", zap.Error(err))
		return nil, err
	}

	outletID, err := parseID("outlet", req.OutletID)
	if err != nil {
		return nil, err
	}

	return s.rate(ctx, userID, entity.OutletTarget(outletID), req.Stars, req.ReviewText, req.Anonymous())
}

func (s *ratingService) RateFoodItem(ctx context.Context, userID uuid.UUID, req *request.RateFoodItemRequest) (*response.RatingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Rate food item validation failed", zap.Error(err))
		return nil, err
	}

	foodItemID, err := parseID("food item", req.FoodItemID)
	if err != nil {
		return nil, err
	}

	return s.rate(ctx, userID, entity.FoodItemTarget(foodItemID), req.Stars, req.ReviewText, req.Anonymous())
}

// rate runs lock target -> check author -> insert -> recalculate as one transaction.
func (s *ratingService) rate(ctx context.Context, userID uuid.UUID, target entity.Target, stars int, reviewText *string, anonymous bool) (*response.RatingResponse, error) {
	now := utils.Now()
	rating := &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		Target:      target,
		Stars:       stars,
		ReviewText:  utils.SanitizeOptionalText(reviewText),
		IsAnonymous: anonymous,
	}

	var outletID uuid.UUID
	err := s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.lockTarget(ctx, target)
		if err != nil {
			return err
		}
		outletID = locked.outletID
		rating.FoodItemName = locked.foodItemName

		user, err := s.repo.User.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("find author: %w", err)
		}
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		rating.AuthorName = user.Name

		if err := s.repo.Rating.Create(ctx, rating); err != nil {
			return err
		}
		return s.recalc.recalculate(ctx, target)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("Failed to create rating",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.Stringer("target", target),
			)
		}
		return nil, err
	}

	s.invalidateFeed(outletID)

	s.log.Info("Rating created",
		zap.String("rating_id", rating.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Stringer("target", target),
		zap.Int("stars", stars),
		zap.Bool("anonymous", anonymous),
	)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

type lockedTarget struct {
	outletID     uuid.UUID
	foodItemName *string
}

// lockTarget takes the row lock on the rated outlet or food item. The lock
// serializes concurrent recalculations of the same target.
func (s *ratingService) lockTarget(ctx context.Context, target entity.Target) (lockedTarget, error) {
	switch target.Kind {
	case entity.TargetOutlet:
		outlet, err := s.repo.Outlet.FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return lockedTarget{}, err
		}
		if outlet == nil {
			return lockedTarget{}, fmt.Errorf("%w: outlet %s", ErrNotFound, target.ID)
		}
		return lockedTarget{outletID: outlet.ID}, nil

	case entity.TargetFoodItem:
		item, err := s.repo.FoodItem.FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return lockedTarget{}, err
		}
		if item == nil {
			return lockedTarget{}, fmt.Errorf("%w: food item %s", ErrNotFound, target.ID)
		}
		name := item.Name
		return lockedTarget{outletID: item.OutletID, foodItemName: &name}, nil
	}

	return lockedTarget{}, fmt.Errorf("%w: %v", ErrValidation, entity.ErrInvalidTarget)
}

func (s *ratingService) DeleteRating(ctx context.Context, ratingID string) error {
	id, err := parseID("rating", ratingID)
	if err != nil {
		return err
	}

	var (
		target   entity.Target
		outletID uuid.UUID
	)
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rating, err := s.repo.Rating.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if rating == nil {
			return fmt.Errorf("%w: rating %s", ErrNotFound, ratingID)
		}
		target = rating.Target

		locked, err := s.lockTarget(ctx, target)
		if err != nil {
			return err
		}
		outletID = locked.outletID

		if err := s.repo.Rating.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: rating %s", ErrNotFound, ratingID)
			}
			return err
		}
		return s.recalc.recalculate(ctx, target)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrValidation) {
			s.log.Error("Failed to delete rating", zap.Error(err), zap.String("rating_id", ratingID))
		}
		return err
	}

	s.invalidateFeed(outletID)

	s.log.Info("Rating deleted",
		zap.String("rating_id", ratingID),
		zap.Stringer("target", target),
	)
	return nil
}

func (s *ratingService) GetOutletRatings(ctx context.Context, outletID string) ([]response.RatingResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}
	return s.rawRatings(ctx, entity.OutletTarget(id))
}

func (s *ratingService) GetFoodItemRatings(ctx context.Context, foodItemID string) ([]response.RatingResponse, error) {
	id, err := parseID("food item", foodItemID)
	if err != nil {
		return nil, err
	}
	return s.rawRatings(ctx, entity.FoodItemTarget(id))
}

func (s *ratingService) rawRatings(ctx context.Context, target entity.Target) ([]response.RatingResponse, error) {
	ratings, err := s.repo.Rating.FindByTarget(ctx, target)
	if err != nil {
		s.log.Error("Failed to get ratings", zap.Error(err), zap.Stringer("target", target))
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	return response.RatingsToResponse(ratings), nil
}

func (s *ratingService) GetOutletReviews(ctx context.Context, outletID string) ([]response.RatingResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.publicReviews(ctx, entity.OutletTarget(id))
	if err != nil {
		return nil, err
	}
	return response.RatingsToResponse(reviews), nil
}

func (s *ratingService) GetFoodItemReviews(ctx context.Context, foodItemID string) ([]response.RatingResponse, error) {
	id, err := parseID("food item", foodItemID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.publicReviews(ctx, entity.FoodItemTarget(id))
	if err != nil {
		return nil, err
	}
	return response.RatingsToResponse(reviews), nil
}

func (s *ratingService) publicReviews(ctx context.Context, target entity.Target) ([]*entity.Rating, error) {
	ratings, err := s.repo.Rating.FindPublicByTarget(ctx, target)
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err), zap.Stringer("target", target))
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	return selectPublicReviews(ratings), nil
}

// GetAllReviewsForOutlet merges the outlet's public reviews with those of
// every food item it serves, newest first.
func (s *ratingService) GetAllReviewsForOutlet(ctx context.Context, outletID string) ([]response.RatingResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	key := outletFeedKey(id)
	var version uint64
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if feed, ok := cached.([]response.RatingResponse); ok {
				return slices.Clone(feed), nil
			}
		}
		// must precede every read below
		version = s.cache.Version(key)
	}

	items, err := s.repo.FoodItem.FindByOutletID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get food items for reviews", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("get food items: %w", err)
	}

	// slot 0 holds the outlet's own reviews, slot i+1 those of items[i]
	streams := make([][]*entity.Rating, len(items)+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxReviewFanout)

	g.Go(func() error {
		reviews, err := s.publicReviews(gctx, entity.OutletTarget(id))
		streams[0] = reviews
		return err
	})
	for i, item := range items {
		g.Go(func() error {
			reviews, err := s.publicReviews(gctx, entity.FoodItemTarget(item.ID))
			streams[i+1] = reviews
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed := response.RatingsToResponse(mergeByRecency(streams...))
	if s.cache != nil && !s.cache.SetIfVersion(key, slices.Clone(feed), version) {
		s.log.Debug("Outlet review feed changed during build, not cached", zap.String("outlet_id", outletID))
	}

	s.log.Debug("Outlet review feed built",
		zap.String("outlet_id", outletID),
		zap.Int("food_items", len(items)),
		zap.Int("reviews", len(feed)),
	)
	return feed, nil
}

func (s *ratingService) GetRatingSummary(ctx context.Context, kind entity.TargetKind, targetID string) (*response.RatingSummaryResponse, error) {
	id, err := parseID(string(kind), targetID)
	if err != nil {
		return nil, err
	}

	var target entity.Target
	switch kind {
	case entity.TargetOutlet:
		outlet, err := s.repo.Outlet.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get outlet: %w", err)
		}
		if outlet == nil {
			return nil, fmt.Errorf("%w: outlet %s", ErrNotFound, targetID)
		}
		target = entity.OutletTarget(id)
	case entity.TargetFoodItem:
		item, err := s.repo.FoodItem.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get food item: %w", err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w: food item %s", ErrNotFound, targetID)
		}
		target = entity.FoodItemTarget(id)
	default:
		return nil, fmt.Errorf("%w: unknown target type %q", ErrValidation, kind)
	}

	ratings, err := s.repo.Rating.FindByTarget(ctx, target)
	if err != nil {
		s.log.Error("Failed to get ratings for summary", zap.Error(err), zap.Stringer("target", target))
		return nil, fmt.Errorf("get ratings: %w", err)
	}

	agg, _ := ComputeAggregate(ratings)
	return &response.RatingSummaryResponse{
		TargetType:    kind,
		TargetID:      id.String(),
		AverageRating: agg.Average,
		TotalRatings:  agg.Count,
		Distribution:  StarDistribution(ratings),
	}, nil
}

func (s *ratingService) invalidateFeed(outletID uuid.UUID) {
	if s.cache == nil || outletID == uuid.Nil {
		return
	}
	s.cache.Delete(outletFeedKey(outletID))
}
