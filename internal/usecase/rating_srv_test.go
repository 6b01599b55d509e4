package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRatingService(t *testing.T, store *memStore) (*ratingService, *cache.Cache) {
	t.Helper()
	c, err := cache.New(16, time.Minute)
	require.NoError(t, err)
	return NewRatingService(store.repo(), c, zap.NewNop()).(*ratingService), c
}

func TestRateOutlet_AnonymousRatingsHaveNoReviews(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Asha", "asha@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	for _, stars := range []int{5, 3, 4} {
		resp, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{
			OutletID: outlet.ID.String(),
			Stars:    stars,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsAnonymous)
		assert.Equal(t, response.AnonymousName, resp.UserName)
		assert.Nil(t, resp.FoodItemName)
	}

	assert.InDelta(t, 4.0, outlet.AverageRating, 1e-9)
	assert.Equal(t, 3, outlet.TotalRatings)

	reviews, err := svc.GetOutletReviews(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reviews)

	raw, err := svc.GetOutletRatings(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Len(t, raw, 3)
	for _, r := range raw {
		assert.Equal(t, response.AnonymousName, r.UserName)
	}
}

func TestRateOutlet_PublicAndAnonymous(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	other := store.addUser("Meera", "meera@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	_, err := svc.RateOutlet(ctx, ravi.ID, &request.RateOutletRequest{
		OutletID:    outlet.ID.String(),
		Stars:       5,
		ReviewText:  ptr("Great"),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)

	_, err = svc.RateOutlet(ctx, other.ID, &request.RateOutletRequest{
		OutletID: outlet.ID.String(),
		Stars:    1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, outlet.AverageRating, 1e-9)
	assert.Equal(t, 2, outlet.TotalRatings)

	reviews, err := svc.GetOutletReviews(ctx, outlet.ID.String())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Stars)
	assert.Equal(t, "Ravi", reviews[0].UserName)
	require.NotNil(t, reviews[0].ReviewText)
	assert.Equal(t, "Great", *reviews[0].ReviewText)
}

func TestRateOutlet_AnonymousHidesAuthorEvenWithText(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	resp, err := svc.RateOutlet(context.Background(), author.ID, &request.RateOutletRequest{
		OutletID:    outlet.ID.String(),
		Stars:       2,
		ReviewText:  ptr("Too salty"),
		IsAnonymous: ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, response.AnonymousName, resp.UserName)
	assert.NotContains(t, resp.UserName, "Ravi")
}

func TestRateOutlet_SanitizesAndDropsBlankText(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	resp, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{
		OutletID:    outlet.ID.String(),
		Stars:       4,
		ReviewText:  ptr("<script>alert(1)</script>Nice <b>dal</b>"),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ReviewText)
	assert.Equal(t, "Nice dal", *resp.ReviewText)

	resp, err = svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{
		OutletID:    outlet.ID.String(),
		Stars:       4,
		ReviewText:  ptr("   "),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ReviewText)
}

func TestRateFoodItem(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Looters Truck")
	item := store.addFoodItem(outlet, "Chicken Burger")

	resp, err := svc.RateFoodItem(ctx, author.ID, &request.RateFoodItemRequest{
		FoodItemID:  item.ID.String(),
		Stars:       4,
		ReviewText:  ptr("Juicy"),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.FoodItemName)
	assert.Equal(t, "Chicken Burger", *resp.FoodItemName)
	assert.Equal(t, "Ravi", resp.UserName)
	assert.InDelta(t, 4.0, item.AverageRating, 1e-9)
	assert.Equal(t, 1, item.TotalRatings)
	assert.Zero(t, outlet.TotalRatings)

	reviews, err := svc.GetFoodItemReviews(ctx, item.ID.String())
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestRate_MultipleRatingsBySameAuthor(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	for _, stars := range []int{2, 5} {
		_, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: stars})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, outlet.TotalRatings)
	assert.InDelta(t, 3.5, outlet.AverageRating, 1e-9)
}

func TestRate_ValidationErrors(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	for _, stars := range []int{0, 6} {
		_, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: stars})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "Stars")
	}

	_, err := svc.RateFoodItem(ctx, author.ID, &request.RateFoodItemRequest{Stars: 3})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, store.ratings)
	assert.Zero(t, store.tx.Calls)
}

func TestRate_NotFound(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	_, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{OutletID: uuid.NewString(), Stars: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RateFoodItem(ctx, author.ID, &request.RateFoodItemRequest{FoodItemID: uuid.NewString(), Stars: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RateOutlet(ctx, uuid.New(), &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, store.ratings)
	assert.Zero(t, outlet.TotalRatings)
}

func TestRate_RecalculationFailureSurfaces(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	boom := errors.New("disk full")
	store.outlet.UpdateRatingFunc = func(context.Context, uuid.UUID, float64, int) error {
		return boom
	}

	_, err := svc.RateOutlet(context.Background(), author.ID, &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: 3})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.tx.Calls)
}

func TestRate_TransactionFailure(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")
	store.tx.Err = errors.New("begin failed")

	_, err := svc.RateOutlet(context.Background(), author.ID, &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: 3})
	assert.EqualError(t, err, "begin failed")
	assert.Empty(t, store.ratings)
}

func TestDeleteRating(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	var ids []string
	for _, stars := range []int{5, 3, 4} {
		resp, err := svc.RateOutlet(ctx, author.ID, &request.RateOutletRequest{OutletID: outlet.ID.String(), Stars: stars})
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	require.NoError(t, svc.DeleteRating(ctx, ids[0]))

	assert.Equal(t, 2, outlet.TotalRatings)
	assert.InDelta(t, 3.5, outlet.AverageRating, 1e-9)
}

func TestDeleteRating_LastRatingKeepsAggregate(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Looters Truck")
	item := store.addFoodItem(outlet, "Lemon Tea")

	resp, err := svc.RateFoodItem(ctx, author.ID, &request.RateFoodItemRequest{FoodItemID: item.ID.String(), Stars: 4})
	require.NoError(t, err)
	require.Equal(t, 1, item.TotalRatings)

	require.NoError(t, svc.DeleteRating(ctx, resp.ID))

	assert.Empty(t, store.ratings)
	assert.InDelta(t, 4.0, item.AverageRating, 1e-9)
	assert.Equal(t, 1, item.TotalRatings)
}

func TestDeleteRating_Errors(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteRating(ctx, uuid.NewString()), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteRating(ctx, "42"), ErrValidation)
}

func TestGetAllReviewsForOutlet(t *testing.T) {
	store := newMemStore()
	svc, feedCache := newTestRatingService(t, store)
	ctx := context.Background()

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")
	rajma := store.addFoodItem(outlet, "Rajma Rasila")
	kofta := store.addFoodItem(outlet, "Veg Kofta")
	other := store.addOutlet("Looters Truck")

	first := store.addRating(ravi, entity.OutletTarget(outlet.ID), 4, "Clean tables", false, fixedTime(0))
	third := store.addRating(ravi, entity.FoodItemTarget(rajma.ID), 5, "Best rajma", false, fixedTime(20))
	second := store.addRating(ravi, entity.FoodItemTarget(kofta.ID), 3, "Bit oily", false, fixedTime(10))
	store.addRating(ravi, entity.FoodItemTarget(kofta.ID), 1, "hidden", true, fixedTime(30))
	store.addRating(ravi, entity.FoodItemTarget(rajma.ID), 2, "", false, fixedTime(40))
	store.addRating(ravi, entity.OutletTarget(other.ID), 5, "Elsewhere", false, fixedTime(50))

	feed, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)

	require.Len(t, feed, 3)
	assert.Equal(t, third.ID.String(), feed[0].ID)
	assert.Equal(t, second.ID.String(), feed[1].ID)
	assert.Equal(t, first.ID.String(), feed[2].ID)
	require.NotNil(t, feed[0].FoodItemName)
	assert.Equal(t, "Rajma Rasila", *feed[0].FoodItemName)
	assert.Nil(t, feed[2].FoodItemName)

	_, cached := feedCache.Get(outletFeedKey(outlet.ID))
	assert.True(t, cached)
}

func TestGetAllReviewsForOutlet_InvalidatedByRating(t *testing.T) {
	store := newMemStore()
	svc, feedCache := newTestRatingService(t, store)
	ctx := context.Background()

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")
	item := store.addFoodItem(outlet, "Madrasi Aloo")

	feed, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = svc.RateFoodItem(ctx, ravi.ID, &request.RateFoodItemRequest{
		FoodItemID:  item.ID.String(),
		Stars:       5,
		ReviewText:  ptr("Spicy"),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)

	_, cached := feedCache.Get(outletFeedKey(outlet.ID))
	assert.False(t, cached)

	feed, err = svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestGetAllReviewsForOutlet_RatingDuringBuildIsNotLost(t *testing.T) {
	store := newMemStore()
	svc, feedCache := newTestRatingService(t, store)
	ctx := context.Background()

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	// the first feed build reads the outlet reviews, then stalls until released
	read := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.rating.FindPublicByTargetFunc = func(_ context.Context, target entity.Target) ([]*entity.Rating, error) {
		reviews := store.ratingsFor(target, true)
		once.Do(func() {
			close(read)
			<-release
		})
		return reviews, nil
	}

	type result struct {
		feed []response.RatingResponse
		err  error
	}
	built := make(chan result, 1)
	go func() {
		feed, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
		built <- result{feed, err}
	}()

	<-read
	_, err := svc.RateOutlet(ctx, ravi.ID, &request.RateOutletRequest{
		OutletID:    outlet.ID.String(),
		Stars:       5,
		ReviewText:  ptr("Great"),
		IsAnonymous: ptr(false),
	})
	require.NoError(t, err)
	close(release)

	stale := <-built
	require.NoError(t, stale.err)
	assert.Empty(t, stale.feed)

	_, cached := feedCache.Get(outletFeedKey(outlet.ID))
	assert.False(t, cached)

	feed, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Great", *feed[0].ReviewText)

	reviews, err := svc.GetOutletReviews(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Len(t, reviews, len(feed))
}

func TestGetAllReviewsForOutlet_CallersCannotCorruptCache(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")
	store.addRating(ravi, entity.OutletTarget(outlet.ID), 4, "Clean tables", false, fixedTime(0))

	feed, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	feed[0].Stars = 1
	feed[0].UserName = "someone else"

	cached, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, 4, cached[0].Stars)
	assert.Equal(t, "Ravi", cached[0].UserName)

	cached[0].Stars = 2
	again, err := svc.GetAllReviewsForOutlet(ctx, outlet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, again[0].Stars)
}

func TestRateOutlet_TimestampsMatchStoragePrecision(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	ravi := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")

	resp, err := svc.RateOutlet(context.Background(), ravi.ID, &request.RateOutletRequest{
		OutletID: outlet.ID.String(),
		Stars:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, time.UTC, resp.CreatedAt.Location())
	assert.Zero(t, resp.CreatedAt.Nanosecond()%int(time.Microsecond))
	// Round(0) strips any monotonic reading, so DeepEqual fails if one is present
	assert.Equal(t, resp.CreatedAt.Round(0), resp.CreatedAt)
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
}

func TestGetAllReviewsForOutlet_PropagatesErrors(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	outlet := store.addOutlet("Malviya Mess")
	store.addFoodItem(outlet, "Veg Kofta")

	boom := errors.New("timeout")
	store.rating.FindPublicByTargetFunc = func(_ context.Context, target entity.Target) ([]*entity.Rating, error) {
		if target.IsFoodItem() {
			return nil, boom
		}
		return []*entity.Rating{}, nil
	}

	_, err := svc.GetAllReviewsForOutlet(context.Background(), outlet.ID.String())
	assert.ErrorIs(t, err, boom)
}

func TestGetRatingSummary(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)
	ctx := context.Background()

	author := store.addUser("Ravi", "ravi@pilani.bits-pilani.ac.in", entity.RoleStudent)
	outlet := store.addOutlet("Malviya Mess")
	for _, stars := range []int{5, 5, 4, 1} {
		store.addRating(author, entity.OutletTarget(outlet.ID), stars, "", true, fixedTime(stars))
	}

	summary, err := svc.GetRatingSummary(ctx, entity.TargetOutlet, outlet.ID.String())
	require.NoError(t, err)

	assert.Equal(t, entity.TargetOutlet, summary.TargetType)
	assert.Equal(t, 4, summary.TotalRatings)
	assert.InDelta(t, 3.8, summary.AverageRating, 1e-9)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 1, 5: 2}, summary.Distribution)

	item := store.addFoodItem(outlet, "Veg Kofta")
	summary, err = svc.GetRatingSummary(ctx, entity.TargetFoodItem, item.ID.String())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalRatings)
	assert.Zero(t, summary.AverageRating)

	_, err = svc.GetRatingSummary(ctx, entity.TargetFoodItem, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetRatingSummary(ctx, entity.TargetKind("hall"), uuid.NewString())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetRatings_UnknownTargetIsEmpty(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestRatingService(t, store)

	ratings, err := svc.GetFoodItemRatings(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, ratings)
	assert.Empty(t, ratings)

	_, err = svc.GetOutletReviews(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrValidation)
}
