package usecase

import (
	"testing"
	"time"

	"mess-review/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedTime(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

func review(id uuid.UUID, at time.Time) *entity.Rating {
	text := "ok"
	return &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{ID: id, CreatedAt: at},
		ReviewText:   &text,
	}
}

func TestSelectPublicReviews(t *testing.T) {
	text := "Great"
	blank := "   "

	named := &entity.Rating{Stars: 5, ReviewText: &text}
	ratings := []*entity.Rating{
		named,
		{Stars: 4, ReviewText: &text, IsAnonymous: true},
		{Stars: 3, ReviewText: nil},
		{Stars: 2, ReviewText: &blank},
	}

	public := selectPublicReviews(ratings)

	assert.Equal(t, []*entity.Rating{named}, public)
	for _, r := range public {
		assert.False(t, r.IsAnonymous)
		assert.NotNil(t, r.ReviewText)
	}
}

func TestSelectPublicReviews_EmptyIsNotNil(t *testing.T) {
	public := selectPublicReviews(nil)
	assert.NotNil(t, public)
	assert.Empty(t, public)
}

func TestMergeByRecency(t *testing.T) {
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-0000-0000-0000-000000000001")

	oldest := review(uuid.New(), fixedTime(0))
	newest := review(uuid.New(), fixedTime(30))
	tieLow := review(low, fixedTime(10))
	tieHigh := review(high, fixedTime(10))

	merged := mergeByRecency(
		[]*entity.Rating{tieLow, oldest},
		[]*entity.Rating{newest},
		nil,
		[]*entity.Rating{tieHigh},
	)

	assert.Equal(t, []*entity.Rating{newest, tieHigh, tieLow, oldest}, merged)
}

func TestMergeByRecency_Deterministic(t *testing.T) {
	a := review(uuid.New(), fixedTime(5))
	b := review(uuid.New(), fixedTime(5))

	assert.Equal(t,
		mergeByRecency([]*entity.Rating{a}, []*entity.Rating{b}),
		mergeByRecency([]*entity.Rating{b}, []*entity.Rating{a}),
	)
}
