package usecase

import (
	"bytes"
	"sort"

	"mess-review/internal/data/entity"
)

// selectPublicReviews keeps ratings that carry text and a named author.
func selectPublicReviews(ratings []*entity.Rating) []*entity.Rating {
	public := make([]*entity.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.IsPublicReview() {
			public = append(public, r)
		}
	}
	return public
}

// mergeByRecency concatenates the streams newest first. Equal timestamps are
// ordered by id, descending.
func mergeByRecency(streams ...[]*entity.Rating) []*entity.Rating {
	total := 0
	for _, s := range streams {
		total += len(s)
	}

	merged := make([]*entity.Rating, 0, total)
	for _, s := range streams {
		merged = append(merged, s...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	return merged
}
