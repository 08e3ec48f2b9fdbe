package review_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview_Rating(t *testing.T) {
	now := time.Now().UTC()

	for rating := review.MinRating; rating <= review.MaxRating; rating++ {
		r, err := review.NewReview(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), rating, " ok ", now)
		require.NoError(t, err)
		assert.Equal(t, rating, r.Rating())
		assert.Equal(t, "ok", r.Comment())
	}

	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := review.NewReview(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), rating, "", now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "rating %d", rating)
	}
}
