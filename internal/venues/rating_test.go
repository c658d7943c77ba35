package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRating(t *testing.T) {
	t.Run("first rating becomes the mean", func(t *testing.T) {
		v := &Venue{}
		require.NoError(t, AddRating(v, 3))
		assert.Equal(t, 3.0, v.Rating)
		assert.Equal(t, 1, v.ReviewCount)
	})

	t.Run("folds into a large existing aggregate", func(t *testing.T) {
		v := &Venue{Rating: 4.9, ReviewCount: 124}
		require.NoError(t, AddRating(v, 5))
		assert.Equal(t, 4.9, v.Rating)
		assert.Equal(t, 125, v.ReviewCount)
	})

	t.Run("mean stays rounded to one decimal", func(t *testing.T) {
		v := &Venue{}
		require.NoError(t, AddRating(v, 4))
		require.NoError(t, AddRating(v, 5))
		// (4+5)/2 = 4.5
		assert.Equal(t, 4.5, v.Rating)

		require.NoError(t, AddRating(v, 4))
		// (4+5+4)/3 = 4.333... -> 4.3
		assert.Equal(t, 4.3, v.Rating)
		assert.Equal(t, 3, v.ReviewCount)
	})

	t.Run("out of range ratings leave the aggregate untouched", func(t *testing.T) {
		v := &Venue{Rating: 4.0, ReviewCount: 7}
		for _, r := range []int{0, -1, 6, 100} {
			err := AddRating(v, r)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		assert.Equal(t, 4.0, v.Rating)
		assert.Equal(t, 7, v.ReviewCount)
	})
}
