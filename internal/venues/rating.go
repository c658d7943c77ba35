package venues

import (
	"errors"
	"math"
)

// ErrInvalidRating is returned when a submitted rating is outside 1..5.
var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// AddRating folds one more rating into the venue's running aggregate. The
// stored rating stays the mean of all submitted ratings rounded to one
// decimal, and the review count only ever grows.
func AddRating(v *Venue, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	totalScore := v.Rating*float64(v.ReviewCount) + float64(rating)
	newCount := v.ReviewCount + 1

	v.Rating = math.Round(totalScore/float64(newCount)*10) / 10
	v.ReviewCount = newCount
	return nil
}
