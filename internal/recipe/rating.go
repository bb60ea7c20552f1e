package recipe

import (
	"errors"
	"fmt"
	"math"
)

// MaxStars is the top of the rating scale.
const MaxStars = 5.0

// ErrInvalidRating is returned for star values outside 0..MaxStars.
var ErrInvalidRating = errors.New("rating must be between 0 and 5")

// Rate folds one star rating into the running average and returns the
// updated recipe. r itself is not modified.
func Rate(r Recipe, stars float64) (Recipe, error) {
	if math.IsNaN(stars) || stars < 0 || stars > MaxStars {
		return r, fmt.Errorf("rate %s: %w (got %v)", r.ID, ErrInvalidRating, stars)
	}
	avg := (r.RatingValue()*float64(r.TotalRatings) + stars) / float64(r.TotalRatings+1)
	out := r.Clone()
	out.Rating = &avg
	out.TotalRatings = r.TotalRatings + 1
	return out, nil
}
