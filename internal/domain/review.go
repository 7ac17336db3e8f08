package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Review bounds enforced before submission.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
	MinCommentLen   = 50
	MaxCommentLen   = 300
	MaxReviews      = 10
)

var (
	ErrInvalidRating  = errors.New("rating out of range")
	ErrInvalidComment = errors.New("comment length out of range")
)

// Review is a comment left on an offer.
type Review struct {
	ID      string
	OfferID string
	User    ReviewUser
	Rating  int
	Comment string
	Date    string
}

// ReviewUser is the review author.
type ReviewUser struct {
	Name   string
	Avatar string
}

// ValidateReview checks a review before it is posted.
func ValidateReview(rating int, comment string) error {
	if rating < MinReviewRating || rating > MaxReviewRating {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRating, rating, MinReviewRating, MaxReviewRating)
	}
	n := utf8.RuneCountInString(strings.TrimSpace(comment))
	if n < MinCommentLen || n > MaxCommentLen {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidComment, n, MinCommentLen, MaxCommentLen)
	}
	return nil
}
