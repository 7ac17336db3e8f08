package ops

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
)

// FetchReviews returns the newest reviews of an offer, at most
// domain.MaxReviews of them. The full list is sorted before truncating.
func (o *Operations) FetchReviews(ctx context.Context, id string) ([]domain.Review, error) {
	raw, err := o.API.FetchComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews %s: %w", id, err)
	}

	sorted := make([]api.ServerReview, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i].Date, sorted[j].Date)
	})
	if len(sorted) > domain.MaxReviews {
		sorted = sorted[:domain.MaxReviews]
	}

	reviews := make([]domain.Review, 0, len(sorted))
	for _, r := range sorted {
		review, err := api.AdaptReview(r, id)
		if err != nil {
			return nil, fmt.Errorf("fetch reviews %s: %w", id, err)
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// PostReview submits a review. Callers validate with domain.ValidateReview
// first; server-side rejections are returned as is.
func (o *Operations) PostReview(ctx context.Context, id string, rating int, comment string) (domain.Review, error) {
	raw, err := o.API.PostComment(ctx, id, api.CommentRequest{Comment: comment, Rating: rating})
	if err != nil {
		return domain.Review{}, fmt.Errorf("post review %s: %w", id, err)
	}
	review, err := api.AdaptReview(raw, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("post review %s: %w", id, err)
	}
	return review, nil
}

// newer reports whether date a sorts before date b, newest first. Dates that
// do not parse rank after every parsed date and are compared as strings among
// themselves.
func newer(a, b string) bool {
	ta, oka := parseTime(a)
	tb, okb := parseTime(b)
	switch {
	case oka && okb:
		return ta.After(tb)
	case oka != okb:
		return oka
	default:
		return a > b
	}
}

func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
