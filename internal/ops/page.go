package ops

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/five82/roost/internal/domain"
)

// OfferPage is everything the offer detail view shows.
type OfferPage struct {
	Offer   domain.Offer
	Nearby  []domain.Offer
	Reviews []domain.Review
}

// LoadOfferPage fetches an offer, its neighbours and its reviews in parallel.
// The first failure cancels the other requests and is returned.
func (o *Operations) LoadOfferPage(ctx context.Context, id string) (OfferPage, error) {
	var page OfferPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		offer, err := o.FetchOfferByID(gctx, id)
		page.Offer = offer
		return err
	})
	g.Go(func() error {
		nearby, err := o.FetchNearbyOffers(gctx, id)
		page.Nearby = nearby
		return err
	})
	g.Go(func() error {
		reviews, err := o.FetchReviews(gctx, id)
		page.Reviews = reviews
		return err
	})

	if err := g.Wait(); err != nil {
		return OfferPage{}, err
	}
	return page, nil
}
