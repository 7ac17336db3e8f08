package ops

import (
	"context"
	"fmt"

	"github.com/five82/roost/internal/state"
)

// ToggleFavorite sets the favorite flag of an offer, then reconciles the
// favorites count against the server. If the recount fails the count is
// adjusted locally by one and never drops below zero.
func (o *Operations) ToggleFavorite(ctx context.Context, id string, next bool) error {
	resp, err := o.API.SetFavorite(ctx, id, next)
	if err != nil {
		return fmt.Errorf("toggle favorite %s: %w", id, err)
	}
	confirmed := next
	if string(resp.ID) != "" {
		confirmed = resp.IsFavorite
	}
	o.Store.Dispatch(state.UpdateOfferFavorite{OfferID: id, IsFavorite: confirmed})

	gen := o.gens.begin(keyFavoriteCount)
	count, err := o.recount(ctx)
	if err != nil {
		count = localCount(o.Store.State().Auth.FavoriteCount, confirmed)
		o.log().Warn("favorite recount failed, using local count",
			"op", "toggleFavorite", "offer", id, "count", count, "err", err)
	}
	if !o.gens.current(keyFavoriteCount, gen) {
		return nil
	}
	o.Store.Dispatch(state.SetFavoriteCount{Count: count})
	return nil
}

func (o *Operations) recount(ctx context.Context) (int, error) {
	favorites, err := o.API.FetchFavorites(ctx)
	if err != nil {
		return 0, err
	}
	return len(favorites), nil
}

func localCount(current int, added bool) int {
	if added {
		return current + 1
	}
	return max(current-1, 0)
}
