package ops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/state"
)

// TokenStore persists the auth token across sessions.
type TokenStore interface {
	Token() string
	Save(token string) error
	Drop() error
}

// Operations runs the async data operations against an API and dispatches
// the resulting state transitions into a store.
type Operations struct {
	API    api.Fetcher
	Store  state.Dispatcher
	Tokens TokenStore
	Logger *slog.Logger

	gens generations
}

const (
	keyOffers        = "offers"
	keyFavoriteCount = "favorite-count"
)

// New wires an Operations. A nil logger discards output.
func New(client api.Fetcher, store state.Dispatcher, tokens TokenStore, logger *slog.Logger) *Operations {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Operations{
		API:    client,
		Store:  store,
		Tokens: tokens,
		Logger: logger,
	}
}

func (o *Operations) log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// FetchOffers reloads the offer collection. Failures are logged and leave the
// previous offers in place; the loading flag is always cleared. When fetches
// overlap, only the most recently started one may write.
func (o *Operations) FetchOffers(ctx context.Context) {
	_ = o.RefreshOffers(ctx)
}

// RefreshOffers behaves like FetchOffers but also reports the fetch error, so
// background pollers can back off. A superseded response returns nil.
func (o *Operations) RefreshOffers(ctx context.Context) error {
	gen := o.gens.begin(keyOffers)
	o.Store.Dispatch(state.SetLoading{Loading: true})

	offers, err := o.fetchOfferList(ctx, o.API.FetchOffers)

	if !o.gens.current(keyOffers, gen) {
		o.log().Debug("discarding stale offers response", "op", "fetchOffers", "generation", gen)
		return nil
	}
	if err != nil {
		o.log().Warn("offers fetch failed", "op", "fetchOffers", "err", err)
	} else {
		o.Store.Dispatch(state.LoadOffers{Offers: offers})
	}
	o.Store.Dispatch(state.SetLoading{Loading: false})
	if err != nil {
		return fmt.Errorf("fetch offers: %w", err)
	}
	return nil
}

// ChangeCity switches the active city filter.
func (o *Operations) ChangeCity(city string) {
	o.Store.Dispatch(state.ChangeCity{City: city})
}

// FetchOfferByID loads a single offer. Use api.IsNotFound on the error to
// detect a missing offer.
func (o *Operations) FetchOfferByID(ctx context.Context, id string) (domain.Offer, error) {
	raw, err := o.API.FetchOffer(ctx, id)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("fetch offer %s: %w", id, err)
	}
	offer, err := api.AdaptOffer(raw)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("fetch offer %s: %w", id, err)
	}
	return offer, nil
}

// FetchNearbyOffers loads the offers near id.
func (o *Operations) FetchNearbyOffers(ctx context.Context, id string) ([]domain.Offer, error) {
	offers, err := o.fetchOfferList(ctx, func(ctx context.Context) ([]api.ServerOffer, error) {
		return o.API.FetchNearby(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch nearby %s: %w", id, err)
	}
	return offers, nil
}

// FetchFavorites loads the user's favorite offers.
func (o *Operations) FetchFavorites(ctx context.Context) ([]domain.Offer, error) {
	offers, err := o.fetchOfferList(ctx, o.API.FetchFavorites)
	if err != nil {
		return nil, fmt.Errorf("fetch favorites: %w", err)
	}
	return offers, nil
}

func (o *Operations) fetchOfferList(ctx context.Context, fetch func(context.Context) ([]api.ServerOffer, error)) ([]domain.Offer, error) {
	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return api.AdaptOffers(raw)
}
