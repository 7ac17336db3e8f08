package state

import "github.com/five82/roost/internal/domain"

// Action is a synchronous state transition. The set is closed: only the types
// in this package implement it.
type Action interface {
	action()
}

// ChangeCity replaces the active city filter.
type ChangeCity struct {
	City string
}

// LoadOffers replaces the whole offer collection.
type LoadOffers struct {
	Offers []domain.Offer
}

// SetLoading toggles the offers loading flag.
type SetLoading struct {
	Loading bool
}

// UpdateOfferFavorite sets the favorite flag on one offer.
type UpdateOfferFavorite struct {
	OfferID    string
	IsFavorite bool
}

// RequireAuthorization sets the authorization status.
type RequireAuthorization struct {
	Status domain.AuthorizationStatus
}

// SetUser sets or clears the signed-in profile.
type SetUser struct {
	User *domain.AuthInfo
}

// SetFavoriteCount sets the favorites badge count.
type SetFavoriteCount struct {
	Count int
}

func (ChangeCity) action()           {}
func (LoadOffers) action()           {}
func (SetLoading) action()           {}
func (UpdateOfferFavorite) action()  {}
func (RequireAuthorization) action() {}
func (SetUser) action()              {}
func (SetFavoriteCount) action()     {}
