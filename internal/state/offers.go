package state

import "github.com/five82/roost/internal/domain"

// OffersState is the offers partition of the state tree.
type OffersState struct {
	Offers    []domain.Offer
	City      string
	IsLoading bool
	// Version increases every time Offers is replaced.
	Version uint64
}

func initialOffersState() OffersState {
	return OffersState{
		Offers: []domain.Offer{},
		City:   domain.DefaultCity,
	}
}

// ReduceOffers applies a to the offers partition. Actions it does not handle
// return s untouched.
func ReduceOffers(s OffersState, a Action) OffersState {
	switch a := a.(type) {
	case ChangeCity:
		s.City = a.City
		return s
	case LoadOffers:
		s.Offers = a.Offers
		if s.Offers == nil {
			s.Offers = []domain.Offer{}
		}
		s.Version++
		return s
	case SetLoading:
		s.IsLoading = a.Loading
		return s
	case UpdateOfferFavorite:
		idx := -1
		for i, o := range s.Offers {
			if o.ID == a.OfferID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		updated := make([]domain.Offer, len(s.Offers))
		copy(updated, s.Offers)
		updated[idx].IsFavorite = a.IsFavorite
		s.Offers = updated
		s.Version++
		return s
	default:
		return s
	}
}
