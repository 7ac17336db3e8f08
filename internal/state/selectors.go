package state

import (
	"sort"
	"strconv"
	"sync"

	"github.com/five82/roost/internal/domain"
)

// SelectCity returns the active city.
func SelectCity(s State) string { return s.Offers.City }

// SelectOffers returns the whole offer collection.
func SelectOffers(s State) []domain.Offer { return s.Offers.Offers }

// SelectIsLoading reports whether an offers fetch is in flight.
func SelectIsLoading(s State) bool { return s.Offers.IsLoading }

// SelectAuthorizationStatus returns the session status.
func SelectAuthorizationStatus(s State) domain.AuthorizationStatus {
	return s.Auth.AuthorizationStatus
}

// SelectUser returns the signed-in profile, or nil.
func SelectUser(s State) *domain.AuthInfo { return s.Auth.User }

// SelectFavoriteCount returns the favorites badge count.
func SelectFavoriteCount(s State) int { return s.Auth.FavoriteCount }

// OffersByCity filters offers down to the active city. It caches the last
// result keyed on (Offers.Version, City), so auth-only changes never refilter.
// Use one OffersByCity per Store; versions from different stores collide.
//
// The returned slice is shared between calls and must not be modified.
type OffersByCity struct {
	mu       sync.Mutex
	valid    bool
	version  uint64
	city     string
	result   []domain.Offer
	computed int
}

// Select returns the offers of s whose City equals the active city,
// preserving order.
func (m *OffersByCity) Select(s State) []domain.Offer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.version == s.Offers.Version && m.city == s.Offers.City {
		return m.result
	}
	m.result = filterByCity(s.Offers.Offers, s.Offers.City)
	m.version = s.Offers.Version
	m.city = s.Offers.City
	m.valid = true
	m.computed++
	return m.result
}

func filterByCity(offers []domain.Offer, city string) []domain.Offer {
	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.City == city {
			out = append(out, o)
		}
	}
	return out
}

// SortOffers returns a sorted copy of offers. SortPopular keeps server order.
func SortOffers(offers []domain.Offer, kind domain.SortKind) []domain.Offer {
	out := make([]domain.Offer, len(offers))
	copy(out, offers)

	switch kind {
	case domain.SortPriceLowToHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return priceOf(out[i]) < priceOf(out[j])
		})
	case domain.SortPriceHighToLow:
		sort.SliceStable(out, func(i, j int) bool {
			return priceOf(out[i]) > priceOf(out[j])
		})
	case domain.SortTopRated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}

func priceOf(o domain.Offer) float64 {
	v, err := strconv.ParseFloat(o.PriceValue, 64)
	if err != nil {
		return 0
	}
	return v
}

// CityGroup is a run of offers sharing a city.
type CityGroup struct {
	City   string
	Offers []domain.Offer
}

// GroupByCity buckets offers by city, ordered by first appearance.
func GroupByCity(offers []domain.Offer) []CityGroup {
	index := make(map[string]int)
	var groups []CityGroup
	for _, o := range offers {
		i, ok := index[o.City]
		if !ok {
			i = len(groups)
			index[o.City] = i
			groups = append(groups, CityGroup{City: o.City})
		}
		groups[i].Offers = append(groups[i].Offers, o)
	}
	return groups
}
