package state

import (
	"testing"

	"github.com/five82/roost/internal/domain"
)

func ids(offers []domain.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.ID
	}
	return out
}

func equalIDs(got []domain.Offer, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestProjections(t *testing.T) {
	s := InitialState()
	s = Reduce(s, LoadOffers{Offers: sampleOffers()})
	s = Reduce(s, SetLoading{Loading: true})
	s = Reduce(s, RequireAuthorization{Status: domain.AuthStatusNoAuth})
	s = Reduce(s, SetFavoriteCount{Count: 4})

	if SelectCity(s) != "Paris" || len(SelectOffers(s)) != 4 || !SelectIsLoading(s) {
		t.Fatalf("offers projections wrong: %#v", s.Offers)
	}
	if SelectAuthorizationStatus(s) != domain.AuthStatusNoAuth || SelectUser(s) != nil || SelectFavoriteCount(s) != 4 {
		t.Fatalf("auth projections wrong: %#v", s.Auth)
	}
}

func TestOffersByCity_FiltersPreservingOrder(t *testing.T) {
	var sel OffersByCity
	s := Reduce(InitialState(), LoadOffers{Offers: sampleOffers()})

	if got := sel.Select(s); !equalIDs(got, "1", "3", "4") {
		t.Fatalf("Paris offers = %v, want [1 3 4]", ids(got))
	}

	s = Reduce(s, ChangeCity{City: "Amsterdam"})
	if got := sel.Select(s); !equalIDs(got, "2") {
		t.Fatalf("Amsterdam offers = %v, want [2]", ids(got))
	}

	s = Reduce(s, ChangeCity{City: "Dusseldorf"})
	if got := sel.Select(s); len(got) != 0 {
		t.Fatalf("Dusseldorf offers = %v, want none", ids(got))
	}
}

func TestOffersByCity_Memoizes(t *testing.T) {
	var sel OffersByCity
	s := Reduce(InitialState(), LoadOffers{Offers: sampleOffers()})

	first := sel.Select(s)
	s = Reduce(s, RequireAuthorization{Status: domain.AuthStatusAuth})
	s = Reduce(s, SetFavoriteCount{Count: 3})
	second := sel.Select(s)
	if sel.computed != 1 {
		t.Fatalf("computed = %d after auth-only changes, want 1", sel.computed)
	}
	if &first[0] != &second[0] {
		t.Fatalf("memoized result should be reused")
	}

	s = Reduce(s, UpdateOfferFavorite{OfferID: "1", IsFavorite: true})
	got := sel.Select(s)
	if sel.computed != 2 || !got[0].IsFavorite {
		t.Fatalf("computed = %d favorite = %v, want recompute after offers change", sel.computed, got[0].IsFavorite)
	}

	s = Reduce(s, ChangeCity{City: "Amsterdam"})
	sel.Select(s)
	if sel.computed != 3 {
		t.Fatalf("computed = %d, want recompute after city change", sel.computed)
	}
}

func TestOffersByCity_StoreSnapshotsHitCache(t *testing.T) {
	store := New()
	store.Dispatch(LoadOffers{Offers: sampleOffers()})

	var sel OffersByCity
	sel.Select(store.State())
	store.Dispatch(SetUser{User: &domain.AuthInfo{Email: "x"}})
	sel.Select(store.State())
	if sel.computed != 1 {
		t.Fatalf("computed = %d, want 1 across cloned snapshots", sel.computed)
	}
}

func TestSortOffers(t *testing.T) {
	offers := sampleOffers()

	if got := SortOffers(offers, domain.SortPopular); !equalIDs(got, "1", "2", "3", "4") {
		t.Fatalf("Popular = %v", ids(got))
	}
	if got := SortOffers(offers, domain.SortPriceLowToHigh); !equalIDs(got, "2", "4", "1", "3") {
		t.Fatalf("PriceLowToHigh = %v", ids(got))
	}
	if got := SortOffers(offers, domain.SortPriceHighToLow); !equalIDs(got, "3", "1", "2", "4") {
		t.Fatalf("PriceHighToLow = %v", ids(got))
	}
	if got := SortOffers(offers, domain.SortTopRated); !equalIDs(got, "4", "1", "2", "3") {
		t.Fatalf("TopRated = %v", ids(got))
	}
	if offers[0].ID != "1" || offers[3].ID != "4" {
		t.Fatalf("SortOffers mutated its input")
	}
}

func TestGroupByCity(t *testing.T) {
	groups := GroupByCity(sampleOffers())
	if len(groups) != 2 || groups[0].City != "Paris" || groups[1].City != "Amsterdam" {
		t.Fatalf("groups = %#v", groups)
	}
	if !equalIDs(groups[0].Offers, "1", "3", "4") || !equalIDs(groups[1].Offers, "2") {
		t.Fatalf("group contents wrong: %v / %v", ids(groups[0].Offers), ids(groups[1].Offers))
	}
	if GroupByCity(nil) != nil {
		t.Fatalf("GroupByCity(nil) should be nil")
	}
}
