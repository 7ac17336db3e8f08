package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCityID_CaseInsensitive(t *testing.T) {
	if got := CityID("  AmSterDam "); got != "amsterdam" {
		t.Fatalf("CityID = %q, want amsterdam", got)
	}
	a, ok := FindCity("PARIS")
	if !ok || a.Name != "Paris" || a.ID != "paris" {
		t.Fatalf("FindCity(PARIS) = %#v, %v, want Paris", a, ok)
	}
	if _, ok := FindCity("Atlantis"); ok {
		t.Fatalf("FindCity(Atlantis) found a city, want none")
	}
}

func TestCities_ReturnsCopy(t *testing.T) {
	list := Cities()
	if len(list) != 6 || list[0].Name != DefaultCity {
		t.Fatalf("Cities = %#v, want 6 starting with %s", list, DefaultCity)
	}
	list[0].Name = "mutated"
	if Cities()[0].Name != DefaultCity {
		t.Fatalf("Cities should return a copy")
	}
}

func TestValidateReview(t *testing.T) {
	ok := strings.Repeat("a", MinCommentLen)
	if err := ValidateReview(5, ok); err != nil {
		t.Fatalf("ValidateReview returned error: %v", err)
	}
	if err := ValidateReview(0, ok); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("ValidateReview(0) = %v, want ErrInvalidRating", err)
	}
	if err := ValidateReview(6, ok); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("ValidateReview(6) = %v, want ErrInvalidRating", err)
	}
	if err := ValidateReview(3, "  "+ok[:MinCommentLen-1]+"  "); !errors.Is(err, ErrInvalidComment) {
		t.Fatalf("ValidateReview(short) = %v, want ErrInvalidComment", err)
	}
	if err := ValidateReview(3, strings.Repeat("я", MaxCommentLen)); err != nil {
		t.Fatalf("ValidateReview counts runes, got error %v", err)
	}
	if err := ValidateReview(3, strings.Repeat("a", MaxCommentLen+1)); !errors.Is(err, ErrInvalidComment) {
		t.Fatalf("ValidateReview(long) = %v, want ErrInvalidComment", err)
	}
}

func TestFormatHousingType(t *testing.T) {
	tests := map[string]string{
		"apartment": "Apartment",
		"HOTEL":     "Hotel",
		"villa":     "Villa",
	}
	for in, want := range tests {
		if got := FormatHousingType(in); got != want {
			t.Errorf("FormatHousingType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOfferHelpers(t *testing.T) {
	o := Offer{Mark: MarkPremium, Rating: 4.8, Images: []string{"1", "2", "3", "4", "5", "6", "7"}}
	if !o.IsPremium() {
		t.Fatalf("IsPremium = false, want true")
	}
	if got := len(o.Gallery()); got != MaxGalleryImages {
		t.Fatalf("Gallery len = %d, want %d", got, MaxGalleryImages)
	}
	if got := o.RatingPercent(); got != 96 {
		t.Fatalf("RatingPercent = %d, want 96", got)
	}
}

func TestSortKind_CyclesAndParses(t *testing.T) {
	if SortTopRated.Next() != SortPopular {
		t.Fatalf("Next should wrap around")
	}
	if ParseSortKind("Price: high to low") != SortPriceHighToLow {
		t.Fatalf("ParseSortKind did not match label")
	}
	if ParseSortKind("bogus") != SortPopular {
		t.Fatalf("ParseSortKind should default to Popular")
	}
	if AuthStatusUnknown.IsKnown() || !AuthStatusNoAuth.IsKnown() {
		t.Fatalf("IsKnown mismatch")
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"valid", "a@b.com", "x1", nil},
		{"no at", "ab.com", "x1", ErrInvalidEmail},
		{"trailing at", "a@", "x1", ErrInvalidEmail},
		{"blank", "  ", "x1", ErrInvalidEmail},
		{"digits only", "a@b.com", "123", ErrInvalidPassword},
		{"letters only", "a@b.com", "abc", ErrInvalidPassword},
		{"empty password", "a@b.com", "", ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCredentials(tt.email, tt.password); !errors.Is(got, tt.want) {
				t.Fatalf("ValidateCredentials(%q, %q) = %v, want %v", tt.email, tt.password, got, tt.want)
			}
		})
	}
}
