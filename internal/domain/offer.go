package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkPremium is the promotional mark shown on premium offers.
const MarkPremium = "Premium"

// PriceUnit is the only price unit the API uses.
const PriceUnit = "night"

// Display limits on the offer page.
const (
	MaxGalleryImages = 6
	MaxNearbyOffers  = 3
)

// Offer is a rental listing.
type Offer struct {
	ID          string
	Mark        string
	PriceValue  string
	PriceText   string
	Name        string
	Type        string
	Rating      float64
	Images      []string
	Bedrooms    int
	MaxAdults   int
	Goods       []string
	Host        Host
	Description []string
	Location    Location
	City        string
	IsFavorite  bool
}

// Host describes the person renting out an offer.
type Host struct {
	Name   string
	Avatar string
	IsPro  bool
}

// Location is a point on the map.
type Location struct {
	Latitude  float64
	Longitude float64
}

// IsPremium reports whether the offer carries the premium mark.
func (o Offer) IsPremium() bool {
	return o.Mark == MarkPremium
}

// Gallery returns at most MaxGalleryImages image URLs.
func (o Offer) Gallery() []string {
	if len(o.Images) <= MaxGalleryImages {
		return o.Images
	}
	return o.Images[:MaxGalleryImages]
}

// RatingPercent maps the 0-5 rating onto the star bar width.
func (o Offer) RatingPercent() int {
	r := o.Rating
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	return int(r*20 + 0.5)
}

var housingTypes = map[string]string{
	"apartment": "Apartment",
	"room":      "Room",
	"house":     "House",
	"hotel":     "Hotel",
}

var titleCaser = cases.Title(language.English)

// FormatHousingType returns the display label for a housing type. Unknown
// types are title-cased.
func FormatHousingType(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if label, ok := housingTypes[strings.ToLower(trimmed)]; ok {
		return label
	}
	return titleCaser.String(trimmed)
}
