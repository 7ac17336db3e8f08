package api

import (
	"fmt"
	"strings"

	"github.com/five82/roost/internal/domain"
)

// AdaptOffer converts a wire offer into the domain model. It fails only when
// the identity fields are missing.
func AdaptOffer(s ServerOffer) (domain.Offer, error) {
	id := strings.TrimSpace(string(s.ID))
	if id == "" {
		return domain.Offer{}, fmt.Errorf("%w: offer without id", ErrMalformedRecord)
	}
	if strings.TrimSpace(s.Title) == "" {
		return domain.Offer{}, fmt.Errorf("%w: offer %s without title", ErrMalformedRecord, id)
	}

	offer := domain.Offer{
		ID:          id,
		PriceValue:  formatPrice(s.Price),
		PriceText:   domain.PriceUnit,
		Name:        s.Title,
		Type:        s.Type,
		Rating:      s.Rating,
		Images:      adaptImages(s.Images, s.PreviewImage),
		Goods:       cloneStrings(s.Goods),
		Description: splitParagraphs(s.Description),
		Location: domain.Location{
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
		},
		City:       s.City.Name,
		IsFavorite: s.IsFavorite,
	}
	if s.IsPremium {
		offer.Mark = domain.MarkPremium
	}
	if s.Bedrooms != nil {
		offer.Bedrooms = *s.Bedrooms
	}
	if s.MaxAdults != nil {
		offer.MaxAdults = *s.MaxAdults
	}
	if s.Host != nil {
		offer.Host = domain.Host{
			Name:   s.Host.Name,
			Avatar: s.Host.AvatarURL,
			IsPro:  s.Host.IsPro,
		}
	}
	return offer, nil
}

// AdaptOffers converts a list of wire offers, stopping at the first
// malformed record.
func AdaptOffers(list []ServerOffer) ([]domain.Offer, error) {
	out := make([]domain.Offer, 0, len(list))
	for _, s := range list {
		offer, err := AdaptOffer(s)
		if err != nil {
			return nil, err
		}
		out = append(out, offer)
	}
	return out, nil
}

// AdaptReview converts a wire review, attaching the offer it was fetched for.
func AdaptReview(s ServerReview, offerID string) (domain.Review, error) {
	id := strings.TrimSpace(string(s.ID))
	if id == "" {
		return domain.Review{}, fmt.Errorf("%w: review without id", ErrMalformedRecord)
	}
	return domain.Review{
		ID:      id,
		OfferID: offerID,
		User: domain.ReviewUser{
			Name:   s.User.Name,
			Avatar: s.User.AvatarURL,
		},
		Rating:  s.Rating,
		Comment: s.Comment,
		Date:    s.Date,
	}, nil
}

// AdaptAuthInfo converts the /login payload.
func AdaptAuthInfo(s ServerAuthInfo) domain.AuthInfo {
	return domain.AuthInfo{
		Token:     s.Token,
		Email:     s.Email,
		Name:      s.Name,
		AvatarURL: s.AvatarURL,
		IsPro:     s.IsPro,
	}
}

func adaptImages(images []string, preview string) []string {
	if len(images) > 0 {
		return cloneStrings(images)
	}
	if preview != "" {
		return []string{preview}
	}
	return []string{}
}

func splitParagraphs(description *string) []string {
	if description == nil {
		return []string{}
	}
	lines := strings.Split(*description, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
