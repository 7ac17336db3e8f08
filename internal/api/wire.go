package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// WireID accepts identifiers encoded either as JSON strings or numbers.
type WireID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *WireID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = WireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = WireID(n.String())
	return nil
}

// ServerOffer mirrors an offer record as the API sends it. Only ID and Title
// are required; the adapter defaults the rest:
//
//   - Images: falls back to []string{PreviewImage}, then to an empty list
//   - Description: "" (no paragraphs)
//   - Bedrooms, MaxAdults: 0
//   - Goods: empty list
//   - Host: zero host (empty name and avatar, not pro)
type ServerOffer struct {
	ID           WireID         `json:"id"`
	Title        string         `json:"title"`
	Type         string         `json:"type"`
	Price        float64        `json:"price"`
	City         ServerCity     `json:"city"`
	Location     ServerLocation `json:"location"`
	IsFavorite   bool           `json:"isFavorite"`
	IsPremium    bool           `json:"isPremium"`
	Rating       float64        `json:"rating"`
	PreviewImage string         `json:"previewImage,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Bedrooms     *int           `json:"bedrooms,omitempty"`
	Goods        []string       `json:"goods,omitempty"`
	Host         *ServerHost    `json:"host,omitempty"`
	Images       []string       `json:"images,omitempty"`
	MaxAdults    *int           `json:"maxAdults,omitempty"`
}

// ServerCity is the city object embedded in offers.
type ServerCity struct {
	Name     string         `json:"name"`
	Location ServerLocation `json:"location"`
}

// ServerLocation is a map point with an optional zoom level.
type ServerLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom,omitempty"`
}

// ServerHost describes the host of an offer.
type ServerHost struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// ServerReview mirrors a review record. It carries no offer reference.
type ServerReview struct {
	ID      WireID     `json:"id"`
	Date    string     `json:"date"`
	User    ServerUser `json:"user"`
	Comment string     `json:"comment"`
	Rating  int        `json:"rating"`
}

// ServerUser is the author attached to a review.
type ServerUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// ServerAuthInfo is returned by both GET and POST /login.
type ServerAuthInfo struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CommentRequest is the POST /comments/{id} body.
type CommentRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
