package ui

import (
	"testing"

	"github.com/five82/roost/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"120", "€120"},
		{"1200", "€1,200"},
		{"99.5", "€99.5"},
		{"n/a", "€n/a"},
	}
	for _, tt := range tests {
		if got := formatPrice(domain.Offer{PriceValue: tt.value}); got != tt.want {
			t.Errorf("formatPrice(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStars(t *testing.T) {
	if got := stars(80); got != "★★★★☆" {
		t.Fatalf("stars(80) = %q", got)
	}
	if got := stars(0); got != "☆☆☆☆☆" {
		t.Fatalf("stars(0) = %q", got)
	}
	if got := stars(150); got != "★★★★★" {
		t.Fatalf("stars(150) = %q", got)
	}
}

func TestReviewDate(t *testing.T) {
	if got := reviewDate("2019-04-24T12:00:00.000Z"); got != "April 2019" {
		t.Fatalf("reviewDate = %q, want April 2019", got)
	}
	if got := reviewDate("yesterday"); got != "yesterday" {
		t.Fatalf("reviewDate fallback = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "bedroom", "bedrooms"); got != "1 bedroom" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(3, "bedroom", "bedrooms"); got != "3 bedrooms" {
		t.Fatalf("plural(3) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Beautiful & luxurious studio", 10); got != "Beautif..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 3) != 2 || clamp(-1, 3) != 0 || clamp(1, 0) != 0 {
		t.Fatalf("clamp mismatch")
	}
}
