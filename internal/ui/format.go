package ui

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/five82/roost/internal/domain"
)

var printer = message.NewPrinter(language.English)

// formatPrice renders "€1,200". Unparseable values are shown as received.
func formatPrice(o domain.Offer) string {
	v, err := strconv.ParseFloat(o.PriceValue, 64)
	if err != nil {
		return "€" + o.PriceValue
	}
	return printer.Sprintf("€%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// stars renders a five-star bar for a rating percentage.
func stars(percent int) string {
	full := (max(min(percent, 100), 0) + 10) / 20
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

func formatRating(rating float64) string {
	return printer.Sprintf("%.1f", rating)
}

// reviewDate renders a review timestamp as "April 2019".
func reviewDate(value string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2006")
		}
	}
	return value
}

func plural(n int, one, many string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, one)
	}
	return printer.Sprintf("%d %s", n, many)
}
