package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/state"
)

// visibleOffers returns the active city's offers in the chosen sort order.
func (m Model) visibleOffers() []domain.Offer {
	return state.SortOffers(m.byCity.Select(m.snapshot), m.sortKind)
}

func (m Model) selectedOffer() (domain.Offer, bool) {
	offers := m.visibleOffers()
	if len(offers) == 0 {
		return domain.Offer{}, false
	}
	return offers[clamp(m.selectedRow, len(offers))], true
}

// handleOffersKey processes keyboard input for the offers list.
func (m Model) handleOffersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Number keys jump straight to a city tab.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		cities := domain.Cities()
		if i := int(s[0] - '1'); i < len(cities) {
			m.changeCity(cities[i].Name)
		}
		return m, nil
	}

	count := len(m.visibleOffers())

	switch {
	case key.Matches(msg, m.keys.NextCity):
		m.changeCity(m.cityAt(1))
	case key.Matches(msg, m.keys.PrevCity):
		m.changeCity(m.cityAt(-1))
	case key.Matches(msg, m.keys.Sort):
		m.sortKind = m.sortKind.Next()
		m.prefs.Sort = m.sortKind.String()
		m.savePrefs()
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
	case key.Matches(msg, m.keys.Open):
		if offer, ok := m.selectedOffer(); ok {
			return m.openDetail(offer.ID)
		}
	case key.Matches(msg, m.keys.Favorite):
		if offer, ok := m.selectedOffer(); ok {
			return m.toggleFavorite(offer)
		}
	}
	return m, nil
}

// cityAt returns the city step tabs away from the active one, wrapping.
func (m Model) cityAt(step int) string {
	cities := domain.Cities()
	current := 0
	for i, c := range cities {
		if c.Name == m.snapshot.Offers.City {
			current = i
			break
		}
	}
	next := (current + step + len(cities)) % len(cities)
	return cities[next].Name
}

func (m *Model) changeCity(city string) {
	if city == m.snapshot.Offers.City {
		return
	}
	if m.ops != nil {
		m.ops.ChangeCity(city)
	}
	// Reflect the change before the store notification arrives.
	m.snapshot.Offers.City = city
	m.selectedRow = 0
	m.prefs.City = city
	m.savePrefs()
}

// renderOffers renders the offer list of the active city.
func (m Model) renderOffers() string {
	styles := m.theme.Styles()
	city := m.snapshot.Offers.City
	offers := m.visibleOffers()
	height := m.contentHeight()

	if len(offers) == 0 {
		if m.snapshot.Offers.IsLoading {
			return styles.MutedText.Render("Loading offers...")
		}
		return styles.Text.Bold(true).Render("No places to stay available") + "\n" +
			styles.MutedText.Render(fmt.Sprintf("We could not find any property available at the moment in %s", city))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%s to stay in %s", plural(len(offers), "place", "places"), city)))
	b.WriteString("\n")

	rows := max(height-1, 1)
	start := scrollStart(m.selectedRow, len(offers), rows)
	end := min(start+rows, len(offers))
	for i := start; i < end; i++ {
		line := m.renderOfferRow(offers[i], styles)
		if i == m.selectedRow {
			line = styles.Selected.Width(m.width).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderOfferRow renders one compact offer card.
func (m Model) renderOfferRow(o domain.Offer, styles Styles) string {
	nameWidth := max(m.width-60, 16)

	mark := "         "
	if o.IsPremium() {
		mark = styles.Premium.Render("Premium") + " "
	}
	fav := "  "
	if o.IsFavorite {
		fav = styles.WarningText.Render("♥ ")
	}

	return mark + fav +
		padRight(truncate(o.Name, nameWidth), nameWidth) + "  " +
		padRight(domain.FormatHousingType(o.Type), 10) + "  " +
		padRight(formatPrice(o)+" / "+o.PriceText, 16) + "  " +
		styles.WarningText.Render(stars(o.RatingPercent())) + " " +
		styles.MutedText.Render(formatRating(o.Rating))
}

// scrollStart picks the first visible row so that selected stays in view.
func scrollStart(selected, total, rows int) int {
	if total <= rows || selected < rows/2 {
		return 0
	}
	start := selected - rows/2
	return min(start, total-rows)
}
