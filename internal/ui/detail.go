package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/ops"
)

type offerPageMsg struct {
	id   string
	page ops.OfferPage
	err  error
}

func loadOfferPageCmd(ctx context.Context, o *ops.Operations, id string) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		page, err := o.LoadOfferPage(ctx, id)
		return offerPageMsg{id: id, page: page, err: err}
	}
}

func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	m.currentView = ViewDetail
	m.detailID = id
	m.detail = nil
	m.detailErr = nil
	m.detailLoading = true
	m.flash = ""
	m.updateDetailViewport()
	m.detailViewport.GotoTop()
	return m, loadOfferPageCmd(m.ctx, m.ops, id)
}

func (m Model) handleOfferPage(msg offerPageMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.detailID {
		return m, nil // the user has moved on to another offer
	}
	m.detailLoading = false
	if msg.err != nil {
		m.detailErr = msg.err
		m.detail = nil
	} else {
		page := msg.page
		m.detail = &page
		m.detailErr = nil
	}
	m.updateDetailViewport()
	return m, nil
}

// handleDetailKey processes keyboard input for the offer page.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Favorite):
		if m.detail != nil {
			return m.toggleFavorite(m.detail.Offer)
		}
		return m, nil
	case key.Matches(msg, m.keys.Review):
		if m.detail != nil {
			return m.openReview()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.renderDetail())
}

// renderDetail renders the full offer page as scrollable text.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	width := max(min(m.width-2, 100), 20)

	switch {
	case m.detailLoading:
		return styles.MutedText.Render("Loading offer...")
	case m.detailErr != nil:
		if api.IsNotFound(m.detailErr) {
			return styles.Text.Bold(true).Render("404 Not Found") + "\n" +
				styles.MutedText.Render("This offer does not exist. Press esc to return to the list.")
		}
		return styles.DangerText.Render("Could not load offer") + "\n" +
			styles.MutedText.Render(m.detailErr.Error())
	case m.detail == nil:
		return ""
	}

	page := m.detail
	o := page.Offer
	var b strings.Builder

	// Title block
	if o.IsPremium() {
		b.WriteString(styles.Premium.Render("Premium"))
		b.WriteString("\n")
	}
	title := styles.Text.Bold(true).Render(o.Name)
	if o.IsFavorite {
		title += "  " + styles.Favorite.Render("♥ In bookmarks")
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.WarningText.Render(stars(o.RatingPercent())) + " " + styles.MutedText.Render(formatRating(o.Rating)))
	b.WriteString("\n\n")

	// Features and price
	features := []string{domain.FormatHousingType(o.Type)}
	if o.Bedrooms > 0 {
		features = append(features, plural(o.Bedrooms, "Bedroom", "Bedrooms"))
	}
	if o.MaxAdults > 0 {
		features = append(features, "Max "+plural(o.MaxAdults, "adult", "adults"))
	}
	b.WriteString(styles.Text.Render(strings.Join(features, "  •  ")))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render(formatPrice(o)) + styles.MutedText.Render(" / "+o.PriceText))
	b.WriteString("\n\n")

	// Gallery
	if gallery := o.Gallery(); len(gallery) > 0 {
		b.WriteString(m.section(styles, fmt.Sprintf("Photos · %d", len(gallery))))
		for _, img := range gallery {
			b.WriteString(styles.FaintText.Render("  " + truncate(img, width-2)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Goods
	if len(o.Goods) > 0 {
		b.WriteString(m.section(styles, "What's inside"))
		b.WriteString(styles.Text.Width(width).Render(strings.Join(o.Goods, " · ")))
		b.WriteString("\n\n")
	}

	// Host and description
	b.WriteString(m.section(styles, "Meet the host"))
	host := styles.Text.Render(o.Host.Name)
	if o.Host.IsPro {
		host += " " + styles.Pro.Render("Pro")
	}
	b.WriteString(host)
	b.WriteString("\n")
	for _, p := range o.Description {
		b.WriteString(styles.MutedText.Width(width).Render(p))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Reviews
	b.WriteString(m.section(styles, fmt.Sprintf("Reviews · %d", len(page.Reviews))))
	if len(page.Reviews) == 0 {
		b.WriteString(styles.FaintText.Render("No reviews yet."))
		b.WriteString("\n")
	}
	for _, r := range page.Reviews {
		b.WriteString(styles.Text.Bold(true).Render(r.User.Name) + "  " +
			styles.WarningText.Render(stars(r.Rating*20)) + "  " +
			styles.FaintText.Render(reviewDate(r.Date)))
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(r.Comment))
		b.WriteString("\n\n")
	}
	if m.isAuthorized() {
		b.WriteString(styles.AccentText.Render("Press r to write a review"))
	} else {
		b.WriteString(styles.FaintText.Render("Sign in (L) to write a review"))
	}
	b.WriteString("\n\n")

	// Nearby
	nearby := page.Nearby
	if len(nearby) > domain.MaxNearbyOffers {
		nearby = nearby[:domain.MaxNearbyOffers]
	}
	if len(nearby) > 0 {
		b.WriteString(m.section(styles, "Other places in the neighbourhood"))
		for _, n := range nearby {
			b.WriteString(m.renderOfferRow(n, styles))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) section(styles Styles, title string) string {
	return styles.AccentText.Bold(true).Render(title) + "\n"
}
