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
	"github.com/five82/roost/internal/state"
)

type favoritesMsg struct {
	offers []domain.Offer
	err    error
}

type favoriteToggledMsg struct {
	id   string
	next bool
	err  error
}

func loadFavoritesCmd(ctx context.Context, o *ops.Operations) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		offers, err := o.FetchFavorites(ctx)
		return favoritesMsg{offers: offers, err: err}
	}
}

func toggleFavoriteCmd(ctx context.Context, o *ops.Operations, id string, next bool) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		err := o.ToggleFavorite(ctx, id, next)
		return favoriteToggledMsg{id: id, next: next, err: err}
	}
}

// toggleFavorite flips the favorite flag of o, sending the user to sign in
// first when there is no session.
func (m Model) toggleFavorite(o domain.Offer) (tea.Model, tea.Cmd) {
	if !m.isAuthorized() {
		m.setFlash("Sign in to save favorites", true)
		return m.openLogin()
	}
	return m, toggleFavoriteCmd(m.ctx, m.ops, o.ID, !o.IsFavorite)
}

func (m Model) handleFavoriteToggled(msg favoriteToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m.sessionExpired()
		}
		m.setFlash("Could not update favorite: "+msg.err.Error(), true)
		return m, nil
	}

	if m.detail != nil {
		if m.detail.Offer.ID == msg.id {
			m.detail.Offer.IsFavorite = msg.next
		}
		for i := range m.detail.Nearby {
			if m.detail.Nearby[i].ID == msg.id {
				m.detail.Nearby[i].IsFavorite = msg.next
			}
		}
		m.updateDetailViewport()
	}
	if !msg.next {
		m.favorites = removeOffer(m.favorites, msg.id)
		m.favoriteRow = clamp(m.favoriteRow, len(m.favorites))
	}

	if msg.next {
		m.setFlash("Added to favorites", false)
	} else {
		m.setFlash("Removed from favorites", false)
	}
	return m, nil
}

func removeOffer(offers []domain.Offer, id string) []domain.Offer {
	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}

func (m Model) openFavorites() (tea.Model, tea.Cmd) {
	if !m.isAuthorized() {
		m.setFlash("Sign in to see your favorites", true)
		return m.openLogin()
	}
	m.currentView = ViewFavorites
	m.favoritesLoading = true
	m.favoritesErr = nil
	m.flash = ""
	return m, loadFavoritesCmd(m.ctx, m.ops)
}

func (m Model) handleFavorites(msg favoritesMsg) (tea.Model, tea.Cmd) {
	m.favoritesLoading = false
	m.favoritesErr = msg.err
	if msg.err == nil {
		m.favorites = msg.offers
	}
	m.favoriteRow = clamp(m.favoriteRow, len(m.favorites))
	if api.IsUnauthorized(msg.err) {
		return m.sessionExpired()
	}
	return m, nil
}

// orderedFavorites flattens the city groups so that row indices match the
// rendered order.
func (m Model) orderedFavorites() []domain.Offer {
	var out []domain.Offer
	for _, g := range state.GroupByCity(m.favorites) {
		out = append(out, g.Offers...)
	}
	return out
}

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	offers := m.orderedFavorites()
	count := len(offers)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favoriteRow > 0 {
			m.favoriteRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favoriteRow < count-1 {
			m.favoriteRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.favoriteRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favoriteRow = max(count-1, 0)
	case key.Matches(msg, m.keys.Open):
		if count > 0 {
			return m.openDetail(offers[clamp(m.favoriteRow, count)].ID)
		}
	case key.Matches(msg, m.keys.Favorite):
		if count > 0 {
			return m.toggleFavorite(offers[clamp(m.favoriteRow, count)])
		}
	}
	return m, nil
}

// renderFavorites renders saved offers grouped by city.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()

	switch {
	case m.favoritesLoading && len(m.favorites) == 0:
		return styles.MutedText.Render("Loading favorites...")
	case m.favoritesErr != nil:
		return styles.DangerText.Render("Could not load favorites") + "\n" +
			styles.MutedText.Render(m.favoritesErr.Error())
	case len(m.favorites) == 0:
		return styles.Text.Bold(true).Render("Nothing yet saved.") + "\n" +
			styles.MutedText.Render("Save properties to narrow down search or plan your future trips.")
	}

	var b strings.Builder
	row := 0
	for _, group := range state.GroupByCity(m.favorites) {
		b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("%s · %d", group.City, len(group.Offers))))
		b.WriteString("\n")
		for _, o := range group.Offers {
			line := m.renderOfferRow(o, styles)
			if row == m.favoriteRow {
				line = styles.Selected.Width(m.width).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
