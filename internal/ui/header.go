package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roost/internal/domain"
)

// renderHeader renders the status bar: logo, loading state and session.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("roost", styles.Logo)}

	if m.snapshot.Offers.IsLoading {
		parts = append(parts, bg.Render("● Loading", styles.WarningText))
	} else if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render("Updated "+m.formatTimestamp(), styles.MutedText))
	}

	parts = append(parts, m.renderSession(styles, bg))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  ") + sep)
}

func (m Model) renderSession(styles Styles, bg BgStyle) string {
	switch m.snapshot.Auth.AuthorizationStatus {
	case domain.AuthStatusAuth:
		name := "signed in"
		if u := m.snapshot.Auth.User; u != nil {
			name = u.Email
		}
		return bg.Render(name, styles.Text) + bg.Space() +
			bg.Render(fmt.Sprintf("♥ %d", m.snapshot.Auth.FavoriteCount), styles.WarningText)
	case domain.AuthStatusNoAuth:
		return bg.Render("Sign in (L)", styles.AccentText)
	default:
		return bg.Render("Checking session...", styles.FaintText)
	}
}

// formatTimestamp formats the last store update with a relative hint.
func (m Model) formatTimestamp() string {
	since := time.Since(m.lastUpdated)
	stamp := m.lastUpdated.Format("15:04:05")
	if since < time.Minute {
		return stamp
	}
	return fmt.Sprintf("%s (%s ago)", stamp, humanizeDuration(since))
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

// renderCommandBar renders the city tabs and the active sort order.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var title string
	switch m.currentView {
	case ViewDetail:
		title = "Offer"
	case ViewFavorites:
		title = "Saved listing"
	case ViewLogin:
		title = "Sign in"
	case ViewReview:
		title = "Your review"
	case ViewActivity:
		title = "Activity"
	}
	if title != "" {
		return styles.AccentText.Bold(true).Render(title) +
			styles.FaintText.Render("  esc to go back")
	}

	active := m.snapshot.Offers.City
	tabs := make([]string, 0, len(domain.Cities()))
	for i, city := range domain.Cities() {
		label := fmt.Sprintf("%d %s", i+1, city.Name)
		if city.Name == active {
			tabs = append(tabs, styles.Selected.Bold(true).Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Padding(0, 1).Render(label))
		}
	}
	bar := strings.Join(tabs, "")
	sortLabel := styles.FaintText.Render("  Sort by ") + styles.AccentText.Render(m.sortKind.String())
	return bar + sortLabel
}

// renderFooter renders the flash message or the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.flash != "" {
		style := styles.SuccessText
		if m.flashIsErr {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(style.Render(truncate(m.flash, max(m.width-2, 10))))
	}

	var hints []string
	switch m.currentView {
	case ViewOffers:
		hints = []string{"enter open", "f favorite", "s sort", "tab city", "F favorites", "? help"}
	case ViewDetail:
		hints = []string{"f favorite", "r review", "j/k scroll", "esc back"}
	case ViewFavorites:
		hints = []string{"enter open", "f remove", "esc back"}
	case ViewLogin:
		hints = []string{"tab next field", "enter submit", "esc cancel"}
	case ViewReview:
		hints = []string{"1-5 rating", "ctrl+s submit", "esc cancel"}
	case ViewActivity:
		hints = []string{"j/k scroll", "R reload", "esc back"}
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  •  "))
}
