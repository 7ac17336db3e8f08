package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/ops"
)

type reviewPostedMsg struct {
	offerID string
	review  domain.Review
	err     error
}

func postReviewCmd(ctx context.Context, o *ops.Operations, id string, rating int, comment string) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		review, err := o.PostReview(ctx, id, rating, comment)
		return reviewPostedMsg{offerID: id, review: review, err: err}
	}
}

var submitReviewKey = key.NewBinding(
	key.WithKeys("ctrl+s"),
	key.WithHelp("ctrl+s", "Submit review"),
)

var ratingTitles = map[int]string{
	5: "perfect",
	4: "good",
	3: "not bad",
	2: "badly",
	1: "terribly",
}

func (m *Model) initReviewInput() {
	ta := textarea.New()
	ta.Placeholder = "Tell how was your stay, what you like and what can be improved"
	ta.CharLimit = domain.MaxCommentLen
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.SetWidth(60)
	m.reviewComment = ta
}

func (m Model) openReview() (tea.Model, tea.Cmd) {
	if !m.isAuthorized() {
		m.setFlash("Sign in to write a review", true)
		return m.openLogin()
	}
	m.currentView = ViewReview
	m.reviewErr = ""
	m.reviewBusy = false
	return m, m.reviewComment.Focus()
}

// handleReviewKey processes keyboard input for the review form. Digits set
// the rating; everything else goes to the comment box.
func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.reviewComment.Blur()
		m.currentView = ViewDetail
		return m, nil
	case m.reviewBusy:
		return m, nil
	case key.Matches(msg, submitReviewKey):
		return m.submitReview()
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '5' && m.reviewComment.Value() == "" {
		m.reviewRating = int(s[0] - '0')
		return m, nil
	}
	if msg.Type == tea.KeyCtrlR {
		m.reviewRating = m.reviewRating%domain.MaxReviewRating + 1
		return m, nil
	}

	var cmd tea.Cmd
	m.reviewComment, cmd = m.reviewComment.Update(msg)
	return m, cmd
}

func (m Model) submitReview() (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	comment := strings.TrimSpace(m.reviewComment.Value())
	if err := domain.ValidateReview(m.reviewRating, comment); err != nil {
		m.reviewErr = reviewValidationMessage(err)
		return m, nil
	}
	m.reviewErr = ""
	m.reviewBusy = true
	return m, postReviewCmd(m.ctx, m.ops, m.detail.Offer.ID, m.reviewRating, comment)
}

func reviewValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRating):
		return fmt.Sprintf("Pick a rating from %d to %d", domain.MinReviewRating, domain.MaxReviewRating)
	case errors.Is(err, domain.ErrInvalidComment):
		return fmt.Sprintf("Review must be between %d and %d characters", domain.MinCommentLen, domain.MaxCommentLen)
	default:
		return err.Error()
	}
}

func (m Model) handleReviewPosted(msg reviewPostedMsg) (tea.Model, tea.Cmd) {
	m.reviewBusy = false
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m.sessionExpired()
		}
		m.reviewErr = "Could not post review: " + msg.err.Error()
		return m, nil
	}

	m.reviewComment.Reset()
	m.reviewComment.Blur()
	m.reviewRating = 0
	m.currentView = ViewDetail
	m.setFlash("Review posted", false)
	// Reload so the new review lands in its sorted position.
	return m, loadOfferPageCmd(m.ctx, m.ops, msg.offerID)
}

// renderReview renders the review form.
func (m Model) renderReview() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.detail != nil {
		b.WriteString(styles.Text.Bold(true).Render(m.detail.Offer.Name))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.MutedText.Render("Rating  "))
	if m.reviewRating > 0 {
		b.WriteString(styles.WarningText.Render(stars(m.reviewRating*20)) + " " +
			styles.Text.Render(ratingTitles[m.reviewRating]))
	} else {
		b.WriteString(styles.FaintText.Render("press 1-5 (ctrl+r cycles)"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.reviewComment.View())
	b.WriteString("\n")

	n := utf8.RuneCountInString(strings.TrimSpace(m.reviewComment.Value()))
	counter := fmt.Sprintf("%d / %d-%d", n, domain.MinCommentLen, domain.MaxCommentLen)
	counterStyle := styles.MutedText
	if n >= domain.MinCommentLen && n <= domain.MaxCommentLen {
		counterStyle = styles.SuccessText
	}
	b.WriteString(counterStyle.Render(counter))

	switch {
	case m.reviewBusy:
		b.WriteString("\n" + styles.WarningText.Render("Posting..."))
	case m.reviewErr != "":
		b.WriteString("\n" + styles.DangerText.Render(m.reviewErr))
	}
	return b.String()
}
