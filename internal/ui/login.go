package ui

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/ops"
)

type loginResultMsg struct {
	err error
}

func loginCmd(ctx context.Context, o *ops.Operations, email, password string) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		return loginResultMsg{err: o.Login(ctx, email, password)}
	}
}

func (m *Model) initLoginInputs() {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	m.loginInputs = [2]textinput.Model{email, password}
}

func (m Model) openLogin() (tea.Model, tea.Cmd) {
	if m.isAuthorized() {
		m.setFlash("Already signed in", false)
		return m, nil
	}
	m.currentView = ViewLogin
	m.loginErr = ""
	m.loginBusy = false
	m.loginInputs[1].SetValue("")
	return m, m.focusLoginField(0)
}

func (m *Model) focusLoginField(i int) tea.Cmd {
	m.loginFocus = i
	for j := range m.loginInputs {
		m.loginInputs[j].Blur()
	}
	return m.loginInputs[i].Focus()
}

// handleLoginKey processes keyboard input for the sign-in form.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewOffers
		return m, nil
	case m.loginBusy:
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.focusLoginField((m.loginFocus + 1) % len(m.loginInputs))
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusLoginField((m.loginFocus + len(m.loginInputs) - 1) % len(m.loginInputs))
	case key.Matches(msg, m.keys.Submit):
		if m.loginFocus == 0 {
			return m, m.focusLoginField(1)
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := m.loginInputs[0].Value()
	password := m.loginInputs[1].Value()
	if err := domain.ValidateCredentials(email, password); err != nil {
		m.loginErr = loginValidationMessage(err)
		return m, nil
	}
	m.loginErr = ""
	m.loginBusy = true
	return m, loginCmd(m.ctx, m.ops, email, password)
}

func loginValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Enter a valid email address"
	case errors.Is(err, domain.ErrInvalidPassword):
		return "Password must contain at least one letter and one number"
	default:
		return err.Error()
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loginBusy = false
	if msg.err != nil {
		if api.StatusCode(msg.err) == http.StatusBadRequest {
			m.loginErr = "Invalid email or password"
		} else {
			m.loginErr = "Failed to login. Please try again."
		}
		return m, nil
	}
	m.loginInputs[1].SetValue("")
	m.currentView = ViewOffers
	m.setFlash("Signed in", false)
	// Favorite flags depend on the session, so reload offers.
	return m, fetchOffersCmd(m.ctx, m.ops)
}

// renderLogin renders the sign-in form.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	body := styles.Text.Bold(true).Render("Sign in") + "\n\n" +
		styles.MutedText.Render("E-mail") + "\n" +
		m.loginInputs[0].View() + "\n\n" +
		styles.MutedText.Render("Password") + "\n" +
		m.loginInputs[1].View() + "\n"

	switch {
	case m.loginBusy:
		body += "\n" + styles.WarningText.Render("Signing in...")
	case m.loginErr != "":
		body += "\n" + styles.DangerText.Render(m.loginErr)
	}

	return styles.FocusPanel.Width(min(max(m.width-4, 30), 60)).Render(body)
}
