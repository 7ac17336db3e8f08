package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/logtail"
	"github.com/five82/roost/internal/ops"
	"github.com/five82/roost/internal/prefs"
	"github.com/five82/roost/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewOffers View = iota
	ViewDetail
	ViewFavorites
	ViewLogin
	ViewReview
	ViewActivity
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Ops       *ops.Operations
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ops       *ops.Operations
	store     *state.Store
	updates   <-chan struct{}
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	tick      time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	flash       string
	flashIsErr  bool

	// Data state
	snapshot    state.State
	byCity      *state.OffersByCity
	sortKind    domain.SortKind
	selectedRow int
	lastUpdated time.Time

	// Offer page state
	detailID       string
	detail         *ops.OfferPage
	detailErr      error
	detailLoading  bool
	detailViewport viewport.Model

	// Favorites state
	favorites        []domain.Offer
	favoritesErr     error
	favoritesLoading bool
	favoriteRow      int

	// Login form
	loginInputs [2]textinput.Model // email, password
	loginFocus  int
	loginErr    string
	loginBusy   bool

	// Review form
	reviewRating  int
	reviewComment textarea.Model
	reviewErr     string
	reviewBusy    bool

	// Activity log
	activity         []logtail.Entry
	activityViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		ops:         opts.Ops,
		store:       opts.Store,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		tick:        tick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		currentView: ViewOffers,
		byCity:      &state.OffersByCity{},
		sortKind:    opts.Prefs.SortKind(),
	}
	if m.store != nil {
		m.updates = m.store.Subscribe()
		m.snapshot = m.store.State()
	} else {
		m.snapshot = state.InitialState()
	}
	m.initLoginInputs()
	m.initReviewInput()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.tick),
	}
	if m.updates != nil {
		cmds = append(cmds, waitForStoreCmd(m.ctx, m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.contentHeight())
			m.activityViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateActivityViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case storeChangedMsg:
		m.snapshot = m.store.State()
		m.lastUpdated = time.Now()
		m.selectedRow = clamp(m.selectedRow, len(m.visibleOffers()))
		return m, waitForStoreCmd(m.ctx, m.updates)

	case offerPageMsg:
		return m.handleOfferPage(msg)

	case favoritesMsg:
		return m.handleFavorites(msg)

	case favoriteToggledMsg:
		return m.handleFavoriteToggled(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case reviewPostedMsg:
		return m.handleReviewPosted(msg)

	case activityMsg:
		m.activity = msg.entries
		m.updateActivityViewport()
		return m, nil
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Forms own the keyboard apart from esc and ctrl+c.
	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewReview:
		return m.handleReviewKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateDetailViewport()
		m.updateActivityViewport()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewOffers
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.ViewFavorites):
		return m.openFavorites()

	case key.Matches(msg, m.keys.ViewActivity):
		m.currentView = ViewActivity
		return m, loadActivityCmd(m.logPath)

	case key.Matches(msg, m.keys.Login):
		return m.openLogin()

	case key.Matches(msg, m.keys.Logout):
		if m.snapshot.Auth.AuthorizationStatus == domain.AuthStatusAuth && m.ops != nil {
			m.ops.Logout()
			m.setFlash("Signed out", false)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewOffers:
		return m.handleOffersKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

// handleTick processes the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.currentView == ViewActivity {
		cmds = append(cmds, loadActivityCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// refreshCmd reloads whatever the current view shows.
func (m Model) refreshCmd() tea.Cmd {
	switch m.currentView {
	case ViewDetail:
		if m.detailID != "" {
			return loadOfferPageCmd(m.ctx, m.ops, m.detailID)
		}
	case ViewFavorites:
		return loadFavoritesCmd(m.ctx, m.ops)
	case ViewActivity:
		return loadActivityCmd(m.logPath)
	}
	return fetchOffersCmd(m.ctx, m.ops)
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashIsErr = isErr
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.setFlash("Could not save preferences: "+err.Error(), true)
	}
}

// sessionExpired signs out after a 401 and opens the sign-in form. The client
// has already dropped the token; the store still says AUTH until told.
func (m Model) sessionExpired() (tea.Model, tea.Cmd) {
	if m.ops != nil {
		m.ops.Logout()
	}
	m.snapshot.Auth.AuthorizationStatus = domain.AuthStatusNoAuth
	m.snapshot.Auth.User = nil
	m.setFlash("Session expired, sign in again", true)
	return m.openLogin()
}

func (m Model) isAuthorized() bool {
	return m.snapshot.Auth.AuthorizationStatus == domain.AuthStatusAuth
}

// contentHeight is the space left under the header and command bar and above
// the footer.
func (m Model) contentHeight() int {
	return max(m.height-3, 1)
}

func (m *Model) resizeViewports() {
	m.detailViewport.Width = m.width
	m.detailViewport.Height = m.contentHeight()
	m.activityViewport.Width = m.width
	m.activityViewport.Height = m.contentHeight()
	m.reviewComment.SetWidth(min(max(m.width-4, 20), 80))
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewOffers:
		return m.renderOffers()
	case ViewDetail:
		return m.detailViewport.View()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewLogin:
		return m.renderLogin()
	case ViewReview:
		return m.renderReview()
	case ViewActivity:
		return m.activityViewport.View()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type storeChangedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForStoreCmd blocks until the store reports a change.
func waitForStoreCmd(ctx context.Context, updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			return storeChangedMsg{}
		}
	}
}

func fetchOffersCmd(ctx context.Context, o *ops.Operations) tea.Cmd {
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		o.FetchOffers(ctx)
		return nil
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil // interrupted by signal
	}
	return err
}

// updateFocusedInput forwards non-key messages, such as cursor blinks, to
// the active form field.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLogin:
		m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	case ViewReview:
		m.reviewComment, cmd = m.reviewComment.Update(msg)
	}
	return cmd
}
