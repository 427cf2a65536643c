package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DongjuLee0528/portfolio-admin/internal/api"
	"github.com/DongjuLee0528/portfolio-admin/internal/content"
	"github.com/DongjuLee0528/portfolio-admin/internal/keys"
	"github.com/DongjuLee0528/portfolio-admin/internal/notify"
	"github.com/DongjuLee0528/portfolio-admin/internal/session"
	"github.com/DongjuLee0528/portfolio-admin/internal/theme"
	"github.com/DongjuLee0528/portfolio-admin/internal/ui"
	"github.com/DongjuLee0528/portfolio-admin/internal/ui/login"
	"github.com/DongjuLee0528/portfolio-admin/internal/ui/profileform"
	"github.com/DongjuLee0528/portfolio-admin/internal/ui/projectform"
	"github.com/DongjuLee0528/portfolio-admin/internal/ui/projectlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewProjects
	ViewProjectForm
	ViewProfileForm
)

// sessionChangedMsg bridges session broadcast events into Bubble Tea.
type sessionChangedMsg struct {
	event session.Event
}

// noticeMsg bridges pushed notices into Bubble Tea.
type noticeMsg struct {
	notice notify.Notice
}

// loggedOutMsg is sent when the logout flow has finished.
type loggedOutMsg struct{}

// profileLoadedMsg is sent when the initial profile fetch completes.
type profileLoadedMsg struct{ err error }

// Model is the root Bubble Tea model that manages view routing, the
// session guard, and the status chrome.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	store       *content.Store
	sess        *session.Manager
	refresher   *content.Refresher
	keys        *keys.KeyMap

	loginView   login.Model
	listView    projectlist.Model
	projectForm projectform.Model
	profileForm profileform.Model

	sessionCh     <-chan session.Event
	cancelSession func()
	noticeCh      chan notify.Notice
	lastNotice    *notify.Notice

	ready bool
}

// New creates the root application model and subscribes to session and
// notice broadcasts.
func New(
	store *content.Store,
	sess *session.Manager,
	client *api.Client,
	notices *notify.Center,
	refresher *content.Refresher,
) Model {
	k := keys.DefaultKeyMap()

	sessionCh, cancelSession := sess.Subscribe()

	noticeCh := make(chan notify.Notice, 16)
	notices.Subscribe(func(n notify.Notice) {
		select {
		case noticeCh <- n:
		default:
		}
	})

	view := ViewLogin
	if sess.IsAuthenticated() {
		view = ViewProjects
	}

	return Model{
		currentView:   view,
		store:         store,
		sess:          sess,
		refresher:     refresher,
		keys:          k,
		loginView:     login.New(sess, 80, 24),
		listView:      projectlist.New(store, k, 80, 24),
		projectForm:   projectform.New(store, client, k, 80, 24),
		profileForm:   profileform.New(store, client, k, 80, 24),
		sessionCh:     sessionCh,
		cancelSession: cancelSession,
		noticeCh:      noticeCh,
	}
}

// Init starts the broadcast bridges and either the admin surface or
// the login gate, depending on whether a token is stored.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForSession(), m.waitForNotice()}
	if m.currentView == ViewProjects {
		cmds = append(cmds, m.enterAdmin())
	} else {
		cmds = append(cmds, m.loginView.Init())
	}
	return tea.Batch(cmds...)
}

// enterAdmin loads the admin data set and starts the background
// refresher.
func (m Model) enterAdmin() tea.Cmd {
	return tea.Batch(m.listView.Init(), m.loadProfile(), m.refresher.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.listView.SetSize(w, h)
		m.projectForm.SetSize(w, h)
		m.profileForm.SetSize(w, h)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case sessionChangedMsg:
		// Any observer of session state re-checks here. Losing the
		// token (logout or a 401 on any call) sends the user back to
		// the login gate regardless of what they were doing.
		if !msg.event.Authenticated && m.currentView != ViewLogin {
			m.refresher.Stop()
			m.currentView = ViewLogin
			return m, tea.Batch(m.loginView.Reset(), m.waitForSession())
		}
		return m, m.waitForSession()

	case noticeMsg:
		n := msg.notice
		m.lastNotice = &n
		return m, m.waitForNotice()

	case login.LoggedInMsg:
		m.currentView = ViewProjects
		return m, m.enterAdmin()

	case projectlist.NewProjectMsg:
		m.currentView = ViewProjectForm
		return m, m.projectForm.StartCreate()

	case projectlist.EditProjectMsg:
		m.currentView = ViewProjectForm
		return m, m.projectForm.StartEdit(msg.Project)

	case projectlist.OpenProfileMsg:
		m.currentView = ViewProfileForm
		return m, m.profileForm.Start()

	case projectlist.LogoutMsg:
		return m, m.logout()

	case loggedOutMsg:
		// The session broadcast already routed us to the login view.
		return m, nil

	case projectform.SavedMsg, projectform.CancelMsg:
		m.currentView = ViewProjects
		m.listView.Sync()
		return m, nil

	case profileform.SavedMsg, profileform.CancelMsg:
		m.currentView = ViewProjects
		return m, nil

	case profileLoadedMsg:
		return m, nil

	case content.RefreshResultMsg:
		// The list view re-reads the store snapshot; errors already went
		// through the store's logging.
		m.listView.Sync()
		return m, m.refresher.WaitForNextResult()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "q" &&
			m.currentView == ViewProjects &&
			m.listView.InListMode() {
			return m, tea.Quit
		}
		return m.updateActiveView(msg)
	}

	return m.updateActiveView(msg)
}

func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewProjects:
		m.listView, cmd = m.listView.Update(msg)
	case ViewProjectForm:
		m.projectForm, cmd = m.projectForm.Update(msg)
	case ViewProfileForm:
		m.profileForm, cmd = m.profileForm.Update(msg)
	}
	return m, cmd
}

// View renders the active view inside the standard frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewLogin:
		content = m.loginView.View()
	case ViewProjects:
		content = m.listView.View()
	case ViewProjectForm:
		content = m.projectForm.View()
	case ViewProfileForm:
		content = m.profileForm.View()
	}

	sessionStatus := "signed out"
	if m.sess.IsAuthenticated() {
		sessionStatus = "admin"
	}

	statusText := "ctrl+c quit"
	if m.lastNotice != nil {
		statusText = theme.NoticeStyle(m.lastNotice.Level).Render(m.lastNotice.Message)
	}

	return m.layout.RenderWithFrame(
		m.layout.RenderHeader("Portfolio Admin", sessionStatus),
		content,
		m.layout.RenderStatusBar(statusText),
	)
}

// waitForSession returns a command that blocks on the next session
// broadcast and re-delivers it as a message.
func (m Model) waitForSession() tea.Cmd {
	ch := m.sessionCh
	return func() tea.Msg {
		return sessionChangedMsg{event: <-ch}
	}
}

// waitForNotice delivers the next pushed notice as a message.
func (m Model) waitForNotice() tea.Cmd {
	ch := m.noticeCh
	return func() tea.Msg {
		return noticeMsg{notice: <-ch}
	}
}

func (m Model) loadProfile() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return profileLoadedMsg{err: s.LoadProfile(context.Background())}
	}
}

func (m Model) logout() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		sess.Logout(context.Background())
		return loggedOutMsg{}
	}
}
