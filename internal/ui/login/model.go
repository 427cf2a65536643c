package login

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/DongjuLee0528/portfolio-admin/internal/session"
	"github.com/DongjuLee0528/portfolio-admin/internal/theme"
)

// LoggedInMsg signals that authentication succeeded and the admin
// surface can open.
type LoggedInMsg struct{}

// loginResultMsg carries the outcome of the login call.
type loginResultMsg struct{ err error }

// formBindings holds field values on the heap so huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the Bubble Tea model for the admin login screen.
type Model struct {
	sess     *session.Manager
	form     *huh.Form
	fb       *formBindings
	busy     bool
	errMsg   string
	width    int
	height   int
}

// New creates a login model over the session manager.
func New(sess *session.Manager, width, height int) Model {
	m := Model{
		sess:   sess,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the credential form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form for a fresh login attempt (after logout or a
// server-forced invalidation).
func (m *Model) Reset() tea.Cmd {
	m.fb.email = ""
	m.fb.password = ""
	m.errMsg = ""
	m.busy = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return LoggedInMsg{} }
	}

	if m.busy || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.errMsg = ""
		return m, m.doLogin()
	}
	if m.form.State == huh.StateAborted {
		// Nothing behind the login screen to fall back to; re-arm.
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// View renders the login screen.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Admin Access"))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("Enter your credentials to manage the portfolio."))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(theme.HelpStyle.Render("Signing in..."))
	} else if m.form != nil {
		b.WriteString(m.form.View())
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email Address").
				Placeholder("admin@example.com").
				Value(&m.fb.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth())
}

func (m Model) doLogin() tea.Cmd {
	sess := m.sess
	email := m.fb.email
	password := m.fb.password
	return func() tea.Msg {
		err := sess.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
