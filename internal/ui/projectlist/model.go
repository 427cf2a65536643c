package projectlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/DongjuLee0528/portfolio-admin/internal/content"
	"github.com/DongjuLee0528/portfolio-admin/internal/keys"
	"github.com/DongjuLee0528/portfolio-admin/internal/model"
	"github.com/DongjuLee0528/portfolio-admin/internal/theme"
)

// NewProjectMsg asks the parent to open the editor for a new project.
type NewProjectMsg struct{}

// EditProjectMsg asks the parent to open the editor for an existing project.
type EditProjectMsg struct {
	Project model.Project
}

// OpenProfileMsg asks the parent to open the profile editor.
type OpenProfileMsg struct{}

// LogoutMsg signals a confirmed logout request.
type LogoutMsg struct{}

// projectsLoadedMsg is sent when the canonical list has been refreshed.
type projectsLoadedMsg struct{ err error }

// deleteDoneMsg is sent when a confirmed delete completes.
type deleteDoneMsg struct{ err error }

type listMode int

const (
	modeList listMode = iota
	modeConfirmDelete
	modeConfirmLogout
)

type formBindings struct {
	confirm bool
}

// Model is the Bubble Tea model for the project dashboard list.
type Model struct {
	mode        listMode
	store       *content.Store
	keys        *keys.KeyMap
	projects    []model.Project
	selectedIdx int
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a project list model.
func New(s *content.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		store: s,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init triggers the initial load.
func (m Model) Init() tea.Cmd {
	return m.loadProjects()
}

// Refresh reloads the canonical list from the backend.
func (m Model) Refresh() tea.Cmd {
	return m.loadProjects()
}

// Sync re-reads the store snapshot without a network round trip (after
// a save or delete already updated the canonical list).
func (m *Model) Sync() {
	m.projects = m.store.Projects()
	if m.selectedIdx >= len(m.projects) && m.selectedIdx > 0 {
		m.selectedIdx = len(m.projects) - 1
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = ""
		}
		m.Sync()
		return m, nil

	case deleteDoneMsg:
		m.mode = modeList
		m.Sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeConfirmDelete, modeConfirmLogout:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.projects) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.projects)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.projects) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.projects) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadProjects()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewProjectMsg{} }

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		if len(m.projects) == 0 {
			return m, nil
		}
		p := m.projects[m.selectedIdx]
		return m, func() tea.Msg { return EditProjectMsg{Project: p} }

	case key.Matches(msg, m.keys.Delete):
		if len(m.projects) == 0 {
			return m, nil
		}
		m.store.RequestDeleteProject(m.projects[m.selectedIdx].ID)
		m.fb.confirm = false
		m.confirmForm = m.buildDeleteConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()

	case key.Matches(msg, m.keys.Profile):
		return m, func() tea.Msg { return OpenProfileMsg{} }

	case key.Matches(msg, m.keys.Logout):
		m.fb.confirm = false
		m.confirmForm = m.buildLogoutConfirmForm()
		m.mode = modeConfirmLogout
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildDeleteConfirmForm() *huh.Form {
	title := ""
	if m.selectedIdx < len(m.projects) {
		title = m.projects[m.selectedIdx].Title
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete project %q?", title)).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
}

func (m Model) buildLogoutConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Log out?").
				Description("The stored session token will be cleared.").
				Affirmative("Yes, log out").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		confirmed := m.fb.confirm
		wasLogout := m.mode == modeConfirmLogout
		m.mode = modeList
		if wasLogout {
			if confirmed {
				return m, func() tea.Msg { return LogoutMsg{} }
			}
			return m, nil
		}
		if confirmed {
			return m, m.confirmDelete()
		}
		m.store.CancelDelete()
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		if m.mode == modeConfirmDelete {
			m.store.CancelDelete()
		}
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == modeConfirmDelete || m.mode == modeConfirmLogout {
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the dashboard list.
func (m Model) View() string {
	if m.mode != modeList && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Projects"))
	b.WriteString("\n\n")

	switch {
	case m.store.LoadingProjects():
		b.WriteString(theme.HelpStyle.Render("Loading projects..."))
	case len(m.projects) == 0:
		b.WriteString(theme.HelpStyle.Render("No projects yet. Press 'n' to create one."))
	default:
		for i, p := range m.projects {
			label := fmt.Sprintf("%s %s",
				theme.StatusStyle(p.Status).Render(p.Status),
				p.Title,
			)
			if p.Category != "" {
				label += theme.HelpStyle.Render("  " + p.Category)
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render(
		"n new | e edit | d delete | p profile | r refresh | L log out | q quit",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// InListMode reports whether the plain list is active (no confirmation
// form is consuming keys).
func (m Model) InListMode() bool {
	return m.mode == modeList
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) loadProjects() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.LoadProjects(context.Background())
		return projectsLoadedMsg{err: err}
	}
}

func (m Model) confirmDelete() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.ConfirmDelete(context.Background())
		return deleteDoneMsg{err: err}
	}
}
