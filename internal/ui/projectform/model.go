package projectform

import (
	"context"
	"fmt"
	"io"
	"os"
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

// SavedMsg signals that the draft was saved and the editor closed.
type SavedMsg struct{}

// CancelMsg signals that the user abandoned the editor.
type CancelMsg struct{}

// saveResultMsg carries the outcome of the save pipeline.
type saveResultMsg struct{ err error }

// Uploader is the slice of the API client the image flow needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type linkRow struct {
	label       string
	url         string
	description string
}

type qnaRow struct {
	question string
	answer   string
}

// formBindings holds form field values on the heap so huh's Value()
// pointers remain valid across Bubble Tea model copies. Row slices
// hold pointers for the same reason.
type formBindings struct {
	title       string
	category    string
	status      string
	description string
	tagsRaw     string
	imagePath   string
	links       []*linkRow
	qna         []*qnaRow
}

// Model is the Bubble Tea model for the project create/edit form.
// The authoritative draft lives in the content store; this model binds
// it to huh fields and writes edits back before every structural
// change or save.
type Model struct {
	store     *content.Store
	uploader  Uploader
	keys      *keys.KeyMap
	form      *huh.Form
	fb        *formBindings
	saving    bool
	statusMsg string
	width     int
	height    int
}

// New creates a project form model.
func New(s *content.Store, u Uploader, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:    s,
		uploader: u,
		keys:     k,
		fb:       &formBindings{},
		width:    width,
		height:   height,
	}
}

// StartCreate opens the editor on a fresh draft.
func (m *Model) StartCreate() tea.Cmd {
	m.store.OpenProjectEditor(nil)
	return m.bindDraft()
}

// StartEdit opens the editor on a copy of an existing project.
func (m *Model) StartEdit(p model.Project) tea.Cmd {
	m.store.OpenProjectEditor(&p)
	return m.bindDraft()
}

// Resume rebuilds the form from the store's draft after a failed save
// left the editor open.
func (m *Model) Resume() tea.Cmd {
	return m.bindDraft()
}

// bindDraft copies the store draft into form bindings and builds the form.
func (m *Model) bindDraft() tea.Cmd {
	draft, ok := m.store.ProjectDraft()
	if !ok {
		return nil
	}

	m.saving = false
	m.fb.title = draft.Title
	m.fb.category = draft.Category
	m.fb.status = draft.Status
	m.fb.description = draft.Description
	m.fb.tagsRaw = content.JoinList(draft.Tags)
	m.fb.imagePath = ""

	m.fb.links = make([]*linkRow, len(draft.Links))
	for i, l := range draft.Links {
		m.fb.links[i] = &linkRow{label: l.Label, url: l.URL, description: l.Description}
	}
	m.fb.qna = make([]*qnaRow, len(draft.QnA))
	for i, q := range draft.QnA {
		m.fb.qna[i] = &qnaRow{question: q.Question, answer: q.Answer}
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// syncDraft writes the current form bindings back into the store draft.
func (m *Model) syncDraft() {
	fb := m.fb
	m.store.UpdateProjectDraft(func(p *model.Project) {
		p.Title = fb.title
		p.Category = fb.category
		p.Status = fb.status
		p.Description = fb.description
		p.Tags = content.SplitList(fb.tagsRaw)
	})
	for i, row := range fb.links {
		m.store.UpdateLink(i, "label", row.label)
		m.store.UpdateLink(i, "url", row.url)
		m.store.UpdateLink(i, "description", row.description)
	}
	for i, row := range fb.qna {
		m.store.UpdateQnA(i, "question", row.question)
		m.store.UpdateQnA(i, "answer", row.answer)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			// The store kept the editor open with the draft intact.
			m.statusMsg = msg.err.Error()
			return m, m.bindDraft()
		}
		return m, func() tea.Msg { return SavedMsg{} }

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		// Structural row edits are handled before the form sees the key.
		switch {
		case key.Matches(msg, m.keys.AddLink):
			m.syncDraft()
			m.store.AddLink()
			return m, m.bindDraft()
		case key.Matches(msg, m.keys.DropLink):
			m.syncDraft()
			m.store.RemoveLink(len(m.fb.links) - 1)
			return m, m.bindDraft()
		case key.Matches(msg, m.keys.AddQnA):
			m.syncDraft()
			m.store.AddQnA("")
			return m, m.bindDraft()
		case key.Matches(msg, m.keys.DropQnA):
			m.syncDraft()
			m.store.RemoveQnA(len(m.fb.qna) - 1)
			return m, m.bindDraft()
		}
	}

	if m.form == nil || m.saving {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.syncDraft()
		m.saving = true
		m.statusMsg = ""
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		m.store.CloseProjectEditor()
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the project form.
func (m Model) View() string {
	titleText := "New Project"
	if !m.store.CreatingProject() {
		titleText = "Edit Project"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(titleText))
	b.WriteString("\n")

	if m.saving {
		b.WriteString(theme.HelpStyle.Render("Saving..."))
	} else if m.form != nil {
		b.WriteString(m.form.View())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.statusMsg))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(
		"ctrl+g/alt+g add/remove link | ctrl+q/alt+q add/remove Q&A | esc cancel",
	))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Project title").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewInput().
			Title("Category").
			Placeholder("Web App, Dashboard, ...").
			Value(&m.fb.category).
			Validate(validateRequired("Category")),
		huh.NewSelect[string]().
			Title("Status").
			Options(
				huh.NewOption("Draft", model.StatusDraft),
				huh.NewOption("Published", model.StatusPublished),
			).
			Value(&m.fb.status),
		huh.NewText().
			Title("Description").
			Placeholder("What is this project?").
			Value(&m.fb.description).
			Validate(validateRequired("Description")),
		huh.NewInput().
			Title("Tags").
			Description("Comma-separated tech stack").
			Placeholder("Go, React, PostgreSQL").
			Value(&m.fb.tagsRaw),
		huh.NewInput().
			Title("Image file").
			Description("Local path to upload as the cover image (optional)").
			Value(&m.fb.imagePath).
			Validate(validateOptionalFile),
	}

	for i, row := range m.fb.links {
		n := i + 1
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("Link %d label", n)).
				Placeholder("GitHub").
				Value(&row.label),
			huh.NewInput().
				Title(fmt.Sprintf("Link %d URL", n)).
				Description("Rows with an empty URL are dropped on save").
				Placeholder("https://github.com/...").
				Value(&row.url),
			huh.NewInput().
				Title(fmt.Sprintf("Link %d description", n)).
				Value(&row.description),
		)
	}

	for i, row := range m.fb.qna {
		n := i + 1
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("Q&A %d question", n)).
				Value(&row.question),
			huh.NewText().
				Title(fmt.Sprintf("Q&A %d answer", n)).
				Description("Pairs missing either half are dropped on save").
				Value(&row.answer),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// save uploads the cover image first when a path was given, then saves
// the draft through the store.
func (m Model) save() tea.Cmd {
	s := m.store
	uploader := m.uploader
	imagePath := strings.TrimSpace(m.fb.imagePath)
	return func() tea.Msg {
		ctx := context.Background()
		if imagePath != "" {
			f, err := os.Open(imagePath)
			if err != nil {
				return saveResultMsg{err: fmt.Errorf("opening image: %w", err)}
			}
			url, err := uploader.Upload(ctx, imagePath, f)
			f.Close()
			if err != nil {
				return saveResultMsg{err: fmt.Errorf("uploading image: %w", err)}
			}
			s.SetProjectImage(url)
		}
		return saveResultMsg{err: s.SaveProject(ctx)}
	}
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

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("file not found: %s", s)
	}
	return nil
}
