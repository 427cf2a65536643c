package profileform

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

// SavedMsg signals that the profile was saved and the editor closed.
type SavedMsg struct{}

// CancelMsg signals that the user abandoned the editor.
type CancelMsg struct{}

type saveResultMsg struct{ err error }

// Uploader is the slice of the API client the image flow needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// insertSection is the repeating section targeted by the add/remove
// row keybindings. ctrl+t cycles through the three sections.
type insertSection int

const (
	sectionEducation insertSection = iota
	sectionCertificates
	sectionSkills
)

func (s insertSection) String() string {
	switch s {
	case sectionCertificates:
		return "certificates"
	case sectionSkills:
		return "skills"
	default:
		return "education"
	}
}

type educationRow struct {
	school string
	degree string
	period string
}

type certificateRow struct {
	name   string
	issuer string
	date   string
}

type skillRow struct {
	category string
	itemsRaw string
}

// formBindings holds form field values on the heap so huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name      string
	bio       string
	about     string
	email     string
	github    string
	imagePath string

	education    []*educationRow
	certificates []*certificateRow
	skills       []*skillRow
}

// Model is the Bubble Tea model for the profile editor. The draft
// lives in the content store; the form binds to it.
type Model struct {
	store     *content.Store
	uploader  Uploader
	keys      *keys.KeyMap
	form      *huh.Form
	fb        *formBindings
	target    insertSection
	saving    bool
	statusMsg string
	width     int
	height    int
}

// New creates a profile form model.
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

// Start opens the editor on a draft copy of the canonical profile.
func (m *Model) Start() tea.Cmd {
	m.store.OpenProfileEditor()
	return m.bindDraft()
}

func (m *Model) bindDraft() tea.Cmd {
	draft, ok := m.store.ProfileDraft()
	if !ok {
		return nil
	}

	m.saving = false
	m.fb.name = draft.Name
	m.fb.bio = draft.Bio
	m.fb.about = draft.About
	m.fb.email = draft.Email
	m.fb.github = draft.GitHub
	m.fb.imagePath = ""

	m.fb.education = make([]*educationRow, len(draft.Education))
	for i, e := range draft.Education {
		m.fb.education[i] = &educationRow{school: e.School, degree: e.Degree, period: e.Period}
	}
	m.fb.certificates = make([]*certificateRow, len(draft.Certificates))
	for i, c := range draft.Certificates {
		m.fb.certificates[i] = &certificateRow{name: c.Name, issuer: c.Issuer, date: c.Date}
	}
	m.fb.skills = make([]*skillRow, len(draft.Skills))
	for i, g := range draft.Skills {
		m.fb.skills[i] = &skillRow{category: g.Category, itemsRaw: content.JoinList(g.Items)}
	}

	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) syncDraft() {
	fb := m.fb
	m.store.UpdateProfileDraft(func(p *model.Profile) {
		p.Name = fb.name
		p.Bio = fb.bio
		p.About = fb.about
		p.Email = fb.email
		p.GitHub = fb.github
	})
	for i, row := range fb.education {
		m.store.UpdateEducation(i, "school", row.school)
		m.store.UpdateEducation(i, "degree", row.degree)
		m.store.UpdateEducation(i, "period", row.period)
	}
	for i, row := range fb.certificates {
		m.store.UpdateCertificate(i, "name", row.name)
		m.store.UpdateCertificate(i, "issuer", row.issuer)
		m.store.UpdateCertificate(i, "date", row.date)
	}
	for i, row := range fb.skills {
		m.store.UpdateSkillCategory(i, row.category)
		m.store.UpdateSkillItems(i, row.itemsRaw)
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
			m.statusMsg = msg.err.Error()
			return m, m.bindDraft()
		}
		return m, func() tea.Msg { return SavedMsg{} }

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.NextInsert):
			m.target = (m.target + 1) % 3
			return m, nil
		case key.Matches(msg, m.keys.AddRow):
			m.syncDraft()
			m.addRow()
			return m, m.bindDraft()
		case key.Matches(msg, m.keys.DropRow):
			m.syncDraft()
			m.dropRow()
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
		m.store.CloseProfileEditor()
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m *Model) addRow() {
	switch m.target {
	case sectionEducation:
		m.store.AddEducation()
	case sectionCertificates:
		m.store.AddCertificate()
	case sectionSkills:
		m.store.AddSkillGroup()
	}
}

func (m *Model) dropRow() {
	switch m.target {
	case sectionEducation:
		m.store.RemoveEducation(len(m.fb.education) - 1)
	case sectionCertificates:
		m.store.RemoveCertificate(len(m.fb.certificates) - 1)
	case sectionSkills:
		m.store.RemoveSkillGroup(len(m.fb.skills) - 1)
	}
}

// View renders the profile form.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit Profile"))
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
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf(
		"ctrl+n/alt+n add/remove %s row | ctrl+t cycle section | esc cancel",
		m.target,
	)))

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
			Title("Name").
			Value(&m.fb.name),
		huh.NewInput().
			Title("Bio").
			Description("One-line tagline for the hero section").
			Value(&m.fb.bio),
		huh.NewText().
			Title("About").
			Value(&m.fb.about),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email),
		huh.NewInput().
			Title("GitHub").
			Placeholder("https://github.com/you").
			Value(&m.fb.github),
		huh.NewInput().
			Title("Image file").
			Description("Local path to upload as the profile image (optional)").
			Value(&m.fb.imagePath).
			Validate(validateOptionalFile),
	}

	for i, row := range m.fb.education {
		n := i + 1
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("Education %d school", n)).
				Value(&row.school),
			huh.NewInput().
				Title(fmt.Sprintf("Education %d degree", n)).
				Value(&row.degree),
			huh.NewInput().
				Title(fmt.Sprintf("Education %d period", n)).
				Placeholder("2019 - 2023").
				Value(&row.period),
		)
	}

	for i, row := range m.fb.certificates {
		n := i + 1
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("Certificate %d name", n)).
				Value(&row.name),
			huh.NewInput().
				Title(fmt.Sprintf("Certificate %d issuer", n)).
				Value(&row.issuer),
			huh.NewInput().
				Title(fmt.Sprintf("Certificate %d date", n)).
				Value(&row.date),
		)
	}

	for i, row := range m.fb.skills {
		n := i + 1
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("Skill group %d category", n)).
				Placeholder("Languages").
				Value(&row.category),
			huh.NewInput().
				Title(fmt.Sprintf("Skill group %d items", n)).
				Description("Comma-separated").
				Placeholder("Go, TypeScript, SQL").
				Value(&row.itemsRaw),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

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
			s.SetProfileImage(url)
		}
		return saveResultMsg{err: s.SaveProfile(ctx)}
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
