package content

import (
	"strings"

	"github.com/DongjuLee0528/portfolio-admin/internal/model"
)

// OpenProjectEditor copies an existing record (gap-filled so the
// repeating sections are never empty) or a fresh blank template into
// draft state. Only one project editor exists; opening replaces any
// previous draft.
func (s *Store) OpenProjectEditor(existing *model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing == nil {
		s.pe = projectEditor{
			state:    EditorOpen,
			creating: true,
			draft:    model.NewProjectDraft(),
		}
		return
	}

	draft := existing.Clone()
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	if len(draft.Links) == 0 {
		draft.Links = model.DefaultLinks()
	}
	if len(draft.QnA) == 0 {
		draft.QnA = model.RecommendedQuestions()
	}

	s.pe = projectEditor{
		state:  EditorOpen,
		editID: existing.ID,
		draft:  draft,
	}
}

// CloseProjectEditor abandons the draft.
func (s *Store) CloseProjectEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pe = projectEditor{}
}

// ProjectEditorState returns the project editor's lifecycle state.
func (s *Store) ProjectEditorState() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pe.state
}

// CreatingProject reports whether the open editor is a create (as
// opposed to an edit of an existing record).
func (s *Store) CreatingProject() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pe.creating
}

// ProjectDraft returns a snapshot of the draft. ok is false when no
// editor is open.
func (s *Store) ProjectDraft() (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pe.state == EditorClosed {
		return model.Project{}, false
	}
	return s.pe.draft.Clone(), true
}

// UpdateProjectDraft applies a scalar-field edit to the draft. The
// form submit path writes title/category/status/description/tags
// through here in one call.
func (s *Store) UpdateProjectDraft(apply func(p *model.Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pe.state != EditorOpen {
		return
	}
	apply(&s.pe.draft)
}

// SetProjectImage sets the draft's image URL (the upload flow's
// completion hook).
func (s *Store) SetProjectImage(url string) {
	s.UpdateProjectDraft(func(p *model.Project) { p.Image = url })
}

// AddLink appends a blank link row to the draft.
func (s *Store) AddLink() {
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Links = AddItem(p.Links, model.ProjectLink{})
	})
}

// RemoveLink removes the link row at index.
func (s *Store) RemoveLink(index int) {
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Links = RemoveItem(p.Links, index)
	})
}

// UpdateLink replaces one field ("label", "url", "description") of the
// link at index. Unknown fields are ignored.
func (s *Store) UpdateLink(index int, field, value string) {
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Links = UpdateItem(p.Links, index, func(l model.ProjectLink) model.ProjectLink {
			switch field {
			case "label":
				l.Label = value
			case "url":
				l.URL = value
			case "description":
				l.Description = value
			}
			return l
		})
	})
}

// AddQnA appends a Q&A row seeded with the given question text and an
// empty answer. An empty question falls back to the "Q. " prefix.
func (s *Store) AddQnA(question string) {
	if strings.TrimSpace(question) == "" {
		question = "Q. "
	}
	s.UpdateProjectDraft(func(p *model.Project) {
		p.QnA = AddItem(p.QnA, model.QnA{Question: question})
	})
}

// RemoveQnA removes the Q&A row at index.
func (s *Store) RemoveQnA(index int) {
	s.UpdateProjectDraft(func(p *model.Project) {
		p.QnA = RemoveItem(p.QnA, index)
	})
}

// UpdateQnA replaces one field ("question", "answer") of the Q&A pair
// at index.
func (s *Store) UpdateQnA(index int, field, value string) {
	s.UpdateProjectDraft(func(p *model.Project) {
		p.QnA = UpdateItem(p.QnA, index, func(q model.QnA) model.QnA {
			switch field {
			case "question":
				q.Question = value
			case "answer":
				q.Answer = value
			}
			return q
		})
	})
}

// OpenProfileEditor copies the canonical profile into draft state,
// gap-filling array fields so the editor sections render.
func (s *Store) OpenProfileEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.profile.Clone()
	if draft.Education == nil {
		draft.Education = []model.Education{}
	}
	if draft.Certificates == nil {
		draft.Certificates = []model.Certificate{}
	}
	if draft.Skills == nil {
		draft.Skills = []model.SkillGroup{}
	}

	s.fe = profileEditor{state: EditorOpen, draft: draft}
}

// CloseProfileEditor abandons the profile draft.
func (s *Store) CloseProfileEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fe = profileEditor{}
}

// ProfileEditorState returns the profile editor's lifecycle state.
func (s *Store) ProfileEditorState() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fe.state
}

// ProfileDraft returns a snapshot of the profile draft.
func (s *Store) ProfileDraft() (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fe.state == EditorClosed {
		return model.Profile{}, false
	}
	return s.fe.draft.Clone(), true
}

// UpdateProfileDraft applies a scalar-field edit to the profile draft.
func (s *Store) UpdateProfileDraft(apply func(p *model.Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fe.state != EditorOpen {
		return
	}
	apply(&s.fe.draft)
}

// SetProfileImage sets the profile draft's image URL after an upload.
func (s *Store) SetProfileImage(url string) {
	s.UpdateProfileDraft(func(p *model.Profile) { p.Image = url })
}

// AddEducation appends a blank education row.
func (s *Store) AddEducation() {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Education = AddItem(p.Education, model.Education{})
	})
}

// RemoveEducation removes the education row at index.
func (s *Store) RemoveEducation(index int) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Education = RemoveItem(p.Education, index)
	})
}

// UpdateEducation replaces one field ("school", "degree", "period") of
// the education row at index.
func (s *Store) UpdateEducation(index int, field, value string) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Education = UpdateItem(p.Education, index, func(e model.Education) model.Education {
			switch field {
			case "school":
				e.School = value
			case "degree":
				e.Degree = value
			case "period":
				e.Period = value
			}
			return e
		})
	})
}

// AddCertificate appends a blank certificate row.
func (s *Store) AddCertificate() {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Certificates = AddItem(p.Certificates, model.Certificate{})
	})
}

// RemoveCertificate removes the certificate row at index.
func (s *Store) RemoveCertificate(index int) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Certificates = RemoveItem(p.Certificates, index)
	})
}

// UpdateCertificate replaces one field ("name", "issuer", "date") of
// the certificate row at index.
func (s *Store) UpdateCertificate(index int, field, value string) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Certificates = UpdateItem(p.Certificates, index, func(c model.Certificate) model.Certificate {
			switch field {
			case "name":
				c.Name = value
			case "issuer":
				c.Issuer = value
			case "date":
				c.Date = value
			}
			return c
		})
	})
}

// AddSkillGroup appends a blank skill category.
func (s *Store) AddSkillGroup() {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Skills = AddItem(p.Skills, model.SkillGroup{Items: []string{}})
	})
}

// RemoveSkillGroup removes the skill category at index.
func (s *Store) RemoveSkillGroup(index int) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Skills = RemoveItem(p.Skills, index)
	})
}

// UpdateSkillCategory renames the skill category at index.
func (s *Store) UpdateSkillCategory(index int, value string) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Skills = UpdateItem(p.Skills, index, func(g model.SkillGroup) model.SkillGroup {
			g.Category = value
			return g
		})
	})
}

// UpdateSkillItems reparses the category's items from the
// comma-delimited form value on every change.
func (s *Store) UpdateSkillItems(index int, raw string) {
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Skills = UpdateItem(p.Skills, index, func(g model.SkillGroup) model.SkillGroup {
			g.Items = SplitList(raw)
			return g
		})
	})
}
