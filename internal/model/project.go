package model

// Project status values as the backend stores them.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// ProjectLink is a labeled external link attached to a project
// (repository, live demo, write-up).
type ProjectLink struct {
	Label       string `json:"label"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// QnA is a question/answer pair shown on the project detail page.
type QnA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Project is a single showcase entry. ID 0 marks an unsaved draft;
// the backend assigns the real ID on create.
type Project struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Status      string        `json:"status"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Image       string        `json:"image,omitempty"`
	Links       []ProjectLink `json:"links"`
	QnA         []QnA         `json:"qna"`
}

// RecommendedQuestions are the prompts seeded into a fresh project
// draft so the detail page starts from a consistent outline.
func RecommendedQuestions() []QnA {
	return []QnA{
		{Question: "Q. What is this project?"},
		{Question: "Q. What was my role?"},
		{Question: "Q. Why this tech stack?"},
		{Question: "Q. What was the hardest part, and how did I solve it?"},
	}
}

// DefaultLinks returns the single placeholder link a new draft starts with.
func DefaultLinks() []ProjectLink {
	return []ProjectLink{{Label: "GitHub"}}
}

// NewProjectDraft returns a blank project template for the editor.
func NewProjectDraft() Project {
	return Project{
		Status: StatusDraft,
		Tags:   []string{},
		Links:  DefaultLinks(),
		QnA:    RecommendedQuestions(),
	}
}

// Clone returns a deep copy. The editor works on a clone so draft edits
// never leak into the canonical list before a save succeeds.
func (p Project) Clone() Project {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.Links = append([]ProjectLink(nil), p.Links...)
	out.QnA = append([]QnA(nil), p.QnA...)
	return out
}
