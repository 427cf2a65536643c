package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/DongjuLee0528/portfolio-admin/internal/model"
)

// decode runs a JSON document through encoding/json the same way the
// API client does, so the normalizer sees real decoded shapes
// (map[string]any, []any, float64).
func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", doc, err)
	}
	return v
}

// TestProjectMalformedInput feeds the normalizer the payload shapes a
// misbehaving backend can produce. None may panic, and every array
// field must come back non-nil.
func TestProjectMalformedInput(t *testing.T) {
	inputs := map[string]any{
		"nil":          nil,
		"string":       "not an object",
		"number":       float64(42),
		"bool":         true,
		"array":        []any{"a", "b"},
		"empty object": map[string]any{},
		"wrong types": map[string]any{
			"id":     "seven",
			"title":  12,
			"status": []any{"Published"},
			"tags":   "react",
			"links":  map[string]any{"url": "x"},
			"qna":    42,
		},
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			p := Project(in)
			if p.Tags == nil || p.Links == nil || p.QnA == nil {
				t.Errorf("array fields must be non-nil, got %+v", p)
			}
			if p.ID != 0 {
				t.Errorf("id = %d, want 0 for malformed input", p.ID)
			}
			if p.Status != model.StatusDraft {
				t.Errorf("status = %q, want %q", p.Status, model.StatusDraft)
			}
		})
	}
}

func TestProjectWellFormed(t *testing.T) {
	in := decode(t, `{
		"id": 3,
		"title": "Weather Dashboard",
		"category": "Web",
		"status": "Published",
		"description": "Live weather maps.",
		"tags": ["react", "go"],
		"image": "/uploads/weather.png",
		"links": [{"label": "GitHub", "url": "https://github.com/x/y", "description": "source"}],
		"qna": [{"question": "Q. What is this project?", "answer": "A dashboard."}]
	}`)

	p := Project(in)
	want := model.Project{
		ID:          3,
		Title:       "Weather Dashboard",
		Category:    "Web",
		Status:      model.StatusPublished,
		Description: "Live weather maps.",
		Tags:        []string{"react", "go"},
		Image:       "/uploads/weather.png",
		Links: []model.ProjectLink{
			{Label: "GitHub", URL: "https://github.com/x/y", Description: "source"},
		},
		QnA: []model.QnA{
			{Question: "Q. What is this project?", Answer: "A dashboard."},
		},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Project() = %+v, want %+v", p, want)
	}
}

// TestProjectUnknownStatus verifies any status value that is not
// exactly Published falls back to Draft.
func TestProjectUnknownStatus(t *testing.T) {
	for _, status := range []string{"draft", "published", "archived", ""} {
		p := Project(map[string]any{"status": status})
		if p.Status != model.StatusDraft {
			t.Errorf("status %q normalized to %q, want %q", status, p.Status, model.StatusDraft)
		}
	}
}

// TestProjectLegacyLinkFields verifies old records with githubLinks and
// demoLink fold into the unified links field.
func TestProjectLegacyLinkFields(t *testing.T) {
	in := decode(t, `{
		"id": 1,
		"title": "Old Record",
		"githubLinks": [{"label": "Backend", "url": "https://github.com/x/api"}],
		"demoLink": "https://demo.example.com"
	}`)

	p := Project(in)
	want := []model.ProjectLink{
		{Label: "Backend", URL: "https://github.com/x/api"},
		{Label: "Demo", URL: "https://demo.example.com"},
	}
	if !reflect.DeepEqual(p.Links, want) {
		t.Errorf("Links = %+v, want %+v", p.Links, want)
	}
}

// Unified links win over legacy fields when both are present.
func TestProjectLinksShadowLegacy(t *testing.T) {
	in := decode(t, `{
		"links": [{"label": "GitHub", "url": "https://github.com/x/y"}],
		"githubLinks": [{"label": "Old", "url": "https://old.example.com"}]
	}`)

	p := Project(in)
	if len(p.Links) != 1 || p.Links[0].Label != "GitHub" {
		t.Errorf("Links = %+v, want only the unified links entry", p.Links)
	}
}

func TestProjectsNonArray(t *testing.T) {
	for _, in := range []any{nil, "x", float64(1), map[string]any{"id": 1}} {
		got := Projects(in)
		if got == nil || len(got) != 0 {
			t.Errorf("Projects(%v) = %v, want empty non-nil slice", in, got)
		}
	}
}

func TestProjectsSkipsNothing(t *testing.T) {
	in := decode(t, `[{"id": 1, "title": "A"}, "garbage", {"id": 2, "title": "B"}]`)
	got := Projects(in)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (malformed entries normalize to blanks)", len(got))
	}
	if got[0].ID != 1 || got[2].ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", got[0].ID, got[2].ID)
	}
	if got[1].Links == nil {
		t.Error("blank entry must still have non-nil arrays")
	}
}

func TestProfileMalformedInput(t *testing.T) {
	for _, in := range []any{nil, "x", float64(3), []any{}} {
		p := Profile(in)
		if p.Education == nil || p.Certificates == nil || p.Skills == nil {
			t.Errorf("Profile(%v): array fields must be non-nil, got %+v", in, p)
		}
	}
}

func TestProfileWellFormed(t *testing.T) {
	in := decode(t, `{
		"name": "Dongju Lee",
		"bio": "Backend developer",
		"email": "me@example.com",
		"github": "https://github.com/me",
		"education": [{"school": "State University", "degree": "BSc CS", "period": "2018-2022"}],
		"certificates": [{"name": "SQLD", "issuer": "K-DATA", "date": "2023-04"}],
		"skills": [{"category": "Languages", "items": ["Go", "TypeScript", 7]}]
	}`)

	p := Profile(in)
	if p.Name != "Dongju Lee" || p.Email != "me@example.com" {
		t.Errorf("scalar fields wrong: %+v", p)
	}
	if len(p.Education) != 1 || p.Education[0].School != "State University" {
		t.Errorf("Education = %+v", p.Education)
	}
	if len(p.Certificates) != 1 || p.Certificates[0].Issuer != "K-DATA" {
		t.Errorf("Certificates = %+v", p.Certificates)
	}
	// Non-string skill items are discarded, not coerced.
	wantItems := []string{"Go", "TypeScript"}
	if len(p.Skills) != 1 || !reflect.DeepEqual(p.Skills[0].Items, wantItems) {
		t.Errorf("Skills = %+v, want items %v", p.Skills, wantItems)
	}
}

// TestProjectRoundTripIdempotent: normalizing a record, serializing it,
// and normalizing again must be a fixed point.
func TestProjectRoundTripIdempotent(t *testing.T) {
	in := decode(t, `{
		"id": 9,
		"title": "CLI Toolkit",
		"category": "Tools",
		"status": "Published",
		"description": "Assorted terminal helpers.",
		"tags": ["go"],
		"links": [{"label": "GitHub", "url": "https://github.com/x/cli"}],
		"qna": []
	}`)

	first := Project(in)

	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again any
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second := Project(again)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed the record:\nfirst  %+v\nsecond %+v", first, second)
	}
}
