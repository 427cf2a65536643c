package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/DongjuLee0528/portfolio-admin/internal/model"
	"github.com/DongjuLee0528/portfolio-admin/internal/notify"
)

// fakeAPI implements API with per-method function fields so each test
// scripts exactly the calls it expects. Unscripted methods fail the test.
type fakeAPI struct {
	t      *testing.T
	get    func(path string, result any) error
	post   func(path string, body, result any) error
	put    func(path string, body, result any) error
	delete func(path string) error
}

func (f *fakeAPI) Get(ctx context.Context, path string, result any) error {
	if f.get == nil {
		f.t.Fatalf("unexpected GET %s", path)
	}
	return f.get(path, result)
}

func (f *fakeAPI) Post(ctx context.Context, path string, body, result any) error {
	if f.post == nil {
		f.t.Fatalf("unexpected POST %s", path)
	}
	return f.post(path, body, result)
}

func (f *fakeAPI) Put(ctx context.Context, path string, body, result any) error {
	if f.put == nil {
		f.t.Fatalf("unexpected PUT %s", path)
	}
	return f.put(path, body, result)
}

func (f *fakeAPI) Delete(ctx context.Context, path string, result any) error {
	if f.delete == nil {
		f.t.Fatalf("unexpected DELETE %s", path)
	}
	return f.delete(path)
}

func newTestStore(t *testing.T, a *fakeAPI) (*Store, *notify.Center) {
	t.Helper()
	notices := notify.NewCenter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(a, notices, logger), notices
}

// respond round-trips v through JSON into result, producing the same
// decoded shapes a real response body would.
func respond(t *testing.T, result, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	if err := json.Unmarshal(data, result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
}

// seedProjects loads the store's canonical list through the normal
// fetch path.
func seedProjects(t *testing.T, s *Store, a *fakeAPI, projects []model.Project) {
	t.Helper()
	a.get = func(path string, result any) error {
		respond(t, result, projects)
		return nil
	}
	if err := s.LoadProjects(context.Background()); err != nil {
		t.Fatalf("seeding projects: %v", err)
	}
	a.get = nil
}

func TestLoadProjectsNormalizes(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	api.get = func(path string, result any) error {
		if path != "/api/projects" {
			t.Errorf("path = %q", path)
		}
		respond(t, result, []map[string]any{
			{"id": 1, "title": "A", "status": "Published"},
			{"id": "garbage", "title": "B", "status": "draft"},
		})
		return nil
	}

	if err := s.LoadProjects(context.Background()); err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}

	got := s.Projects()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Status != model.StatusPublished || got[1].Status != model.StatusDraft {
		t.Errorf("statuses = %q, %q", got[0].Status, got[1].Status)
	}
	if got[1].ID != 0 {
		t.Errorf("malformed id normalized to %d, want 0", got[1].ID)
	}
	if got[0].Links == nil || got[0].QnA == nil || got[0].Tags == nil {
		t.Error("array fields must be non-nil after load")
	}
}

func TestLoadProjectsFailureKeepsList(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)
	seedProjects(t, s, api, []model.Project{{ID: 1, Title: "Keep me"}})

	api.get = func(path string, result any) error {
		return errors.New("connection refused")
	}
	if err := s.LoadProjects(context.Background()); err == nil {
		t.Fatal("LoadProjects succeeded against a failing API")
	}

	got := s.Projects()
	if len(got) != 1 || got[0].Title != "Keep me" {
		t.Errorf("list changed on failed reload: %+v", got)
	}
	if s.LoadingProjects() {
		t.Error("loading flag stuck after failure")
	}
}

// TestSaveProjectCreateFiltersPayload: a create posts the cleaned
// draft. Links without a URL and Q&A pairs missing either half never
// reach the backend, but the draft itself keeps them.
func TestSaveProjectCreateFiltersPayload(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	s.OpenProjectEditor(nil)
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Title = "New Thing"
		p.Category = "Web"
		p.Description = "Does things."
		p.Links = []model.ProjectLink{
			{Label: "GitHub", URL: "https://github.com/x/y"},
			{Label: "Empty label only"},
		}
		p.QnA = []model.QnA{
			{Question: "Q. What is this project?", Answer: "A thing."},
			{Question: "Q. Unanswered?"},
			{Answer: "Orphaned answer"},
		}
	})

	var sent model.Project
	api.post = func(path string, body, result any) error {
		if path != "/api/projects" {
			t.Errorf("path = %q", path)
		}
		sent = body.(model.Project)
		saved := sent
		saved.ID = 7
		respond(t, result, saved)
		return nil
	}

	if err := s.SaveProject(context.Background()); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	if len(sent.Links) != 1 || sent.Links[0].URL != "https://github.com/x/y" {
		t.Errorf("payload links = %+v, want only the one with a URL", sent.Links)
	}
	if len(sent.QnA) != 1 || sent.QnA[0].Answer != "A thing." {
		t.Errorf("payload qna = %+v, want only the complete pair", sent.QnA)
	}

	got := s.Projects()
	if len(got) != 1 || got[0].ID != 7 || got[0].Title != "New Thing" {
		t.Errorf("canonical list after create = %+v", got)
	}
	if s.ProjectEditorState() != EditorClosed {
		t.Error("editor still open after successful save")
	}
}

func TestSaveProjectUpdateReplacesByID(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)
	seedProjects(t, s, api, []model.Project{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
		{ID: 3, Title: "Third"},
	})

	target := s.Projects()[1]
	s.OpenProjectEditor(&target)
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Title = "Second, revised"
		p.Category = "Web"
		p.Description = "Updated."
	})

	api.put = func(path string, body, result any) error {
		if path != "/api/projects/2" {
			t.Errorf("path = %q, want /api/projects/2", path)
		}
		respond(t, result, body)
		return nil
	}

	if err := s.SaveProject(context.Background()); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	got := s.Projects()
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	want := []string{"First", "Second, revised", "Third"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

// TestSaveProjectFailureKeepsDraft: a failed save reopens the editor
// with everything the user typed, pushes an error notice, and leaves
// the canonical list untouched.
func TestSaveProjectFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{t: t}
	s, notices := newTestStore(t, api)

	s.OpenProjectEditor(nil)
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Title = "Doomed"
		p.Category = "Web"
		p.Description = "Will not save."
	})

	api.post = func(path string, body, result any) error {
		return errors.New("500 from backend")
	}

	if err := s.SaveProject(context.Background()); err == nil {
		t.Fatal("SaveProject succeeded against a failing API")
	}

	if s.ProjectEditorState() != EditorOpen {
		t.Errorf("editor state = %v, want EditorOpen", s.ProjectEditorState())
	}
	draft, ok := s.ProjectDraft()
	if !ok || draft.Title != "Doomed" {
		t.Errorf("draft after failure = %+v, %v", draft, ok)
	}
	if len(s.Projects()) != 0 {
		t.Errorf("canonical list changed: %+v", s.Projects())
	}
	latest, ok := notices.Latest()
	if !ok || latest.Level != notify.LevelError {
		t.Errorf("notice = %+v, %v; want an error notice", latest, ok)
	}
}

func TestSaveProjectValidation(t *testing.T) {
	api := &fakeAPI{t: t}
	s, notices := newTestStore(t, api)

	s.OpenProjectEditor(nil)
	s.UpdateProjectDraft(func(p *model.Project) {
		p.Category = "Web"
		p.Description = "No title though."
	})

	// No post scripted: validation must fail before any network call.
	if err := s.SaveProject(context.Background()); err == nil {
		t.Fatal("SaveProject accepted a titleless draft")
	}
	if s.ProjectEditorState() != EditorOpen {
		t.Error("editor closed by a validation failure")
	}
	if latest, ok := notices.Latest(); !ok || latest.Level != notify.LevelError {
		t.Errorf("notice = %+v, %v", latest, ok)
	}
}

func TestConfirmDeleteRemovesPreservingOrder(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)
	seedProjects(t, s, api, []model.Project{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
	})

	s.RequestDeleteProject(2)
	if id, ok := s.PendingDelete(); !ok || id != 2 {
		t.Fatalf("PendingDelete = %d, %v; want 2, true", id, ok)
	}

	api.delete = func(path string) error {
		if path != "/api/projects/2" {
			t.Errorf("path = %q", path)
		}
		return nil
	}
	if err := s.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}

	got := s.Projects()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("list after delete = %+v, want ids 1, 3 in order", got)
	}
	if _, ok := s.PendingDelete(); ok {
		t.Error("pending delete still set after confirmation")
	}
}

func TestConfirmDeleteFailureKeepsList(t *testing.T) {
	api := &fakeAPI{t: t}
	s, notices := newTestStore(t, api)
	seedProjects(t, s, api, []model.Project{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})

	s.RequestDeleteProject(1)
	api.delete = func(path string) error {
		return errors.New("backend refused")
	}

	if err := s.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("ConfirmDelete succeeded against a failing API")
	}

	if got := s.Projects(); len(got) != 2 {
		t.Errorf("list changed on failed delete: %+v", got)
	}
	if latest, ok := notices.Latest(); !ok || latest.Level != notify.LevelError {
		t.Errorf("notice = %+v, %v", latest, ok)
	}
}

func TestCancelDelete(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	s.RequestDeleteProject(5)
	s.CancelDelete()

	if _, ok := s.PendingDelete(); ok {
		t.Error("pending delete survived cancellation")
	}
	// No delete scripted: a confirm after cancel must be a no-op.
	if err := s.ConfirmDelete(context.Background()); err != nil {
		t.Errorf("ConfirmDelete after cancel: %v", err)
	}
}

// TestOpenProjectEditorGapFill: editing an existing record with empty
// repeating sections seeds the defaults so the form always has rows.
func TestOpenProjectEditorGapFill(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	existing := model.Project{ID: 4, Title: "Sparse", Category: "Web", Description: "x"}
	s.OpenProjectEditor(&existing)

	draft, ok := s.ProjectDraft()
	if !ok {
		t.Fatal("no draft after open")
	}
	if draft.Tags == nil {
		t.Error("tags not gap-filled")
	}
	if !reflect.DeepEqual(draft.Links, model.DefaultLinks()) {
		t.Errorf("links = %+v, want default placeholder", draft.Links)
	}
	if !reflect.DeepEqual(draft.QnA, model.RecommendedQuestions()) {
		t.Errorf("qna = %+v, want recommended prompts", draft.QnA)
	}
	if s.CreatingProject() {
		t.Error("editing an existing record flagged as create")
	}
}

// TestDraftIndependentOfCanonical: edits to the draft never leak into
// the canonical list before a save.
func TestDraftIndependentOfCanonical(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)
	seedProjects(t, s, api, []model.Project{{
		ID: 1, Title: "Original",
		QnA: []model.QnA{{Question: "Q. What is this project?", Answer: "Old answer"}},
	}})

	target := s.Projects()[0]
	s.OpenProjectEditor(&target)
	s.UpdateProjectDraft(func(p *model.Project) { p.Title = "Edited" })
	s.UpdateQnA(0, "answer", "New answer")

	canonical := s.Projects()[0]
	if canonical.Title != "Original" || canonical.QnA[0].Answer != "Old answer" {
		t.Errorf("canonical record changed by draft edits: %+v", canonical)
	}
}

func TestAddQnADefaultsQuestion(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	s.OpenProjectEditor(nil)
	before, _ := s.ProjectDraft()

	s.AddQnA("   ")
	after, _ := s.ProjectDraft()

	if len(after.QnA) != len(before.QnA)+1 {
		t.Fatalf("qna len = %d, want %d", len(after.QnA), len(before.QnA)+1)
	}
	if got := after.QnA[len(after.QnA)-1].Question; got != "Q. " {
		t.Errorf("seeded question = %q, want \"Q. \"", got)
	}
}

func TestUpdateSkillItemsParsesCommaList(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	s.OpenProfileEditor()
	s.AddSkillGroup()
	draft, _ := s.ProfileDraft()
	index := len(draft.Skills) - 1

	s.UpdateSkillItems(index, "React, TypeScript,  , Vue")

	draft, _ = s.ProfileDraft()
	want := []string{"React", "TypeScript", "Vue"}
	if !reflect.DeepEqual(draft.Skills[index].Items, want) {
		t.Errorf("items = %v, want %v", draft.Skills[index].Items, want)
	}
}

func TestSaveProfile(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	s.OpenProfileEditor()
	s.UpdateProfileDraft(func(p *model.Profile) {
		p.Name = "Dongju Lee"
		p.Email = "me@example.com"
	})

	api.put = func(path string, body, result any) error {
		if path != "/api/profile" {
			t.Errorf("path = %q", path)
		}
		respond(t, result, body)
		return nil
	}

	if err := s.SaveProfile(context.Background()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got := s.Profile()
	if got.Name != "Dongju Lee" || got.Email != "me@example.com" {
		t.Errorf("profile = %+v", got)
	}
	if s.ProfileEditorState() != EditorClosed {
		t.Error("profile editor still open after save")
	}
}

func TestSaveProfileFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{t: t}
	s, notices := newTestStore(t, api)

	s.OpenProfileEditor()
	s.UpdateProfileDraft(func(p *model.Profile) { p.Bio = "Typed with care" })

	api.put = func(path string, body, result any) error {
		return errors.New("timeout")
	}

	if err := s.SaveProfile(context.Background()); err == nil {
		t.Fatal("SaveProfile succeeded against a failing API")
	}

	if s.ProfileEditorState() != EditorOpen {
		t.Error("profile editor not reopened after failure")
	}
	draft, ok := s.ProfileDraft()
	if !ok || draft.Bio != "Typed with care" {
		t.Errorf("draft = %+v, %v", draft, ok)
	}
	if latest, ok := notices.Latest(); !ok || latest.Level != notify.LevelError {
		t.Errorf("notice = %+v, %v", latest, ok)
	}
}
