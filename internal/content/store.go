// Package content is the admin state controller. It owns the canonical
// in-memory project list and profile, the editor drafts, and every
// create/update/delete flow against the backend. The canonical
// collections only change after a confirmed successful server
// response; failures leave previous state untouched.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/DongjuLee0528/portfolio-admin/internal/api"
	"github.com/DongjuLee0528/portfolio-admin/internal/model"
	"github.com/DongjuLee0528/portfolio-admin/internal/normalize"
	"github.com/DongjuLee0528/portfolio-admin/internal/notify"
)

// API is the slice of the gateway client the store needs.
type API interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Put(ctx context.Context, path string, body, result any) error
	Delete(ctx context.Context, path string, result any) error
}

// EditorState tracks the per-resource editor lifecycle:
// Closed -> Open -> Saving -> Closed on success, or back to Open with
// an error notice on failure.
type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
	EditorSaving
)

type projectEditor struct {
	state    EditorState
	creating bool
	editID   int
	draft    model.Project
}

type profileEditor struct {
	state EditorState
	draft model.Profile
}

// Store holds admin content state. All exported methods are safe for
// concurrent use; network calls run outside the lock so independent
// operations are not serialized against each other.
type Store struct {
	mu      sync.Mutex
	api     API
	notices *notify.Center
	logger  *slog.Logger

	projects []model.Project
	profile  model.Profile

	loadingProjects bool
	loadingProfile  bool

	pe projectEditor
	fe profileEditor

	pendingDelete *int
}

// NewStore creates a content store over the given API client.
func NewStore(a API, notices *notify.Center, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:      a,
		notices:  notices,
		logger:   logger,
		projects: []model.Project{},
		profile:  model.DefaultProfile(),
	}
}

// Projects returns a snapshot of the canonical project list.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Profile returns a snapshot of the canonical profile.
func (s *Store) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// LoadingProjects reports whether a project list fetch is in flight.
func (s *Store) LoadingProjects() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingProjects
}

// LoadingProfile reports whether a profile fetch is in flight.
func (s *Store) LoadingProfile() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingProfile
}

// LoadProjects fetches and normalizes the project list, replacing the
// canonical collection. On failure the previous list stays as-is.
func (s *Store) LoadProjects(ctx context.Context) error {
	s.mu.Lock()
	s.loadingProjects = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingProjects = false
		s.mu.Unlock()
	}()

	var raw any
	if err := s.api.Get(ctx, "/api/projects", &raw); err != nil {
		s.logger.Error("loading projects", "error", err)
		return err
	}

	list := normalize.Projects(raw)
	s.mu.Lock()
	s.projects = list
	s.mu.Unlock()
	return nil
}

// LoadProfile fetches and normalizes the profile singleton.
func (s *Store) LoadProfile(ctx context.Context) error {
	s.mu.Lock()
	s.loadingProfile = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingProfile = false
		s.mu.Unlock()
	}()

	var raw any
	if err := s.api.Get(ctx, "/api/profile", &raw); err != nil {
		s.logger.Error("loading profile", "error", err)
		return err
	}

	p := normalize.Profile(raw)
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return nil
}

// SaveProject cleans the draft, routes to create or update, and on
// success splices the normalized response into the canonical list and
// closes the editor. On failure the editor stays open with the draft
// intact and an error notice fires.
func (s *Store) SaveProject(ctx context.Context) error {
	s.mu.Lock()
	if s.pe.state != EditorOpen {
		s.mu.Unlock()
		return fmt.Errorf("no project editor open")
	}
	if err := validateProject(s.pe.draft); err != nil {
		s.mu.Unlock()
		s.notices.Push(notify.LevelError, err.Error())
		return err
	}
	creating := s.pe.creating
	editID := s.pe.editID
	payload := cleanProject(s.pe.draft)
	s.pe.state = EditorSaving
	s.mu.Unlock()

	var raw any
	var err error
	if creating {
		err = s.api.Post(ctx, "/api/projects", payload, &raw)
	} else {
		err = s.api.Put(ctx, fmt.Sprintf("/api/projects/%d", editID), payload, &raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.pe.state = EditorOpen
		s.logger.Error("saving project", "error", err, "creating", creating)
		s.pushErrorNotice("Failed to save project", err)
		return err
	}

	saved := normalize.Project(raw)
	if creating {
		s.projects = append(s.projects, saved)
	} else {
		replaced := false
		for i := range s.projects {
			if s.projects[i].ID == editID {
				s.projects[i] = saved
				replaced = true
				break
			}
		}
		if !replaced {
			s.projects = append(s.projects, saved)
		}
	}
	s.pe = projectEditor{}
	s.notices.Push(notify.LevelSuccess, "Project saved")
	return nil
}

// RequestDeleteProject enters the awaiting-confirmation state for the
// given project. Nothing is sent until ConfirmDelete.
func (s *Store) RequestDeleteProject(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = &id
}

// PendingDelete reports the project id awaiting delete confirmation.
func (s *Store) PendingDelete() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return 0, false
	}
	return *s.pendingDelete, true
}

// CancelDelete leaves the awaiting-confirmation state without deleting.
func (s *Store) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// ConfirmDelete performs the pending delete. On success the project is
// removed from the canonical list, preserving the order of the rest;
// on failure the list is untouched and an error notice fires.
func (s *Store) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.pendingDelete == nil {
		s.mu.Unlock()
		return nil
	}
	id := *s.pendingDelete
	s.pendingDelete = nil
	s.mu.Unlock()

	if err := s.api.Delete(ctx, fmt.Sprintf("/api/projects/%d", id), nil); err != nil {
		s.logger.Error("deleting project", "error", err, "id", id)
		s.pushErrorNotice("Failed to delete project", err)
		return err
	}

	s.mu.Lock()
	kept := s.projects[:0:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.mu.Unlock()

	s.notices.Push(notify.LevelSuccess, "Project deleted")
	return nil
}

// SaveProfile persists the profile draft via the singleton update
// endpoint, replacing the canonical profile with the normalized
// response and closing the editor on success.
func (s *Store) SaveProfile(ctx context.Context) error {
	s.mu.Lock()
	if s.fe.state != EditorOpen {
		s.mu.Unlock()
		return fmt.Errorf("no profile editor open")
	}
	payload := s.fe.draft.Clone()
	s.fe.state = EditorSaving
	s.mu.Unlock()

	var raw any
	err := s.api.Put(ctx, "/api/profile", payload, &raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fe.state = EditorOpen
		s.logger.Error("saving profile", "error", err)
		s.pushErrorNotice("Failed to update profile", err)
		return err
	}

	s.profile = normalize.Profile(raw)
	s.fe = profileEditor{}
	s.notices.Push(notify.LevelSuccess, "Profile updated")
	return nil
}

// pushErrorNotice surfaces a failure to the user. 401s are
// auto-remediated by the API client (token cleared, session broadcast),
// so they are not repeated as a generic error here.
func (s *Store) pushErrorNotice(prefix string, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		return
	}
	s.notices.Pushf(notify.LevelError, "%s: %v", prefix, err)
}

// validateProject enforces the fields the backend requires for a save.
func validateProject(p model.Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// cleanProject trims the draft before submission: links with an empty
// URL and Q&A pairs missing either half are dropped. The draft itself
// is untouched so a failed save keeps everything the user typed.
func cleanProject(p model.Project) model.Project {
	out := p.Clone()

	links := make([]model.ProjectLink, 0, len(out.Links))
	for _, l := range out.Links {
		if strings.TrimSpace(l.URL) != "" {
			links = append(links, l)
		}
	}
	out.Links = links

	qna := make([]model.QnA, 0, len(out.QnA))
	for _, q := range out.QnA {
		if strings.TrimSpace(q.Question) != "" && strings.TrimSpace(q.Answer) != "" {
			qna = append(qna, q)
		}
	}
	out.QnA = qna

	return out
}
