package content

import (
	"errors"
	"testing"
	"time"

	"github.com/DongjuLee0528/portfolio-admin/internal/model"
)

// receiveResult invokes the subscription command with a deadline so a
// broken refresher fails the test instead of hanging it.
func receiveResult(t *testing.T, r *Refresher) RefreshResultMsg {
	t.Helper()
	done := make(chan RefreshResultMsg, 1)
	go func() {
		if msg, ok := r.WaitForNextResult()().(RefreshResultMsg); ok {
			done <- msg
		}
	}()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh result within deadline")
		return RefreshResultMsg{}
	}
}

func TestRefresherTriggerReloads(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	api.get = func(path string, result any) error {
		switch path {
		case "/api/projects":
			respond(t, result, []model.Project{{ID: 1, Title: "Fresh"}})
		case "/api/profile":
			respond(t, result, model.Profile{Name: "Dongju Lee"})
		default:
			t.Errorf("unexpected GET %s", path)
		}
		return nil
	}

	r := NewRefresher(s, 0)
	r.Start()
	defer r.Stop()

	r.Trigger()
	msg := receiveResult(t, r)

	if msg.ProjectsErr != nil || msg.ProfileErr != nil {
		t.Errorf("result errors = %v, %v", msg.ProjectsErr, msg.ProfileErr)
	}
	if got := s.Projects(); len(got) != 1 || got[0].Title != "Fresh" {
		t.Errorf("projects after refresh = %+v", got)
	}
	if r.LastRefresh().IsZero() {
		t.Error("LastRefresh not recorded after a clean cycle")
	}
}

func TestRefresherReportsErrors(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)

	api.get = func(path string, result any) error {
		if path == "/api/projects" {
			return errors.New("backend down")
		}
		respond(t, result, model.Profile{})
		return nil
	}

	r := NewRefresher(s, 0)
	r.Start()
	defer r.Stop()

	r.Trigger()
	msg := receiveResult(t, r)

	if msg.ProjectsErr == nil {
		t.Error("projects error not reported")
	}
	if msg.ProfileErr != nil {
		t.Errorf("profile error = %v, want nil", msg.ProfileErr)
	}
	if r.State() != RefreshError {
		t.Errorf("state = %v, want RefreshError", r.State())
	}
}

func TestRefresherStopIsRestartable(t *testing.T) {
	api := &fakeAPI{t: t}
	s, _ := newTestStore(t, api)
	api.get = func(path string, result any) error {
		respond(t, result, []model.Project{})
		return nil
	}

	r := NewRefresher(s, 0)
	r.Start()
	r.Stop()
	r.Start()
	defer r.Stop()

	r.Trigger()
	receiveResult(t, r)
}
