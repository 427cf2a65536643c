package content

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DongjuLee0528/portfolio-admin/internal/api"
)

// RefreshState represents the current state of the background refresher.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// RefreshResultMsg is a tea.Msg sent when a background refresh cycle
// completes. Either error may be set; a 401 is absent here because the
// session broadcast already handles it.
type RefreshResultMsg struct {
	ProjectsErr error
	ProfileErr  error
	At          time.Time
}

// refreshTimeout bounds a single refresh cycle.
const refreshTimeout = 30 * time.Second

// Refresher reloads the canonical project list and profile on an
// interval so edits made elsewhere (another terminal, the site's own
// tooling) show up without a manual refresh. Results are bridged into
// Bubble Tea the same way session events are: the goroutine sends on a
// channel and a command waits on it.
type Refresher struct {
	store    *Store
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}

	mu       sync.Mutex
	stopCh   chan struct{}
	running  bool
	state    RefreshState
	lastGood time.Time
}

// NewRefresher creates a refresher over the store. An interval of 0
// disables periodic refreshes; Trigger still forces one.
func NewRefresher(store *Store, interval time.Duration) *Refresher {
	return &Refresher{
		store:     store,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
	}
}

// Start launches the refresh loop and returns a command subscribed to
// its results. Calling Start while running returns the subscription
// only, so the app can re-enter the admin surface after a logout.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return r.waitForResult()
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	go r.loop(stopCh)

	return r.waitForResult()
}

// Stop halts the refresh loop. The refresher can be started again.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// Trigger forces an immediate refresh cycle without waiting for the
// next tick.
func (r *Refresher) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

// State reports the refresher's current state.
func (r *Refresher) State() RefreshState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LastRefresh reports when the last fully successful cycle finished.
func (r *Refresher) LastRefresh() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastGood
}

func (r *Refresher) loop(stopCh chan struct{}) {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-stopCh:
			return
		case <-tick:
			r.refresh()
		case <-r.triggerCh:
			r.refresh()
		}
	}
}

// refresh runs one cycle. Unauthorized errors stop the cycle quietly:
// the API client has already dropped the token, and the resulting
// session broadcast takes the user to the login gate.
func (r *Refresher) refresh() {
	r.setState(RefreshRunning)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	projectsErr := r.store.LoadProjects(ctx)
	if errors.Is(projectsErr, api.ErrUnauthorized) {
		r.setState(RefreshIdle)
		return
	}

	profileErr := r.store.LoadProfile(ctx)
	if errors.Is(profileErr, api.ErrUnauthorized) {
		r.setState(RefreshIdle)
		return
	}

	if projectsErr != nil || profileErr != nil {
		r.setState(RefreshError)
	} else {
		r.mu.Lock()
		r.state = RefreshIdle
		r.lastGood = time.Now()
		r.mu.Unlock()
	}

	r.sendResult(RefreshResultMsg{
		ProjectsErr: projectsErr,
		ProfileErr:  profileErr,
		At:          time.Now(),
	})
}

func (r *Refresher) setState(state RefreshState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

// sendResult delivers a result without blocking the loop.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
	}
}

// waitForResult returns a command that waits for the next refresh
// result. The handler re-issues it via WaitForNextResult to keep the
// subscription alive.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult re-subscribes after a RefreshResultMsg is handled.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}
