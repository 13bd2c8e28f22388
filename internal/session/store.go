// Package session owns the process-wide authentication state: the session
// status plus the cached profile. The store is the single writer of that
// state; flows call its methods and presentation surfaces subscribe to
// snapshots, never holding a mutable copy.
package session

import (
	"context"
	"sync"

	"github.com/authify/authify-cli/internal/api"
	"github.com/authify/authify-cli/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Status is the authentication state of the current user.
type Status int

const (
	// StatusUnknown means no determination has been made yet: before the
	// first bootstrap completes, or never. It is distinct from Anonymous,
	// which asserts a definite non-session.
	StatusUnknown Status = iota
	// StatusAuthenticating means a bootstrap is resolving the session.
	StatusAuthenticating
	// StatusAnonymous means there is definitely no valid session.
	StatusAnonymous
	// StatusAuthenticated means a live session with a fetched profile.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of the store. Profile is a copy and is nil
// unless the status is Authenticated (it may also be nil mid-bootstrap).
type Snapshot struct {
	Status  Status
	Profile *api.Profile
}

// Store holds the session state. All mutation goes through its methods;
// each method fully owns its transition, so readers never observe a
// partially applied update.
type Store struct {
	mu      sync.Mutex
	status  Status
	profile *api.Profile
	// gen counts locally-decided overrides (logout). A bootstrap or profile
	// refresh that started before such an override discards its result.
	gen     uint64
	nextSub int
	subs    map[int]func(Snapshot)

	client api.Client
	log    logging.Logger
}

// NewStore creates a store in the Unknown state.
func NewStore(client api.Client, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{
		status: StatusUnknown,
		subs:   make(map[int]func(Snapshot)),
		client: client,
		log:    log.With("component", "session"),
	}
}

// Snapshot returns the current state. The profile is copied so callers can
// never mutate store-owned data.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Status: s.status}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// Subscribe registers fn to be called after every state change, with the
// snapshot that resulted. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// setLocked applies a transition and returns what notify needs. Callers
// must hold mu and must invoke the returned notify after unlocking.
func (s *Store) setLocked(status Status, profile *api.Profile) func() {
	s.status = status
	s.profile = profile

	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return func() {
		for _, fn := range subs {
			fn(snap)
		}
	}
}

// Bootstrap resolves the session by calling check-session and fetch-profile
// concurrently. The two calls are independent and may complete in any order;
// the outcome is reconciled as follows: if either fails (or the liveness
// check answers no), the session is Anonymous with no profile — never left
// hanging in Unknown. Only when both succeed does the state become
// Authenticated with the fetched profile.
//
// Known inconsistency, kept on purpose: a live session whose profile fetch
// failed transiently still collapses to Anonymous.
//
// The returned error is informational; the state is reconciled either way.
// A logout that lands while the calls are in flight wins, and the stale
// bootstrap result is discarded.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	notify := s.setLocked(StatusAuthenticating, s.profile)
	s.mu.Unlock()
	notify()

	var (
		alive   bool
		profile *api.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.client.CheckSession(gctx)
		alive = a
		return err
	})
	g.Go(func() error {
		p, err := s.client.FetchProfile(gctx)
		profile = p
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale bootstrap result")
		return nil
	}
	if err != nil || !alive || profile == nil {
		notify = s.setLocked(StatusAnonymous, nil)
		s.mu.Unlock()
		notify()
		s.log.Info(ctx, "session resolved", "status", StatusAnonymous.String(), "error", err)
		return err
	}
	notify = s.setLocked(StatusAuthenticated, profile)
	s.mu.Unlock()
	notify()
	s.log.Info(ctx, "session resolved", "status", StatusAuthenticated.String(), "email", profile.Email)
	return nil
}

// RefreshProfile re-fetches the profile only. On success the profile is
// replaced wholesale and the session is Authenticated; on failure the
// session downgrades to Anonymous with the profile cleared.
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	profile, err := s.client.FetchProfile(ctx)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	var notify func()
	if err != nil {
		notify = s.setLocked(StatusAnonymous, nil)
	} else {
		notify = s.setLocked(StatusAuthenticated, profile)
	}
	s.mu.Unlock()
	notify()
	return err
}

// Logout calls the server logout endpoint best-effort and unconditionally
// clears local state to Anonymous: clearing the client session must never
// depend on server reachability. The server-call failure is logged, not
// returned.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}

	s.mu.Lock()
	s.gen++
	notify := s.setLocked(StatusAnonymous, nil)
	s.mu.Unlock()
	notify()
}

// MarkEmailVerified flips the cached profile's verification flag in place
// after a successful email verification, saving a full profile round trip.
// It does nothing unless there is an authenticated profile.
func (s *Store) MarkEmailVerified() {
	s.mu.Lock()
	if s.status != StatusAuthenticated || s.profile == nil {
		s.mu.Unlock()
		return
	}
	p := *s.profile
	p.EmailVerified = true
	notify := s.setLocked(StatusAuthenticated, &p)
	s.mu.Unlock()
	notify()
}
