// Package session holds the signed-in user, their token and the derived
// daily summary. A Session is created once and passed to whoever needs it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"fittrack/domain"
	"fittrack/pkg/gateway"
	"fittrack/pkg/stats"
	"fittrack/pkg/store"
)

type (
	// Remote is the account half of the gateway.
	Remote interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, identifier, password string) (domain.AuthResponse, error)
		Logout(ctx context.Context) error
		Me(ctx context.Context) (domain.User, error)
		UpdateUser(ctx context.Context, id string, form domain.ProfileForm) (domain.User, error)
		SetToken(token string)
	}

	Session struct {
		remote Remote
		tokens TokenStore
		store  *store.Store
		now    func() time.Time

		mu      sync.RWMutex
		user    *domain.User
		summary *domain.DailySummary
	}

	Option func(*Session)
)

// WithClock overrides time.Now for the cached summary.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(remote Remote, tokens TokenStore, entries *store.Store, opts ...Option) *Session {
	s := &Session{
		remote: remote,
		tokens: tokens,
		store:  entries,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	entries.OnChange(s.recompute)
	return s
}

func (s *Session) Store() *store.Store {
	return s.store
}

// Restore resumes a persisted session. Without a stored token it returns
// gateway.ErrAuth; if the token is rejected the session stays signed out.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return &gateway.Error{Kind: gateway.ErrAuth, Message: "Please log in"}
	}

	s.remote.SetToken(token)
	user, err := s.remote.Me(ctx)
	if err != nil {
		s.remote.SetToken("")
		if errors.Is(err, gateway.ErrAuth) {
			_ = s.tokens.Clear()
		}
		return err
	}

	user.Token = token
	s.setUser(&user)
	_, _, err = s.store.LoadAll(ctx)
	return err
}

func (s *Session) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	res, err := s.remote.Login(ctx, identifier, password)
	if err != nil {
		return domain.User{}, err
	}
	return s.start(ctx, res)
}

func (s *Session) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	res, err := s.remote.Register(ctx, domain.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return domain.User{}, err
	}
	return s.start(ctx, res)
}

func (s *Session) start(ctx context.Context, res domain.AuthResponse) (domain.User, error) {
	if err := s.tokens.Save(res.JWT); err != nil {
		return domain.User{}, err
	}
	user := res.User
	user.Token = res.JWT
	s.setUser(&user)

	if _, _, err := s.store.LoadAll(ctx); err != nil {
		return user, err
	}
	return user, nil
}

// Logout revokes the token (best effort) and clears the persisted token,
// the user and every loaded entry.
func (s *Session) Logout(ctx context.Context) error {
	remoteErr := s.remote.Logout(ctx)
	s.remote.SetToken("")

	s.setUser(nil)
	s.store.Reset()

	if err := s.tokens.Clear(); err != nil {
		return err
	}
	if remoteErr != nil && !errors.Is(remoteErr, gateway.ErrAuth) {
		return remoteErr
	}
	return nil
}

// User returns the signed-in user, or false when signed out.
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Session) Onboarded() bool {
	user, ok := s.User()
	return ok && user.Onboarded()
}

// Onboard completes the first-run wizard; age, weight and goal are mandatory.
func (s *Session) Onboard(ctx context.Context, form domain.ProfileForm) (domain.User, error) {
	if err := form.ValidateOnboarding(); err != nil {
		return domain.User{}, gateway.Validation(err.Error())
	}
	return s.UpdateProfile(ctx, form)
}

// UpdateProfile saves form; an onboarded user cannot clear age, weight or
// goal.
func (s *Session) UpdateProfile(ctx context.Context, form domain.ProfileForm) (domain.User, error) {
	current, ok := s.User()
	if !ok {
		return domain.User{}, &gateway.Error{Kind: gateway.ErrAuth, Message: "Please log in"}
	}
	if current.Onboarded() {
		if err := form.ValidateOnboarding(); err != nil {
			return domain.User{}, gateway.Validation(err.Error())
		}
	}

	if _, err := s.remote.UpdateUser(ctx, current.ID, form); err != nil {
		return domain.User{}, err
	}
	user, err := s.remote.Me(ctx)
	if err != nil {
		return domain.User{}, err
	}
	user.Token = current.Token
	s.setUser(&user)
	return user, nil
}

// Summary returns the figures for now's day, using the cached value when
// it was computed for the same day.
func (s *Session) Summary(now time.Time) domain.DailySummary {
	s.mu.RLock()
	cached := s.summary
	s.mu.RUnlock()
	if cached != nil && cached.Date == stats.DayKey(now) {
		return *cached
	}
	return s.compute(s.store.Snapshot(), now)
}

// Dashboard computes the full dashboard locally from the loaded entries.
func (s *Session) Dashboard(now time.Time) domain.DashboardResponse {
	user, _ := s.User()
	snap := s.store.Snapshot()
	return stats.BuildDashboard(user, snap.Food, snap.Activity, now)
}

func (s *Session) setUser(user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.recompute(s.store.Snapshot())
}

func (s *Session) recompute(snap store.Snapshot) {
	summary := s.compute(snap, s.now())
	s.mu.Lock()
	s.summary = &summary
	s.mu.Unlock()
}

func (s *Session) compute(snap store.Snapshot, now time.Time) domain.DailySummary {
	user, _ := s.User()
	return stats.Summarize(snap.Food, snap.Activity, stats.TargetsFor(user), now)
}
