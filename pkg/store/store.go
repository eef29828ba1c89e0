// Package store keeps the signed-in user's food and activity entries in
// memory. The server stays the source of truth: entries are fetched once per
// session and the local snapshot changes only after a remote call succeeds.
package store

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"fittrack/domain"
	"fittrack/internal/utils"
	"fittrack/pkg/gateway"
)

type (
	// Remote is the slice of the gateway the store needs.
	Remote interface {
		ListFoodLogs(ctx context.Context) ([]domain.FoodLog, error)
		CreateFoodLog(ctx context.Context, draft domain.FoodLogDraft) (domain.FoodLog, error)
		DeleteFoodLog(ctx context.Context, id string) error
		ListActivityLogs(ctx context.Context) ([]domain.ActivityLog, error)
		CreateActivityLog(ctx context.Context, draft domain.ActivityLogDraft) (domain.ActivityLog, error)
		DeleteActivityLog(ctx context.Context, id string) error
		AnalyzeImage(ctx context.Context, filename string, image io.Reader) (domain.ImageAnalysis, error)
	}

	// Confirmer approves destructive actions before any remote call.
	Confirmer interface {
		Confirm(prompt string) bool
	}

	ConfirmFunc func(prompt string) bool

	// Snapshot is an immutable view of the store. Slices must not be modified.
	Snapshot struct {
		Version  uint64
		Food     []domain.FoodLog
		Activity []domain.ActivityLog
	}

	Store struct {
		remote Remote

		mu       sync.RWMutex
		snapshot Snapshot
		onChange []func(Snapshot)
	}
)

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves everything; used for --yes and in tests.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

func New(remote Remote) *Store {
	return &Store{remote: remote}
}

// OnChange registers fn to run after every successful mutation, with the
// new snapshot. Hooks run synchronously on the mutating goroutine.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) Food() []domain.FoodLog {
	return s.Snapshot().Food
}

func (s *Store) Activity() []domain.ActivityLog {
	return s.Snapshot().Activity
}

// LoadAll replaces both collections with the server's and returns them. On
// failure the store is left empty.
func (s *Store) LoadAll(ctx context.Context) ([]domain.FoodLog, []domain.ActivityLog, error) {
	food, err := s.remote.ListFoodLogs(ctx)
	if err != nil {
		s.replace(nil, nil)
		return nil, nil, err
	}
	activity, err := s.remote.ListActivityLogs(ctx)
	if err != nil {
		s.replace(nil, nil)
		return nil, nil, err
	}
	s.replace(food, activity)
	snap := s.Snapshot()
	return snap.Food, snap.Activity, nil
}

// Reset drops every entry, e.g. on logout.
func (s *Store) Reset() {
	s.replace(nil, nil)
}

func (s *Store) AddFood(ctx context.Context, draft domain.FoodLogDraft) (domain.FoodLog, error) {
	if err := utils.ValidateFoodDraft(draft); err != nil {
		return domain.FoodLog{}, gateway.Validation(err.Error())
	}

	entry, err := s.remote.CreateFoodLog(ctx, draft)
	if err != nil {
		return domain.FoodLog{}, err
	}

	s.mutate(func(snap *Snapshot) {
		snap.Food = appendCopy(snap.Food, entry)
	})
	return entry, nil
}

func (s *Store) AddActivity(ctx context.Context, draft domain.ActivityLogDraft) (domain.ActivityLog, error) {
	if err := utils.ValidateActivityDraft(draft); err != nil {
		return domain.ActivityLog{}, gateway.Validation(err.Error())
	}

	entry, err := s.remote.CreateActivityLog(ctx, draft)
	if err != nil {
		return domain.ActivityLog{}, err
	}

	s.mutate(func(snap *Snapshot) {
		snap.Activity = appendCopy(snap.Activity, entry)
	})
	return entry, nil
}

// AddFoodFromImage analyzes a meal photo and logs the result under the
// meal type matching now's hour.
func (s *Store) AddFoodFromImage(ctx context.Context, filename string, image io.Reader, now time.Time) (domain.FoodLog, error) {
	result, err := s.remote.AnalyzeImage(ctx, filename, image)
	if err != nil {
		return domain.FoodLog{}, err
	}
	if result.Empty() {
		return domain.FoodLog{}, &gateway.Error{Kind: gateway.ErrAnalysisEmpty, Message: domain.MessageNoFoodDetected}
	}

	return s.AddFood(ctx, domain.FoodLogDraft{
		Name:     result.Name,
		Calories: result.Calories,
		MealType: domain.MealTypeAt(now),
		ImageURL: result.ImageURL,
	})
}

func (s *Store) DeleteFood(ctx context.Context, id string, confirm Confirmer) error {
	if !confirmed(confirm, "Delete this food entry?") {
		return gateway.Cancelled()
	}
	if err := s.remote.DeleteFoodLog(ctx, id); err != nil {
		return err
	}

	s.mutate(func(snap *Snapshot) {
		snap.Food = removeByID(snap.Food, id, func(f domain.FoodLog) string { return f.ID })
	})
	return nil
}

func (s *Store) DeleteActivity(ctx context.Context, id string, confirm Confirmer) error {
	if !confirmed(confirm, "Delete this activity?") {
		return gateway.Cancelled()
	}
	if err := s.remote.DeleteActivityLog(ctx, id); err != nil {
		return err
	}

	s.mutate(func(snap *Snapshot) {
		snap.Activity = removeByID(snap.Activity, id, func(a domain.ActivityLog) string { return a.ID })
	})
	return nil
}

func (s *Store) replace(food []domain.FoodLog, activity []domain.ActivityLog) {
	s.mutate(func(snap *Snapshot) {
		snap.Food = append([]domain.FoodLog(nil), food...)
		snap.Activity = append([]domain.ActivityLog(nil), activity...)
	})
}

func (s *Store) mutate(fn func(*Snapshot)) {
	s.mu.Lock()
	next := s.snapshot
	fn(&next)
	next.Version++
	s.snapshot = next
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(next)
	}
}

func confirmed(confirm Confirmer, prompt string) bool {
	if confirm == nil {
		return false
	}
	return confirm.Confirm(prompt)
}

func appendCopy[E any](entries []E, entry E) []E {
	out := make([]E, 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, entry)
}

func removeByID[E any](entries []E, id string, key func(E) string) []E {
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		if key(e) != id {
			out = append(out, e)
		}
	}
	return out
}

// IsCancelled reports whether err is a declined confirmation.
func IsCancelled(err error) bool {
	return errors.Is(err, gateway.ErrCancelled)
}
