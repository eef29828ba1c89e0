package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/domain"
	"fittrack/pkg/gateway"
	"fittrack/pkg/stats"
)

// fakeRemote behaves like the API: it assigns ids and timestamps and
// answers 404 for unknown ids.
type fakeRemote struct {
	now      time.Time
	seq      int
	food     []domain.FoodLog
	activity []domain.ActivityLog
	analysis domain.ImageAnalysis

	failNext bool
	calls    int
}

func (f *fakeRemote) fail() error {
	f.calls++
	if f.failNext {
		f.failNext = false
		return &gateway.Error{Kind: gateway.ErrRemote, Status: http.StatusInternalServerError, Message: "Something went wrong"}
	}
	return nil
}

func (f *fakeRemote) notFound() error {
	return &gateway.Error{Kind: gateway.ErrRemote, Status: http.StatusNotFound, Message: "failed to delete"}
}

func (f *fakeRemote) ListFoodLogs(context.Context) ([]domain.FoodLog, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return append([]domain.FoodLog(nil), f.food...), nil
}

func (f *fakeRemote) CreateFoodLog(_ context.Context, d domain.FoodLogDraft) (domain.FoodLog, error) {
	if err := f.fail(); err != nil {
		return domain.FoodLog{}, err
	}
	f.seq++
	entry := domain.FoodLog{ID: fmt.Sprintf("f%d", f.seq), Name: d.Name, Calories: d.Calories, MealType: d.MealType, ImageURL: d.ImageURL, CreatedAt: f.now}
	f.food = append(f.food, entry)
	return entry, nil
}

func (f *fakeRemote) DeleteFoodLog(_ context.Context, id string) error {
	if err := f.fail(); err != nil {
		return err
	}
	for i, e := range f.food {
		if e.ID == id {
			f.food = append(f.food[:i:i], f.food[i+1:]...)
			return nil
		}
	}
	return f.notFound()
}

func (f *fakeRemote) ListActivityLogs(context.Context) ([]domain.ActivityLog, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return append([]domain.ActivityLog(nil), f.activity...), nil
}

func (f *fakeRemote) CreateActivityLog(_ context.Context, d domain.ActivityLogDraft) (domain.ActivityLog, error) {
	if err := f.fail(); err != nil {
		return domain.ActivityLog{}, err
	}
	f.seq++
	entry := domain.ActivityLog{ID: fmt.Sprintf("a%d", f.seq), Name: d.Name, Duration: d.Duration, Calories: d.Calories, CreatedAt: f.now}
	f.activity = append(f.activity, entry)
	return entry, nil
}

func (f *fakeRemote) DeleteActivityLog(_ context.Context, id string) error {
	if err := f.fail(); err != nil {
		return err
	}
	for i, e := range f.activity {
		if e.ID == id {
			f.activity = append(f.activity[:i:i], f.activity[i+1:]...)
			return nil
		}
	}
	return f.notFound()
}

func (f *fakeRemote) AnalyzeImage(context.Context, string, io.Reader) (domain.ImageAnalysis, error) {
	if err := f.fail(); err != nil {
		return domain.ImageAnalysis{}, err
	}
	return f.analysis, nil
}

var testNow = time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

func TestAddFoodValidatesBeforeAnyRemoteCall(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)

	_, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: " ", Calories: 200, MealType: domain.MealLunch})
	assert.ErrorIs(t, err, gateway.ErrValidation)
	assert.Equal(t, "Please fill in all fields", gateway.Message(err))

	_, err = s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Soup", Calories: 0, MealType: domain.MealLunch})
	assert.ErrorIs(t, err, gateway.ErrValidation)

	assert.Zero(t, remote.calls)
	assert.Empty(t, s.Food())
}

func TestAddFoodUpdatesSnapshotAndNotifies(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)

	var seen []Snapshot
	s.OnChange(func(snap Snapshot) { seen = append(seen, snap) })

	entry, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)

	require.Len(t, s.Food(), 1)
	assert.Equal(t, entry, s.Food()[0])
	require.Len(t, seen, 1)
	assert.Equal(t, uint64(1), seen[0].Version)

	summary := stats.Summarize(s.Food(), s.Activity(), stats.Targets{Intake: 2000}, testNow)
	assert.Equal(t, 1700, summary.Remaining)
	assert.Equal(t, 15, summary.ConsumedPct)
}

func TestRemoteFailureLeavesCollectionUnchanged(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)
	_, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)
	before := s.Snapshot()

	remote.failNext = true
	_, err = s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Toast", Calories: 150, MealType: domain.MealBreakfast})
	assert.ErrorIs(t, err, gateway.ErrRemote)
	assert.Equal(t, before, s.Snapshot())
}

func TestDeleteMissingEntryIsRemoteError(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)
	entry, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)

	// Someone else already deleted it on the server.
	remote.food = nil

	err = s.DeleteFood(context.Background(), entry.ID, AlwaysConfirm)
	assert.ErrorIs(t, err, gateway.ErrRemote)
	assert.Len(t, s.Food(), 1)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)
	entry, err := s.AddActivity(context.Background(), domain.ActivityLogDraft{Name: "Yoga", Duration: 20, Calories: 60})
	require.NoError(t, err)
	calls := remote.calls

	var prompt string
	err = s.DeleteActivity(context.Background(), entry.ID, ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	}))
	assert.ErrorIs(t, err, gateway.ErrCancelled)
	assert.True(t, IsCancelled(err))
	assert.NotEmpty(t, prompt)
	assert.Equal(t, calls, remote.calls)
	assert.Len(t, s.Activity(), 1)

	assert.ErrorIs(t, s.DeleteActivity(context.Background(), entry.ID, nil), gateway.ErrCancelled)

	require.NoError(t, s.DeleteActivity(context.Background(), entry.ID, AlwaysConfirm))
	assert.Empty(t, s.Activity())
}

func TestQuickPickDurationRecomputesCalories(t *testing.T) {
	remote := &fakeRemote{now: testNow}
	s := New(remote)

	swimming, ok := domain.FindQuickActivity("swimming")
	require.True(t, ok)
	require.Equal(t, 10, swimming.Rate)

	draft := domain.NewQuickActivityDraft(swimming)
	assert.Equal(t, 30, draft.Duration)
	assert.Equal(t, 300, draft.Calories)

	draft = draft.WithDuration(45)
	assert.Equal(t, 450, draft.Calories)

	entry, err := s.AddActivity(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, 450, entry.Calories)
	assert.Equal(t, 45, entry.Duration)
}

func TestAddActivityValidationMessages(t *testing.T) {
	s := New(&fakeRemote{now: testNow})

	_, err := s.AddActivity(context.Background(), domain.ActivityLogDraft{Name: "Run", Duration: 301, Calories: 100})
	assert.ErrorIs(t, err, gateway.ErrValidation)
	assert.Equal(t, domain.MessageInvalidDuration, gateway.Message(err))

	_, err = s.AddActivity(context.Background(), domain.ActivityLogDraft{Name: "Run", Duration: 30, Calories: 2001})
	assert.Equal(t, domain.MessageInvalidActivityCalories, gateway.Message(err))
}

func TestLoadAllAndReset(t *testing.T) {
	remote := &fakeRemote{
		food:     []domain.FoodLog{{ID: "f1", Name: "Eggs", Calories: 300, CreatedAt: testNow}},
		activity: []domain.ActivityLog{{ID: "a1", Name: "Run", Duration: 30, Calories: 330, CreatedAt: testNow}},
	}
	s := New(remote)

	food, activity, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remote.food, food)
	assert.Equal(t, remote.activity, activity)
	assert.Equal(t, food, s.Food())
	assert.Equal(t, activity, s.Activity())

	remote.failNext = true
	food, activity, err = s.LoadAll(context.Background())
	assert.ErrorIs(t, err, gateway.ErrRemote)
	assert.Empty(t, food)
	assert.Empty(t, activity)
	assert.Empty(t, s.Food())
	assert.Empty(t, s.Activity())

	_, _, err = s.LoadAll(context.Background())
	require.NoError(t, err)
	s.Reset()
	assert.Empty(t, s.Food())
	assert.Empty(t, s.Activity())
}

func TestOnChangeHookMayReadStore(t *testing.T) {
	s := New(&fakeRemote{now: testNow})

	var seen int
	s.OnChange(func(snap Snapshot) {
		// Hooks run outside the store lock.
		seen = len(s.Food())
		assert.Equal(t, snap.Version, s.Snapshot().Version)
	})

	_, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestAddFoodFromImage(t *testing.T) {
	remote := &fakeRemote{now: testNow, analysis: domain.ImageAnalysis{Name: "Pancakes", Calories: 420}}
	s := New(remote)

	lunchTime := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	entry, err := s.AddFoodFromImage(context.Background(), "plate.jpg", nil, lunchTime)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", entry.Name)
	assert.Equal(t, domain.MealLunch, entry.MealType)
	assert.Len(t, s.Food(), 1)

	remote.analysis = domain.ImageAnalysis{}
	_, err = s.AddFoodFromImage(context.Background(), "wall.jpg", nil, lunchTime)
	assert.ErrorIs(t, err, gateway.ErrAnalysisEmpty)
	assert.Len(t, s.Food(), 1)
}

func TestSnapshotIsNotAliased(t *testing.T) {
	s := New(&fakeRemote{now: testNow})
	_, err := s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)

	old := s.Snapshot()
	_, err = s.AddFood(context.Background(), domain.FoodLogDraft{Name: "Toast", Calories: 150, MealType: domain.MealBreakfast})
	require.NoError(t, err)

	assert.Len(t, old.Food, 1)
	assert.Len(t, s.Food(), 2)
}
