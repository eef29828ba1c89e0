package session

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/domain"
	"fittrack/pkg/gateway"
	"fittrack/pkg/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// fakeAPI serves both the account and the entry endpoints for one user.
type fakeAPI struct {
	user     domain.User
	password string
	token    string
	valid    string

	food     []domain.FoodLog
	activity []domain.ActivityLog

	logoutErr error
	logouts   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user:     domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", DailyCalorieIntake: 2000},
		password: "secret1",
		valid:    "jwt-1",
	}
}

func (f *fakeAPI) authErr() error {
	return &gateway.Error{Kind: gateway.ErrAuth, Status: http.StatusUnauthorized, Message: "invalid token"}
}

func (f *fakeAPI) authed() error {
	if f.token == "" || f.token != f.valid {
		return f.authErr()
	}
	return nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Register(_ context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	f.user.Username, f.user.Email, f.password = req.Username, req.Email, req.Password
	f.token = f.valid
	return domain.AuthResponse{JWT: f.valid, User: f.user}, nil
}

func (f *fakeAPI) Login(_ context.Context, identifier, password string) (domain.AuthResponse, error) {
	if identifier != f.user.Email && identifier != f.user.Username || password != f.password {
		return domain.AuthResponse{}, &gateway.Error{Kind: gateway.ErrRemote, Status: http.StatusUnauthorized, Message: "invalid identifier or password"}
	}
	f.token = f.valid
	return domain.AuthResponse{JWT: f.valid, User: f.user}, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logouts++
	f.token = ""
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context) (domain.User, error) {
	if err := f.authed(); err != nil {
		return domain.User{}, err
	}
	return f.user, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id string, form domain.ProfileForm) (domain.User, error) {
	if err := f.authed(); err != nil {
		return domain.User{}, err
	}
	if id != f.user.ID {
		return domain.User{}, &gateway.Error{Kind: gateway.ErrRemote, Status: http.StatusForbidden, Message: "forbidden"}
	}
	f.user.Age, f.user.Weight, f.user.Height = form.Age, form.Weight, form.Height
	f.user.Goal = form.Goal
	f.user.DailyCalorieIntake, f.user.DailyCalorieBurn = form.DailyCalorieIntake, form.DailyCalorieBurn
	return f.user, nil
}

func (f *fakeAPI) ListFoodLogs(context.Context) ([]domain.FoodLog, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	return append([]domain.FoodLog(nil), f.food...), nil
}

func (f *fakeAPI) CreateFoodLog(_ context.Context, d domain.FoodLogDraft) (domain.FoodLog, error) {
	if err := f.authed(); err != nil {
		return domain.FoodLog{}, err
	}
	entry := domain.FoodLog{ID: d.Name, Name: d.Name, Calories: d.Calories, MealType: d.MealType, CreatedAt: testNow}
	f.food = append(f.food, entry)
	return entry, nil
}

func (f *fakeAPI) DeleteFoodLog(context.Context, string) error { return f.authed() }

func (f *fakeAPI) ListActivityLogs(context.Context) ([]domain.ActivityLog, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	return append([]domain.ActivityLog(nil), f.activity...), nil
}

func (f *fakeAPI) CreateActivityLog(_ context.Context, d domain.ActivityLogDraft) (domain.ActivityLog, error) {
	if err := f.authed(); err != nil {
		return domain.ActivityLog{}, err
	}
	entry := domain.ActivityLog{ID: d.Name, Name: d.Name, Duration: d.Duration, Calories: d.Calories, CreatedAt: testNow}
	f.activity = append(f.activity, entry)
	return entry, nil
}

func (f *fakeAPI) DeleteActivityLog(context.Context, string) error { return f.authed() }

func (f *fakeAPI) AnalyzeImage(context.Context, string, io.Reader) (domain.ImageAnalysis, error) {
	return domain.ImageAnalysis{}, f.authed()
}

func newTestSession(api *fakeAPI, tokens TokenStore) *Session {
	return New(api, tokens, store.New(api), WithClock(func() time.Time { return testNow }))
}

func TestRestoreWithoutToken(t *testing.T) {
	s := newTestSession(newFakeAPI(), NewMemoryTokenStore(""))

	err := s.Restore(context.Background())
	assert.ErrorIs(t, err, gateway.ErrAuth)

	_, ok := s.User()
	assert.False(t, ok)
}

func TestRestoreWithRejectedTokenClearsIt(t *testing.T) {
	api := newFakeAPI()
	tokens := NewMemoryTokenStore("stale")
	s := newTestSession(api, tokens)

	err := s.Restore(context.Background())
	assert.ErrorIs(t, err, gateway.ErrAuth)

	stored, _ := tokens.Load()
	assert.Empty(t, stored)
	assert.Empty(t, api.token)
}

func TestRestoreLoadsUserAndEntries(t *testing.T) {
	api := newFakeAPI()
	api.food = []domain.FoodLog{{ID: "f1", Name: "Oats", Calories: 250, MealType: domain.MealBreakfast, CreatedAt: testNow}}
	s := newTestSession(api, NewMemoryTokenStore("jwt-1"))

	require.NoError(t, s.Restore(context.Background()))

	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "jwt-1", user.Token)
	assert.Len(t, s.Store().Food(), 1)
	assert.Equal(t, 250, s.Summary(testNow).Consumed)
}

func TestLoginThenLogoutClearsEverything(t *testing.T) {
	api := newFakeAPI()
	api.food = []domain.FoodLog{{ID: "f1", Name: "Oats", Calories: 250, MealType: domain.MealBreakfast, CreatedAt: testNow}}
	tokens := NewMemoryTokenStore("")
	s := newTestSession(api, tokens)

	user, err := s.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", user.Token)
	assert.Len(t, s.Store().Food(), 1)

	stored, _ := tokens.Load()
	assert.Equal(t, "jwt-1", stored)

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, 1, api.logouts)

	_, ok := s.User()
	assert.False(t, ok)
	assert.Empty(t, s.Store().Food())
	assert.Empty(t, s.Store().Activity())
	stored, _ = tokens.Load()
	assert.Empty(t, stored)
	assert.Equal(t, 0, s.Summary(testNow).Consumed)
}

func TestLogoutIgnoresRejectedToken(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, NewMemoryTokenStore(""))
	_, err := s.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	api.logoutErr = api.authErr()
	assert.NoError(t, s.Logout(context.Background()))

	_, err = s.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	api.logoutErr = &gateway.Error{Kind: gateway.ErrRemote, Message: "Something went wrong"}
	assert.ErrorIs(t, s.Logout(context.Background()), gateway.ErrRemote)
	_, ok := s.User()
	assert.False(t, ok)
}

func TestLoginWithBadPassword(t *testing.T) {
	tokens := NewMemoryTokenStore("")
	s := newTestSession(newFakeAPI(), tokens)

	_, err := s.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid identifier or password", gateway.Message(err))

	_, ok := s.User()
	assert.False(t, ok)
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestOnboard(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, NewMemoryTokenStore(""))
	_, err := s.Signup(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, s.Onboarded())

	_, err = s.Onboard(context.Background(), domain.ProfileForm{Age: 10, Weight: 60, Goal: domain.GoalLose})
	assert.ErrorIs(t, err, gateway.ErrValidation)
	assert.Equal(t, domain.ErrInvalidAge.Error(), gateway.Message(err))

	_, err = s.Onboard(context.Background(), domain.ProfileForm{Age: 30, Goal: domain.GoalLose})
	assert.Equal(t, domain.ErrWeightRequired.Error(), gateway.Message(err))

	_, err = s.Onboard(context.Background(), domain.ProfileForm{Age: 30, Weight: 60})
	assert.Equal(t, domain.ErrInvalidGoal.Error(), gateway.Message(err))

	user, err := s.Onboard(context.Background(), domain.ProfileForm{Age: 30, Weight: 70, Height: 175, Goal: domain.GoalMaintain, DailyCalorieIntake: 2400})
	require.NoError(t, err)
	assert.True(t, s.Onboarded())
	assert.Equal(t, 30, user.Age)
	assert.Equal(t, "jwt-1", user.Token)
	assert.Equal(t, 2400, s.Summary(testNow).IntakeGoal)
}

func TestUpdateProfileCannotUndoOnboarding(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, NewMemoryTokenStore(""))
	_, err := s.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	form := domain.ProfileForm{Age: 30, Weight: 70, Goal: domain.GoalGain}
	_, err = s.Onboard(context.Background(), form)
	require.NoError(t, err)

	form.Weight = 0
	_, err = s.UpdateProfile(context.Background(), form)
	assert.ErrorIs(t, err, gateway.ErrValidation)
	assert.Equal(t, domain.ErrWeightRequired.Error(), gateway.Message(err))
	assert.Equal(t, 70.0, api.user.Weight)
	assert.True(t, s.Onboarded())
}

func TestSummaryFollowsStoreChanges(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, NewMemoryTokenStore(""))
	_, err := s.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.Equal(t, 2000, s.Summary(testNow).Remaining)

	_, err = s.Store().AddFood(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)
	_, err = s.Store().AddActivity(context.Background(), domain.NewQuickActivityDraft(domain.QuickActivities[0]))
	require.NoError(t, err)

	summary := s.Summary(testNow)
	assert.Equal(t, 300, summary.Consumed)
	assert.Equal(t, 1700, summary.Remaining)
	assert.Equal(t, 15, summary.ConsumedPct)
	assert.Equal(t, 120, summary.Burned)
	assert.Equal(t, 30, summary.ActiveMinutes)

	// A different day is computed on demand, not served from the cache.
	tomorrow := s.Summary(testNow.AddDate(0, 0, 1))
	assert.Equal(t, 0, tomorrow.Consumed)
}

func TestUpdateProfileRequiresLogin(t *testing.T) {
	s := newTestSession(newFakeAPI(), NewMemoryTokenStore(""))
	_, err := s.UpdateProfile(context.Background(), domain.ProfileForm{Age: 30})
	assert.ErrorIs(t, err, gateway.ErrAuth)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	tokens := NewFileTokenStore(path)

	token, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, tokens.Save("jwt-abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"jwt-abc"}`, string(raw))

	token, err = NewFileTokenStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)

	require.NoError(t, tokens.Clear())
	require.NoError(t, tokens.Clear())
	token, err = tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
