package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviato-app/aviato-backend/internal/common/auth"
	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
)

type memoryRepo struct {
	users map[string]*models.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*models.User)}
}

func (r *memoryRepo) Create(ctx context.Context, user *models.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *memoryRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return models.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) IncrementApproval(ctx context.Context, id string, delta int) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, models.ErrUserNotFound
	}
	u.ApprovalRating += delta
	return u.ApprovalRating, nil
}

func (r *memoryRepo) AppendReview(ctx context.Context, id string, review models.Review) error {
	u, ok := r.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Reviews = append(u.Reviews, review)
	return nil
}

func (r *memoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubCounter struct {
	count int
}

func (s *stubCounter) CountActiveSince(ctx context.Context, userID string, sinceMs int64) (int, error) {
	return s.count, nil
}

func newTestService(repo *memoryRepo, counter ContactCounter) (*userService, func(time.Time)) {
	svc := NewUserService(repo, counter, auth.NewTokenIssuer("test-secret", time.Hour)).(*userService)
	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }
	return svc, func(t time.Time) { current = t }
}

func seedUser(t *testing.T, repo *memoryRepo, id string, mode availability.Mode) *models.User {
	t.Helper()
	user := &models.User{
		ID:               id,
		Email:            id + "@test.com",
		Name:             id,
		AvailabilityMode: mode,
		Selections:       []string{},
		Reviews:          []models.Review{},
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestSignupAndLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &models.SignupRequest{
		Email: "alice@test.com", Password: "hunter22", Name: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Empty(t, resp.User.Password, "hash must not leak")
	assert.Equal(t, availability.ModeGreen, resp.User.AvailabilityMode)

	_, err = svc.Signup(ctx, &models.SignupRequest{
		Email: "alice@test.com", Password: "other", Name: "Imposter",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "alice@test.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "alice@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestActivateModeYellow(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)

	user, err := svc.ActivateMode(context.Background(), "alice", &models.ModeChange{
		Mode:   availability.ModeYellow,
		Yellow: &models.YellowParams{LaterMinutes: 90},
	})
	require.NoError(t, err)

	assert.Equal(t, availability.ModeYellow, user.AvailabilityMode)
	assert.Equal(t, 90, user.Availability.LaterMinutes)
	assert.Equal(t, svc.now().UnixMilli(), user.Availability.LaterStartTime, "window starts at activation")
}

func TestActivateModeOrangeResetsSession(t *testing.T) {
	repo := newMemoryRepo()
	svc, setNow := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)
	ctx := context.Background()

	first, err := svc.ActivateMode(ctx, "alice", &models.ModeChange{
		Mode:   availability.ModeOrange,
		Orange: &models.OrangeParams{MaxContact: 3},
	})
	require.NoError(t, err)

	setNow(time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC))
	second, err := svc.ActivateMode(ctx, "alice", &models.ModeChange{
		Mode:   availability.ModeOrange,
		Orange: &models.OrangeParams{MaxContact: 3},
	})
	require.NoError(t, err)

	assert.Greater(t, second.Availability.ModeStartedAt, first.Availability.ModeStartedAt,
		"reactivation starts a fresh contact session")
}

func TestActivateModeBlue(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)
	ctx := context.Background()

	user, err := svc.ActivateMode(ctx, "alice", &models.ModeChange{
		Mode: availability.ModeBlue,
		Blue: &models.BlueParams{OpenDate: "2025-06-16"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", user.Availability.OpenDate)

	tests := []struct {
		name string
		date string
	}{
		{"today is rejected", "2025-06-15"},
		{"past is rejected", "2025-06-01"},
		{"malformed is rejected", "June 16th"},
		{"empty is rejected", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ActivateMode(ctx, "alice", &models.ModeChange{
				Mode: availability.ModeBlue,
				Blue: &models.BlueParams{OpenDate: tt.date},
			})
			assert.ErrorIs(t, err, models.ErrInvalidModeParams)
		})
	}
}

func TestActivateModeValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)
	ctx := context.Background()

	tests := []struct {
		name    string
		change  *models.ModeChange
		wantErr error
	}{
		{"yellow without params", &models.ModeChange{Mode: availability.ModeYellow}, models.ErrInvalidModeParams},
		{"yellow with zero minutes", &models.ModeChange{Mode: availability.ModeYellow, Yellow: &models.YellowParams{}}, models.ErrInvalidModeParams},
		{"orange without params", &models.ModeChange{Mode: availability.ModeOrange}, models.ErrInvalidModeParams},
		{"orange with zero cap", &models.ModeChange{Mode: availability.ModeOrange, Orange: &models.OrangeParams{}}, models.ErrInvalidModeParams},
		{"red without confirmation", &models.ModeChange{Mode: availability.ModeRed}, models.ErrLockNotConfirmed},
		{"brown is retired", &models.ModeChange{Mode: availability.ModeBrown}, models.ErrModeRetired},
		{"unknown mode", &models.ModeChange{Mode: "purple"}, models.ErrInvalidModeParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ActivateMode(ctx, "alice", tt.change)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActivateModeRedConfirmed(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)

	user, err := svc.ActivateMode(context.Background(), "alice", &models.ModeChange{
		Mode:      availability.ModeRed,
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, availability.ModeRed, user.AvailabilityMode)
}

func TestDeactivateMode(t *testing.T) {
	tests := []struct {
		name string
		from availability.Mode
		want availability.Mode
	}{
		{"green drops to invisible", availability.ModeGreen, availability.ModeInvisible},
		{"yellow resumes green", availability.ModeYellow, availability.ModeGreen},
		{"orange resumes green", availability.ModeOrange, availability.ModeGreen},
		{"blue resumes green", availability.ModeBlue, availability.ModeGreen},
		{"red resumes green", availability.ModeRed, availability.ModeGreen},
		{"gray resumes green", availability.ModeGray, availability.ModeGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			svc, _ := newTestService(repo, nil)
			user := seedUser(t, repo, "alice", tt.from)
			user.Availability = availability.Params{LaterMinutes: 30, MaxContact: 2}
			require.NoError(t, repo.Update(context.Background(), user))

			got, err := svc.DeactivateMode(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AvailabilityMode)
			assert.Equal(t, availability.Params{}, got.Availability, "parameters are cleared")
		})
	}
}

func TestGetUserRefreshesOrangeContacts(t *testing.T) {
	repo := newMemoryRepo()
	counter := &stubCounter{count: 7}
	svc, _ := newTestService(repo, counter)

	user := seedUser(t, repo, "alice", availability.ModeOrange)
	user.Availability = availability.Params{MaxContact: 10, CurrentContacts: 2, ModeStartedAt: 1000}
	require.NoError(t, repo.Update(context.Background(), user))

	got, err := svc.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Availability.CurrentContacts, "stored count is advisory only")
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "alice", availability.ModeGreen)
	ctx := context.Background()

	name := "Alice B."
	selections := []string{"a", "b", "c"}
	got, err := svc.UpdateProfile(ctx, "alice", &models.UserUpdate{Name: &name, Selections: &selections})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, selections, got.Selections)

	tooMany := []string{"a", "b", "c", "d", "e", "f"}
	_, err = svc.UpdateProfile(ctx, "alice", &models.UserUpdate{Selections: &tooMany})
	assert.ErrorIs(t, err, models.ErrTooManySelections)
}

func TestFindMatches(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	self := seedUser(t, repo, "self", availability.ModeGreen)
	self.Selections = []string{"a", "b", "c"}
	require.NoError(t, repo.Update(ctx, self))

	strong := seedUser(t, repo, "strong", availability.ModeGreen)
	strong.Selections = []string{"a", "b", "c"}
	require.NoError(t, repo.Update(ctx, strong))

	weak := seedUser(t, repo, "weak", availability.ModeGreen)
	weak.Selections = []string{"a", "x", "y"}
	require.NoError(t, repo.Update(ctx, weak))

	matches, err := svc.FindMatches(ctx, "self")
	require.NoError(t, err)
	require.Len(t, matches, 2, "caller is excluded")

	assert.Equal(t, "strong", matches[0].ID)
	assert.Equal(t, 60, matches[0].MatchPercentage)
	assert.Equal(t, "weak", matches[1].ID)
	assert.Equal(t, 20, matches[1].MatchPercentage)
}

func TestSeedDemoData(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.SeedDemoData(ctx))
	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(4), count)

	// Idempotent: a populated store is left alone.
	require.NoError(t, svc.SeedDemoData(ctx))
	count, _ = repo.Count(ctx)
	assert.Equal(t, int64(4), count)

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "demo@aviato.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "current-user", login.User.ID)
}
