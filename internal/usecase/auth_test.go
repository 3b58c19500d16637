package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/auth"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakeUsers) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[u.Email]; exists {
		return apperror.NewConflict("an account with this email already exists")
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", id.String())
}

type fakeSessions struct {
	mu   sync.Mutex
	live map[string]uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{live: make(map[string]uuid.UUID)}
}

func (f *fakeSessions) Create(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.live[jti] = userID
	return nil
}

func (f *fakeSessions) Exists(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.live[jti]
	return ok, nil
}

func (f *fakeSessions) Delete(ctx context.Context, jti string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, jti)
	return nil
}

func newTestAuthService() (*AuthService, *fakeUsers, *fakeSessions) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(users, sessions, jwtSvc), users, sessions
}

func TestSignUp_CreatesUserAndSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	u, token, err := svc.SignUp(ctx, " Jane@Example.COM ", "hunter2hunter2", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEmpty(t, token)
	assert.Len(t, sessions.live, 1)

	got, claims, err := svc.GetSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestSignUp_RequiresEmailAndPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	_, _, err := svc.SignUp(context.Background(), "", "pw", "")
	assert.Error(t, err)
	_, _, err = svc.SignUp(context.Background(), "a@b.c", "", "")
	assert.Error(t, err)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "jane@example.com", "hunter2hunter2", "Jane")
	require.NoError(t, err)
	_, _, err = svc.SignUp(ctx, "jane@example.com", "other-password", "Jane")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestSignIn_WrongCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	_, _, err := svc.SignUp(ctx, "jane@example.com", "hunter2hunter2", "Jane")
	require.NoError(t, err)

	_, _, badPass := svc.SignIn(ctx, "jane@example.com", "wrong")
	_, _, badUser := svc.SignIn(ctx, "nobody@example.com", "hunter2hunter2")

	require.Error(t, badPass)
	require.Error(t, badUser)
	assert.Equal(t, badPass.Error(), badUser.Error())
}

func TestSignOut_RevokesSession(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	_, token, err := svc.SignUp(ctx, "jane@example.com", "hunter2hunter2", "Jane")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	// The token itself is still within its expiry window, but the session
	// behind it is gone.
	_, _, err = svc.GetSession(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSessionLive_TracksSignOut(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()
	_, token, err := svc.SignUp(ctx, "jane@example.com", "hunter2hunter2", "Jane")
	require.NoError(t, err)

	var jti string
	for k := range sessions.live {
		jti = k
	}
	assert.True(t, svc.SessionLive(ctx, jti))

	require.NoError(t, svc.SignOut(ctx, token))
	assert.False(t, svc.SessionLive(ctx, jti))
}
