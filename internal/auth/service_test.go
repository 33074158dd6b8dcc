// internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/apperr"
	"bookshop/internal/token"
)

type fakeStore struct {
	users map[uuid.UUID]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*User)}
}

func (f *fakeStore) InsertUser(_ context.Context, user *User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.New(apperr.CodeConflict, "username or email already taken")
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) UserByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	}
	return u, nil
}

func (f *fakeStore) UserByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "user not found")
}

func (f *fakeStore) Users(_ context.Context, limit, offset int) ([]*User, error) {
	out := []*User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestService(store Store) Service {
	maker := token.NewMaker("test-secret-key", 15*time.Minute, 24*time.Hour)
	return NewService(store, maker)
}

func TestRegister(t *testing.T) {
	svc := newTestService(newFakeStore())

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.False(t, u.IsStaff)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Register(context.Background(), "", "a@example.com", "s3cret-pass")
	assert.Equal(t, apperr.CodeInvalid, apperr.Code(err))

	_, err = svc.Register(context.Background(), "bob", "b@example.com", "short")
	assert.Equal(t, apperr.CodeInvalid, apperr.Code(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "s3cret-pass")
	assert.Equal(t, apperr.CodeConflict, apperr.Code(err))
}

func TestLoginAndRefresh(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// An access token is not accepted where a refresh token is
	// required.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.Code(err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong password")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.Code(err))
	wrongPass := err.Error()

	_, err = svc.Login(context.Background(), "nobody", "whatever")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.Code(err))

	// The two failures are indistinguishable to the caller.
	assert.Equal(t, wrongPass, err.Error())
}

// Throttling is keyed per account name; hammering one name leaves
// other accounts untouched.
func TestLoginRateLimitedPerName(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "bob", "bob@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Registration consumed one attempt for alice; four failed logins
	// exhaust the burst.
	for i := 0; i < 4; i++ {
		_, err = svc.Login(context.Background(), "alice", "wrong password")
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.Code(err))
	}

	_, err = svc.Login(context.Background(), "alice", "s3cret-pass")
	assert.Equal(t, apperr.CodeRateLimited, apperr.Code(err))

	// Case and whitespace variants share the same bucket.
	_, err = svc.Login(context.Background(), " Alice ", "s3cret-pass")
	assert.Equal(t, apperr.CodeRateLimited, apperr.Code(err))

	_, err = svc.Login(context.Background(), "bob", "s3cret-pass")
	assert.NoError(t, err)
}
