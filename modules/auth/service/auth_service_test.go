package service

import (
	"context"
	"testing"
	"time"

	"appointease/core/config"
	"appointease/core/constants"
	"appointease/core/errors"
	"appointease/modules/auth/entity"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	m := make(map[string]entity.User, len(users))
	for _, u := range users {
		m[u.Email] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

type fakeAuthCache struct {
	attempts    map[string]int64
	blacklisted map[string]bool
}

func newFakeAuthCache() *fakeAuthCache {
	return &fakeAuthCache{attempts: make(map[string]int64), blacklisted: make(map[string]bool)}
}

func (f *fakeAuthCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (f *fakeAuthCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (f *fakeAuthCache) Delete(context.Context, ...string) error                   { return nil }

func (f *fakeAuthCache) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	f.blacklisted[token] = true
	return nil
}

func (f *fakeAuthCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklisted[token], nil
}

func (f *fakeAuthCache) IncrementLoginAttempts(_ context.Context, key string) (int64, error) {
	f.attempts[key]++
	return f.attempts[key], nil
}

func (f *fakeAuthCache) Expire(context.Context, string, time.Duration) error { return nil }

func (f *fakeAuthCache) ResetLoginAttempts(_ context.Context, key string) error {
	delete(f.attempts, key)
	return nil
}

func (f *fakeAuthCache) Ping(context.Context) error { return nil }

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			AccessTTLMinutes:  15,
			RefreshTTLMinutes: 60,
		},
	})
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeAuthCache())
	ctx := context.Background()

	user, appErr := svc.Register(ctx, "Jamie@Example.com", "jamie", "hunter2secret", "Jamie Doe")
	if appErr != nil {
		t.Fatalf("Register: %v", appErr)
	}
	if user.Email != "jamie@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "hunter2secret" {
		t.Fatalf("password stored in clear")
	}

	access, refresh, appErr := svc.Login(ctx, "jamie@example.com", "hunter2secret")
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestConfig(t)
	svc := NewAuthService(newFakeUserRepo(), newFakeAuthCache())
	ctx := context.Background()

	if _, appErr := svc.Register(ctx, "a@b.com", "a", "password1", ""); appErr != nil {
		t.Fatalf("first register: %v", appErr)
	}
	if _, appErr := svc.Register(ctx, "a@b.com", "b", "password2", ""); appErr == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
}

func TestLoginWrongPasswordCountsAttempts(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	c := newFakeAuthCache()
	svc := NewAuthService(repo, c)
	ctx := context.Background()

	if _, appErr := svc.Register(ctx, "a@b.com", "a", "correct-password", ""); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}

	for i := 0; i < constants.MaxLoginAttempts-1; i++ {
		if _, _, appErr := svc.Login(ctx, "a@b.com", "wrong"); appErr == nil {
			t.Fatalf("attempt %d: expected failure", i)
		}
	}
	key := constants.RedisKeyLoginAttempts + "a@b.com"
	if c.attempts[key] != constants.MaxLoginAttempts-1 {
		t.Fatalf("attempts = %d, want %d", c.attempts[key], constants.MaxLoginAttempts-1)
	}

	// successful login resets the counter
	if _, _, appErr := svc.Login(ctx, "a@b.com", "correct-password"); appErr != nil {
		t.Fatalf("login: %v", appErr)
	}
	if _, ok := c.attempts[key]; ok {
		t.Fatalf("attempts not reset after success")
	}
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	setupTestConfig(t)
	c := newFakeAuthCache()
	svc := NewAuthService(newFakeUserRepo(), c)
	ctx := context.Background()

	if _, appErr := svc.Register(ctx, "a@b.com", "a", "correct-password", ""); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}

	var last *errors.AppError
	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, _, appErr := svc.Login(ctx, "a@b.com", "wrong")
		if appErr == nil {
			t.Fatalf("attempt %d: expected failure", i)
		}
		last = appErr
	}
	if last.Code != errors.ErrForbidden {
		t.Fatalf("expected lockout code, got %s: %s", last.Code, last.Message)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	setupTestConfig(t)
	svc := NewAuthService(newFakeUserRepo(), newFakeAuthCache())
	ctx := context.Background()

	if _, appErr := svc.Register(ctx, "a@b.com", "a", "correct-password", ""); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}
	access, refresh, appErr := svc.Login(ctx, "a@b.com", "correct-password")
	if appErr != nil {
		t.Fatalf("login: %v", appErr)
	}

	if _, appErr := svc.Refresh(ctx, access); appErr == nil {
		t.Fatalf("access token must not refresh")
	}
	if _, appErr := svc.Refresh(ctx, refresh); appErr != nil {
		t.Fatalf("refresh: %v", appErr)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	setupTestConfig(t)
	c := newFakeAuthCache()
	svc := NewAuthService(newFakeUserRepo(), c)
	ctx := context.Background()

	if _, appErr := svc.Register(ctx, "a@b.com", "a", "correct-password", ""); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}
	access, _, appErr := svc.Login(ctx, "a@b.com", "correct-password")
	if appErr != nil {
		t.Fatalf("login: %v", appErr)
	}

	if appErr := svc.Logout(ctx, access); appErr != nil {
		t.Fatalf("logout: %v", appErr)
	}
	if !c.blacklisted[access] {
		t.Fatalf("token not blacklisted")
	}
}
