package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/pkg/jwt"
	"github.com/friendgraph/friendgraph-api/internal/pkg/password"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeUsers struct {
	byID map[uuid.UUID]*user.User
}

func newFakeUsers(users ...*user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func mustUser(t *testing.T, email, pass string, active bool) *user.User {
	t.Helper()
	hash, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &user.User{ID: uuid.New(), Username: email, Email: email, PasswordHash: hash, IsActive: active}
}

func newTestService(t *testing.T, users ...*user.User) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	return NewService(newFakeUsers(users...), jwtSvc, NewRefreshStore(client)), mr
}

func TestAuthenticateOrder(t *testing.T) {
	active := mustUser(t, "alice@example.com", "pw", true)
	disabled := mustUser(t, "bob@example.com", "pw", false)
	svc, _ := newTestService(t, active, disabled)
	ctx := context.Background()

	cases := []struct {
		name, email, pass string
		want              error
	}{
		{"unknown email", "nobody@example.com", "pw", ErrUnknownEmail},
		{"disabled with wrong password", "bob@example.com", "wrong", ErrAccountDisabled},
		{"bad password", "alice@example.com", "wrong", ErrInvalidCredentials},
		{"ok with messy email", "  ALICE@example.com ", "pw", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tc.email, tc.pass)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginStoresRefreshHash(t *testing.T) {
	u := mustUser(t, "alice@example.com", "pw", true)
	svc, mr := newTestService(t, u)

	pair, err := svc.Login(context.Background(), &LoginRequest{Email: u.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	key := refreshKeyPrefix + jwt.HashRefreshToken(pair.RefreshToken)
	got, err := mr.Get(key)
	if err != nil || got != u.ID.String() {
		t.Fatalf("expected stored user id under %s, got %q (%v)", key, got, err)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("expected refresh TTL, got %v", ttl)
	}
}

func TestRefresh(t *testing.T) {
	u := mustUser(t, "alice@example.com", "pw", true)
	svc, _ := newTestService(t, u)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
	if _, err := svc.Refresh(ctx, "garbage"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	pair, err := svc.Login(ctx, &LoginRequest{Email: u.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}

	res, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := svc.jwtService.ValidateAccessToken(res.AccessToken)
	if err != nil || claims.UserID != u.ID {
		t.Fatalf("expected access token for %s, got %+v (%v)", u.ID, claims, err)
	}
}

func TestLogoutRevokesRefresh(t *testing.T) {
	u := mustUser(t, "alice@example.com", "pw", true)
	svc, _ := newTestService(t, u)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginRequest{Email: u.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}

func TestRefreshRejectsUserDisabledAfterLogin(t *testing.T) {
	u := mustUser(t, "alice@example.com", "pw", true)
	svc, _ := newTestService(t, u)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginRequest{Email: u.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	u.IsActive = false
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected disabled user to lose refresh, got %v", err)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	u := mustUser(t, "alice@example.com", "pw", true)
	svc := NewService(newFakeUsers(u), jwt.NewService("s", time.Minute, time.Hour), NewRefreshStore(nil))
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginRequest{Email: u.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh without redis: %v", err)
	}
}
