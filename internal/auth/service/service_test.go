package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"usinagem_backend/internal/auth/repository"
	"usinagem_backend/internal/auth/transport"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/logger"
)

type fakeRepo struct {
	users map[uuid.UUID]*repository.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*repository.User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, u *repository.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.Conflict("a user with this email already exists")
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (f *fakeRepo) UpdateUser(_ context.Context, u *repository.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	u.UpdatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]repository.User, error) {
	out := make([]repository.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeConfig struct{}

func (fakeConfig) GetJWTSecret() string              { return "test-secret" }
func (fakeConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (fakeConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }

func newTestService(repo repository.Repository) *Service {
	return New(repo, fakeConfig{}, logger.New("test"))
}

func seedUser(t *testing.T, repo *fakeRepo, email, password, role string, active bool) *repository.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         role,
		Active:       active,
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	pair, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-pass",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "gone@example.com", "s3cret-pass", repository.RoleUser, false)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "gone@example.com",
		Password: "s3cret-pass",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized for disabled account, got %v", err)
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	pair, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Fatalf("expected a fresh token pair, got %+v", renewed)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	pair, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: pair.AccessToken})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized for access token on refresh, got %v", err)
	}
}

func TestRefreshRejectsDisabledUser(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	pair, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	repo.users[user.ID].Active = false

	_, err = svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: pair.RefreshToken})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized after account disabled, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@example.com", "s3cret-pass", repository.RoleAdmin, true)
	svc := newTestService(repo)

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Email:    "Admin@Example.com",
		Password: "another-pass",
		Name:     "Second Admin",
		Role:     repository.RoleAdmin,
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestUpdateUserChangesPassword(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "op@example.com", "old-password", repository.RoleUser, true)
	svc := newTestService(repo)

	newPass := "new-password-1"
	if _, err := svc.UpdateUser(context.Background(), user.ID, transport.UpdateUserRequest{Password: &newPass}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if _, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "op@example.com",
		Password: "old-password",
	}); apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "op@example.com",
		Password: newPass,
	}); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestMeReturnsAccount(t *testing.T) {
	repo := newFakeRepo()
	user := seedUser(t, repo, "op@example.com", "s3cret-pass", repository.RoleUser, true)
	svc := newTestService(repo)

	me, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "op@example.com" || me.Role != repository.RoleUser {
		t.Fatalf("unexpected account: %+v", me)
	}
}
