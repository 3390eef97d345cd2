package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	pkgauth "github.com/securewatch/backend/pkg/auth"
	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/security"
)

type fakeRepository struct {
	users map[string]models.AdminUser
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]models.AdminUser{}}
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (models.AdminUser, error) {
	user, ok := f.users[email]
	if !ok {
		return models.AdminUser{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeRepository) Create(_ context.Context, user *models.AdminUser) error {
	if _, ok := f.users[user.Email]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "admin_users_email_key"}
	}
	f.users[user.Email] = *user
	return nil
}

type fakeSessions struct {
	granted []string
	revoked []string
}

func (f *fakeSessions) Grant(_ context.Context, accessID string) error {
	f.granted = append(f.granted, accessID)
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

var testJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "securewatch-test",
	ExpirationMinutes: 60,
}

// Low-cost parameters keep the hashing fast in tests.
var testPassword = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func newTestService(t *testing.T) (Service, *fakeRepository, *fakeSessions) {
	t.Helper()
	repo := newFakeRepository()
	sessions := &fakeSessions{}
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Sessions: sessions,
		JWT:      testJWT,
		Password: testPassword,
		Logger:   testLogger(),
		Now:      func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, sessions
}

func seedUser(t *testing.T, repo *fakeRepository, email, password string) models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	repo.users[email] = user
	return user
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	seedUser(t, repo, "admin@example.com", "correct horse battery staple")

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Admin@Example.com",
		Password: "correct horse battery staple",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected a token")
	}
	if len(sessions.granted) != 1 {
		t.Fatalf("expected one granted session, got %d", len(sessions.granted))
	}

	claims, err := pkgauth.ParseAccessToken(testJWT, result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != pkgauth.RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
	if claims.ID != sessions.granted[0] {
		t.Fatal("expected the granted session to match the token jti")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	seedUser(t, repo, "admin@example.com", "correct horse battery staple")

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(sessions.granted) != 0 {
		t.Fatal("expected no session on failed login")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo, _ := newTestService(t)
	user := seedUser(t, repo, "admin@example.com", "correct horse battery staple")
	user.IsActive = false
	repo.users[user.Email] = user

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "correct horse battery staple",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "New@Example.com",
		Password:    "a long enough password",
		DisplayName: " Ops ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "Ops" {
		t.Fatalf("expected trimmed display name, got %q", user.DisplayName)
	}

	if _, err := svc.Login(context.Background(), LoginInput{
		Email:    "new@example.com",
		Password: "a long enough password",
	}); err != nil {
		t.Fatalf("login after register: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := RegisterInput{Email: "dup@example.com", Password: "a long enough password"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "short@example.com",
		Password: "tiny",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-123" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}
}
