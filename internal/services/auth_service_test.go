package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const testJWTSecret = "healthcheck_test_jwt_secret_key_1234567890"

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// memoryUserStore behaves like the users table: ids are generated and email is unique.
type memoryUserStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[string]*models.User
	lookupErr error
	createErr error
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]*models.User{}}
}

func (s *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.users[user.Email]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) GetAccountProfile(_ context.Context, userID int64) (*models.AccountProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == userID {
			return &models.AccountProfile{Name: user.Name, Email: user.Email}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memoryUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func TestRegisterThenLoginReturnsDecodableToken(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	issuedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	service := NewAuthService(store, testJWTSecret, fixedClock{now: issuedAt}, nil)

	if err := service.Register(ctx, RegisterInput{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored := store.users["asha@example.com"]
	if stored == nil {
		t.Fatalf("expected user stored under normalized email")
	}
	if stored.PasswordHash == "secret1" || !utils.CheckPassword("secret1", stored.PasswordHash) {
		t.Fatalf("expected a bcrypt hash of the password to be stored")
	}

	result, err := service.Login(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.ID != stored.ID || result.User.Email != "asha@example.com" || result.User.Name != "Asha" {
		t.Fatalf("unexpected public user: %+v", result.User)
	}

	claims, err := utils.ValidateTokenAt(result.Token, testJWTSecret, issuedAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("ValidateTokenAt: %v", err)
	}
	if claims.UserID != stored.ID || claims.Email != "asha@example.com" {
		t.Fatalf("token claims mismatch: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %s", claims.ExpiresAt.Time)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name  string
		input RegisterInput
		want  string
	}{
		{name: "missing name", input: RegisterInput{Email: "a@example.com", Password: "secret1"}, want: "All fields are required"},
		{name: "blank email", input: RegisterInput{Name: "A", Email: "   ", Password: "secret1"}, want: "All fields are required"},
		{name: "missing password", input: RegisterInput{Name: "A", Email: "a@example.com"}, want: "All fields are required"},
		{name: "short password", input: RegisterInput{Name: "A", Email: "a@example.com", Password: "12345"}, want: "Password must be at least 6 characters"},
		{name: "long password", input: RegisterInput{Name: "A", Email: "a@example.com", Password: strings.Repeat("x", 73)}, want: "Password must be at most 72 bytes"},
		{name: "bad email", input: RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1"}, want: "Invalid email format"},
		{name: "multi-byte short password", input: RegisterInput{Name: "A", Email: "a@example.com", Password: "pässw"}, want: "Password must be at least 6 characters"},
		{name: "display name email", input: RegisterInput{Name: "Asha", Email: "Asha <asha@example.com>", Password: "secret1"}, want: "Invalid email format"},
		{name: "long name", input: RegisterInput{Name: strings.Repeat("n", 256), Email: "a@example.com", Password: "secret1"}, want: "Name must be at most 255 characters"},
		{name: "long email", input: RegisterInput{Name: "A", Email: strings.Repeat("e", 250) + "@example.com", Password: "secret1"}, want: "Email must be at most 255 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryUserStore()
			service := NewAuthService(store, testJWTSecret, nil, nil)

			err := service.Register(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if got := PublicMessage(err, ""); got != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, got)
			}
			if store.count() != 0 {
				t.Fatalf("expected no user stored")
			}
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	service := NewAuthService(store, testJWTSecret, nil, nil)

	if err := service.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	for _, email := range []string{"dup@example.com", "DUP@example.com"} {
		err := service.Register(ctx, RegisterInput{Name: "B", Email: email, Password: "secret2"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict for %s, got %v", email, err)
		}
	}
	if store.count() != 1 {
		t.Fatalf("expected exactly one stored user, got %d", store.count())
	}
}

type racingUserStore struct {
	*memoryUserStore
}

func (s racingUserStore) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, pgx.ErrNoRows
}

func TestRegisterUniqueViolationOnInsertIsConflict(t *testing.T) {
	inner := newMemoryUserStore()
	inner.users["race@example.com"] = &models.User{ID: 1, Email: "race@example.com"}
	service := NewAuthService(racingUserStore{inner}, testJWTSecret, nil, nil)

	err := service.Register(context.Background(), RegisterInput{Name: "R", Email: "race@example.com", Password: "secret1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterStoreFailureIsUpstream(t *testing.T) {
	store := newMemoryUserStore()
	store.lookupErr = errors.New("connection refused")
	service := NewAuthService(store, testJWTSecret, nil, nil)

	err := service.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(PublicMessage(err, ""), "connection refused") {
		t.Fatalf("public message must not leak the cause")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	service := NewAuthService(store, testJWTSecret, nil, nil)
	if err := service.Register(ctx, RegisterInput{Name: "A", Email: "known@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := service.Login(ctx, "unknown@example.com", "secret1")
	_, wrongErr := service.Login(ctx, "known@example.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongErr} {
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical errors, got %q and %q", unknownErr, wrongErr)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	service := NewAuthService(newMemoryUserStore(), testJWTSecret, nil, nil)

	for _, tc := range [][2]string{{"", "secret1"}, {"a@example.com", ""}} {
		_, err := service.Login(context.Background(), tc[0], tc[1])
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %q/%q, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAccountProfileNotFound(t *testing.T) {
	service := NewAuthService(newMemoryUserStore(), testJWTSecret, nil, nil)

	_, err := service.AccountProfile(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
