package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/monitoring"
	"github.com/Jai-S-Rathore/healthcheck/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	minPasswordLength = 6
	// users.name and users.email are VARCHAR(255)
	maxNameLength   = 255
	maxEmailLength  = 255
	uniqueViolation = "23505"
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAccountProfile(ctx context.Context, userID int64) (*models.AccountProfile, error)
}

type AuthService struct {
	users     userStore
	jwtSecret string
	clock     Clock
	metrics   *monitoring.Metrics

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(users userStore, jwtSecret string, clock Clock, metrics *monitoring.Metrics) *AuthService {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		clock:     clock,
		metrics:   metrics,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return validationError("All fields are required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return validationError("Name must be at most 255 characters")
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return validationError("Email must be at most 255 characters")
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return validationError("Password must be at least 6 characters")
	}
	if len(input.Password) > utils.MaxPasswordBytes {
		return validationError("Password must be at most 72 bytes")
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return validationError("Invalid email format")
	}
	email = strings.ToLower(parsed.Address)

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return conflictError("Email already registered")
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return upstreamError("Server error during registration", err)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return upstreamError("Server error during registration", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return conflictError("Email already registered")
		}
		return upstreamError("Server error during registration", err)
	}

	s.metrics.UserRegistered()
	return nil
}

// Login verifies credentials and issues a bearer token. An unknown email and a wrong
// password produce the same error, and both paths run one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.CheckPassword(password, s.placeholderHash())
			return nil, unauthorizedError("Invalid credentials")
		}
		return nil, upstreamError("Server error during login", err)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, unauthorizedError("Invalid credentials")
	}

	token, err := utils.GenerateTokenAt(user.ID, user.Name, user.Email, s.jwtSecret, s.clock.Now())
	if err != nil {
		return nil, upstreamError("Server error during login", err)
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) AccountProfile(ctx context.Context, userID int64) (*models.AccountProfile, error) {
	account, err := s.users.GetAccountProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundError("User not found")
		}
		return nil, upstreamError("Database error", err)
	}
	return account, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyHashOnce.Do(func() {
		hashed, err := utils.HashPassword("placeholder-password-for-unknown-users")
		if err == nil {
			s.dummyHash = hashed
		}
	})
	return s.dummyHash
}
