package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/repository"
	"github.com/jackc/pgx/v5"
)

type memoryProfileStore struct {
	mu       sync.Mutex
	profiles map[int64]models.Profile
	writes   int
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{profiles: map[int64]models.Profile{}}
}

func (s *memoryProfileStore) Upsert(_ context.Context, userID int64, input repository.UpsertProfileInput) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	profile := models.Profile{
		UserID:        userID,
		Weight:        input.Weight,
		Height:        input.Height,
		Age:           input.Age,
		ActivityLevel: input.ActivityLevel,
		UpdatedAt:     time.Now(),
	}
	s.profiles[userID] = profile
	return &profile, nil
}

func (s *memoryProfileStore) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

func TestProfileUpsertTwiceKeepsOneRowWithLatestValues(t *testing.T) {
	ctx := context.Background()
	store := newMemoryProfileStore()
	service := NewProfileService(store)

	first := UpsertProfileInput{Weight: float64Ptr(70), Height: float64Ptr(175), Age: intPtr(30), ActivityLevel: stringPtr("moderate")}
	second := UpsertProfileInput{Weight: float64Ptr(68.5), Height: float64Ptr(175), Age: intPtr(31), ActivityLevel: stringPtr(" active ")}

	if _, err := service.Upsert(ctx, 7, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if _, err := service.Upsert(ctx, 7, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if len(store.profiles) != 1 {
		t.Fatalf("expected one profile row, got %d", len(store.profiles))
	}
	profile, err := service.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile.Weight != 68.5 || profile.Age != 31 || profile.ActivityLevel != "active" {
		t.Fatalf("expected second call's values, got %+v", profile)
	}
}

func TestProfileUpsertValidation(t *testing.T) {
	valid := func() UpsertProfileInput {
		return UpsertProfileInput{Weight: float64Ptr(70), Height: float64Ptr(175), Age: intPtr(30), ActivityLevel: stringPtr("moderate")}
	}
	cases := []struct {
		name   string
		mutate func(*UpsertProfileInput)
		want   string
	}{
		{name: "missing weight", mutate: func(in *UpsertProfileInput) { in.Weight = nil }, want: "All fields are required"},
		{name: "missing age", mutate: func(in *UpsertProfileInput) { in.Age = nil }, want: "All fields are required"},
		{name: "blank activity", mutate: func(in *UpsertProfileInput) { in.ActivityLevel = stringPtr("  ") }, want: "All fields are required"},
		{name: "zero height", mutate: func(in *UpsertProfileInput) { in.Height = float64Ptr(0) }, want: "Weight, height and age must be positive"},
		{name: "long activity", mutate: func(in *UpsertProfileInput) { in.ActivityLevel = stringPtr(strings.Repeat("a", 65)) }, want: "Activity level must be at most 64 characters"},
		{name: "negative age", mutate: func(in *UpsertProfileInput) { in.Age = intPtr(-3) }, want: "Weight, height and age must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryProfileStore()
			service := NewProfileService(store)
			input := valid()
			tc.mutate(&input)

			_, err := service.Upsert(context.Background(), 1, input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if got := PublicMessage(err, ""); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if store.writes != 0 {
				t.Fatalf("expected no write after validation failure")
			}
		})
	}
}

func TestProfileGetNotFound(t *testing.T) {
	service := NewProfileService(newMemoryProfileStore())

	_, err := service.Get(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoData) {
		t.Fatalf("expected plain ErrNotFound, got %v", err)
	}
	if got := PublicMessage(err, ""); got != "Profile not found" {
		t.Fatalf("unexpected message %q", got)
	}
}
