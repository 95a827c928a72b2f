package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/repository"
	"github.com/jackc/pgx/v5"
)

// profiles.activity_level is VARCHAR(64)
const maxActivityLevelLength = 64

type profileStore interface {
	Upsert(ctx context.Context, userID int64, input repository.UpsertProfileInput) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type ProfileService struct {
	profiles profileStore
}

func NewProfileService(profiles profileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// UpsertProfileInput uses pointers so missing JSON fields are reported as missing
// rather than as zero values.
type UpsertProfileInput struct {
	Weight        *float64
	Height        *float64
	Age           *int
	ActivityLevel *string
}

func (s *ProfileService) Upsert(ctx context.Context, userID int64, input UpsertProfileInput) (*models.Profile, error) {
	if input.Weight == nil || input.Height == nil || input.Age == nil || input.ActivityLevel == nil {
		return nil, validationError("All fields are required")
	}
	activityLevel := strings.TrimSpace(*input.ActivityLevel)
	if activityLevel == "" {
		return nil, validationError("All fields are required")
	}
	if utf8.RuneCountInString(activityLevel) > maxActivityLevelLength {
		return nil, validationError("Activity level must be at most 64 characters")
	}
	if *input.Weight <= 0 || *input.Height <= 0 || *input.Age <= 0 {
		return nil, validationError("Weight, height and age must be positive")
	}

	profile, err := s.profiles.Upsert(ctx, userID, repository.UpsertProfileInput{
		Weight:        *input.Weight,
		Height:        *input.Height,
		Age:           *input.Age,
		ActivityLevel: activityLevel,
	})
	if err != nil {
		return nil, upstreamError("Error updating profile", err)
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundError("Profile not found")
		}
		return nil, upstreamError("Error fetching profile", err)
	}
	return profile, nil
}
