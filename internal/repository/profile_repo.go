package repository

import (
	"context"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
)

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type UpsertProfileInput struct {
	Weight        float64
	Height        float64
	Age           int
	ActivityLevel string
}

// Upsert inserts the user's profile or replaces every field of the existing row.
// user_id is the table's primary key, so a user never has more than one profile.
func (r *ProfileRepository) Upsert(ctx context.Context, userID int64, input UpsertProfileInput) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, weight, height, age, activity_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			age = EXCLUDED.age,
			activity_level = EXCLUDED.activity_level,
			updated_at = NOW()
		RETURNING user_id, weight, height, age, activity_level, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query,
		userID,
		input.Weight,
		input.Height,
		input.Age,
		input.ActivityLevel,
	).Scan(
		&profile.UserID,
		&profile.Weight,
		&profile.Height,
		&profile.Age,
		&profile.ActivityLevel,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, weight, height, age, activity_level, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Weight,
		&profile.Height,
		&profile.Age,
		&profile.ActivityLevel,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
