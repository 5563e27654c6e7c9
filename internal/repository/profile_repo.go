package repository

import (
	"context"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/jackc/pgx/v5"
)

// ProfileInput carries a partial profile update. Nil fields keep the
// stored value; only non-nil fields are written.
type ProfileInput struct {
	Birthdate   *string
	WeightKG    *float64
	HeightCM    *float64
	StepsGoal   *int
	CalorieGoal *int
	ProteinPct  *int
	CarbPct     *int
	FatPct      *int
	Language    *string
}

type OnboardingInput struct {
	Birthdate   string
	WeightKG    float64
	HeightCM    float64
	StepsGoal   int
	CalorieGoal int
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) CreateEmpty(ctx context.Context, userID int64, language string) error {
	query := `
		INSERT INTO user_profiles (user_id, language)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, userID, language)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, to_char(birthdate, 'YYYY-MM-DD'), weight_kg, height_cm,
		       steps_goal, calorie_goal, protein_pct, carb_pct, fat_pct,
		       language, onboarding_complete, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Birthdate,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.StepsGoal,
		&profile.CalorieGoal,
		&profile.ProteinPct,
		&profile.CarbPct,
		&profile.FatPct,
		&profile.Language,
		&profile.OnboardingComplete,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID int64, input ProfileInput) (*models.Profile, error) {
	query := `
		UPDATE user_profiles
		SET birthdate = COALESCE($2::date, birthdate),
		    weight_kg = COALESCE($3, weight_kg),
		    height_cm = COALESCE($4, height_cm),
		    steps_goal = COALESCE($5, steps_goal),
		    calorie_goal = COALESCE($6, calorie_goal),
		    protein_pct = COALESCE($7, protein_pct),
		    carb_pct = COALESCE($8, carb_pct),
		    fat_pct = COALESCE($9, fat_pct),
		    language = COALESCE($10, language),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, to_char(birthdate, 'YYYY-MM-DD'), weight_kg, height_cm,
		          steps_goal, calorie_goal, protein_pct, carb_pct, fat_pct,
		          language, onboarding_complete, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		input.Birthdate,
		input.WeightKG,
		input.HeightCM,
		input.StepsGoal,
		input.CalorieGoal,
		input.ProteinPct,
		input.CarbPct,
		input.FatPct,
		input.Language,
	).Scan(
		&profile.UserID,
		&profile.Birthdate,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.StepsGoal,
		&profile.CalorieGoal,
		&profile.ProteinPct,
		&profile.CarbPct,
		&profile.FatPct,
		&profile.Language,
		&profile.OnboardingComplete,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, input OnboardingInput) (*models.Profile, error) {
	query := `
		UPDATE user_profiles
		SET birthdate = $2::date,
		    weight_kg = $3,
		    height_cm = $4,
		    steps_goal = $5,
		    calorie_goal = $6,
		    onboarding_complete = TRUE,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, to_char(birthdate, 'YYYY-MM-DD'), weight_kg, height_cm,
		          steps_goal, calorie_goal, protein_pct, carb_pct, fat_pct,
		          language, onboarding_complete, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		input.Birthdate,
		input.WeightKG,
		input.HeightCM,
		input.StepsGoal,
		input.CalorieGoal,
	).Scan(
		&profile.UserID,
		&profile.Birthdate,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.StepsGoal,
		&profile.CalorieGoal,
		&profile.ProteinPct,
		&profile.CarbPct,
		&profile.FatPct,
		&profile.Language,
		&profile.OnboardingComplete,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateWeight(ctx context.Context, userID int64, weightKG float64) error {
	query := `
		UPDATE user_profiles
		SET weight_kg = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, weightKG)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	return err
}
