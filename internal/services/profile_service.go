package services

import (
	"context"
	"fmt"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileService owns the writes that touch both the profile and the
// weight history. The current weight lives on the profile while every
// recorded weigh-in also lands in weight_history, so the two writes
// commit together.
type ProfileService struct {
	db *pgxpool.Pool
}

func NewProfileService(db *pgxpool.Pool) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) RecordWeight(ctx context.Context, userID int64, date string, weightKG float64) (*models.WeightEntry, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin weight transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := repository.NewProfileRepository(tx).UpdateWeight(ctx, userID, weightKG); err != nil {
		return nil, fmt.Errorf("update profile weight: %w", err)
	}
	entry, err := repository.NewWeightRepository(tx).Upsert(ctx, userID, date, weightKG)
	if err != nil {
		return nil, fmt.Errorf("upsert weight entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit weight transaction: %w", err)
	}
	return entry, nil
}

// CompleteOnboarding stores the first-run answers and seeds the weight
// history with the initial weigh-in.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID int64, date string, input repository.OnboardingInput) (*models.Profile, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin onboarding transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	profile, err := repository.NewProfileRepository(tx).UpdateOnboarding(ctx, userID, input)
	if err != nil {
		return nil, fmt.Errorf("update onboarding: %w", err)
	}
	if input.WeightKG > 0 {
		if _, err := repository.NewWeightRepository(tx).Upsert(ctx, userID, date, input.WeightKG); err != nil {
			return nil, fmt.Errorf("seed weight entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit onboarding transaction: %w", err)
	}
	return profile, nil
}
