package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/XanLeMalaaade/bolt-musclecrack/pkg/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrWeakPassword  = errors.New("password too short")
)

type accountUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AccountService owns the credentialed account operations: password
// change and full account deletion, both reauthenticated with the
// current password.
type AccountService struct {
	db       *pgxpool.Pool
	userRepo accountUserStore
}

func NewAccountService(db *pgxpool.Pool, userRepo accountUserStore) *AccountService {
	return &AccountService{
		db:       db,
		userRepo: userRepo,
	}
}

func (s *AccountService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// DeleteAccount reauthenticates and then removes every record the user
// owns across all collections together with the account itself, in one
// transaction: either everything goes or nothing does.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return ErrWrongPassword
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin deletion transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := repository.NewWorkoutRepository(tx).DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete workouts: %w", err)
	}
	if err := repository.NewNutritionRepository(tx).DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete nutrition: %w", err)
	}
	if err := repository.NewActivityRepository(tx).DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if err := repository.NewWeightRepository(tx).DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete weight history: %w", err)
	}
	if err := repository.NewTokenRepository(tx).DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete account tokens: %w", err)
	}
	if err := repository.NewProfileRepository(tx).DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := repository.NewUserRepository(tx).Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return tx.Commit(ctx)
}
