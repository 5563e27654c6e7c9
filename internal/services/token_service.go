package services

import (
	"context"
	"errors"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/pkg/utils"
	"github.com/jackc/pgx/v5"
)

var ErrTokenInvalid = errors.New("token invalid or expired")

type tokenStore interface {
	Create(ctx context.Context, userID int64, purpose, token string, expiresAt time.Time) error
	Consume(ctx context.Context, purpose, token string) (*models.AccountToken, error)
	InvalidateForUser(ctx context.Context, userID int64, purpose string) error
}

// TokenService issues and redeems the single-use codes behind email
// verification and password reset links.
type TokenService struct {
	repo      tokenStore
	verifyTTL time.Duration
	resetTTL  time.Duration
}

func NewTokenService(repo tokenStore, verifyTTL, resetTTL time.Duration) *TokenService {
	return &TokenService{
		repo:      repo,
		verifyTTL: verifyTTL,
		resetTTL:  resetTTL,
	}
}

func (s *TokenService) IssueVerification(ctx context.Context, userID int64) (string, error) {
	return s.issue(ctx, userID, models.TokenPurposeVerifyEmail, s.verifyTTL)
}

func (s *TokenService) IssueReset(ctx context.Context, userID int64) (string, error) {
	return s.issue(ctx, userID, models.TokenPurposeResetPassword, s.resetTTL)
}

func (s *TokenService) ConsumeVerification(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, models.TokenPurposeVerifyEmail, token)
}

func (s *TokenService) ConsumeReset(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, models.TokenPurposeResetPassword, token)
}

func (s *TokenService) issue(ctx context.Context, userID int64, purpose string, ttl time.Duration) (string, error) {
	token, err := utils.RandomToken()
	if err != nil {
		return "", err
	}

	// A fresh link supersedes any outstanding one of the same purpose.
	if err := s.repo.InvalidateForUser(ctx, userID, purpose); err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, userID, purpose, token, time.Now().Add(ttl)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *TokenService) consume(ctx context.Context, purpose, token string) (int64, error) {
	accountToken, err := s.repo.Consume(ctx, purpose, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTokenInvalid
		}
		return 0, err
	}
	return accountToken.UserID, nil
}
