package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubTokenStore struct {
	created     []models.AccountToken
	invalidated []string
	consumeErr  error
	consumed    *models.AccountToken
}

func (s *stubTokenStore) Create(_ context.Context, userID int64, purpose, token string, expiresAt time.Time) error {
	s.created = append(s.created, models.AccountToken{
		UserID:    userID,
		Purpose:   purpose,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, purpose, token string) (*models.AccountToken, error) {
	if s.consumeErr != nil {
		return nil, s.consumeErr
	}
	if s.consumed != nil && s.consumed.Purpose == purpose && s.consumed.Token == token {
		return s.consumed, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTokenStore) InvalidateForUser(_ context.Context, _ int64, purpose string) error {
	s.invalidated = append(s.invalidated, purpose)
	return nil
}

func TestIssueVerificationInvalidatesThenCreates(t *testing.T) {
	store := &stubTokenStore{}
	service := NewTokenService(store, 24*time.Hour, time.Hour)

	token, err := service.IssueVerification(context.Background(), 7)
	if err != nil {
		t.Fatalf("IssueVerification: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if len(store.invalidated) != 1 || store.invalidated[0] != models.TokenPurposeVerifyEmail {
		t.Fatalf("expected old verification tokens to be invalidated, got %v", store.invalidated)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 created token, got %d", len(store.created))
	}
	created := store.created[0]
	if created.UserID != 7 || created.Purpose != models.TokenPurposeVerifyEmail || created.Token != token {
		t.Fatalf("unexpected created token: %+v", created)
	}
	if until := time.Until(created.ExpiresAt); until < 23*time.Hour || until > 24*time.Hour {
		t.Fatalf("expected roughly 24h lifetime, got %v", until)
	}
}

func TestConsumeResetReturnsOwner(t *testing.T) {
	store := &stubTokenStore{
		consumed: &models.AccountToken{
			UserID:  31,
			Purpose: models.TokenPurposeResetPassword,
			Token:   "abc123",
		},
	}
	service := NewTokenService(store, 24*time.Hour, time.Hour)

	userID, err := service.ConsumeReset(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ConsumeReset: %v", err)
	}
	if userID != 31 {
		t.Fatalf("expected user 31, got %d", userID)
	}
}

func TestConsumeUnknownTokenMapsToInvalid(t *testing.T) {
	service := NewTokenService(&stubTokenStore{}, 24*time.Hour, time.Hour)

	_, err := service.ConsumeVerification(context.Background(), "nope")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestConsumeWrongPurposeRejected(t *testing.T) {
	store := &stubTokenStore{
		consumed: &models.AccountToken{
			UserID:  31,
			Purpose: models.TokenPurposeResetPassword,
			Token:   "abc123",
		},
	}
	service := NewTokenService(store, 24*time.Hour, time.Hour)

	if _, err := service.ConsumeVerification(context.Background(), "abc123"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected reset token to fail verification consumption, got %v", err)
	}
}
