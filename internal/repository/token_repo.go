package repository

import (
	"context"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

type TokenRepository struct {
	db DBTX
}

func NewTokenRepository(db DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, userID int64, purpose, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO account_tokens (user_id, purpose, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, userID, purpose, token, expiresAt)
	return err
}

// Consume marks the token used and returns it; a token that is unknown,
// expired or already consumed yields pgx.ErrNoRows.
func (r *TokenRepository) Consume(ctx context.Context, purpose, token string) (*models.AccountToken, error) {
	query := `
		UPDATE account_tokens
		SET consumed_at = NOW()
		WHERE purpose = $1
		  AND token = $2
		  AND consumed_at IS NULL
		  AND expires_at > NOW()
		RETURNING id, user_id, purpose, token, expires_at, consumed_at, created_at
	`
	var accountToken models.AccountToken
	err := r.db.QueryRow(ctx, query, purpose, token).Scan(
		&accountToken.ID,
		&accountToken.UserID,
		&accountToken.Purpose,
		&accountToken.Token,
		&accountToken.ExpiresAt,
		&accountToken.ConsumedAt,
		&accountToken.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &accountToken, nil
}

// InvalidateForUser retires any outstanding tokens of the given purpose
// before a fresh one is issued.
func (r *TokenRepository) InvalidateForUser(ctx context.Context, userID int64, purpose string) error {
	query := `
		UPDATE account_tokens
		SET consumed_at = NOW()
		WHERE user_id = $1 AND purpose = $2 AND consumed_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, userID, purpose)
	return err
}

func (r *TokenRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM account_tokens WHERE user_id = $1`, userID)
	return err
}
