package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Upsert(ctx context.Context, userID int64, date string, steps int) (*models.ActivityEntry, error) {
	query := `
		INSERT INTO activity (user_id, entry_date, steps)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET steps = EXCLUDED.steps, updated_at = NOW()
		RETURNING id, user_id, to_char(entry_date, 'YYYY-MM-DD'), steps, created_at, updated_at
	`
	var entry models.ActivityEntry
	err := r.db.QueryRow(ctx, query, userID, date, steps).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.Steps,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ActivityRepository) GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.ActivityEntry, error) {
	query := `
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), steps, created_at, updated_at
		FROM activity
		WHERE user_id = $1 AND entry_date = $2::date
	`
	var entry models.ActivityEntry
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.Steps,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ActivityRepository) ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.ActivityEntry, error) {
	args := []any{userID}
	whereParts := []string{"user_id = $1"}

	if from := strings.TrimSpace(dateFrom); from != "" {
		args = append(args, from)
		whereParts = append(whereParts, fmt.Sprintf("entry_date >= $%d::date", len(args)))
	}
	if to := strings.TrimSpace(dateTo); to != "" {
		args = append(args, to)
		whereParts = append(whereParts, fmt.Sprintf("entry_date <= $%d::date", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), steps, created_at, updated_at
		FROM activity
		WHERE %s
		ORDER BY entry_date ASC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ActivityEntry, 0)
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Date,
			&entry.Steps,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ActivityRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM activity WHERE user_id = $1`, userID)
	return err
}
