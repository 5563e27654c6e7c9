package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

type WeightRepository struct {
	db DBTX
}

func NewWeightRepository(db DBTX) *WeightRepository {
	return &WeightRepository{db: db}
}

func (r *WeightRepository) Upsert(ctx context.Context, userID int64, date string, weightKG float64) (*models.WeightEntry, error) {
	query := `
		INSERT INTO weight_history (user_id, entry_date, weight_kg)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		RETURNING id, user_id, to_char(entry_date, 'YYYY-MM-DD'), weight_kg, created_at
	`
	var entry models.WeightEntry
	err := r.db.QueryRow(ctx, query, userID, date, weightKG).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.WeightKG,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WeightRepository) ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.WeightEntry, error) {
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
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), weight_kg, created_at
		FROM weight_history
		WHERE %s
		ORDER BY entry_date ASC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.WeightEntry, 0)
	for rows.Next() {
		var entry models.WeightEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Date,
			&entry.WeightKG,
			&entry.CreatedAt,
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

func (r *WeightRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM weight_history WHERE user_id = $1`, userID)
	return err
}
