package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

type NutritionInput struct {
	Date     string
	Calories int
	Proteins int
	Carbs    int
	Fats     int
}

type NutritionRepository struct {
	db DBTX
}

func NewNutritionRepository(db DBTX) *NutritionRepository {
	return &NutritionRepository{db: db}
}

// Upsert writes the single entry for (user, day). The unique constraint
// replaces the original client's query-before-insert, so concurrent
// writes for the same day cannot produce duplicates.
func (r *NutritionRepository) Upsert(ctx context.Context, userID int64, input NutritionInput) (*models.NutritionEntry, error) {
	query := `
		INSERT INTO nutrition (user_id, entry_date, calories, proteins, carbs, fats)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET calories = EXCLUDED.calories,
		              proteins = EXCLUDED.proteins,
		              carbs = EXCLUDED.carbs,
		              fats = EXCLUDED.fats,
		              updated_at = NOW()
		RETURNING id, user_id, to_char(entry_date, 'YYYY-MM-DD'), calories, proteins, carbs, fats, created_at, updated_at
	`
	var entry models.NutritionEntry
	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		input.Date,
		input.Calories,
		input.Proteins,
		input.Carbs,
		input.Fats,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.Calories,
		&entry.Proteins,
		&entry.Carbs,
		&entry.Fats,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *NutritionRepository) GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.NutritionEntry, error) {
	query := `
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), calories, proteins, carbs, fats, created_at, updated_at
		FROM nutrition
		WHERE user_id = $1 AND entry_date = $2::date
	`
	var entry models.NutritionEntry
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.Calories,
		&entry.Proteins,
		&entry.Carbs,
		&entry.Fats,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *NutritionRepository) ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.NutritionEntry, error) {
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
		SELECT id, user_id, to_char(entry_date, 'YYYY-MM-DD'), calories, proteins, carbs, fats, created_at, updated_at
		FROM nutrition
		WHERE %s
		ORDER BY entry_date ASC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.NutritionEntry, 0)
	for rows.Next() {
		var entry models.NutritionEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Date,
			&entry.Calories,
			&entry.Proteins,
			&entry.Carbs,
			&entry.Fats,
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

func (r *NutritionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM nutrition WHERE user_id = $1`, userID)
	return err
}
