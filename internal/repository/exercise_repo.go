package repository

import (
	"context"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) ListAll(ctx context.Context) ([]models.Exercise, error) {
	query := `
		SELECT id, name_en, name_fr, category, equipment, description, image_url, created_at
		FROM exercises
		ORDER BY name_en ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name.EN,
			&exercise.Name.FR,
			&exercise.Category,
			&exercise.Equipment,
			&exercise.Description,
			&exercise.ImageURL,
			&exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// GetByID looks up a catalog entry by its slug id, e.g. "bench-press".
func (r *ExerciseRepository) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	query := `
		SELECT id, name_en, name_fr, category, equipment, description, image_url, created_at
		FROM exercises
		WHERE id = $1
	`
	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.Name.EN,
		&exercise.Name.FR,
		&exercise.Category,
		&exercise.Equipment,
		&exercise.Description,
		&exercise.ImageURL,
		&exercise.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}
