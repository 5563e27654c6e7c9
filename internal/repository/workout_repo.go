package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/jackc/pgx/v5"
)

// WorkoutListFilter narrows the owner's workouts; Date is exclusive with
// the range fields. Storage ordering is not part of the contract, callers
// that need chronology sort for themselves.
type WorkoutListFilter struct {
	Date     string
	DateFrom string
	DateTo   string
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	exercises, err := json.Marshal(workout.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	query := `
		INSERT INTO workouts (user_id, name, workout_date, scheduled_time, duration_min, exercises)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		workout.UserID,
		workout.Name,
		workout.Date,
		workout.Time,
		workout.DurationMinutes,
		exercises,
	).Scan(&workout.ID, &workout.CreatedAt, &workout.UpdatedAt)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	query := `
		SELECT id, user_id, name, to_char(workout_date, 'YYYY-MM-DD'), scheduled_time, duration_min, exercises, created_at, updated_at
		FROM workouts
		WHERE id = $1 AND user_id = $2
	`
	return scanWorkout(r.db.QueryRow(ctx, query, workoutID, userID))
}

func (r *WorkoutRepository) List(ctx context.Context, userID int64, filter WorkoutListFilter) ([]models.Workout, error) {
	args := []any{userID}
	whereParts := []string{"user_id = $1"}

	if date := strings.TrimSpace(filter.Date); date != "" {
		args = append(args, date)
		whereParts = append(whereParts, fmt.Sprintf("workout_date = $%d::date", len(args)))
	} else {
		if from := strings.TrimSpace(filter.DateFrom); from != "" {
			args = append(args, from)
			whereParts = append(whereParts, fmt.Sprintf("workout_date >= $%d::date", len(args)))
		}
		if to := strings.TrimSpace(filter.DateTo); to != "" {
			args = append(args, to)
			whereParts = append(whereParts, fmt.Sprintf("workout_date <= $%d::date", len(args)))
		}
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, to_char(workout_date, 'YYYY-MM-DD'), scheduled_time, duration_min, exercises, created_at, updated_at
		FROM workouts
		WHERE %s
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	exercises, err := json.Marshal(workout.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	query := `
		UPDATE workouts
		SET name = $3, workout_date = $4::date, scheduled_time = $5, duration_min = $6, exercises = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Date,
		workout.Time,
		workout.DurationMinutes,
		exercises,
	).Scan(&workout.CreatedAt, &workout.UpdatedAt)
}

func (r *WorkoutRepository) Delete(ctx context.Context, userID, workoutID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, workoutID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE user_id = $1`, userID)
	return err
}

func scanWorkout(row pgx.Row) (*models.Workout, error) {
	var workout models.Workout
	var exercises []byte
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Date,
		&workout.Time,
		&workout.DurationMinutes,
		&exercises,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &workout.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises: %w", err)
	}
	return &workout, nil
}
