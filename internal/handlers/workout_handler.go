package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type workoutStore interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, userID, workoutID int64) (*models.Workout, error)
	List(ctx context.Context, userID int64, filter repository.WorkoutListFilter) ([]models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, userID, workoutID int64) error
}

type WorkoutHandler struct {
	repo workoutStore
}

func NewWorkoutHandler(repo workoutStore) *WorkoutHandler {
	return &WorkoutHandler{repo: repo}
}

type workoutSetRequest struct {
	ID     string `json:"id"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

type workoutExerciseRequest struct {
	ID         string              `json:"id"`
	ExerciseID string              `json:"exerciseId"`
	Name       string              `json:"name"`
	Sets       []workoutSetRequest `json:"sets"`
}

type workoutRequest struct {
	Name            string                   `json:"name"`
	Date            string                   `json:"date"`
	Time            *string                  `json:"time"`
	DurationMinutes int                      `json:"duration_minutes"`
	Exercises       []workoutExerciseRequest `json:"exercises"`
}

func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	filter := repository.WorkoutListFilter{
		Date:     c.Query("date"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}
	for _, date := range []string{filter.Date, filter.DateFrom, filter.DateTo} {
		if date != "" && !validDate(date) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
	}

	workouts, err := h.repo.List(c.Context(), userID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workouts"})
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.repo.GetByID(c.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout"})
	}

	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateWorkoutRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	workout := buildWorkout(userID, req)
	if err := h.repo.Create(c.Context(), workout); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create workout"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) Update(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateWorkoutRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	workout := buildWorkout(userID, req)
	workout.ID = workoutID
	if err := h.repo.Update(c.Context(), workout); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update workout"})
	}

	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	if err := h.repo.Delete(c.Context(), userID, workoutID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete workout"})
	}

	return c.JSON(fiber.Map{"message": "Workout deleted"})
}

func validateWorkoutRequest(req workoutRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if !validDate(req.Date) {
		return "Invalid date format, expected YYYY-MM-DD"
	}
	if req.Time != nil && *req.Time != "" {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return "Invalid time format, expected HH:MM"
		}
	}
	if req.DurationMinutes < 0 {
		return "Duration must not be negative"
	}
	for _, exercise := range req.Exercises {
		if strings.TrimSpace(exercise.Name) == "" {
			return "Exercise name is required"
		}
		for _, set := range exercise.Sets {
			if !validSetValue(set.Reps) {
				return "Set reps must be empty or a non-negative number"
			}
			if !validSetValue(set.Weight) {
				return "Set weight must be empty or a non-negative number"
			}
		}
	}
	return ""
}

// validSetValue admits the empty string: the stored representation
// keeps whatever the user typed and the aggregator treats blanks as
// zero contribution.
func validSetValue(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && parsed >= 0
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func buildWorkout(userID int64, req workoutRequest) *models.Workout {
	exercises := make([]models.WorkoutExercise, 0, len(req.Exercises))
	for _, exercise := range req.Exercises {
		sets := make([]models.ExerciseSet, 0, len(exercise.Sets))
		for _, set := range exercise.Sets {
			id := set.ID
			if id == "" {
				id = uuid.NewString()
			}
			sets = append(sets, models.ExerciseSet{
				ID:     id,
				Reps:   set.Reps,
				Weight: set.Weight,
			})
		}

		id := exercise.ID
		if id == "" {
			id = uuid.NewString()
		}
		exercises = append(exercises, models.WorkoutExercise{
			ID:         id,
			ExerciseID: exercise.ExerciseID,
			Name:       strings.TrimSpace(exercise.Name),
			Sets:       sets,
		})
	}

	return &models.Workout{
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Exercises:       exercises,
	}
}
