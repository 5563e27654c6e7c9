package handlers

import (
	"context"
	"errors"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type exerciseStore interface {
	ListAll(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id string) (*models.Exercise, error)
}

type ExerciseHandler struct {
	repo exerciseStore
}

func NewExerciseHandler(repo exerciseStore) *ExerciseHandler {
	return &ExerciseHandler{repo: repo}
}

// List returns the full exercise catalog. The catalog is shared by all
// users, so no owner scoping applies here.
func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	exercises, err := h.repo.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercises"})
	}

	return c.JSON(fiber.Map{"exercises": exercises})
}

// Get returns one catalog entry by its slug id.
func (h *ExerciseHandler) Get(c *fiber.Ctx) error {
	exercise, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercise"})
	}

	return c.JSON(fiber.Map{"exercise": exercise})
}
