package handlers

import (
	"context"
	"errors"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type nutritionStore interface {
	Upsert(ctx context.Context, userID int64, input repository.NutritionInput) (*models.NutritionEntry, error)
	GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.NutritionEntry, error)
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.NutritionEntry, error)
}

type NutritionHandler struct {
	repo nutritionStore
}

func NewNutritionHandler(repo nutritionStore) *NutritionHandler {
	return &NutritionHandler{repo: repo}
}

type nutritionRequest struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Proteins int    `json:"proteins"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`
}

func (h *NutritionHandler) Upsert(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req nutritionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !validDate(req.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}
	if req.Calories < 0 || req.Proteins < 0 || req.Carbs < 0 || req.Fats < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Values must not be negative"})
	}

	entry, err := h.repo.Upsert(c.Context(), userID, repository.NutritionInput{
		Date:     req.Date,
		Calories: req.Calories,
		Proteins: req.Proteins,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save nutrition entry"})
	}

	return c.JSON(fiber.Map{"nutrition": entry})
}

func (h *NutritionHandler) List(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
		entry, err := h.repo.GetByOwnerAndDate(c.Context(), userID, date)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(fiber.Map{"nutrition": nil})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch nutrition entry"})
		}
		return c.JSON(fiber.Map{"nutrition": entry})
	}

	from, to := c.Query("from"), c.Query("to")
	for _, date := range []string{from, to} {
		if date != "" && !validDate(date) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
	}

	entries, err := h.repo.ListRange(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch nutrition entries"})
	}

	return c.JSON(fiber.Map{"nutrition": entries})
}
