package handlers

import (
	"context"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/gofiber/fiber/v2"
)

type weightStore interface {
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.WeightEntry, error)
}

type WeightHandler struct {
	repo weightStore
}

func NewWeightHandler(repo weightStore) *WeightHandler {
	return &WeightHandler{repo: repo}
}

func (h *WeightHandler) List(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	from, to := c.Query("from"), c.Query("to")
	for _, date := range []string{from, to} {
		if date != "" && !validDate(date) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
	}

	entries, err := h.repo.ListRange(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch weight history"})
	}

	return c.JSON(fiber.Map{"weight_history": entries})
}
