package handlers

import (
	"context"
	"errors"
	"math"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type activityStore interface {
	Upsert(ctx context.Context, userID int64, date string, steps int) (*models.ActivityEntry, error)
	GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.ActivityEntry, error)
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.ActivityEntry, error)
}

type ActivityHandler struct {
	repo activityStore
}

func NewActivityHandler(repo activityStore) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

type activityRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

type activityResponse struct {
	*models.ActivityEntry
	DistanceKM    float64 `json:"distance_km"`
	Calories      int     `json:"calories"`
	ActiveMinutes int     `json:"active_minutes"`
}

// enrichActivity derives the walking metrics shown alongside the step
// count. An average stride of 0.7 m and 0.04 kcal per step are assumed.
func enrichActivity(entry *models.ActivityEntry) activityResponse {
	steps := float64(entry.Steps)
	return activityResponse{
		ActivityEntry: entry,
		DistanceKM:    math.Round(steps*0.7/1000*100) / 100,
		Calories:      int(math.Round(steps * 0.04)),
		ActiveMinutes: int(math.Round(steps / 100)),
	}
}

func (h *ActivityHandler) Upsert(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req activityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !validDate(req.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}
	if req.Steps < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Steps must not be negative"})
	}

	entry, err := h.repo.Upsert(c.Context(), userID, req.Date, req.Steps)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save activity entry"})
	}

	return c.JSON(fiber.Map{"activity": enrichActivity(entry)})
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
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
				return c.JSON(fiber.Map{"activity": nil})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity entry"})
		}
		return c.JSON(fiber.Map{"activity": enrichActivity(entry)})
	}

	from, to := c.Query("from"), c.Query("to")
	for _, date := range []string{from, to} {
		if date != "" && !validDate(date) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
	}

	entries, err := h.repo.ListRange(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity entries"})
	}

	enriched := make([]activityResponse, 0, len(entries))
	for i := range entries {
		enriched = append(enriched, enrichActivity(&entries[i]))
	}

	return c.JSON(fiber.Map{"activity": enriched})
}
