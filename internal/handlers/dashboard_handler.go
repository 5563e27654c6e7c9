package handlers

import (
	"context"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type dashboardService interface {
	Dashboard(ctx context.Context, userID int64, timeRange string, now time.Time) (*services.DashboardSummary, error)
}

type DashboardHandler struct {
	summary dashboardService
}

func NewDashboardHandler(summary dashboardService) *DashboardHandler {
	return &DashboardHandler{summary: summary}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	timeRange := c.Query("range", "1m")
	switch timeRange {
	case "1m", "6m", "1y", "2y":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid range, expected 1m, 6m, 1y or 2y"})
	}

	summary, err := h.summary.Dashboard(c.Context(), userID, timeRange, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build dashboard"})
	}

	return c.JSON(summary)
}
