package handlers

import (
	"context"
	"errors"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type accountManager interface {
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64, password string) error
}

type AccountHandler struct {
	service accountManager
}

func NewAccountHandler(service accountManager) *AccountHandler {
	return &AccountHandler{service: service}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Password must be at least 8 characters"})
		case errors.Is(err, services.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Current password is incorrect"})
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to update password"})
		}
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req deleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.DeleteAccount(c.Context(), userID, req.Password); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Incorrect password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete account"})
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}
