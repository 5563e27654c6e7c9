package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Update(ctx context.Context, userID int64, input repository.ProfileInput) (*models.Profile, error)
}

type profileUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
}

type weightRecorder interface {
	RecordWeight(ctx context.Context, userID int64, date string, weightKG float64) (*models.WeightEntry, error)
	CompleteOnboarding(ctx context.Context, userID int64, date string, input repository.OnboardingInput) (*models.Profile, error)
}

type ProfileHandler struct {
	users    profileUserStore
	profiles profileStore
	weights  weightRecorder
}

func NewProfileHandler(users profileUserStore, profiles profileStore, weights weightRecorder) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		profiles: profiles,
		weights:  weights,
	}
}

// profileRequest is a partial update: omitted fields keep their stored
// values all the way down to the UPDATE statement.
type profileRequest struct {
	Name        string   `json:"name"`
	Birthdate   *string  `json:"birthdate"`
	WeightKG    *float64 `json:"weight_kg"`
	HeightCM    *float64 `json:"height_cm"`
	StepsGoal   *int     `json:"steps_goal"`
	CalorieGoal *int     `json:"calorie_goal"`
	ProteinPct  *int     `json:"protein_pct"`
	CarbPct     *int     `json:"carb_pct"`
	FatPct      *int     `json:"fat_pct"`
	Language    *string  `json:"language"`
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	profile, err := h.profiles.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"name":    user.Name,
		"email":   user.Email,
		"profile": profile,
	})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Birthdate != nil && *req.Birthdate == "" {
		req.Birthdate = nil
	}
	if req.Language != nil && *req.Language == "" {
		req.Language = nil
	}
	if validationErr := validateProfileRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		if err := h.users.UpdateName(c.Context(), userID, name); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
		}
	}

	profile, err := h.profiles.Update(c.Context(), userID, repository.ProfileInput{
		Birthdate:   req.Birthdate,
		WeightKG:    req.WeightKG,
		HeightCM:    req.HeightCM,
		StepsGoal:   req.StepsGoal,
		CalorieGoal: req.CalorieGoal,
		ProteinPct:  req.ProteinPct,
		CarbPct:     req.CarbPct,
		FatPct:      req.FatPct,
		Language:    req.Language,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

type weightUpdateRequest struct {
	WeightKG float64 `json:"weight_kg"`
}

func (h *ProfileHandler) UpdateWeight(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req weightUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.WeightKG <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Weight must be positive"})
	}

	today := time.Now().Format("2006-01-02")
	entry, err := h.weights.RecordWeight(c.Context(), userID, today, req.WeightKG)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record weight"})
	}

	return c.JSON(fiber.Map{"weight": entry})
}

type onboardingRequest struct {
	Birthdate   string  `json:"birthdate"`
	WeightKG    float64 `json:"weight_kg"`
	HeightCM    float64 `json:"height_cm"`
	StepsGoal   int     `json:"steps_goal"`
	CalorieGoal int     `json:"calorie_goal"`
}

func (h *ProfileHandler) CompleteOnboarding(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req onboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !validDate(req.Birthdate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birthdate format, expected YYYY-MM-DD"})
	}
	if req.WeightKG <= 0 || req.HeightCM <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Weight and height must be positive"})
	}
	if req.StepsGoal < 0 || req.CalorieGoal < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Goals must not be negative"})
	}

	today := time.Now().Format("2006-01-02")
	profile, err := h.weights.CompleteOnboarding(c.Context(), userID, today, repository.OnboardingInput{
		Birthdate:   req.Birthdate,
		WeightKG:    req.WeightKG,
		HeightCM:    req.HeightCM,
		StepsGoal:   req.StepsGoal,
		CalorieGoal: req.CalorieGoal,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete onboarding"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func validateProfileRequest(req profileRequest) string {
	if req.Birthdate != nil && !validDate(*req.Birthdate) {
		return "Invalid birthdate format, expected YYYY-MM-DD"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "Weight must be positive"
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "Height must be positive"
	}
	if (req.StepsGoal != nil && *req.StepsGoal < 0) || (req.CalorieGoal != nil && *req.CalorieGoal < 0) {
		return "Goals must not be negative"
	}
	if req.ProteinPct != nil || req.CarbPct != nil || req.FatPct != nil {
		if req.ProteinPct == nil || req.CarbPct == nil || req.FatPct == nil {
			return "Macro percentages must be provided together"
		}
		if *req.ProteinPct < 0 || *req.CarbPct < 0 || *req.FatPct < 0 {
			return "Macro percentages must not be negative"
		}
		if *req.ProteinPct+*req.CarbPct+*req.FatPct != 100 {
			return "Macro percentages must sum to 100"
		}
	}
	if req.Language != nil && *req.Language != "en" && *req.Language != "fr" {
		return "Language must be en or fr"
	}
	return ""
}
