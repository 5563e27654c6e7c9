package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type stubProfileUserStore struct {
	user         *models.User
	lastRenameID int64
	lastName     string
}

func (s *stubProfileUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return s.user, nil
}

func (s *stubProfileUserStore) UpdateName(_ context.Context, id int64, name string) error {
	s.lastRenameID = id
	s.lastName = name
	return nil
}

type stubProfileProfileStore struct {
	profile   *models.Profile
	lastInput repository.ProfileInput
}

func (s *stubProfileProfileStore) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileProfileStore) Update(_ context.Context, userID int64, input repository.ProfileInput) (*models.Profile, error) {
	s.lastInput = input
	return s.profile, nil
}

type stubWeightRecorder struct {
	entry          *models.WeightEntry
	profile        *models.Profile
	lastWeight     float64
	lastDate       string
	lastOnboarding repository.OnboardingInput
}

func (s *stubWeightRecorder) RecordWeight(_ context.Context, userID int64, date string, weightKG float64) (*models.WeightEntry, error) {
	s.lastDate = date
	s.lastWeight = weightKG
	return s.entry, nil
}

func (s *stubWeightRecorder) CompleteOnboarding(_ context.Context, userID int64, date string, input repository.OnboardingInput) (*models.Profile, error) {
	s.lastDate = date
	s.lastOnboarding = input
	return s.profile, nil
}

func newProfileApp(users *stubProfileUserStore, profiles *stubProfileProfileStore, weights *stubWeightRecorder) *fiber.App {
	handler := &ProfileHandler{users: users, profiles: profiles, weights: weights}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/v1/profile", handler.Get)
	app.Put("/api/v1/profile", handler.Update)
	app.Put("/api/v1/profile/weight", handler.UpdateWeight)
	app.Post("/api/v1/onboarding", handler.CompleteOnboarding)
	return app
}

func TestUpdateProfileForwardsGoalsAndRenames(t *testing.T) {
	users := &stubProfileUserStore{user: &models.User{ID: 42, Name: "Jean"}}
	profiles := &stubProfileProfileStore{profile: &models.Profile{UserID: 42}}
	weights := &stubWeightRecorder{}
	app := newProfileApp(users, profiles, weights)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{
		"name": "Jeanne",
		"birthdate": "1995-06-01",
		"weight_kg": 70.5,
		"height_cm": 178,
		"steps_goal": 10000,
		"calorie_goal": 2400,
		"protein_pct": 30,
		"carb_pct": 45,
		"fat_pct": 25,
		"language": "fr"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if users.lastName != "Jeanne" {
		t.Fatalf("expected rename to Jeanne, got %q", users.lastName)
	}
	if profiles.lastInput.StepsGoal == nil || *profiles.lastInput.StepsGoal != 10000 {
		t.Fatalf("unexpected steps goal: %+v", profiles.lastInput.StepsGoal)
	}
	if profiles.lastInput.CalorieGoal == nil || *profiles.lastInput.CalorieGoal != 2400 {
		t.Fatalf("unexpected calorie goal: %+v", profiles.lastInput.CalorieGoal)
	}
	if profiles.lastInput.ProteinPct == nil || *profiles.lastInput.ProteinPct != 30 {
		t.Fatalf("unexpected protein pct: %+v", profiles.lastInput.ProteinPct)
	}
	if profiles.lastInput.CarbPct == nil || *profiles.lastInput.CarbPct != 45 {
		t.Fatalf("unexpected carb pct: %+v", profiles.lastInput.CarbPct)
	}
	if profiles.lastInput.FatPct == nil || *profiles.lastInput.FatPct != 25 {
		t.Fatalf("unexpected fat pct: %+v", profiles.lastInput.FatPct)
	}
}

func TestUpdateProfileLanguageOnlyLeavesOtherFieldsUntouched(t *testing.T) {
	users := &stubProfileUserStore{user: &models.User{ID: 42, Name: "Jean"}}
	profiles := &stubProfileProfileStore{profile: &models.Profile{UserID: 42}}
	app := newProfileApp(users, profiles, &stubWeightRecorder{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"language": "en"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if users.lastName != "" {
		t.Fatal("expected no rename without a name")
	}

	input := profiles.lastInput
	if input.Language == nil || *input.Language != "en" {
		t.Fatalf("expected language en, got %+v", input.Language)
	}
	if input.Birthdate != nil || input.WeightKG != nil || input.HeightCM != nil {
		t.Fatalf("expected untouched body metrics, got %+v", input)
	}
	if input.StepsGoal != nil || input.CalorieGoal != nil {
		t.Fatalf("expected untouched goals, got %+v", input)
	}
	if input.ProteinPct != nil || input.CarbPct != nil || input.FatPct != nil {
		t.Fatalf("expected untouched macro split, got %+v", input)
	}
}

func TestUpdateProfileRejectsPartialMacroSplit(t *testing.T) {
	users := &stubProfileUserStore{user: &models.User{ID: 42}}
	profiles := &stubProfileProfileStore{profile: &models.Profile{UserID: 42}}
	app := newProfileApp(users, profiles, &stubWeightRecorder{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"protein_pct": 30}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateProfileRejectsMacroSplitNotSummingTo100(t *testing.T) {
	users := &stubProfileUserStore{user: &models.User{ID: 42}}
	profiles := &stubProfileProfileStore{profile: &models.Profile{UserID: 42}}
	app := newProfileApp(users, profiles, &stubWeightRecorder{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{
		"protein_pct": 30,
		"carb_pct": 45,
		"fat_pct": 30
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if users.lastName != "" {
		t.Fatal("expected no rename on validation failure")
	}
}

func TestUpdateProfileRejectsUnknownLanguage(t *testing.T) {
	users := &stubProfileUserStore{user: &models.User{ID: 42}}
	profiles := &stubProfileProfileStore{profile: &models.Profile{UserID: 42}}
	app := newProfileApp(users, profiles, &stubWeightRecorder{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"language": "de"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateWeightRecordsTodaysEntry(t *testing.T) {
	weights := &stubWeightRecorder{
		entry: &models.WeightEntry{ID: 3, UserID: 42, Date: "2026-03-10", WeightKG: 71.2},
	}
	app := newProfileApp(&stubProfileUserStore{}, &stubProfileProfileStore{}, weights)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/weight", strings.NewReader(`{"weight_kg": 71.2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if weights.lastWeight != 71.2 {
		t.Fatalf("expected weight 71.2, got %v", weights.lastWeight)
	}
	if weights.lastDate == "" {
		t.Fatal("expected a recorded date")
	}
}

func TestUpdateWeightRejectsNonPositiveValue(t *testing.T) {
	app := newProfileApp(&stubProfileUserStore{}, &stubProfileProfileStore{}, &stubWeightRecorder{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/weight", strings.NewReader(`{"weight_kg": 0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestOnboardingForwardsFirstRunAnswers(t *testing.T) {
	weights := &stubWeightRecorder{
		profile: &models.Profile{UserID: 42, OnboardingComplete: true},
	}
	app := newProfileApp(&stubProfileUserStore{}, &stubProfileProfileStore{}, weights)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(`{
		"birthdate": "1995-06-01",
		"weight_kg": 70,
		"height_cm": 178,
		"steps_goal": 8000,
		"calorie_goal": 2200
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if weights.lastOnboarding.Birthdate != "1995-06-01" {
		t.Fatalf("unexpected birthdate: %q", weights.lastOnboarding.Birthdate)
	}
	if weights.lastOnboarding.WeightKG != 70 || weights.lastOnboarding.HeightCM != 178 {
		t.Fatalf("unexpected measurements: %+v", weights.lastOnboarding)
	}
	if weights.lastOnboarding.StepsGoal != 8000 || weights.lastOnboarding.CalorieGoal != 2200 {
		t.Fatalf("unexpected goals: %+v", weights.lastOnboarding)
	}
}
