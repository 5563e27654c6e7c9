package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubActivityHandlerStore struct {
	upsertResult *models.ActivityEntry
	upsertErr    error
	getResult    *models.ActivityEntry
	getErr       error
	listResult   []models.ActivityEntry
	listErr      error
	lastUserID   int64
	lastDate     string
	lastSteps    int
}

func (s *stubActivityHandlerStore) Upsert(_ context.Context, userID int64, date string, steps int) (*models.ActivityEntry, error) {
	s.lastUserID = userID
	s.lastDate = date
	s.lastSteps = steps
	return s.upsertResult, s.upsertErr
}

func (s *stubActivityHandlerStore) GetByOwnerAndDate(_ context.Context, userID int64, date string) (*models.ActivityEntry, error) {
	s.lastUserID = userID
	s.lastDate = date
	return s.getResult, s.getErr
}

func (s *stubActivityHandlerStore) ListRange(_ context.Context, userID int64, dateFrom, dateTo string) ([]models.ActivityEntry, error) {
	s.lastUserID = userID
	return s.listResult, s.listErr
}

func newActivityApp(store *stubActivityHandlerStore) *fiber.App {
	handler := &ActivityHandler{repo: store}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/v1/activity", handler.List)
	app.Put("/api/v1/activity", handler.Upsert)
	return app
}

func TestUpsertActivityDerivesWalkingMetrics(t *testing.T) {
	store := &stubActivityHandlerStore{
		upsertResult: &models.ActivityEntry{ID: 5, UserID: 42, Date: "2026-03-10", Steps: 10000},
	}
	app := newActivityApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/activity", strings.NewReader(`{
		"date": "2026-03-10",
		"steps": 10000
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
	if store.lastUserID != 42 || store.lastDate != "2026-03-10" || store.lastSteps != 10000 {
		t.Fatalf("unexpected upsert args: user %d date %s steps %d", store.lastUserID, store.lastDate, store.lastSteps)
	}

	var body struct {
		Activity struct {
			Steps         int     `json:"steps"`
			DistanceKM    float64 `json:"distance_km"`
			Calories      int     `json:"calories"`
			ActiveMinutes int     `json:"active_minutes"`
		} `json:"activity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Activity.DistanceKM != 7 {
		t.Fatalf("expected 7 km, got %v", body.Activity.DistanceKM)
	}
	if body.Activity.Calories != 400 {
		t.Fatalf("expected 400 kcal, got %d", body.Activity.Calories)
	}
	if body.Activity.ActiveMinutes != 100 {
		t.Fatalf("expected 100 active minutes, got %d", body.Activity.ActiveMinutes)
	}
}

func TestUpsertActivityRejectsNegativeSteps(t *testing.T) {
	store := &stubActivityHandlerStore{}
	app := newActivityApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/activity", strings.NewReader(`{
		"date": "2026-03-10",
		"steps": -100
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
}

func TestGetActivityMissingDayReturnsNull(t *testing.T) {
	store := &stubActivityHandlerStore{getErr: pgx.ErrNoRows}
	app := newActivityApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity?date=2026-03-10", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(body["activity"]) != "null" {
		t.Fatalf("expected null activity, got %s", body["activity"])
	}
}
