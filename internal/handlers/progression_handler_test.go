package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

func newProgressionApp(store *stubWorkoutStore) *fiber.App {
	handler := &ProgressionHandler{workouts: store}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/v1/progression", handler.Series)
	app.Get("/api/v1/progression/chart", handler.Chart)
	return app
}

func progressionHistory() []models.Workout {
	return []models.Workout{
		{
			ID: 1, UserID: 42, Name: "Push day", Date: "2026-03-10",
			Exercises: []models.WorkoutExercise{
				{
					ID: "ex-1", Name: "Bench press",
					Sets: []models.ExerciseSet{
						{ID: "s1", Reps: "8", Weight: "55"},
						{ID: "s2", Reps: "10", Weight: "50"},
					},
				},
			},
		},
		{
			ID: 2, UserID: 42, Name: "Pull day", Date: "2026-03-12",
			Exercises: []models.WorkoutExercise{
				{
					ID: "ex-2", Name: "Row",
					Sets: []models.ExerciseSet{{ID: "s3", Reps: "10", Weight: "40"}},
				},
			},
		},
	}
}

func TestProgressionSeriesReturnsPointsAndNames(t *testing.T) {
	store := &stubWorkoutStore{listResult: progressionHistory()}
	app := newProgressionApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progression?exercise=Bench+press&as_of=2026-03-20", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUserID != 42 {
		t.Fatalf("expected list for user 42, got %d", store.lastUserID)
	}

	var body struct {
		Exercise  string                      `json:"exercise"`
		Points    []services.ProgressionPoint `json:"points"`
		Exercises []string                    `json:"exercises"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(body.Points))
	}
	if body.Points[0].MaxWeight != 55 {
		t.Fatalf("expected max weight 55, got %v", body.Points[0].MaxWeight)
	}
	if body.Points[0].TotalVolume != 940 {
		t.Fatalf("expected total volume 940, got %v", body.Points[0].TotalVolume)
	}
	if len(body.Exercises) != 2 || body.Exercises[0] != "Bench press" || body.Exercises[1] != "Row" {
		t.Fatalf("unexpected exercise names: %v", body.Exercises)
	}
}

func TestProgressionSeriesWithoutExerciseReturnsNamesOnly(t *testing.T) {
	store := &stubWorkoutStore{listResult: progressionHistory()}
	app := newProgressionApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progression", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Points    []services.ProgressionPoint `json:"points"`
		Exercises []string                    `json:"exercises"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Points) != 0 {
		t.Fatalf("expected no points, got %d", len(body.Points))
	}
	if len(body.Exercises) != 2 {
		t.Fatalf("expected 2 exercise names, got %d", len(body.Exercises))
	}
}

func TestProgressionSeriesRejectsMalformedAsOf(t *testing.T) {
	store := &stubWorkoutStore{}
	app := newProgressionApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progression?exercise=Row&as_of=20-03-2026", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProgressionChartRendersHTML(t *testing.T) {
	store := &stubWorkoutStore{listResult: progressionHistory()}
	app := newProgressionApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progression/chart?exercise=Bench+press", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "text/html") {
		t.Fatalf("expected an html response, got %q", contentType)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(page), "echarts") {
		t.Fatal("expected the rendered page to embed the chart")
	}
}

func TestProgressionChartRequiresExercise(t *testing.T) {
	store := &stubWorkoutStore{}
	app := newProgressionApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progression/chart", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
