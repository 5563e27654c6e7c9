package services

import (
	"context"
	"testing"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubSummaryStores struct {
	workouts       []models.Workout
	nutrition      map[string]*models.NutritionEntry
	activity       map[string]*models.ActivityEntry
	nutritionRange []models.NutritionEntry
	activityRange  []models.ActivityEntry
	weightRange    []models.WeightEntry
	profile        *models.Profile
}

func (s *stubSummaryStores) List(_ context.Context, _ int64, filter repository.WorkoutListFilter) ([]models.Workout, error) {
	filtered := make([]models.Workout, 0)
	for _, workout := range s.workouts {
		if filter.DateTo != "" && workout.Date > filter.DateTo {
			continue
		}
		filtered = append(filtered, workout)
	}
	return filtered, nil
}

func (s *stubSummaryStores) GetByOwnerAndDate(_ context.Context, _ int64, date string) (*models.NutritionEntry, error) {
	if entry, ok := s.nutrition[date]; ok {
		return entry, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubSummaryStores) ListRange(_ context.Context, _ int64, _, _ string) ([]models.NutritionEntry, error) {
	return s.nutritionRange, nil
}

type stubActivityStore struct {
	parent *stubSummaryStores
}

func (s *stubActivityStore) GetByOwnerAndDate(_ context.Context, _ int64, date string) (*models.ActivityEntry, error) {
	if entry, ok := s.parent.activity[date]; ok {
		return entry, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubActivityStore) ListRange(_ context.Context, _ int64, _, _ string) ([]models.ActivityEntry, error) {
	return s.parent.activityRange, nil
}

type stubWeightStore struct {
	parent *stubSummaryStores
}

func (s *stubWeightStore) ListRange(_ context.Context, _ int64, _, _ string) ([]models.WeightEntry, error) {
	return s.parent.weightRange, nil
}

type stubProfileStore struct {
	profile *models.Profile
}

func (s *stubProfileStore) GetByUserID(_ context.Context, _ int64) (*models.Profile, error) {
	return s.profile, nil
}

func newSummaryService(stores *stubSummaryStores) *SummaryService {
	return NewSummaryService(
		stores,
		stores,
		&stubActivityStore{parent: stores},
		&stubWeightStore{parent: stores},
		&stubProfileStore{profile: stores.profile},
	)
}

func summaryNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02", "2024-01-15")
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	return now
}

func TestDashboardPicksTodayAndLastWorkout(t *testing.T) {
	stores := &stubSummaryStores{
		workouts: []models.Workout{
			{ID: 1, Date: "2024-01-10", Name: "Push"},
			{ID: 2, Date: "2024-01-15", Name: "Legs"},
			{ID: 3, Date: "2024-01-20", Name: "Planned"},
		},
		profile: &models.Profile{CalorieGoal: 2000, StepsGoal: 10000},
	}
	service := newSummaryService(stores)

	summary, err := service.Dashboard(context.Background(), 42, "1m", summaryNow(t))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if summary.TodayWorkout == nil || summary.TodayWorkout.ID != 2 {
		t.Fatalf("expected today's workout to be id 2, got %+v", summary.TodayWorkout)
	}
	if summary.LastWorkout == nil || summary.LastWorkout.ID != 2 {
		t.Fatalf("expected last workout to be id 2, got %+v", summary.LastWorkout)
	}
	if summary.CalorieGoal != 2000 || summary.StepsGoal != 10000 {
		t.Fatalf("expected goals from profile, got %d / %d", summary.CalorieGoal, summary.StepsGoal)
	}
}

func TestDashboardTolerateMissingDailyEntries(t *testing.T) {
	stores := &stubSummaryStores{
		profile: &models.Profile{CalorieGoal: 1800, StepsGoal: 8000},
	}
	service := newSummaryService(stores)

	summary, err := service.Dashboard(context.Background(), 42, "1m", summaryNow(t))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if summary.Nutrition != nil || summary.Activity != nil {
		t.Fatalf("expected missing daily entries to stay nil")
	}
	if summary.TodayWorkout != nil || summary.LastWorkout != nil {
		t.Fatalf("expected no workouts")
	}
}

func TestDashboardMergesSeriesByDate(t *testing.T) {
	calories := 2100
	steps := 9000
	stores := &stubSummaryStores{
		profile: &models.Profile{},
		nutritionRange: []models.NutritionEntry{
			{Date: "2024-01-11", Calories: calories},
		},
		activityRange: []models.ActivityEntry{
			{Date: "2024-01-11", Steps: steps},
			{Date: "2024-01-12", Steps: 4000},
		},
		weightRange: []models.WeightEntry{
			{Date: "2024-01-10", WeightKG: 80.5},
		},
	}
	service := newSummaryService(stores)

	summary, err := service.Dashboard(context.Background(), 42, "1m", summaryNow(t))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(summary.Series) != 3 {
		t.Fatalf("expected 3 merged points, got %d", len(summary.Series))
	}
	if summary.Series[0].Date != "2024-01-10" || summary.Series[0].WeightKG == nil {
		t.Fatalf("expected first point to carry weight, got %+v", summary.Series[0])
	}
	merged := summary.Series[1]
	if merged.Date != "2024-01-11" || merged.Calories == nil || merged.Steps == nil {
		t.Fatalf("expected 2024-01-11 to merge calories and steps, got %+v", merged)
	}
	if *merged.Calories != calories || *merged.Steps != steps {
		t.Fatalf("unexpected merged values: %+v", merged)
	}
}

func TestRangeStartDate(t *testing.T) {
	now := summaryNow(t)
	if got := rangeStartDate("6m", now); got != "2023-07-15" {
		t.Fatalf("expected 2023-07-15 for 6m, got %s", got)
	}
	if got := rangeStartDate("1y", now); got != "2023-01-15" {
		t.Fatalf("expected 2023-01-15 for 1y, got %s", got)
	}
	if got := rangeStartDate("bogus", now); got != "2023-12-15" {
		t.Fatalf("expected 1m fallback, got %s", got)
	}
}
