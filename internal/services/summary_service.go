package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type summaryWorkoutStore interface {
	List(ctx context.Context, userID int64, filter repository.WorkoutListFilter) ([]models.Workout, error)
}

type summaryNutritionStore interface {
	GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.NutritionEntry, error)
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.NutritionEntry, error)
}

type summaryActivityStore interface {
	GetByOwnerAndDate(ctx context.Context, userID int64, date string) (*models.ActivityEntry, error)
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.ActivityEntry, error)
}

type summaryWeightStore interface {
	ListRange(ctx context.Context, userID int64, dateFrom, dateTo string) ([]models.WeightEntry, error)
}

type summaryProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

// SeriesPoint merges the daily collections by date for the dashboard's
// correlation chart; absent entries stay nil rather than zero.
type SeriesPoint struct {
	Date     string   `json:"date"`
	Calories *int     `json:"calories,omitempty"`
	Steps    *int     `json:"steps,omitempty"`
	WeightKG *float64 `json:"weight_kg,omitempty"`
}

type DashboardSummary struct {
	TodayWorkout *models.Workout        `json:"today_workout"`
	LastWorkout  *models.Workout        `json:"last_workout"`
	Nutrition    *models.NutritionEntry `json:"nutrition"`
	Activity     *models.ActivityEntry  `json:"activity"`
	CalorieGoal  int                    `json:"calorie_goal"`
	StepsGoal    int                    `json:"steps_goal"`
	Series       []SeriesPoint          `json:"series"`
}

type SummaryService struct {
	workoutRepo   summaryWorkoutStore
	nutritionRepo summaryNutritionStore
	activityRepo  summaryActivityStore
	weightRepo    summaryWeightStore
	profileRepo   summaryProfileStore
}

func NewSummaryService(
	workoutRepo summaryWorkoutStore,
	nutritionRepo summaryNutritionStore,
	activityRepo summaryActivityStore,
	weightRepo summaryWeightStore,
	profileRepo summaryProfileStore,
) *SummaryService {
	return &SummaryService{
		workoutRepo:   workoutRepo,
		nutritionRepo: nutritionRepo,
		activityRepo:  activityRepo,
		weightRepo:    weightRepo,
		profileRepo:   profileRepo,
	}
}

// Dashboard assembles the landing view: today's planned workout, the
// most recent non-future session, today's nutrition and activity against
// the profile goals, and the per-day range series.
func (s *SummaryService) Dashboard(ctx context.Context, userID int64, timeRange string, now time.Time) (*DashboardSummary, error) {
	today := now.Format("2006-01-02")
	rangeStart := rangeStartDate(timeRange, now)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	summary := &DashboardSummary{
		CalorieGoal: profile.CalorieGoal,
		StepsGoal:   profile.StepsGoal,
	}

	workouts, err := s.workoutRepo.List(ctx, userID, repository.WorkoutListFilter{DateTo: today})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	for i := range workouts {
		workout := workouts[i]
		if workout.Date == today && summary.TodayWorkout == nil {
			summary.TodayWorkout = &workout
		}
		if summary.LastWorkout == nil || workout.Date > summary.LastWorkout.Date {
			summary.LastWorkout = &workout
		}
	}

	nutrition, err := s.nutritionRepo.GetByOwnerAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load nutrition: %w", err)
	}
	summary.Nutrition = nutrition

	activity, err := s.activityRepo.GetByOwnerAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	summary.Activity = activity

	series, err := s.buildSeries(ctx, userID, rangeStart, today)
	if err != nil {
		return nil, err
	}
	summary.Series = series

	return summary, nil
}

func (s *SummaryService) buildSeries(ctx context.Context, userID int64, dateFrom, dateTo string) ([]SeriesPoint, error) {
	nutrition, err := s.nutritionRepo.ListRange(ctx, userID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("list nutrition range: %w", err)
	}
	activity, err := s.activityRepo.ListRange(ctx, userID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("list activity range: %w", err)
	}
	weights, err := s.weightRepo.ListRange(ctx, userID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("list weight range: %w", err)
	}

	byDate := make(map[string]*SeriesPoint)
	pointFor := func(date string) *SeriesPoint {
		if point, ok := byDate[date]; ok {
			return point
		}
		point := &SeriesPoint{Date: date}
		byDate[date] = point
		return point
	}

	for i := range nutrition {
		pointFor(nutrition[i].Date).Calories = &nutrition[i].Calories
	}
	for i := range activity {
		pointFor(activity[i].Date).Steps = &activity[i].Steps
	}
	for i := range weights {
		pointFor(weights[i].Date).WeightKG = &weights[i].WeightKG
	}

	series := make([]SeriesPoint, 0, len(byDate))
	for _, point := range byDate {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}

func rangeStartDate(timeRange string, now time.Time) string {
	switch timeRange {
	case "6m":
		return now.AddDate(0, -6, 0).Format("2006-01-02")
	case "1y":
		return now.AddDate(-1, 0, 0).Format("2006-01-02")
	case "2y":
		return now.AddDate(-2, 0, 0).Format("2006-01-02")
	default:
		return now.AddDate(0, -1, 0).Format("2006-01-02")
	}
}
