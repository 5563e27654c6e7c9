package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
)

// ProgressionPoint is one charted session for a single exercise. It
// carries its own set list so the client can show set-level detail for a
// selected point without another fetch.
type ProgressionPoint struct {
	Date        string               `json:"date"`
	RawDate     string               `json:"rawDate"`
	MaxWeight   float64              `json:"maxWeight"`
	TotalVolume float64              `json:"totalVolume"`
	Sets        []models.ExerciseSet `json:"sets"`
}

// ComputeProgression reduces a user's workout history to the time series
// for one exercise, matched by exact display name. Workouts dated after
// asOf (planned sessions) never contribute. A session appears only when
// it produced a strictly positive max weight or total volume; an
// exercise logged twice in one workout yields two points.
func ComputeProgression(workouts []models.Workout, exerciseName string, asOf time.Time) []ProgressionPoint {
	asOfDate := asOf.Format("2006-01-02")

	sorted := make([]models.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	points := make([]ProgressionPoint, 0)
	for _, workout := range sorted {
		if workout.Date > asOfDate {
			continue
		}

		for _, exercise := range workout.Exercises {
			if exercise.Name != exerciseName {
				continue
			}

			var maxWeight, totalVolume float64
			for _, set := range exercise.Sets {
				weight := parseOrZero(set.Weight)
				reps := parseOrZero(set.Reps)
				if weight > maxWeight {
					maxWeight = weight
				}
				totalVolume += reps * weight
			}

			if maxWeight > 0 || totalVolume > 0 {
				points = append(points, ProgressionPoint{
					Date:        displayDate(workout.Date),
					RawDate:     workout.Date,
					MaxWeight:   maxWeight,
					TotalVolume: totalVolume,
					Sets:        exercise.Sets,
				})
			}
		}
	}

	return points
}

// DistinctExerciseNames returns every exercise name seen across the
// workouts, deduplicated by exact match, in first-encounter order. It
// feeds the selector driving the progression chart.
func DistinctExerciseNames(workouts []models.Workout) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, workout := range workouts {
		for _, exercise := range workout.Exercises {
			if _, ok := seen[exercise.Name]; ok {
				continue
			}
			seen[exercise.Name] = struct{}{}
			names = append(names, exercise.Name)
		}
	}
	return names
}

// parseOrZero mirrors the input boundary's tolerance: empty or
// malformed numerics count as zero, never as an error.
func parseOrZero(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

func displayDate(rawDate string) string {
	parsed, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return rawDate
	}
	return parsed.Format("02 Jan")
}
