package handlers

import (
	"context"
	"time"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"
)

type progressionWorkoutStore interface {
	List(ctx context.Context, userID int64, filter repository.WorkoutListFilter) ([]models.Workout, error)
}

type ProgressionHandler struct {
	workouts progressionWorkoutStore
}

func NewProgressionHandler(workouts progressionWorkoutStore) *ProgressionHandler {
	return &ProgressionHandler{workouts: workouts}
}

// Series returns the progression points for one exercise together with
// the distinct exercise names the selector offers.
func (h *ProgressionHandler) Series(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exercise := c.Query("exercise")
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid as_of format, expected YYYY-MM-DD"})
		}
		asOf = parsed
	}

	workouts, err := h.workouts.List(c.Context(), userID, repository.WorkoutListFilter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workouts"})
	}

	points := []services.ProgressionPoint{}
	if exercise != "" {
		points = services.ComputeProgression(workouts, exercise, asOf)
	}

	return c.JSON(fiber.Map{
		"exercise":  exercise,
		"points":    points,
		"exercises": services.DistinctExerciseNames(workouts),
	})
}

// Chart renders the same series as a standalone HTML line chart.
func (h *ProgressionHandler) Chart(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exercise := c.Query("exercise")
	if exercise == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing exercise parameter"})
	}

	workouts, err := h.workouts.List(c.Context(), userID, repository.WorkoutListFilter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workouts"})
	}

	points := services.ComputeProgression(workouts, exercise, time.Now())
	line := buildProgressionChart(exercise, points)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return line.Render(c.Response().BodyWriter())
}

func buildProgressionChart(exercise string, points []services.ProgressionPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    exercise,
			Subtitle: "Max weight and total volume per session",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
			},
		}),
	)

	dates := make([]string, 0, len(points))
	maxWeights := make([]opts.LineData, 0, len(points))
	volumes := make([]opts.LineData, 0, len(points))
	for _, point := range points {
		dates = append(dates, point.Date)
		maxWeights = append(maxWeights, opts.LineData{Value: point.MaxWeight})
		volumes = append(volumes, opts.LineData{Value: point.TotalVolume})
	}

	line.SetXAxis(dates)
	line.AddSeries("Max weight (kg)", maxWeights)
	line.AddSeries("Total volume (kg)", volumes)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line
}
