package models

import "time"

// ExerciseSet keeps reps and weight as the free-text strings the client
// submits; empty or non-numeric values count as zero when aggregated.
type ExerciseSet struct {
	ID     string `json:"id"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

// WorkoutExercise references a catalog exercise when one was picked, and
// always carries the display name the progression chart matches against.
type WorkoutExercise struct {
	ID         string        `json:"id"`
	ExerciseID string        `json:"exerciseId,omitempty"`
	Name       string        `json:"name"`
	Sets       []ExerciseSet `json:"sets"`
}

// Workout is a logged training session. Date is calendar-only
// ("YYYY-MM-DD", no timezone conversion); Time is the optional planned
// "HH:MM" start.
type Workout struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Name            string            `json:"name"`
	Date            string            `json:"date"`
	Time            *string           `json:"time,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	Exercises       []WorkoutExercise `json:"exercises"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
