package models

import "time"

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Profile carries the user document fields the client edits on the
// profile page: body metrics, daily goals and the macro split.
type Profile struct {
	UserID             int64     `json:"user_id"`
	Birthdate          *string   `json:"birthdate"`
	WeightKG           *float64  `json:"weight_kg"`
	HeightCM           *float64  `json:"height_cm"`
	StepsGoal          int       `json:"steps_goal"`
	CalorieGoal        int       `json:"calorie_goal"`
	ProteinPct         int       `json:"protein_pct"`
	CarbPct            int       `json:"carb_pct"`
	FatPct             int       `json:"fat_pct"`
	Language           string    `json:"language"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AccountToken struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Purpose    string     `json:"purpose"`
	Token      string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposeResetPassword = "reset_password"
)
