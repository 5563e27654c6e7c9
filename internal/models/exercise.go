package models

import "time"

type LocalizedName struct {
	EN string `json:"en"`
	FR string `json:"fr"`
}

// Exercise is a catalog entry users pick from when building a workout.
type Exercise struct {
	ID          string        `json:"id"`
	Name        LocalizedName `json:"name"`
	Category    string        `json:"category"`
	Equipment   string        `json:"equipment"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageURL"`
	CreatedAt   time.Time     `json:"created_at"`
}
