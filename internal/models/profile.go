package models

import "time"

type Profile struct {
	UserID        int64     `json:"user_id"`
	Weight        float64   `json:"weight"`
	Height        float64   `json:"height"`
	Age           int       `json:"age"`
	ActivityLevel string    `json:"activity_level"`
	UpdatedAt     time.Time `json:"updated_at"`
}
