package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the part of a user that may be echoed back to clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AccountProfile joins a user with their profile row; profile fields are nil until
// the user saves a profile.
type AccountProfile struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Age           *int     `json:"age"`
	ActivityLevel *string  `json:"activity_level"`
}
