package models

import "time"

type User struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Avatar      string    `json:"avatar"`
	Saved       []string  `json:"savedProperties"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TokenResponse is returned by every auth endpoint that establishes a
// session.
type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// ProfileUpdate is the PUT /users/{id} payload. Empty fields are omitted so
// the server only touches what the form changed.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}
