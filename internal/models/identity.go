// Package models defines the data shapes shared across the client.
package models

import "strings"

// Identity is the authenticated user's profile as the backend returns it.
type Identity struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	IsStaff   bool    `json:"is_staff"`
	Profile   Profile `json:"profile"`
}

type Profile struct {
	Phone     string `json:"phone"`
	City      string `json:"city"`
	AvatarURL string `json:"avatar_url"`
}

// DisplayName prefers the full name, falling back to the username
// and then the email.
func (id *Identity) DisplayName() string {
	full := strings.TrimSpace(id.FirstName + " " + id.LastName)
	if full != "" {
		return full
	}
	if id.Username != "" {
		return id.Username
	}
	return id.Email
}
