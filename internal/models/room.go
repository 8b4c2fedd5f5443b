package models

import "fmt"

// Room is one adopter/owner conversation. Immutable once fetched; the
// label fields are denormalized by the backend so the list can render
// without extra lookups.
type Room struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	PetName          string `json:"pet_name"`
	PetOwnerUsername string `json:"pet_owner_username"`
	User1Username    string `json:"user1_username"`
	User2Username    string `json:"user2_username"`
}

// Label assembles the display label: pet name plus the owner, with
// fallbacks for rooms created before those fields existed.
func (r Room) Label() string {
	if r.PetName != "" {
		owner := r.PetOwnerUsername
		if owner == "" {
			owner = r.User1Username
		}
		if owner == "" {
			owner = r.User2Username
		}
		if owner == "" {
			owner = "Unknown"
		}
		return fmt.Sprintf("%s - %s", r.PetName, owner)
	}
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("Room %d", r.ID)
}
