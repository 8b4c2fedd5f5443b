package models

type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetPending   PetStatus = "pending"
	PetAdopted   PetStatus = "adopted"
)

type Pet struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Breed         string    `json:"breed"`
	Age           int       `json:"age"`
	Description   string    `json:"description"`
	Photo         string    `json:"photo"`
	Status        PetStatus `json:"status"`
	Owner         int64     `json:"owner"`
	OwnerUsername string    `json:"owner_username"`
	IsFavorite    bool      `json:"is_favorite"`
}

// Stats is the aggregate counters panel on the admin screen.
type Stats struct {
	TotalPets     int `json:"total_pets"`
	AvailablePets int `json:"available_pets"`
	AdoptedPets   int `json:"adopted_pets"`
	TotalUsers    int `json:"total_users"`
}
