package entity

import "time"

// PetStatusListed is the status a pet enters when approved onto the public
// feed. The stored value predates this service and is kept as-is.
const PetStatusListed = "Stray"

type Pet struct {
	ID          string    `json:"id" firestore:"id"`
	OwnerID     string    `json:"ownerId" firestore:"ownerId"`
	Name        string    `json:"name" firestore:"name"`
	Type        string    `json:"type,omitempty" firestore:"type,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}
