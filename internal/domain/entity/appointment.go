package entity

import "time"

type Appointment struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"userId" firestore:"userId"`
	PetID       string    `json:"petId,omitempty" firestore:"petId,omitempty"`
	VetID       string    `json:"vetId,omitempty" firestore:"vetId,omitempty"`
	Type        string    `json:"type,omitempty" firestore:"type,omitempty"`
	Date        time.Time `json:"date" firestore:"date"`
	Status      string    `json:"status,omitempty" firestore:"status,omitempty"`
	IsEmergency bool      `json:"isEmergency,omitempty" firestore:"isEmergency,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}
