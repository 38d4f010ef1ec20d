package domain

import "time"

// ScheduledSession places a saved plan on a calendar day.
type ScheduledSession struct {
	ID        string    `bson:"_id" json:"id"`
	PlanID    string    `bson:"planId" json:"planId"`
	Date      time.Time `bson:"date" json:"date"` // Midnight UTC of the scheduled day
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
