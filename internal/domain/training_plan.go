// internal/domain/training_plan.go
package domain

import (
	"fmt"
	"time"
)

// Level is the swimmer's experience level a plan is generated for.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// TrainingPlan is a generated or saved swimming workout: metadata plus an ordered exercise list.
type TrainingPlan struct {
	ID          string     `bson:"_id" json:"id"` // "plan-<unix millis>"
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"` // Never empty for generated plans
	Level       Level      `bson:"level" json:"level"`
	Goals       []string   `bson:"goals" json:"goals"`
	DaysPerWeek int        `bson:"daysPerWeek" json:"daysPerWeek"`
	Duration    int        `bson:"duration" json:"duration"` // Minutes per session
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`

	// Provenance of generated plans. Stored even when empty so a replacing save clears them.
	Provider     string `bson:"provider" json:"provider,omitempty"`
	Model        string `bson:"model" json:"model,omitempty"`
	TemplateType string `bson:"templateType" json:"templateType,omitempty"`
}

// NewPlanID returns an identifier in the "plan-<timestamp>" form.
// Uniqueness is only as good as the clock resolution.
func NewPlanID(now time.Time) string {
	return fmt.Sprintf("plan-%d", now.UnixMilli())
}

// Clone returns a deep copy so stored plans can't be mutated through returned values.
func (p TrainingPlan) Clone() TrainingPlan {
	out := p
	if p.Exercises != nil {
		out.Exercises = append([]Exercise(nil), p.Exercises...)
	}
	if p.Goals != nil {
		out.Goals = append([]string(nil), p.Goals...)
	}
	return out
}
