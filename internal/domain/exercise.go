// internal/domain/exercise.go
package domain

// Exercise is one structured step of a training plan.
type Exercise struct {
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets" json:"sets"` // Defaults to 1
	Reps  int    `bson:"reps" json:"reps"` // Defaults to 1
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}
