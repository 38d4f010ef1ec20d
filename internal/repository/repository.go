package repository

import (
	"alcyxob/swimcoach/internal/domain" // Import our defined domain models
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound       = RepositoryError("not found")
	ErrInvalidPlan    = RepositoryError("plan requires id, name and at least one exercise")
	ErrDuplicateEmail = RepositoryError("user with this email already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ValidatePlan is the only check a store applies before accepting a plan.
func ValidatePlan(plan *domain.TrainingPlan) error {
	if plan == nil || plan.ID == "" || plan.Name == "" || len(plan.Exercises) == 0 {
		return ErrInvalidPlan
	}
	return nil
}

// TrainingPlanRepository is the plan store.
type TrainingPlanRepository interface {
	List(ctx context.Context) ([]domain.TrainingPlan, error) // Insertion order
	GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error)
	Upsert(ctx context.Context, plan *domain.TrainingPlan) error // Replace by id, else append
	Delete(ctx context.Context, id string) error
}

// ScheduleRepository stores calendar sessions for saved plans.
type ScheduleRepository interface {
	Create(ctx context.Context, session *domain.ScheduledSession) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledSession, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.ScheduledSession, error) // Inclusive, ordered by date
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.ScheduledSession, error)
	Delete(ctx context.Context, id string) error
	DeleteByPlanID(ctx context.Context, planID string) (int64, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
