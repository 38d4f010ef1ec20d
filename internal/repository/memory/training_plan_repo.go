// Package memory keeps repositories in process memory. Nothing survives a restart.
package memory

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/repository"
	"context"
	"sync"
)

// memoryTrainingPlanRepository implements repository.TrainingPlanRepository
type memoryTrainingPlanRepository struct {
	mu    sync.RWMutex
	plans []domain.TrainingPlan // Insertion order
	index map[string]int        // Plan ID -> position in plans
}

// NewTrainingPlanRepository creates an empty plan store.
func NewTrainingPlanRepository() repository.TrainingPlanRepository {
	return &memoryTrainingPlanRepository{index: make(map[string]int)}
}

func (r *memoryTrainingPlanRepository) List(_ context.Context) ([]domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TrainingPlan, len(r.plans))
	for i, p := range r.plans {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *memoryTrainingPlanRepository) GetByID(_ context.Context, id string) (*domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	plan := r.plans[i].Clone()
	return &plan, nil
}

func (r *memoryTrainingPlanRepository) Upsert(_ context.Context, plan *domain.TrainingPlan) error {
	if err := repository.ValidatePlan(plan); err != nil {
		return err
	}
	stored := plan.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[plan.ID]; ok {
		r.plans[i] = stored
		return nil
	}
	r.index[plan.ID] = len(r.plans)
	r.plans = append(r.plans, stored)
	return nil
}

func (r *memoryTrainingPlanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.plans = append(r.plans[:i], r.plans[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.plans); j++ {
		r.index[r.plans[j].ID] = j
	}
	return nil
}
