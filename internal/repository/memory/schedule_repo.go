package memory

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memoryScheduleRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.ScheduledSession
}

// NewScheduleRepository creates an empty schedule store.
func NewScheduleRepository() repository.ScheduleRepository {
	return &memoryScheduleRepository{sessions: make(map[string]domain.ScheduledSession)}
}

func (r *memoryScheduleRepository) Create(_ context.Context, session *domain.ScheduledSession) error {
	if session.ID == "" || session.PlanID == "" {
		return errors.New("session requires id and planId")
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *memoryScheduleRepository) GetByID(_ context.Context, id string) (*domain.ScheduledSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *memoryScheduleRepository) ListBetween(_ context.Context, from, to time.Time) ([]domain.ScheduledSession, error) {
	r.mu.RLock()
	out := make([]domain.ScheduledSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		if !from.IsZero() && s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *memoryScheduleRepository) SetCompleted(_ context.Context, id string, completed bool) (*domain.ScheduledSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.Completed = completed
	s.UpdatedAt = time.Now().UTC()
	r.sessions[id] = s
	return &s, nil
}

func (r *memoryScheduleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memoryScheduleRepository) DeleteByPlanID(_ context.Context, planID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, s := range r.sessions {
		if s.PlanID == planID {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
