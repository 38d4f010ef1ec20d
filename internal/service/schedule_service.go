package service

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("scheduled session not found")

// ScheduleService places saved plans on calendar days.
type ScheduleService interface {
	Schedule(ctx context.Context, planID string, date time.Time) (*domain.ScheduledSession, error)
	List(ctx context.Context, from, to time.Time) ([]domain.ScheduledSession, error)
	SetCompleted(ctx context.Context, sessionID string, completed bool) (*domain.ScheduledSession, error)
	Unschedule(ctx context.Context, sessionID string) error
}

type scheduleService struct {
	planRepo     repository.TrainingPlanRepository
	scheduleRepo repository.ScheduleRepository
}

func NewScheduleService(planRepo repository.TrainingPlanRepository, scheduleRepo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{planRepo: planRepo, scheduleRepo: scheduleRepo}
}

// Schedule adds a session for an existing plan. The time of day is dropped.
func (s *scheduleService) Schedule(ctx context.Context, planID string, date time.Time) (*domain.ScheduledSession, error) {
	if planID == "" || date.IsZero() {
		return nil, fmt.Errorf("%w: plan id and date are required", ErrValidationFailed)
	}
	// Only saved plans can be scheduled
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	session := &domain.ScheduledSession{
		ID:     uuid.NewString(),
		PlanID: planID,
		Date:   StartOfDay(date),
	}
	if err := s.scheduleRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// List returns sessions in [from, to]; zero bounds are open.
func (s *scheduleService) List(ctx context.Context, from, to time.Time) ([]domain.ScheduledSession, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrValidationFailed)
	}
	if !from.IsZero() {
		from = StartOfDay(from)
	}
	if !to.IsZero() {
		to = StartOfDay(to)
	}
	return s.scheduleRepo.ListBetween(ctx, from, to)
}

func (s *scheduleService) SetCompleted(ctx context.Context, sessionID string, completed bool) (*domain.ScheduledSession, error) {
	session, err := s.scheduleRepo.SetCompleted(ctx, sessionID, completed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *scheduleService) Unschedule(ctx context.Context, sessionID string) error {
	if err := s.scheduleRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
