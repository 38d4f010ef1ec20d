package service

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/generation"
	"alcyxob/swimcoach/internal/planner"
	"alcyxob/swimcoach/internal/repository"
	"alcyxob/swimcoach/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrPlanNotFound      = errors.New("training plan not found")
	ErrGenerationFailed  = errors.New("training plan generation failed")
	ErrExportUnavailable = errors.New("plan export storage is not configured")
)

// Generator produces raw plan text for a prompt. *generation.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string, templateType generation.TemplateType) (generation.Result, error)
}

// PlanExport describes a plan archived to object storage.
type PlanExport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type TrainingService interface {
	GeneratePlan(ctx context.Context, params planner.PlanParams) (*domain.TrainingPlan, error)
	ListPlans(ctx context.Context) ([]domain.TrainingPlan, error)
	GetPlan(ctx context.Context, id string) (*domain.TrainingPlan, error)
	SavePlan(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, id string) error
	ExportPlan(ctx context.Context, id string) (*PlanExport, error)
}

// trainingService implements the TrainingService interface.
type trainingService struct {
	planRepo      repository.TrainingPlanRepository
	scheduleRepo  repository.ScheduleRepository
	generator     Generator
	fileStorage   storage.FileStorage // nil disables export
	presignExpiry time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(
	planRepo repository.TrainingPlanRepository,
	scheduleRepo repository.ScheduleRepository,
	generator Generator,
	fileStorage storage.FileStorage,
	presignExpiry time.Duration,
	logger *zap.Logger,
) TrainingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &trainingService{
		planRepo:      planRepo,
		scheduleRepo:  scheduleRepo,
		generator:     generator,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
		logger:        logger.Named("training"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GeneratePlan builds a prompt, asks the provider and parses the reply into a plan.
// The plan is not stored; callers persist it with SavePlan.
func (s *trainingService) GeneratePlan(ctx context.Context, params planner.PlanParams) (*domain.TrainingPlan, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	params.Goals = planner.NormalizeGoals(params.Goals) // Goals are a set

	// 1. Pick sampling preset from session length, then call the provider once
	templateType := generation.SelectTemplate(params.Duration)
	result, err := s.generator.Generate(ctx, planner.BuildPrompt(params), templateType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	// 2. Parse the free text; falls back to a fixed three-step session
	exercises := planner.ParseExercises(result.Content)

	// 3. Assemble the plan with provenance
	now := s.now()
	plan := &domain.TrainingPlan{
		ID:           domain.NewPlanID(now),
		Name:         fmt.Sprintf("%s Swimming Plan", params.Level),
		Description:  fmt.Sprintf("%d days per week, %d minutes per session. Goals: %s", params.DaysPerWeek, params.Duration, strings.Join(params.Goals, ", ")),
		Exercises:    exercises,
		Level:        params.Level,
		Goals:        params.Goals,
		DaysPerWeek:  params.DaysPerWeek,
		Duration:     params.Duration,
		CreatedAt:    now,
		Provider:     result.Provider,
		Model:        result.Model,
		TemplateType: string(templateType),
	}
	s.logger.Info("generated plan",
		zap.String("planId", plan.ID),
		zap.String("template", plan.TemplateType),
		zap.Int("exercises", len(exercises)),
	)
	return plan, nil
}

func (s *trainingService) ListPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *trainingService) GetPlan(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// SavePlan stores the plan, replacing any plan with the same ID.
func (s *trainingService) SavePlan(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrValidationFailed)
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = s.now()
	}
	if err := s.planRepo.Upsert(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrInvalidPlan) {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes the plan, then its scheduled sessions and exported archive.
// Cleanup failures are logged and do not fail the delete.
func (s *trainingService) DeletePlan(ctx context.Context, id string) error {
	if err := s.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	// Remove dependent data. The plan is already gone, so these only log.
	if n, err := s.scheduleRepo.DeleteByPlanID(ctx, id); err != nil {
		s.logger.Warn("failed to remove scheduled sessions", zap.String("planId", id), zap.Error(err))
	} else if n > 0 {
		s.logger.Info("removed scheduled sessions", zap.String("planId", id), zap.Int64("count", n))
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, storage.PlanObjectKey(id)); err != nil {
			s.logger.Warn("failed to remove plan export", zap.String("planId", id), zap.Error(err))
		}
	}
	return nil
}

// ExportPlan writes the plan as JSON to object storage and returns a download link.
func (s *trainingService) ExportPlan(ctx context.Context, id string) (*PlanExport, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	// Overwrites a previous export of the same plan
	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	key := storage.PlanObjectKey(plan.ID)
	if err := s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload plan export: %w", err)
	}

	expiry := s.presignExpiry
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("presign plan export: %w", err)
	}
	return &PlanExport{Key: key, URL: url, ExpiresAt: s.now().Add(expiry)}, nil
}
