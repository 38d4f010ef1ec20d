package service

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/generation"
	"alcyxob/swimcoach/internal/planner"
	"alcyxob/swimcoach/internal/repository"
	"alcyxob/swimcoach/internal/repository/memory"
	"alcyxob/swimcoach/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned reply and records the last call.
type fakeGenerator struct {
	content      string
	err          error
	prompt       string
	templateType generation.TemplateType
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, templateType generation.TemplateType) (generation.Result, error) {
	g.prompt = prompt
	g.templateType = templateType
	if g.err != nil {
		return generation.Result{}, g.err
	}
	return generation.Result{Content: g.content, Model: "test-model", Provider: "fake"}, nil
}

// fakeStorage keeps objects in a map.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?signed", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type trainingFixture struct {
	svc      *trainingService
	plans    repository.TrainingPlanRepository
	schedule repository.ScheduleRepository
}

func newTrainingFixture(gen Generator, fs storage.FileStorage) trainingFixture {
	plans := memory.NewTrainingPlanRepository()
	schedule := memory.NewScheduleRepository()
	svc := NewTrainingService(plans, schedule, gen, fs, time.Hour, nil).(*trainingService)
	svc.now = func() time.Time { return fixedNow }
	return trainingFixture{svc: svc, plans: plans, schedule: schedule}
}

func validParams() planner.PlanParams {
	return planner.PlanParams{
		Level:       domain.LevelBeginner,
		Goals:       []string{"Endurance", "endurance", "Technique"},
		DaysPerWeek: 3,
		Duration:    45,
	}
}

func TestGeneratePlan_AssemblesPlan(t *testing.T) {
	gen := &fakeGenerator{content: "Exercise Name: Freestyle\nSets: 4\nReps: 100\nNotes: steady\n\nExercise Name: Kick\nSets: 2"}
	f := newTrainingFixture(gen, nil)

	plan, err := f.svc.GeneratePlan(context.Background(), validParams())
	require.NoError(t, err)

	assert.Equal(t, domain.NewPlanID(fixedNow), plan.ID)
	assert.Equal(t, "Beginner Swimming Plan", plan.Name)
	assert.Equal(t, "3 days per week, 45 minutes per session. Goals: Endurance, Technique", plan.Description)
	assert.Equal(t, []string{"Endurance", "Technique"}, plan.Goals)
	assert.Equal(t, []domain.Exercise{
		{Name: "Freestyle", Sets: 4, Reps: 100, Notes: "steady"},
		{Name: "Kick", Sets: 2, Reps: 1},
	}, plan.Exercises)
	assert.Equal(t, "fake", plan.Provider)
	assert.Equal(t, "test-model", plan.Model)
	assert.Equal(t, string(generation.TemplateCreative), plan.TemplateType)
	assert.Equal(t, fixedNow, plan.CreatedAt)

	assert.Equal(t, generation.TemplateCreative, gen.templateType)
	assert.Equal(t, planner.BuildPrompt(validParams()), gen.prompt)

	// Generated plans are not stored until saved
	stored, err := f.plans.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGeneratePlan_UnstructuredReplyFallsBack(t *testing.T) {
	f := newTrainingFixture(&fakeGenerator{content: "Swim for a while and then rest."}, nil)

	plan, err := f.svc.GeneratePlan(context.Background(), validParams())
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 3)
	assert.Equal(t, "Main Set", plan.Exercises[1].Name)
}

func TestGeneratePlan_MissingParams(t *testing.T) {
	gen := &fakeGenerator{content: "unused"}
	f := newTrainingFixture(gen, nil)

	params := validParams()
	params.Goals = nil
	_, err := f.svc.GeneratePlan(context.Background(), params)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, gen.prompt)
}

func TestGeneratePlan_GenerationFailure(t *testing.T) {
	cause := &generation.Error{Kind: generation.ErrTimeout, Provider: "fake"}
	f := newTrainingFixture(&fakeGenerator{err: cause}, nil)

	_, err := f.svc.GeneratePlan(context.Background(), validParams())
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, generation.ErrTimeout)
}

func TestSavePlan_UpsertsAndValidates(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture(&fakeGenerator{}, nil)

	plan := &domain.TrainingPlan{ID: "plan-1", Name: "Mine", Exercises: []domain.Exercise{{Name: "Drill", Sets: 1, Reps: 1}}}
	saved, err := f.svc.SavePlan(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.CreatedAt)

	plan.Name = "Mine, renamed"
	_, err = f.svc.SavePlan(ctx, plan)
	require.NoError(t, err)

	plans, err := f.svc.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Mine, renamed", plans[0].Name)

	_, err = f.svc.SavePlan(ctx, &domain.TrainingPlan{ID: "plan-2", Name: "Empty"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.SavePlan(ctx, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetPlan_NotFound(t *testing.T) {
	f := newTrainingFixture(&fakeGenerator{}, nil)

	_, err := f.svc.GetPlan(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestDeletePlan_CascadesToScheduleAndStorage(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStorage()
	f := newTrainingFixture(&fakeGenerator{}, fs)

	plan := &domain.TrainingPlan{ID: "plan-1", Name: "Mine", Exercises: []domain.Exercise{{Name: "Drill", Sets: 1, Reps: 1}}}
	_, err := f.svc.SavePlan(ctx, plan)
	require.NoError(t, err)
	require.NoError(t, f.schedule.Create(ctx, &domain.ScheduledSession{ID: "s1", PlanID: "plan-1", Date: fixedNow}))
	require.NoError(t, f.schedule.Create(ctx, &domain.ScheduledSession{ID: "s2", PlanID: "plan-other", Date: fixedNow}))

	require.NoError(t, f.svc.DeletePlan(ctx, "plan-1"))

	_, err = f.svc.GetPlan(ctx, "plan-1")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	sessions, err := f.schedule.ListBetween(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, []string{"plans/plan-1.json"}, fs.deleted)

	assert.ErrorIs(t, f.svc.DeletePlan(ctx, "plan-1"), ErrPlanNotFound)
}

func TestExportPlan(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStorage()
	f := newTrainingFixture(&fakeGenerator{}, fs)

	plan := &domain.TrainingPlan{ID: "plan-1", Name: "Mine", Exercises: []domain.Exercise{{Name: "Drill", Sets: 2, Reps: 3}}}
	_, err := f.svc.SavePlan(ctx, plan)
	require.NoError(t, err)

	export, err := f.svc.ExportPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plans/plan-1.json", export.Key)
	assert.Equal(t, "https://storage.test/plans/plan-1.json?signed", export.URL)
	assert.Equal(t, fixedNow.Add(time.Hour), export.ExpiresAt)

	var archived domain.TrainingPlan
	require.NoError(t, json.Unmarshal(fs.objects["plans/plan-1.json"], &archived))
	assert.Equal(t, "Mine", archived.Name)
	assert.Equal(t, plan.Exercises, archived.Exercises)

	_, err = f.svc.ExportPlan(ctx, "missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	fs.putErr = errors.New("bucket gone")
	_, err = f.svc.ExportPlan(ctx, "plan-1")
	assert.Error(t, err)
}

func TestExportPlan_WithoutStorage(t *testing.T) {
	f := newTrainingFixture(&fakeGenerator{}, nil)

	_, err := f.svc.ExportPlan(context.Background(), "plan-1")
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
