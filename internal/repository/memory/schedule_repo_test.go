package memory

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleRepository()

	for id, date := range map[string]time.Time{
		"c": day(2024, 3, 12),
		"a": day(2024, 3, 1),
		"b": day(2024, 3, 5),
	} {
		require.NoError(t, repo.Create(ctx, &domain.ScheduledSession{ID: id, PlanID: "plan-1", Date: date}))
	}

	all, err := repo.ListBetween(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	bounded, err := repo.ListBetween(ctx, day(2024, 3, 5), day(2024, 3, 12))
	require.NoError(t, err)
	require.Len(t, bounded, 2)
	assert.Equal(t, "b", bounded[0].ID)
	assert.Equal(t, "c", bounded[1].ID)
}

func TestScheduleRepository_SetCompletedAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleRepository()
	require.NoError(t, repo.Create(ctx, &domain.ScheduledSession{ID: "s1", PlanID: "plan-1", Date: day(2024, 3, 1)}))

	updated, err := repo.SetCompleted(ctx, "s1", true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	_, err = repo.SetCompleted(ctx, "missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), repository.ErrNotFound)
}

func TestScheduleRepository_DeleteByPlanID(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleRepository()
	require.NoError(t, repo.Create(ctx, &domain.ScheduledSession{ID: "s1", PlanID: "plan-1", Date: day(2024, 3, 1)}))
	require.NoError(t, repo.Create(ctx, &domain.ScheduledSession{ID: "s2", PlanID: "plan-1", Date: day(2024, 3, 2)}))
	require.NoError(t, repo.Create(ctx, &domain.ScheduledSession{ID: "s3", PlanID: "plan-2", Date: day(2024, 3, 3)}))

	n, err := repo.DeleteByPlanID(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := repo.ListBetween(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "s3", left[0].ID)
}
