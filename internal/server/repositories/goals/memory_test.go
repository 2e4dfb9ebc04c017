package goals

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	car, err := r.Create(ctx, &models.Goal{UserID: "u1", Title: "Car", TargetAmount: 5000, Deadline: &deadline})
	require.NoError(t, err)
	trip, err := r.Create(ctx, &models.Goal{UserID: "u1", Title: "Trip", TargetAmount: 800})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Goal{UserID: "u2", Title: "Other", TargetAmount: 1})
	require.NoError(t, err)

	list, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, trip.ID, list[0].ID, "newest first")
	assert.Equal(t, car.ID, list[1].ID)

	current := 1200.0
	updated, err := r.Update(ctx, "u1", car.ID, models.GoalPatch{
		CurrentAmount: &current,
		Deadline:      models.OptionalTime{Set: true, Time: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, updated.CurrentAmount)
	assert.Nil(t, updated.Deadline)
	assert.Equal(t, "Car", updated.Title)

	_, err = r.Update(ctx, "u2", car.ID, models.GoalPatch{CurrentAmount: &current})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, r.Delete(ctx, "u2", car.ID), common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, "u1", car.ID))
	list, err = r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
