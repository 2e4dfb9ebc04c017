package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalService_Lifecycle(t *testing.T) {
	s := NewGoalService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	g, err := s.Create(ctx, alice, GoalInput{Title: "Car", TargetAmount: 5000, Deadline: &deadline})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.CurrentAmount)
	assert.Equal(t, alice, g.UserID)

	updated, err := s.Update(ctx, alice, g.ID, models.GoalPatch{CurrentAmount: ptr(750.0)})
	require.NoError(t, err)
	assert.Equal(t, 750.0, updated.CurrentAmount)
	require.NotNil(t, updated.Deadline)

	cleared, err := s.Update(ctx, alice, g.ID, models.GoalPatch{Deadline: models.OptionalTime{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, cleared.Deadline)

	list, err := s.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, alice, g.ID))
	require.ErrorIs(t, s.Delete(ctx, alice, g.ID), common.ErrorNotFound)
}

func TestGoalService_Validation(t *testing.T) {
	s := NewGoalService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	for _, in := range []GoalInput{
		{Title: "", TargetAmount: 1},
		{Title: "x", TargetAmount: 0},
		{Title: "x", TargetAmount: 10, CurrentAmount: -1},
	} {
		_, err := s.Create(ctx, alice, in)
		require.ErrorIs(t, err, common.ErrValidation, "%+v", in)
	}

	g, err := s.Create(ctx, alice, GoalInput{Title: "x", TargetAmount: 10})
	require.NoError(t, err)

	_, err = s.Update(ctx, alice, g.ID, models.GoalPatch{Title: ptr(" ")})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Update(ctx, alice, g.ID, models.GoalPatch{TargetAmount: ptr(0.0)})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Update(ctx, alice, g.ID, models.GoalPatch{CurrentAmount: ptr(-3.0)})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestGoalService_CrossUserIsolation(t *testing.T) {
	s := NewGoalService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	g, err := s.Create(ctx, alice, GoalInput{Title: "Car", TargetAmount: 5000})
	require.NoError(t, err)

	list, err := s.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Update(ctx, bob, g.ID, models.GoalPatch{Title: ptr("mine now")})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, bob, g.ID), common.ErrorNotFound)

	still, err := s.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, still, 1)
	assert.Equal(t, "Car", still[0].Title)
}
