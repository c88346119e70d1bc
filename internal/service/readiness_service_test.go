package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/pantry-api/internal/controller"
	"github.com/phrazzld/pantry-api/internal/domain"
	"github.com/phrazzld/pantry-api/internal/domain/readiness"
	"github.com/phrazzld/pantry-api/internal/events"
	"github.com/phrazzld/pantry-api/internal/mocks"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/platform/memory"
	"github.com/phrazzld/pantry-api/internal/service"
	"github.com/phrazzld/pantry-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*events.Event
}

func (h *recordingHandler) HandleEvent(_ context.Context, e *events.Event) error {
	h.events = append(h.events, e)
	return nil
}

func (h *recordingHandler) types() []string {
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

func newService(t *testing.T, s store.DocumentStore) (service.ReadinessService, *recordingHandler) {
	t.Helper()
	l, _ := logger.NewTestLogger()

	ctrl, err := controller.New(s, l)
	require.NoError(t, err)

	handler := &recordingHandler{}
	emitter := events.NewInMemoryEventEmitter(l)
	emitter.RegisterHandler(handler)

	svc, err := service.NewReadinessService(ctrl, emitter, l)
	require.NoError(t, err)
	return svc, handler
}

func newMemoryService(t *testing.T) (service.ReadinessService, *recordingHandler) {
	t.Helper()
	return newService(t, memory.NewDocumentStore(nil))
}

func TestNewReadinessService_Dependencies(t *testing.T) {
	t.Parallel()

	_, err := service.NewReadinessService(nil, events.NewInMemoryEventEmitter(nil), nil)
	var svcErr *service.ServiceError
	assert.ErrorAs(t, err, &svcErr)

	ctrl, err := controller.New(memory.NewDocumentStore(nil), nil)
	require.NoError(t, err)
	_, err = service.NewReadinessService(ctrl, nil, nil)
	assert.ErrorAs(t, err, &svcErr)
}

func TestCreateAndGetRecipe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, handler := newMemoryService(t)

	created, err := svc.CreateRecipe(ctx, "Pancakes", "VEGETARIAN", map[string]float64{"Flour": 200, "Milk": 300})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DietVegetarian, created.Diet)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	assert.Equal(t, []string{events.TypeRecipeCreated}, handler.types())
}

func TestCreateRecipe_Invalid(t *testing.T) {
	t.Parallel()
	svc, handler := newMemoryService(t)

	_, err := svc.CreateRecipe(context.Background(), "Nothing", "vegan", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, handler.events)
}

func TestGetRecipe_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	_, err := svc.GetRecipe(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	pantry, err := svc.CreatePantry(ctx, "Home", nil)
	require.NoError(t, err)
	_, err = svc.GetRecipe(ctx, pantry.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound, "a pantry is not a recipe")
}

func TestDeleteRecipe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	recipe, err := svc.CreateRecipe(ctx, "Toast", "", map[string]float64{"Bread": 2})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))
	_, err = svc.GetRecipe(ctx, recipe.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, recipe.ID), service.ErrRecipeNotFound)
}

func TestRestockPantry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, handler := newMemoryService(t)

	pantry, err := svc.CreatePantry(ctx, "Home", map[string]float64{"Flour": 100})
	require.NoError(t, err)

	restocked, err := svc.RestockPantry(ctx, pantry.ID, map[string]float64{"Flour": 50, "Eggs": 6})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Flour": 150, "Eggs": 6}, restocked.Items)

	consumed, err := svc.RestockPantry(ctx, pantry.ID, map[string]float64{"Eggs": -2})
	require.NoError(t, err)
	assert.Equal(t, 4.0, consumed.Items["Eggs"])

	_, err = svc.RestockPantry(ctx, pantry.ID, map[string]float64{"Eggs": -10})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	stored, err := svc.GetPantry(ctx, pantry.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.Items["Eggs"], "rejected restock leaves stock unchanged")

	assert.Equal(t,
		[]string{events.TypePantryCreated, events.TypePantryRestocked, events.TypePantryRestocked},
		handler.types())
}

func TestRecipeReadiness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	recipe, err := svc.CreateRecipe(ctx, "Bread", "", map[string]float64{"Flour": 500, "Water": 300, "Salt": 10})
	require.NoError(t, err)
	pantry, err := svc.CreatePantry(ctx, "Home", map[string]float64{"Flour": 500, "Water": 150})
	require.NoError(t, err)

	report, err := svc.RecipeReadiness(ctx, recipe.ID, pantry.ID)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, report.Score, 1e-12)
	require.Len(t, report.Missing, 2)
	assert.Equal(t, "Salt", report.Missing[0].Name)
	assert.Equal(t, "Water", report.Missing[1].Name)
	assert.False(t, report.Ready())

	_, err = svc.RecipeReadiness(ctx, recipe.ID, "missing")
	assert.ErrorIs(t, err, service.ErrPantryNotFound)
	_, err = svc.RecipeReadiness(ctx, "missing", pantry.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestRankRecipes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	pantry, err := svc.CreatePantry(ctx, "Home", map[string]float64{"Flour": 500, "Milk": 100, "Bacon": 0})
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, "Pancakes", "vegetarian", map[string]float64{"Flour": 250, "Milk": 400})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, "Flatbread", "vegan", map[string]float64{"Flour": 500})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, "Bacon Rolls", "", map[string]float64{"Flour": 250, "Bacon": 200})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, "Crepes", "vegetarian", map[string]float64{"Flour": 250, "Milk": 400})
	require.NoError(t, err)

	t.Run("all diets, most ready first then by name", func(t *testing.T) {
		ranked, err := svc.RankRecipes(ctx, pantry.ID, nil)
		require.NoError(t, err)

		names := make([]string, 0, len(ranked))
		for _, r := range ranked {
			names = append(names, r.Recipe.Name)
		}
		// Pancakes and Crepes both score (2 + 0.25) / 2; Bacon Rolls (2 + 0) / 2
		// ties with Flatbread at 1.
		assert.Equal(t, []string{"Crepes", "Pancakes", "Bacon Rolls", "Flatbread"}, names)
		assert.InDelta(t, 1.125, ranked[0].Report.Score, 1e-12)
		assert.InDelta(t, 1.0, ranked[2].Report.Score, 1e-12)
		assert.InDelta(t, 1.0, ranked[3].Report.Score, 1e-12)
	})

	t.Run("diet filter", func(t *testing.T) {
		vegan := domain.DietVegan
		ranked, err := svc.RankRecipes(ctx, pantry.ID, &vegan)
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, "Flatbread", ranked[0].Recipe.Name)
	})

	t.Run("unknown pantry", func(t *testing.T) {
		_, err := svc.RankRecipes(ctx, "missing", nil)
		assert.ErrorIs(t, err, service.ErrPantryNotFound)
	})
}

func TestRankRecipes_SkipsInvalidDocuments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	docs := memory.NewDocumentStore(nil)
	svc, _ := newService(t, docs)

	pantry, err := svc.CreatePantry(ctx, "Home", map[string]float64{"Rice": 1})
	require.NoError(t, err)
	_, err = docs.Create(ctx, store.Document{"kind": domain.KindRecipe, "name": "Broken"})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, "Rice", "vegan", map[string]float64{"Rice": 1})
	require.NoError(t, err)

	ranked, err := svc.RankRecipes(ctx, pantry.ID, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Rice", ranked[0].Recipe.Name)
	assert.Equal(t, &readiness.Report{
		Score:       1,
		Ingredients: []readiness.IngredientScore{{Name: "Rice", Required: 1, Available: 1, Ratio: 1}},
		Missing:     []readiness.IngredientScore{},
	}, ranked[0].Report)
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	s := new(mocks.MockDocumentStore)
	s.On("Create", mock.Anything, mock.Anything).Return(nil, storeErr)
	s.On("FindOne", mock.Anything, "p-1").Return(nil, storeErr)
	svc, _ := newService(t, s)

	_, err := svc.CreateRecipe(ctx, "Toast", "", map[string]float64{"Bread": 1})
	var svcErr *service.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_recipe", svcErr.Operation)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetPantry(ctx, "p-1")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, service.ErrPantryNotFound)
}
