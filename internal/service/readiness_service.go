package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/pantry-api/internal/domain"
	"github.com/phrazzld/pantry-api/internal/domain/readiness"
	"github.com/phrazzld/pantry-api/internal/events"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/store"
)

// DocumentRepository is the document facade the service persists through.
// It is satisfied by *controller.Controller.
type DocumentRepository interface {
	Create(ctx context.Context, data store.Document) (store.Document, error)
	Get(ctx context.Context, id string) (store.Document, error)
	GetAll(ctx context.Context, filter store.Document) ([]store.Document, error)
	Update(ctx context.Context, id string, data store.Document) (store.Document, error)
	Delete(ctx context.Context, id string) error
}

// RankedRecipe is a recipe together with its readiness against a pantry.
type RankedRecipe struct {
	Recipe *domain.Recipe    `json:"recipe"`
	Report *readiness.Report `json:"report"`
}

// ReadinessService provides recipe and pantry operations.
type ReadinessService interface {
	// CreateRecipe validates and stores a new recipe. dietText is classified
	// with domain.ParseDiet.
	CreateRecipe(ctx context.Context, name, dietText string, ingredients map[string]float64) (*domain.Recipe, error)

	// GetRecipe retrieves a recipe by its ID.
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)

	// DeleteRecipe removes a recipe.
	DeleteRecipe(ctx context.Context, id string) error

	// CreatePantry validates and stores a new pantry.
	CreatePantry(ctx context.Context, name string, items map[string]float64) (*domain.Pantry, error)

	// GetPantry retrieves a pantry by its ID.
	GetPantry(ctx context.Context, id string) (*domain.Pantry, error)

	// RestockPantry adds delta to the pantry's stock. Negative amounts consume
	// stock; the resulting amount of every item must stay non-negative.
	RestockPantry(ctx context.Context, id string, delta map[string]float64) (*domain.Pantry, error)

	// RecipeReadiness evaluates one recipe against one pantry.
	RecipeReadiness(ctx context.Context, recipeID, pantryID string) (*readiness.Report, error)

	// RankRecipes evaluates every stored recipe against a pantry, most ready
	// first. When diet is non-nil only recipes of that diet are included.
	RankRecipes(ctx context.Context, pantryID string, diet *domain.Diet) ([]RankedRecipe, error)
}

type readinessServiceImpl struct {
	repo    DocumentRepository
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewReadinessService creates a new ReadinessService.
// It returns an error if any of the required dependencies are nil.
func NewReadinessService(
	repo DocumentRepository,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ReadinessService, error) {
	if repo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "repo cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &readinessServiceImpl{
		repo:    repo,
		emitter: emitter,
		logger:  logger.With("component", "readiness_service"),
	}, nil
}

func (s *readinessServiceImpl) CreateRecipe(
	ctx context.Context,
	name, dietText string,
	ingredients map[string]float64,
) (*domain.Recipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := domain.NewRecipe(name, dietText, ingredients)
	if err != nil {
		log.Debug("recipe validation failed", "error", err)
		return nil, err
	}

	doc, err := s.repo.Create(ctx, recipe.Document())
	if err != nil {
		log.Error("failed to store recipe", "error", err)
		return nil, NewServiceError("create_recipe", "failed to store recipe", err, nil)
	}
	recipe.ID = doc.ID()

	log.Info("recipe created",
		"recipe_id", recipe.ID,
		"diet", recipe.Diet.String(),
		"ingredient_count", len(recipe.Ingredients))
	s.emit(ctx, events.TypeRecipeCreated, recipe.ID, recipe.Name)
	return recipe, nil
}

func (s *readinessServiceImpl) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	doc, err := s.loadKind(ctx, "get_recipe", id, domain.KindRecipe, ErrRecipeNotFound)
	if err != nil {
		return nil, err
	}
	recipe, err := domain.RecipeFromDocument(doc)
	if err != nil {
		return nil, NewServiceError("get_recipe", "stored recipe is invalid", err, nil)
	}
	return recipe, nil
}

func (s *readinessServiceImpl) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := s.loadKind(ctx, "delete_recipe", id, domain.KindRecipe, ErrRecipeNotFound); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return NewServiceError("delete_recipe", "failed to delete recipe", err, ErrRecipeNotFound)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("recipe deleted", "recipe_id", id)
	return nil
}

func (s *readinessServiceImpl) CreatePantry(
	ctx context.Context,
	name string,
	items map[string]float64,
) (*domain.Pantry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pantry, err := domain.NewPantry(name, items)
	if err != nil {
		log.Debug("pantry validation failed", "error", err)
		return nil, err
	}

	doc, err := s.repo.Create(ctx, pantry.Document())
	if err != nil {
		log.Error("failed to store pantry", "error", err)
		return nil, NewServiceError("create_pantry", "failed to store pantry", err, nil)
	}
	pantry.ID = doc.ID()

	log.Info("pantry created", "pantry_id", pantry.ID, "item_count", len(pantry.Items))
	s.emit(ctx, events.TypePantryCreated, pantry.ID, pantry.Name)
	return pantry, nil
}

func (s *readinessServiceImpl) GetPantry(ctx context.Context, id string) (*domain.Pantry, error) {
	doc, err := s.loadKind(ctx, "get_pantry", id, domain.KindPantry, ErrPantryNotFound)
	if err != nil {
		return nil, err
	}
	pantry, err := domain.PantryFromDocument(doc)
	if err != nil {
		return nil, NewServiceError("get_pantry", "stored pantry is invalid", err, nil)
	}
	return pantry, nil
}

func (s *readinessServiceImpl) RestockPantry(
	ctx context.Context,
	id string,
	delta map[string]float64,
) (*domain.Pantry, error) {
	pantry, err := s.GetPantry(ctx, id)
	if err != nil {
		return nil, err
	}

	for name, amount := range delta {
		pantry.Items[name] += amount
	}
	if err := pantry.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.Update(ctx, id, store.Document{"items": pantry.Document()["items"]})
	if err != nil {
		return nil, NewServiceError("restock_pantry", "failed to update pantry", err, ErrPantryNotFound)
	}
	updated, err := domain.PantryFromDocument(doc)
	if err != nil {
		return nil, NewServiceError("restock_pantry", "updated pantry is invalid", err, nil)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("pantry restocked",
		"pantry_id", id,
		"changed_items", len(delta))
	s.emit(ctx, events.TypePantryRestocked, updated.ID, updated.Name)
	return updated, nil
}

func (s *readinessServiceImpl) RecipeReadiness(
	ctx context.Context,
	recipeID, pantryID string,
) (*readiness.Report, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	pantry, err := s.GetPantry(ctx, pantryID)
	if err != nil {
		return nil, err
	}

	report, err := readiness.Evaluate(recipe.Ingredients, pantry.Items)
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("recipe evaluated",
		"recipe_id", recipeID,
		"pantry_id", pantryID,
		"score", report.Score,
		"missing", len(report.Missing))
	return report, nil
}

func (s *readinessServiceImpl) RankRecipes(
	ctx context.Context,
	pantryID string,
	diet *domain.Diet,
) ([]RankedRecipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pantry, err := s.GetPantry(ctx, pantryID)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.GetAll(ctx, store.Document{"kind": domain.KindRecipe})
	if err != nil {
		return nil, NewServiceError("rank_recipes", "failed to list recipes", err, nil)
	}

	ranked := make([]RankedRecipe, 0, len(docs))
	for _, doc := range docs {
		recipe, err := domain.RecipeFromDocument(doc)
		if err != nil {
			log.Warn("skipping invalid recipe document",
				"document_id", doc.ID(),
				"error", err)
			continue
		}
		if diet != nil && recipe.Diet != *diet {
			continue
		}
		report, err := readiness.Evaluate(recipe.Ingredients, pantry.Items)
		if err != nil {
			log.Warn("skipping unscorable recipe", "recipe_id", recipe.ID, "error", err)
			continue
		}
		ranked = append(ranked, RankedRecipe{Recipe: recipe, Report: report})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Report.Score != b.Report.Score {
			return a.Report.Score > b.Report.Score
		}
		return a.Recipe.Name < b.Recipe.Name
	})

	log.Debug("recipes ranked", "pantry_id", pantryID, "count", len(ranked))
	return ranked, nil
}

// loadKind fetches a document and checks that it is of the expected kind.
// A document of another kind is reported as notFound.
func (s *readinessServiceImpl) loadKind(
	ctx context.Context,
	operation, id, kind string,
	notFound error,
) (store.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("document lookup failed",
			"operation", operation,
			"document_id", id,
			"error", err)
		return nil, NewServiceError(operation, "failed to load document", err, notFound)
	}
	if k, _ := doc["kind"].(string); k != kind {
		return nil, notFound
	}
	return doc, nil
}

// emit publishes an event. The change is already stored, so a failed
// emission is logged rather than returned.
func (s *readinessServiceImpl) emit(ctx context.Context, eventType, id, name string) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, events.DocumentPayload{DocumentID: id, Name: name})
	if err != nil {
		log.Error("failed to create event", "error", err, "event_type", eventType)
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit event",
			"error", err,
			"event_type", eventType,
			"event_id", event.ID)
	}
}
