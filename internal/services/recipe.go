package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

// ErrRecipeNotFound is returned when a recipe ID resolves to nothing.
var ErrRecipeNotFound = errors.New("recipe not found")

// DatabaseQuerier is the slice of pgxpool.Pool the repository services use,
// kept narrow so pgxmock can stand in during tests.
type DatabaseQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

const recipeColumns = `id, name, ingredients, steps, prep_time_minutes, cook_time_minutes,
	total_time_minutes, servings, owner, difficulty, last_made, made_count, created_at, updated_at`

// RecipeService owns recipe persistence and quality metric caching.
type RecipeService struct {
	db         DatabaseQuerier
	warmCache  *redis.Client
	normalizer *Normalizer
	analyzer   *QualityAnalyzer
	qualityTTL time.Duration
	logger     *logrus.Logger
}

func NewRecipeService(db DatabaseQuerier, warmCache *redis.Client, normalizer *Normalizer,
	analyzer *QualityAnalyzer, caching config.CachingConfig, logger *logrus.Logger) *RecipeService {
	return &RecipeService{
		db:         db,
		warmCache:  warmCache,
		normalizer: normalizer,
		analyzer:   analyzer,
		qualityTTL: caching.QualityTTL,
		logger:     logger,
	}
}

// Ingest normalizes a scraped record, scores it, and stores the recipe.
func (s *RecipeService) Ingest(ctx context.Context, raw models.ScrapedRecipe) (*models.Recipe, models.QualityMetrics, error) {
	recipe, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, models.QualityMetrics{}, err
	}

	metrics := s.analyzer.Analyze(recipe)

	_, err = s.db.Exec(ctx, `
		INSERT INTO recipes (id, name, ingredients, steps, prep_time_minutes, cook_time_minutes,
			total_time_minutes, servings, owner, difficulty, made_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		recipe.ID, recipe.Name, recipe.Ingredients, recipe.Steps,
		recipe.PrepTimeMinutes, recipe.CookTimeMinutes, recipe.TotalTimeMinutes,
		recipe.Servings, recipe.Owner, recipe.Difficulty, recipe.MadeCount,
		recipe.CreatedAt, recipe.UpdatedAt)
	if err != nil {
		return nil, models.QualityMetrics{}, fmt.Errorf("failed to store recipe: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"name":      recipe.Name,
		"quality":   metrics.Overall,
	}).Info("Ingested recipe")

	return recipe, metrics, nil
}

// Get loads a recipe with its full feedback history.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	row := s.db.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)

	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	if recipe.FeedbackHistory, err = s.loadFeedback(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

// List loads all recipes with feedback histories attached, in creation order.
func (s *RecipeService) List(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := s.db.Query(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*models.Recipe
	byID := map[uuid.UUID]*models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
		byID[recipe.ID] = recipe
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading recipes: %w", err)
	}

	if len(recipes) == 0 {
		return recipes, nil
	}

	feedbackRows, err := s.db.Query(ctx, `
		SELECT id, recipe_id, user_id, taste, cleanup, created_at
		FROM feedback_events ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback events: %w", err)
	}
	defer feedbackRows.Close()

	for feedbackRows.Next() {
		var event models.FeedbackEvent
		if err := feedbackRows.Scan(&event.ID, &event.RecipeID, &event.UserID,
			&event.Taste, &event.Cleanup, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback event: %w", err)
		}
		if recipe, ok := byID[event.RecipeID]; ok {
			recipe.FeedbackHistory = append(recipe.FeedbackHistory, event)
		}
	}
	if err := feedbackRows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading feedback events: %w", err)
	}

	return recipes, nil
}

// Replace performs a full-replacement edit: identity fields come from the new
// normalized record, difficulty is recomputed, feedback history and made
// stats survive.
func (s *RecipeService) Replace(ctx context.Context, id uuid.UUID, raw models.ScrapedRecipe) (*models.Recipe, models.QualityMetrics, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, models.QualityMetrics{}, err
	}

	replacement, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, models.QualityMetrics{}, err
	}

	replacement.ID = existing.ID
	replacement.FeedbackHistory = existing.FeedbackHistory
	replacement.LastMade = existing.LastMade
	replacement.MadeCount = existing.MadeCount
	replacement.CreatedAt = existing.CreatedAt
	replacement.UpdatedAt = time.Now()

	tag, err := s.db.Exec(ctx, `
		UPDATE recipes SET name = $2, ingredients = $3, steps = $4, prep_time_minutes = $5,
			cook_time_minutes = $6, total_time_minutes = $7, servings = $8, owner = $9,
			difficulty = $10, updated_at = $11
		WHERE id = $1`,
		replacement.ID, replacement.Name, replacement.Ingredients, replacement.Steps,
		replacement.PrepTimeMinutes, replacement.CookTimeMinutes, replacement.TotalTimeMinutes,
		replacement.Servings, replacement.Owner, replacement.Difficulty, replacement.UpdatedAt)
	if err != nil {
		return nil, models.QualityMetrics{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.QualityMetrics{}, ErrRecipeNotFound
	}

	s.invalidateQuality(ctx, existing)
	return replacement, s.analyzer.Analyze(replacement), nil
}

// MarkMade stamps lastMade and bumps madeCount.
func (s *RecipeService) MarkMade(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	now := time.Now()
	tag, err := s.db.Exec(ctx, `
		UPDATE recipes SET last_made = $2, made_count = made_count + 1, updated_at = $2
		WHERE id = $1`, id, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark recipe made: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrRecipeNotFound
	}
	return s.Get(ctx, id)
}

// AppendFeedback stores one feedback event. Events are append-only.
func (s *RecipeService) AppendFeedback(ctx context.Context, event models.FeedbackEvent) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO feedback_events (id, recipe_id, user_id, taste, cleanup, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.RecipeID, event.UserID, event.Taste, event.Cleanup, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store feedback event: %w", err)
	}
	return nil
}

// Quality returns the recipe's quality metrics, served from the warm cache
// when the recipe hasn't changed since they were computed.
func (s *RecipeService) Quality(ctx context.Context, recipe *models.Recipe) models.QualityMetrics {
	key := qualityCacheKey(recipe)

	if s.warmCache != nil {
		if cached, err := s.warmCache.Get(ctx, key).Result(); err == nil {
			var metrics models.QualityMetrics
			if json.Unmarshal([]byte(cached), &metrics) == nil {
				return metrics
			}
		}
	}

	metrics := s.analyzer.Analyze(recipe)

	if s.warmCache != nil {
		if data, err := json.Marshal(metrics); err == nil {
			if err := s.warmCache.Set(ctx, key, data, s.qualityTTL).Err(); err != nil {
				s.logger.WithError(err).Debug("Failed to cache quality metrics")
			}
		}
	}

	return metrics
}

func (s *RecipeService) invalidateQuality(ctx context.Context, recipe *models.Recipe) {
	if s.warmCache == nil {
		return
	}
	if err := s.warmCache.Del(ctx, qualityCacheKey(recipe)).Err(); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate quality cache")
	}
}

func qualityCacheKey(recipe *models.Recipe) string {
	return fmt.Sprintf("quality:%s:%d", recipe.ID, recipe.UpdatedAt.Unix())
}

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(&r.ID, &r.Name, &r.Ingredients, &r.Steps, &r.PrepTimeMinutes,
		&r.CookTimeMinutes, &r.TotalTimeMinutes, &r.Servings, &r.Owner, &r.Difficulty,
		&r.LastMade, &r.MadeCount, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.FeedbackHistory = []models.FeedbackEvent{}
	return &r, nil
}

func (s *RecipeService) loadFeedback(ctx context.Context, recipeID uuid.UUID) ([]models.FeedbackEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, recipe_id, user_id, taste, cleanup, created_at
		FROM feedback_events WHERE recipe_id = $1 ORDER BY created_at`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback events: %w", err)
	}
	defer rows.Close()

	events := []models.FeedbackEvent{}
	for rows.Next() {
		var event models.FeedbackEvent
		if err := rows.Scan(&event.ID, &event.RecipeID, &event.UserID,
			&event.Taste, &event.Cleanup, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading feedback events: %w", err)
	}
	return events, nil
}
