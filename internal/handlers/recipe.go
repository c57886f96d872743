package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/services"
	"github.com/temcen/cravequest/internal/validation"
	"github.com/temcen/cravequest/pkg/models"
)

type RecipeHandler struct {
	recipes   *services.RecipeService
	validator *validation.SchemaValidator
	metrics   *services.Metrics
	logger    *logrus.Logger
}

func NewRecipeHandler(recipes *services.RecipeService, validator *validation.SchemaValidator,
	metrics *services.Metrics, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Ingest accepts a scraped or hand-entered recipe, normalizes and scores it,
// and returns the stored recipe with its quality breakdown.
func (h *RecipeHandler) Ingest(c *gin.Context) {
	raw, ok := h.bindScrapedRecipe(c)
	if !ok {
		return
	}

	recipe, quality, err := h.recipes.Ingest(c.Request.Context(), *raw)
	if err != nil {
		h.writeServiceError(c, err, "Failed to ingest recipe")
		return
	}

	h.metrics.RecipesIngested.Inc()
	h.metrics.QualityScores.Observe(quality.Overall)

	h.logger.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"name":      recipe.Name,
		"quality":   quality.Overall,
	}).Info("Recipe ingested")

	c.JSON(http.StatusCreated, models.RecipeResponse{Recipe: recipe, Quality: quality})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "Failed to load recipe")
		return
	}

	quality := h.recipes.Quality(c.Request.Context(), recipe)
	c.JSON(http.StatusOK, models.RecipeResponse{Recipe: recipe, Quality: quality})
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "Failed to list recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// Replace re-runs normalization and scoring over a new raw payload while
// keeping the recipe's identity and feedback history.
func (h *RecipeHandler) Replace(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	raw, ok := h.bindScrapedRecipe(c)
	if !ok {
		return
	}

	recipe, quality, err := h.recipes.Replace(c.Request.Context(), id, *raw)
	if err != nil {
		h.writeServiceError(c, err, "Failed to replace recipe")
		return
	}

	h.metrics.QualityScores.Observe(quality.Overall)
	c.JSON(http.StatusOK, models.RecipeResponse{Recipe: recipe, Quality: quality})
}

// MarkMade records that the dish was cooked now, bumping the made count and
// the freshness timestamp used by recommendation filtering.
func (h *RecipeHandler) MarkMade(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.MarkMade(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "Failed to mark recipe as made")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":  recipe.ID,
		"made_count": recipe.MadeCount,
		"last_made":  recipe.LastMade,
	})
}

func (h *RecipeHandler) Quality(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "Failed to load recipe")
		return
	}

	quality := h.recipes.Quality(c.Request.Context(), recipe)
	c.JSON(http.StatusOK, gin.H{
		"recipe_id":    recipe.ID,
		"quality":      quality,
		"high_quality": quality.IsHighQuality(),
	})
}

func (h *RecipeHandler) recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_RECIPE_ID",
				"message": "Recipe ID must be a valid UUID",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindScrapedRecipe runs schema validation over the raw body before binding,
// so clients get field-level errors instead of a bare unmarshal failure.
func (h *RecipeHandler) bindScrapedRecipe(c *gin.Context) (*models.ScrapedRecipe, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Failed to read request body",
			},
		})
		return nil, false
	}

	if result := h.validator.ValidateScrapedRecipe(body); !result.Valid {
		h.logger.WithField("errors", result.Errors).Warn("Recipe payload failed schema validation")
		c.JSON(http.StatusBadRequest, result.ToAPIError())
		return nil, false
	}

	var raw models.ScrapedRecipe
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_JSON",
				"message": "Invalid JSON format",
				"details": err.Error(),
			},
		})
		return nil, false
	}

	return &raw, true
}

func (h *RecipeHandler) writeServiceError(c *gin.Context, err error, logMsg string) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, services.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "RECIPE_NOT_FOUND",
				"message": "Recipe not found",
			},
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": validationErr.Message,
				"details": gin.H{"field": validationErr.Field},
			},
		})
	default:
		h.logger.WithError(err).Error(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": logMsg,
			},
		})
	}
}
