package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/services"
)

type RecommendationHandler struct {
	recommendations *services.RecommendationService
	logger          *logrus.Logger
}

func NewRecommendationHandler(recommendations *services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		logger:          logger,
	}
}

// Get returns the single best recipe for a user. An empty recommendation
// (no recipe survived filtering) is a 200 with a null recipe, not an error.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	rec, err := h.recommendations.Recommend(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate recommendation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_FAILED",
				"message": "Failed to generate recommendation",
			},
		})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Value returns one recipe's personalized value score for a user.
func (h *RecommendationHandler) Value(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_RECIPE_ID",
				"message": "Recipe ID must be a valid UUID",
			},
		})
		return
	}

	value, err := h.recommendations.Value(c.Request.Context(), userID, recipeID)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "RECIPE_NOT_FOUND",
					"message": "Recipe not found",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to compute recipe value")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "VALUE_COMPUTATION_FAILED",
				"message": "Failed to compute recipe value",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id": recipeID,
		"user_id":   userID,
		"value":     value,
	})
}

func (h *RecommendationHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "User ID must be a valid UUID",
			},
		})
		return uuid.Nil, false
	}
	return userID, true
}
