package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/services"
	"github.com/temcen/cravequest/internal/validation"
	"github.com/temcen/cravequest/pkg/models"
)

type FeedbackHandler struct {
	feedback        *services.FeedbackService
	recommendations *services.RecommendationService
	validator       *validation.SchemaValidator
	structValidator *validator.Validate
	logger          *logrus.Logger
}

func NewFeedbackHandler(feedback *services.FeedbackService, recommendations *services.RecommendationService,
	schemaValidator *validation.SchemaValidator, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback:        feedback,
		recommendations: recommendations,
		validator:       schemaValidator,
		structValidator: validator.New(),
		logger:          logger,
	}
}

// Submit records one taste/cleanup vote against a recipe. The vote adjusts
// the voter's coefficients, so their cached recommendation is dropped too.
func (h *FeedbackHandler) Submit(c *gin.Context) {
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

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Failed to read request body",
			},
		})
		return
	}

	if result := h.validator.ValidateFeedback(body); !result.Valid {
		h.logger.WithField("errors", result.Errors).Warn("Feedback payload failed schema validation")
		c.JSON(http.StatusBadRequest, result.ToAPIError())
		return
	}

	var req models.FeedbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_JSON",
				"message": "Invalid JSON format",
				"details": err.Error(),
			},
		})
		return
	}

	if err := h.structValidator.Struct(&req); err != nil {
		h.logger.WithError(err).Warn("Feedback validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Feedback validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	event, value, err := h.feedback.Submit(c.Request.Context(), recipeID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.recommendations.Invalidate(c.Request.Context(), req.UserID)

	h.logger.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"user_id":   req.UserID,
		"taste":     event.Taste.String(),
		"cleanup":   event.Cleanup.String(),
	}).Info("Feedback recorded")

	c.JSON(http.StatusCreated, gin.H{
		"event": event,
		"value": value,
	})
}

func (h *FeedbackHandler) writeError(c *gin.Context, err error) {
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
		h.logger.WithError(err).Error("Failed to record feedback")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": "Failed to record feedback",
			},
		})
	}
}
