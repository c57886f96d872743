package handlers

import (
	"encoding/json"
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

type ProfileHandler struct {
	profiles        *services.ProfileService
	recommendations *services.RecommendationService
	validator       *validation.SchemaValidator
	structValidator *validator.Validate
	logger          *logrus.Logger
}

func NewProfileHandler(profiles *services.ProfileService, recommendations *services.RecommendationService,
	schemaValidator *validation.SchemaValidator, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:        profiles,
		recommendations: recommendations,
		validator:       schemaValidator,
		structValidator: validator.New(),
		logger:          logger,
	}
}

// Get returns the user's profile, creating a default one on first sight.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load user profile")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PROFILE_LOAD_FAILED",
				"message": "Failed to load user profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update replaces the declarative part of a profile (skill, allergies,
// dislikes). Learned coefficients only move through feedback, never here.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
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

	if result := h.validator.ValidateProfileUpdate(body); !result.Valid {
		h.logger.WithField("errors", result.Errors).Warn("Profile payload failed schema validation")
		c.JSON(http.StatusBadRequest, result.ToAPIError())
		return
	}

	var req models.ProfileUpdateRequest
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
		h.logger.WithError(err).Warn("Profile validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Profile validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update user profile")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PROFILE_UPDATE_FAILED",
				"message": "Failed to update user profile",
			},
		})
		return
	}

	// Allergy and dislike changes alter what the selector may return.
	h.recommendations.Invalidate(c.Request.Context(), userID)

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) userID(c *gin.Context) (uuid.UUID, bool) {
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
