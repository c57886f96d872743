package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/internal/services"
	"github.com/temcen/cravequest/internal/validation"
)

type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Recipe         *RecipeHandler
	Feedback       *FeedbackHandler
	Recommendation *RecommendationHandler
	Profile        *ProfileHandler
}

func New(cfg *config.Config, logger *logrus.Logger, services *services.Services) (*Handlers, error) {
	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Auth:           NewAuthHandler(services.Auth, cfg.Auth.TokenTTL, logger),
		Recipe:         NewRecipeHandler(services.Recipes, validator, services.Metrics, logger),
		Feedback:       NewFeedbackHandler(services.Feedback, services.Recommendation, validator, logger),
		Recommendation: NewRecommendationHandler(services.Recommendation, logger),
		Profile:        NewProfileHandler(services.Profiles, services.Recommendation, validator, logger),
	}, nil
}
