package services

import (
	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/internal/database"
	"github.com/temcen/cravequest/internal/messaging"

	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth           *AuthService
	Health         *HealthService
	RateLimit      *RateLimitService
	FeedbackBus    *messaging.FeedbackBus
	Knowledge      *KnowledgeBase
	Normalizer     *Normalizer
	Quality        *QualityAnalyzer
	Value          *ValueCalculator
	Learner        *PreferenceLearner
	Selector       *RecommendationSelector
	Recipes        *RecipeService
	Profiles       *ProfileService
	Feedback       *FeedbackService
	Recommendation *RecommendationService
	Metrics        *Metrics
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	authService := NewAuthService(cfg, logger, db.Redis.Hot)
	rateLimitService := NewRateLimitService(cfg, logger, db.Redis.Hot)

	// The knowledge base is validated at startup so a bad vocabulary file
	// fails the deploy instead of silently zeroing quality scores.
	knowledge, err := NewKnowledgeBase(&cfg.Knowledge)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()
	feedbackBus := messaging.NewFeedbackBus(cfg, logger)
	healthService := NewHealthService(cfg, logger, db, feedbackBus)

	normalizer := NewNormalizer(logger)
	quality := NewQualityAnalyzer(knowledge, logger)
	value := NewValueCalculator(logger)
	learner := NewPreferenceLearner(logger)
	selector := NewRecommendationSelector(value, cfg.Recommendation.FreshnessDays, logger)

	recipes := NewRecipeService(db.PG, db.Redis.Warm, normalizer, quality, cfg.Recommendation.Caching, logger)
	profiles := NewProfileService(db.PG, logger)
	feedback := NewFeedbackService(recipes, profiles, learner, value, feedbackBus, metrics, logger)
	recommendation := NewRecommendationService(recipes, profiles, selector, value, db.Redis.Warm, cfg.Recommendation.Caching, metrics, logger)

	return &Services{
		Auth:           authService,
		Health:         healthService,
		RateLimit:      rateLimitService,
		FeedbackBus:    feedbackBus,
		Knowledge:      knowledge,
		Normalizer:     normalizer,
		Quality:        quality,
		Value:          value,
		Learner:        learner,
		Selector:       selector,
		Recipes:        recipes,
		Profiles:       profiles,
		Feedback:       feedback,
		Recommendation: recommendation,
		Metrics:        metrics,
	}, nil
}
