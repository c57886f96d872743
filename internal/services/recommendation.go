package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

// RecommendationService runs the selector over the stored recipe set and
// caches per-user results in the warm cache until new feedback invalidates
// them.
type RecommendationService struct {
	recipes   *RecipeService
	profiles  *ProfileService
	selector  *RecommendationSelector
	calc      *ValueCalculator
	warmCache *redis.Client
	ttl       time.Duration
	metrics   *Metrics
	logger    *logrus.Logger
}

func NewRecommendationService(recipes *RecipeService, profiles *ProfileService,
	selector *RecommendationSelector, calc *ValueCalculator, warmCache *redis.Client,
	caching config.CachingConfig, metrics *Metrics, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{
		recipes:   recipes,
		profiles:  profiles,
		selector:  selector,
		calc:      calc,
		warmCache: warmCache,
		ttl:       caching.RecommendationTTL,
		metrics:   metrics,
		logger:    logger,
	}
}

// Recommend picks the best candidate for the user. A response with a nil
// Recipe means nothing survived filtering; that is a valid answer, not an
// error.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID) (*models.RecommendationResponse, error) {
	cacheKey := recommendationCacheKey(userID)

	if s.warmCache != nil {
		if cached, err := s.warmCache.Get(ctx, cacheKey).Result(); err == nil {
			var resp models.RecommendationResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				s.metrics.RecommendationsServed.WithLabelValues("cache_hit").Inc()
				return &resp, nil
			}
		}
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}

	best := s.selector.SelectBest(candidates, profile)

	resp := &models.RecommendationResponse{}
	if best != nil {
		resp.Recipe = best
		resp.Value = s.calc.ComputeValue(best, profile)
		resp.Reason = recommendationReason(best)
		s.metrics.ValueComputations.Inc()
		s.metrics.RecommendationsServed.WithLabelValues("hit").Inc()
	} else {
		s.metrics.RecommendationsServed.WithLabelValues("empty").Inc()
	}

	if s.warmCache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.warmCache.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
				s.logger.WithError(err).Debug("Failed to cache recommendation")
			}
		}
	}

	return resp, nil
}

// Invalidate drops the cached recommendation after feedback or profile edits.
func (s *RecommendationService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.warmCache == nil {
		return
	}
	if err := s.warmCache.Del(ctx, recommendationCacheKey(userID)).Err(); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate recommendation cache")
	}
}

// Value computes the personalized value of one recipe for one user.
func (s *RecommendationService) Value(ctx context.Context, userID, recipeID uuid.UUID) (float64, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	recipe, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return 0, err
	}

	s.metrics.ValueComputations.Inc()
	return s.calc.ComputeValue(recipe, profile), nil
}

func recommendationReason(r *models.Recipe) string {
	for _, event := range r.FeedbackHistory {
		if event.Taste >= models.TasteLove {
			return "A favorite worth making again"
		}
	}
	if len(r.FeedbackHistory) == 0 {
		return "Something new to try"
	}
	return "Top pick for your taste"
}

func recommendationCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("recommendation:%s", userID)
}
