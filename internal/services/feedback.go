package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/pkg/models"
)

// feedbackPublisher decouples the service from the Kafka bus for testing.
type feedbackPublisher interface {
	PublishFeedback(ctx context.Context, event models.FeedbackEvent, recipeName string, value float64) error
}

// FeedbackService is the serialization point for feedback submissions. The
// history append and the coefficient update are a read-modify-write pair on
// shared state, so all submissions for one user run under that user's lock:
// either both mutations land or neither does.
type FeedbackService struct {
	recipes  *RecipeService
	profiles *ProfileService
	learner  *PreferenceLearner
	calc     *ValueCalculator
	bus      feedbackPublisher
	metrics  *Metrics
	logger   *logrus.Logger

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func NewFeedbackService(recipes *RecipeService, profiles *ProfileService, learner *PreferenceLearner,
	calc *ValueCalculator, bus feedbackPublisher, metrics *Metrics, logger *logrus.Logger) *FeedbackService {
	return &FeedbackService{
		recipes:   recipes,
		profiles:  profiles,
		learner:   learner,
		calc:      calc,
		bus:       bus,
		metrics:   metrics,
		logger:    logger,
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Submit records one taste/cleanup vote: the event is appended to the
// recipe's history, the user's coefficients are adjusted and persisted, and
// the event is fanned out to Kafka. Returns the event and the recipe's value
// under the freshly updated profile.
func (s *FeedbackService) Submit(ctx context.Context, recipeID uuid.UUID, req models.FeedbackRequest) (*models.FeedbackEvent, float64, error) {
	taste, err := models.ParseTasteRank(req.Taste)
	if err != nil {
		return nil, 0, &models.ValidationError{Field: "taste", Message: err.Error()}
	}
	cleanup, err := models.ParseCleanupRank(req.Cleanup)
	if err != nil {
		return nil, 0, &models.ValidationError{Field: "cleanup", Message: err.Error()}
	}

	lock := s.lockFor(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	recipe, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, 0, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, 0, err
	}

	event := models.FeedbackEvent{
		ID:        uuid.New(),
		RecipeID:  recipeID,
		UserID:    req.UserID,
		Taste:     taste,
		Cleanup:   cleanup,
		CreatedAt: time.Now(),
	}

	if err := s.recipes.AppendFeedback(ctx, event); err != nil {
		return nil, 0, err
	}
	recipe.FeedbackHistory = append(recipe.FeedbackHistory, event)

	s.learner.ApplyFeedback(profile, recipe, event)
	if err := s.profiles.SaveCoefficients(ctx, profile); err != nil {
		// The event is stored but the learning step failed; surface that so
		// the caller retries the whole submission rather than half of it.
		return nil, 0, fmt.Errorf("feedback stored but coefficient update failed: %w", err)
	}

	value := s.calc.ComputeValue(recipe, profile)

	s.metrics.FeedbackProcessed.WithLabelValues(taste.String()).Inc()
	s.metrics.CoefficientAdjustments.Inc()
	s.metrics.ValueComputations.Inc()

	if s.bus != nil {
		if err := s.bus.PublishFeedback(ctx, event, recipe.Name, value); err != nil {
			s.logger.WithError(err).WithField("event_id", event.ID).Warn("Feedback fan-out failed")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"recipe_id": recipeID,
		"user_id":   req.UserID,
		"taste":     taste.String(),
		"cleanup":   cleanup.String(),
		"value":     value,
	}).Info("Recorded feedback")

	return &event, value, nil
}

func (s *FeedbackService) lockFor(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}
