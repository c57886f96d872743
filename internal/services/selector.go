package services

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/pkg/models"
)

// RecommendationSelector filters a candidate set by recency and by the user's
// allergy/dislike exclusions, then picks the highest-value survivor.
type RecommendationSelector struct {
	valueCalc     *ValueCalculator
	freshnessDays int
	logger        *logrus.Logger
	now           func() time.Time
}

func NewRecommendationSelector(valueCalc *ValueCalculator, freshnessDays int, logger *logrus.Logger) *RecommendationSelector {
	return &RecommendationSelector{
		valueCalc:     valueCalc,
		freshnessDays: freshnessDays,
		logger:        logger,
		now:           time.Now,
	}
}

// SelectBest returns the surviving candidate with the highest value, or nil
// when nothing survives filtering. Ties keep the first-encountered candidate:
// the scan preserves input order and only a strictly greater value wins.
// Recipes without feedback score 0 but still compete.
func (s *RecommendationSelector) SelectBest(candidates []*models.Recipe, u *models.UserProfile) *models.Recipe {
	var best *models.Recipe
	bestValue := 0.0

	for _, r := range candidates {
		if !s.madeLongEnoughAgo(r) {
			continue
		}
		if matchesAvoidance(r, u) {
			continue
		}

		value := s.valueCalc.ComputeValue(r, u)
		if best == nil || value > bestValue {
			best = r
			bestValue = value
		}
	}

	if best != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":   u.UserID,
			"recipe_id": best.ID,
			"value":     bestValue,
		}).Debug("Selected recommendation")
	}

	return best
}

// madeLongEnoughAgo keeps never-made recipes and recipes made more than the
// freshness window ago.
func (s *RecommendationSelector) madeLongEnoughAgo(r *models.Recipe) bool {
	if r.LastMade == nil {
		return true
	}
	days := int(s.now().Sub(*r.LastMade).Hours() / 24)
	return days > s.freshnessDays
}

// matchesAvoidance reports whether any ingredient line contains one of the
// user's allergies or dislikes, case-insensitively.
func matchesAvoidance(r *models.Recipe, u *models.UserProfile) bool {
	ingredients := strings.ToLower(strings.Join(r.Ingredients, " "))
	for _, term := range u.Allergies {
		if term != "" && strings.Contains(ingredients, strings.ToLower(term)) {
			return true
		}
	}
	for _, term := range u.Dislikes {
		if term != "" && strings.Contains(ingredients, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
