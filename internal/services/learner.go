package services

import (
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/pkg/models"
)

// Coefficient update steps and the rank/attribute thresholds that gate them.
const (
	tasteStep  = 0.05
	factorStep = 0.1

	tasteLowBound  = models.TasteLike // below this, the dislike branch fires
	tasteHighBound = models.TasteLove // above this, taste weight grows

	slowTimePerServing   = 45.0
	manySteps            = 10
	manyIngredPerServing = 5.0
)

// PreferenceLearner nudges a user's coefficients after each feedback event.
// The taste branch and the cleanup branch are independent: a disliked, messy
// recipe takes the effort hit twice. Every coefficient stays inside
// [0.1, 1.0] after every update.
//
// The caller owns serialization: updates are read-modify-write on the shared
// profile and must be applied exactly once per event.
type PreferenceLearner struct {
	logger *logrus.Logger
}

func NewPreferenceLearner(logger *logrus.Logger) *PreferenceLearner {
	return &PreferenceLearner{logger: logger}
}

func (pl *PreferenceLearner) ApplyFeedback(u *models.UserProfile, r *models.Recipe, event models.FeedbackEvent) {
	before := u.Coefficients
	c := &u.Coefficients

	if event.Taste < tasteLowBound {
		if r.TimePerServing() > slowTimePerServing {
			c.Time = lowerClamped(c.Time, factorStep)
		}
		if len(r.Steps) > manySteps {
			c.Effort = lowerClamped(c.Effort, factorStep)
		}
		if r.IngredientsPerServing() > manyIngredPerServing {
			c.Sacrifice = lowerClamped(c.Sacrifice, factorStep)
		}
		c.Taste = lowerClamped(c.Taste, tasteStep)
	} else if event.Taste > tasteHighBound {
		c.Taste = raiseClamped(c.Taste, tasteStep)
	}

	if event.Cleanup > models.CleanupLight {
		c.Effort = lowerClamped(c.Effort, factorStep)
	}

	if *c != before {
		pl.logger.WithFields(logrus.Fields{
			"user_id":   u.UserID,
			"recipe_id": r.ID,
			"taste":     event.Taste.String(),
			"cleanup":   event.Cleanup.String(),
			"before":    before,
			"after":     *c,
		}).Debug("Adjusted preference coefficients")
	}
}

func lowerClamped(v, step float64) float64 {
	v -= step
	if v < models.CoefficientFloor {
		return models.CoefficientFloor
	}
	return v
}

func raiseClamped(v, step float64) float64 {
	v += step
	if v > models.CoefficientCeil {
		return models.CoefficientCeil
	}
	return v
}
