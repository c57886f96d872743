package services

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/temcen/cravequest/pkg/models"
)

// ValueCalculator turns a recipe plus a user profile into a single comparable
// value number. Taste pushes the value up; risk, time, effort, and sacrifice
// drag it down, each weighted by the user's personal coefficient.
type ValueCalculator struct {
	logger *logrus.Logger
}

func NewValueCalculator(logger *logrus.Logger) *ValueCalculator {
	return &ValueCalculator{logger: logger}
}

// ComputeValue returns 0.0 for recipes with no feedback history: value is
// undefined without at least one taste vote. Coefficients are read at call
// time so a just-updated profile is reflected immediately.
//
// Every factor is floored at 1 and every coefficient at 0.1, which keeps the
// denominator strictly positive without an explicit guard. Changing any of
// the floors breaks that guarantee.
func (vc *ValueCalculator) ComputeValue(r *models.Recipe, u *models.UserProfile) float64 {
	if len(r.FeedbackHistory) == 0 {
		return 0.0
	}

	tasteVotes := make([]float64, len(r.FeedbackHistory))
	cleanupVotes := make([]float64, len(r.FeedbackHistory))
	for i, event := range r.FeedbackHistory {
		tasteVotes[i] = float64(event.Taste) + 1     // [1,7]
		cleanupVotes[i] = float64(event.Cleanup) + 1 // [1,4]
	}
	tasteAvg := stat.Mean(tasteVotes, nil)
	cleanupAvg := stat.Mean(cleanupVotes, nil)

	skillFactor := skillFactorFor(u.CookAbility)
	familiarity := maxFloat(1, 4-float64(r.MadeCount))
	risk := clamp(1, 4, (skillFactor+minFloat(4, r.Difficulty/2)+familiarity-1)/3)

	timeFactor := timeBucket(r.TimePerServing())

	stepFactor := minFloat(4, float64(len(r.Steps))/3)
	effort := clamp(1, 4, (stepFactor+cleanupAvg-1)/2)

	ingredFactor := minFloat(4, r.IngredientsPerServing()/2)
	sacrifice := maxFloat(1, ingredFactor)

	c := u.Coefficients
	denominator := (c.Risk * risk) * (c.Time * timeFactor) * (c.Effort * effort) * (c.Sacrifice * sacrifice)
	return (c.Taste * tasteAvg) / denominator
}

func skillFactorFor(ability models.CookAbility) float64 {
	switch ability {
	case models.AbilityBeginner:
		return 4
	case models.AbilityChef:
		return 1
	default:
		return 2
	}
}

// timeBucket maps minutes-per-serving onto the 1..4 scale with inclusive
// upper bounds at 20, 45, and 90.
func timeBucket(minutesPerServing float64) float64 {
	switch {
	case minutesPerServing <= 20:
		return 1
	case minutesPerServing <= 45:
		return 2
	case minutesPerServing <= 90:
		return 3
	default:
		return 4
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
