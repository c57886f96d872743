package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temcen/cravequest/pkg/models"
)

func TestPreferenceLearner_ApplyFeedback(t *testing.T) {
	pl := NewPreferenceLearner(testLogger())

	t.Run("hated messy recipe hits every lever", func(t *testing.T) {
		// 50 min/serving, 12 steps, 6 ingredients/serving, Heavy cleanup:
		// all four dislike adjustments fire, and the cleanup branch drops
		// effort a second time.
		recipe := &models.Recipe{
			Name:            "Ordeal",
			Ingredients:     make([]string, 12),
			Steps:           make([]string, 12),
			PrepTimeMinutes: 40,
			CookTimeMinutes: 60,
			Servings:        2,
		}
		user := models.NewUserProfile(testUserID)

		pl.ApplyFeedback(user, recipe, feedbackOf(models.TasteHate, models.CleanupHeavy))

		c := user.Coefficients
		assert.InDelta(t, 0.95, c.Taste, 1e-9)
		assert.InDelta(t, 1.0, c.Risk, 1e-9)
		assert.InDelta(t, 0.9, c.Time, 1e-9)
		assert.InDelta(t, 0.8, c.Effort, 1e-9) // dislike branch + cleanup branch
		assert.InDelta(t, 0.9, c.Sacrifice, 1e-9)
	})

	t.Run("quick simple disliked recipe only lowers taste", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:            "Bland",
			Ingredients:     []string{"a", "b"},
			Steps:           []string{"one", "two"},
			PrepTimeMinutes: 5,
			CookTimeMinutes: 10,
			Servings:        2,
		}
		user := models.NewUserProfile(testUserID)

		pl.ApplyFeedback(user, recipe, feedbackOf(models.TasteMeh, models.CleanupLight))

		c := user.Coefficients
		assert.InDelta(t, 0.95, c.Taste, 1e-9)
		assert.InDelta(t, 1.0, c.Time, 1e-9)
		assert.InDelta(t, 1.0, c.Effort, 1e-9)
		assert.InDelta(t, 1.0, c.Sacrifice, 1e-9)
	})

	t.Run("like and love leave taste untouched", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Fine",
			Ingredients: []string{"a"},
			Steps:       []string{"one"},
			Servings:    1,
		}

		for _, taste := range []models.TasteRank{models.TasteLike, models.TasteLove} {
			user := models.NewUserProfile(testUserID)
			pl.ApplyFeedback(user, recipe, feedbackOf(taste, models.CleanupNone))
			assert.InDelta(t, 1.0, user.Coefficients.Taste, 1e-9, "taste %s", taste)
		}
	})

	t.Run("craved recipe raises taste up to the ceiling", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Star",
			Ingredients: []string{"a"},
			Steps:       []string{"one"},
			Servings:    1,
		}
		user := models.NewUserProfile(testUserID)
		user.Coefficients.Taste = 0.8

		pl.ApplyFeedback(user, recipe, feedbackOf(models.TasteCrave, models.CleanupNone))
		assert.InDelta(t, 0.85, user.Coefficients.Taste, 1e-9)

		user.Coefficients.Taste = 0.98
		pl.ApplyFeedback(user, recipe, feedbackOf(models.TasteLegendary, models.CleanupNone))
		assert.InDelta(t, 1.0, user.Coefficients.Taste, 1e-9)
	})

	t.Run("moderate cleanup alone lowers effort", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Messy Treat",
			Ingredients: []string{"a"},
			Steps:       []string{"one"},
			Servings:    1,
		}
		user := models.NewUserProfile(testUserID)

		pl.ApplyFeedback(user, recipe, feedbackOf(models.TasteLegendary, models.CleanupModerate))

		assert.InDelta(t, 0.9, user.Coefficients.Effort, 1e-9)
	})

	t.Run("coefficients stay clamped under any feedback sequence", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:            "Gauntlet",
			Ingredients:     make([]string, 20),
			Steps:           make([]string, 15),
			PrepTimeMinutes: 60,
			CookTimeMinutes: 120,
			Servings:        2,
		}
		user := models.NewUserProfile(testUserID)
		rng := rand.New(rand.NewSource(42))

		for i := 0; i < 500; i++ {
			event := feedbackOf(
				models.TasteRank(rng.Intn(7)),
				models.CleanupRank(rng.Intn(4)),
			)
			pl.ApplyFeedback(user, recipe, event)

			for name, v := range map[string]float64{
				"taste":     user.Coefficients.Taste,
				"risk":      user.Coefficients.Risk,
				"time":      user.Coefficients.Time,
				"effort":    user.Coefficients.Effort,
				"sacrifice": user.Coefficients.Sacrifice,
			} {
				assert.GreaterOrEqual(t, v, models.CoefficientFloor, "%s after event %d", name, i)
				assert.LessOrEqual(t, v, models.CoefficientCeil, "%s after event %d", name, i)
			}
		}
	})
}
