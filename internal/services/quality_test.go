package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

func testKnowledgeBase(t *testing.T) *KnowledgeBase {
	t.Helper()
	kbCfg := config.DefaultKnowledge()
	kb, err := NewKnowledgeBase(&kbCfg)
	require.NoError(t, err)
	return kb
}

func TestNewKnowledgeBase_EmptyVocabulary(t *testing.T) {
	kbCfg := config.DefaultKnowledge()
	kbCfg.CookingMethods = nil

	_, err := NewKnowledgeBase(&kbCfg)
	require.Error(t, err)

	var cerr *models.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "knowledge", cerr.Component)
}

func TestQualityAnalyzer_Analyze(t *testing.T) {
	analyzer := NewQualityAnalyzer(testKnowledgeBase(t), testLogger())

	t.Run("well-formed recipe scores high", func(t *testing.T) {
		recipe := &models.Recipe{
			Name: "Roast Chicken",
			Ingredients: []string{
				"1 pound chicken",
				"2 cups white rice",
				"3 cloves garlic",
			},
			Steps: []string{
				"Roast the chicken in the oven at 400 degrees for 45 minutes.",
				"Simmer the rice in a pot until tender.",
				"Sauté the garlic in a pan for 2 minutes.",
			},
			PrepTimeMinutes: 15,
			CookTimeMinutes: 45,
			Servings:        4,
		}

		m := analyzer.Analyze(recipe)

		assert.Equal(t, 1.0, m.Completeness)
		assert.Equal(t, 1.0, m.InstructionClarity)
		assert.Equal(t, 1.0, m.IngredientValidity)
		assert.Equal(t, 1.0, m.TimingValidity)
		assert.Equal(t, 1.0, m.TemperatureValidity)
		// 3 ingredients / 4 servings = 0.75, below half the expected 2/serving
		assert.Equal(t, 0.5, m.PortionConsistency)
		assert.InDelta(t, 0.95, m.Overall, 1e-9)
		assert.True(t, m.IsHighQuality())
	})

	t.Run("sub-scores and overall stay in unit range", func(t *testing.T) {
		recipes := []*models.Recipe{
			{Name: "Empty-ish", Ingredients: []string{"stuff"}, Steps: []string{"Do it."}, Servings: 1},
			{Name: "Implausible", Ingredients: []string{"1 cup mystery"}, Steps: []string{"Bake at 9000 degrees for 2 minutes."}, PrepTimeMinutes: 700, CookTimeMinutes: 800, Servings: 500},
			{Name: "Big", Ingredients: make([]string, 40), Steps: make([]string, 30), PrepTimeMinutes: 30, CookTimeMinutes: 60, Servings: 2},
		}

		for _, r := range recipes {
			m := analyzer.Analyze(r)
			for name, score := range map[string]float64{
				"completeness": m.Completeness,
				"clarity":      m.InstructionClarity,
				"ingredients":  m.IngredientValidity,
				"timing":       m.TimingValidity,
				"temperature":  m.TemperatureValidity,
				"portions":     m.PortionConsistency,
				"overall":      m.Overall,
			} {
				assert.GreaterOrEqual(t, score, 0.0, "%s for %s", name, r.Name)
				assert.LessOrEqual(t, score, 1.0, "%s for %s", name, r.Name)
			}
		}
	})

	t.Run("absent timing is penalized not excused", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "No Times",
			Ingredients: []string{"1 cup flour"},
			Steps:       []string{"Mix."},
			Servings:    2,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 0.0, m.TimingValidity)
	})

	t.Run("lone claimed total is bounds checked", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:             "Total Only",
			Ingredients:      []string{"1 cup flour"},
			Steps:            []string{"Mix."},
			TotalTimeMinutes: 45,
			Servings:         2,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 1.0, m.TimingValidity)

		recipe.TotalTimeMinutes = 9000
		m = analyzer.Analyze(recipe)
		assert.Equal(t, 0.0, m.TimingValidity)
	})

	t.Run("claimed total within tolerance passes", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:             "Totaled",
			Ingredients:      []string{"1 cup flour"},
			Steps:            []string{"Mix."},
			PrepTimeMinutes:  20,
			CookTimeMinutes:  40,
			TotalTimeMinutes: 65, // within the 10 minute tolerance of 60
			Servings:         2,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 1.0, m.TimingValidity)
	})

	t.Run("claimed total outside tolerance fails that check", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:             "Fibbed",
			Ingredients:      []string{"1 cup flour"},
			Steps:            []string{"Mix."},
			PrepTimeMinutes:  20,
			CookTimeMinutes:  40,
			TotalTimeMinutes: 120,
			Servings:         2,
		}

		m := analyzer.Analyze(recipe)
		assert.InDelta(t, 2.0/3.0, m.TimingValidity, 1e-9)
	})

	t.Run("no temperature mentions defaults to full score", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Cold Dish",
			Ingredients: []string{"1 cup yogurt"},
			Steps:       []string{"Stir and chill."},
			Servings:    2,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 1.0, m.TemperatureValidity)
	})

	t.Run("implausible temperature mention scores zero", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Inferno",
			Ingredients: []string{"1 cup flour"},
			Steps:       []string{"Bake at 900 degrees."},
			Servings:    2,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 0.0, m.TemperatureValidity)
	})

	t.Run("implausible servings zeroes portion consistency", func(t *testing.T) {
		recipe := &models.Recipe{
			Name:        "Banquet",
			Ingredients: []string{"1 cup flour"},
			Steps:       []string{"Mix."},
			Servings:    500,
		}

		m := analyzer.Analyze(recipe)
		assert.Equal(t, 0.0, m.PortionConsistency)
	})

	t.Run("ingredient validity requires name and measurement", func(t *testing.T) {
		recipe := &models.Recipe{
			Name: "Half Valid",
			Ingredients: []string{
				"2 cups bread flour", // known ingredient, parsable measurement
				"chicken",            // known ingredient, no measurement
				"1 cup plutonium",    // measurement, unknown ingredient
				"just vibes",         // neither
			},
			Steps:    []string{"Combine."},
			Servings: 2,
		}

		m := analyzer.Analyze(recipe)
		assert.InDelta(t, 0.25, m.IngredientValidity, 1e-9)
	})
}
