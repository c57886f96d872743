package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_ScrapedRecipe(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		result := sv.ValidateScrapedRecipe(`{
			"name": "Pancakes",
			"ingredients": ["2 cups flour", "1 egg"],
			"steps": ["Mix", "Cook"],
			"prep_time": "PT10M",
			"servings": "serves 4"
		}`)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("numeric servings accepted", func(t *testing.T) {
		result := sv.ValidateScrapedRecipe(`{
			"name": "Pancakes",
			"ingredients": ["2 cups flour", "1 egg"],
			"steps": ["Mix", "Cook"],
			"servings": 4
		}`)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("missing required fields", func(t *testing.T) {
		result := sv.ValidateScrapedRecipe(`{"name": "Empty"}`)
		require.False(t, result.Valid)

		apiErr := result.ToAPIError()
		require.NotNil(t, apiErr)
		assert.Contains(t, apiErr, "error")
	})

	t.Run("empty ingredient list rejected", func(t *testing.T) {
		result := sv.ValidateScrapedRecipe(`{
			"name": "Air",
			"ingredients": [],
			"steps": ["Breathe"]
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		result := sv.ValidateScrapedRecipe(`{
			"name": "Pancakes",
			"ingredients": ["flour"],
			"steps": ["Mix"],
			"rating": 5
		}`)
		assert.False(t, result.Valid)
	})
}

func TestSchemaValidator_Feedback(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid vote", func(t *testing.T) {
		result := sv.ValidateFeedback(`{
			"user_id": "a2b1f8c4-3d5e-4f6a-8b9c-0d1e2f3a4b5c",
			"taste": "Love",
			"cleanup": "Light"
		}`)
		assert.True(t, result.Valid)
	})

	t.Run("rank outside vocabulary", func(t *testing.T) {
		result := sv.ValidateFeedback(`{
			"user_id": "a2b1f8c4-3d5e-4f6a-8b9c-0d1e2f3a4b5c",
			"taste": "Delicious",
			"cleanup": "Light"
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("malformed user id", func(t *testing.T) {
		result := sv.ValidateFeedback(`{
			"user_id": "not-a-uuid",
			"taste": "Love",
			"cleanup": "Light"
		}`)
		assert.False(t, result.Valid)
	})
}

func TestSchemaValidator_ProfileUpdate(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid update", func(t *testing.T) {
		result := sv.ValidateProfileUpdate(`{
			"cook_ability": "Home Cook",
			"allergies": ["peanuts"],
			"dislikes": [],
			"novelty": 0.7,
			"nostalgia": 0.3
		}`)
		assert.True(t, result.Valid)
	})

	t.Run("unknown skill level", func(t *testing.T) {
		result := sv.ValidateProfileUpdate(`{"cook_ability": "Wizard"}`)
		assert.False(t, result.Valid)
	})

	t.Run("novelty out of range", func(t *testing.T) {
		result := sv.ValidateProfileUpdate(`{"cook_ability": "Chef", "novelty": 1.5}`)
		assert.False(t, result.Valid)
	})
}
