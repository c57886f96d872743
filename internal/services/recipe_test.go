package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

func newTestRecipeService(t *testing.T, mockDB pgxmock.PgxPoolIface) *RecipeService {
	t.Helper()
	logger := testLogger()
	return NewRecipeService(mockDB, nil, NewNormalizer(logger),
		NewQualityAnalyzer(testKnowledgeBase(t), logger), config.CachingConfig{}, logger)
}

func recipeRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "ingredients", "steps", "prep_time_minutes", "cook_time_minutes",
		"total_time_minutes", "servings", "owner", "difficulty", "last_made", "made_count",
		"created_at", "updated_at",
	})
}

func feedbackRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "recipe_id", "user_id", "taste", "cleanup", "created_at"})
}

func TestRecipeService_Ingest(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	mockDB.ExpectExec("INSERT INTO recipes").
		WithArgs(pgxmock.AnyArg(), "Pancakes", pgxmock.AnyArg(), pgxmock.AnyArg(),
			10, 15, 0, 4, "Unknown", 1.0, 0, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	recipe, quality, err := service.Ingest(context.Background(), models.ScrapedRecipe{
		Name:        "  Pancakes  ",
		Ingredients: []string{"2 cups bread flour", "", "1 egg"},
		Steps:       []string{"Mix the batter", "Cook until golden"},
		PrepTimeRaw: "10 min",
		CookTimeRaw: "15 min",
	})

	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Len(t, recipe.Ingredients, 2)
	assert.Greater(t, quality.Overall, 0.0)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_Ingest_InvalidInput(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	// Normalization fails before any SQL runs.
	_, _, err = service.Ingest(context.Background(), models.ScrapedRecipe{
		Name:  "No ingredients",
		Steps: []string{"Stir"},
	})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ingredients", validationErr.Field)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_Get(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	recipeID := uuid.New()
	now := time.Now()

	mockDB.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(recipeID).
		WillReturnRows(recipeRows().AddRow(
			recipeID, "Chili", []string{"2 cups beans"}, []string{"Simmer the beans"},
			15, 60, 0, 4, "Sam", 0.5, nil, 2, now, now))

	eventID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM feedback_events WHERE recipe_id").
		WithArgs(recipeID).
		WillReturnRows(feedbackRows().AddRow(
			eventID, recipeID, testUserID, models.TasteLove, models.CleanupLight, now))

	recipe, err := service.Get(context.Background(), recipeID)

	require.NoError(t, err)
	assert.Equal(t, "Chili", recipe.Name)
	assert.Equal(t, 2, recipe.MadeCount)
	require.Len(t, recipe.FeedbackHistory, 1)
	assert.Equal(t, models.TasteLove, recipe.FeedbackHistory[0].Taste)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_Get_NotFound(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	recipeID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(recipeID).
		WillReturnError(pgx.ErrNoRows)

	_, err = service.Get(context.Background(), recipeID)

	assert.ErrorIs(t, err, ErrRecipeNotFound)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_Replace_KeepsIdentityAndHistory(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	recipeID := uuid.New()
	created := time.Now().Add(-48 * time.Hour)
	lastMade := created.Add(24 * time.Hour)

	mockDB.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(recipeID).
		WillReturnRows(recipeRows().AddRow(
			recipeID, "Old Chili", []string{"1 can beans"}, []string{"Heat the beans"},
			5, 20, 0, 2, "Sam", 0.5, &lastMade, 3, created, created))

	eventID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM feedback_events WHERE recipe_id").
		WithArgs(recipeID).
		WillReturnRows(feedbackRows().AddRow(
			eventID, recipeID, testUserID, models.TasteCrave, models.CleanupNone, created))

	mockDB.ExpectExec("UPDATE recipes SET").
		WithArgs(recipeID, "New Chili", pgxmock.AnyArg(), pgxmock.AnyArg(),
			10, 45, 0, 6, "Unknown", 1.5, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	recipe, quality, err := service.Replace(context.Background(), recipeID, models.ScrapedRecipe{
		Name:        "New Chili",
		Ingredients: []string{"2 cups beans", "1 onion"},
		Steps:       []string{"Chop the onion", "Simmer the beans", "Season and serve"},
		PrepTimeRaw: "10 min",
		CookTimeRaw: "45 min",
		ServingsRaw: "serves 6",
	})

	require.NoError(t, err)
	assert.Equal(t, recipeID, recipe.ID)
	assert.Equal(t, created, recipe.CreatedAt)
	assert.Equal(t, 3, recipe.MadeCount)
	require.Len(t, recipe.FeedbackHistory, 1)
	assert.Equal(t, models.TasteCrave, recipe.FeedbackHistory[0].Taste)
	assert.Greater(t, quality.Overall, 0.0)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_MarkMade_NotFound(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	recipeID := uuid.New()
	mockDB.ExpectExec("UPDATE recipes SET last_made").
		WithArgs(recipeID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err = service.MarkMade(context.Background(), recipeID)

	assert.ErrorIs(t, err, ErrRecipeNotFound)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecipeService_AppendFeedback(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecipeService(t, mockDB)

	event := models.FeedbackEvent{
		ID:        uuid.New(),
		RecipeID:  uuid.New(),
		UserID:    testUserID,
		Taste:     models.TasteMeh,
		Cleanup:   models.CleanupHeavy,
		CreatedAt: time.Now(),
	}

	mockDB.ExpectExec("INSERT INTO feedback_events").
		WithArgs(event.ID, event.RecipeID, event.UserID, event.Taste, event.Cleanup, event.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, service.AppendFeedback(context.Background(), event))
	require.NoError(t, mockDB.ExpectationsWereMet())
}
