package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

func newTestRecommendationService(t *testing.T, mockDB pgxmock.PgxPoolIface) *RecommendationService {
	t.Helper()
	logger := testLogger()
	recipes := NewRecipeService(mockDB, nil, NewNormalizer(logger),
		NewQualityAnalyzer(testKnowledgeBase(t), logger), config.CachingConfig{}, logger)
	profiles := NewProfileService(mockDB, logger)
	calc := NewValueCalculator(logger)
	selector := NewRecommendationSelector(calc, 7, logger)
	return NewRecommendationService(recipes, profiles, selector, calc, nil,
		config.CachingConfig{}, NewMetrics(), logger)
}

func TestRecommendationService_Recommend(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)

	userID := uuid.New()
	now := time.Now()

	mockDB.ExpectQuery("SELECT (.+) FROM user_profiles WHERE user_id").
		WithArgs(userID).
		WillReturnRows(profileRows().AddRow(
			userID, models.AbilityChef, 1.0, 1.0, 1.0, 1.0, 1.0,
			[]string{}, []string{}, 0.5, 0.5, now, now))

	quickID := uuid.New()
	slowID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM recipes ORDER BY created_at").
		WillReturnRows(recipeRows().
			AddRow(quickID, "Quick Eggs", []string{"2 eggs"}, []string{"Scramble the eggs"},
				2, 5, 0, 1, "Sam", 0.5, nil, 0, now, now).
			AddRow(slowID, "Weekend Brisket", []string{"4 lb brisket", "1 cup rub", "2 cups stock", "1 onion", "3 carrots", "2 cups sauce"},
				[]string{"Trim", "Rub", "Smoke", "Wrap", "Rest", "Slice", "Sauce", "Serve", "Store", "Reheat", "Plate", "Garnish"},
				60, 480, 0, 2, "Sam", 6.0, nil, 0, now, now))

	mockDB.ExpectQuery("SELECT (.+) FROM feedback_events ORDER BY created_at").
		WillReturnRows(feedbackRows().
			AddRow(uuid.New(), quickID, userID, models.TasteCrave, models.CleanupNone, now).
			AddRow(uuid.New(), slowID, userID, models.TasteLike, models.CleanupHeavy, now))

	resp, err := service.Recommend(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, resp.Recipe)
	// The beloved low-effort dish wins on value over the all-day project.
	assert.Equal(t, quickID, resp.Recipe.ID)
	assert.Greater(t, resp.Value, 0.0)
	assert.Equal(t, "A favorite worth making again", resp.Reason)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecommendationService_Recommend_AllergiesEmptyResult(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)

	userID := uuid.New()
	now := time.Now()

	mockDB.ExpectQuery("SELECT (.+) FROM user_profiles WHERE user_id").
		WithArgs(userID).
		WillReturnRows(profileRows().AddRow(
			userID, models.AbilityHomeCook, 1.0, 1.0, 1.0, 1.0, 1.0,
			[]string{"peanuts"}, []string{}, 0.5, 0.5, now, now))

	recipeID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM recipes ORDER BY created_at").
		WillReturnRows(recipeRows().AddRow(
			recipeID, "Peanut Noodles", []string{"1 cup peanuts", "8 oz noodles"},
			[]string{"Boil the noodles", "Toss with peanuts"},
			5, 10, 0, 2, "Sam", 1.0, nil, 0, now, now))

	mockDB.ExpectQuery("SELECT (.+) FROM feedback_events ORDER BY created_at").
		WillReturnRows(feedbackRows())

	resp, err := service.Recommend(context.Background(), userID)

	require.NoError(t, err)
	// Nothing edible survived filtering: valid empty answer, not an error.
	assert.Nil(t, resp.Recipe)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecommendationService_Value(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)

	userID := uuid.New()
	recipeID := uuid.New()
	now := time.Now()

	mockDB.ExpectQuery("SELECT (.+) FROM user_profiles WHERE user_id").
		WithArgs(userID).
		WillReturnRows(profileRows().AddRow(
			userID, models.AbilityHomeCook, 1.0, 1.0, 1.0, 1.0, 1.0,
			[]string{}, []string{}, 0.5, 0.5, now, now))

	mockDB.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(recipeID).
		WillReturnRows(recipeRows().AddRow(
			recipeID, "Chili", []string{"2 cups beans"}, []string{"Simmer the beans"},
			15, 60, 0, 4, "Sam", 0.5, nil, 0, now, now))
	mockDB.ExpectQuery("SELECT (.+) FROM feedback_events WHERE recipe_id").
		WithArgs(recipeID).
		WillReturnRows(feedbackRows().AddRow(
			uuid.New(), recipeID, userID, models.TasteLove, models.CleanupLight, now))

	value, err := service.Value(context.Background(), userID, recipeID)

	require.NoError(t, err)
	assert.Greater(t, value, 0.0)
	require.NoError(t, mockDB.ExpectationsWereMet())
}
