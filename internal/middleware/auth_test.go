package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, _, ok := GetUserFromContext(c)
		assert.False(t, ok)
	})

	t.Run("tier defaults to free", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		userID := uuid.New()
		c.Set("user_id", userID)

		id, tier, ok := GetUserFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, "free", tier)
	})

	t.Run("tier from claims", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		userID := uuid.New()
		c.Set("user_id", userID)
		c.Set("user_tier", "premium")

		id, tier, ok := GetUserFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, "premium", tier)
	})

	t.Run("non uuid user id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", "plain-string")

		_, _, ok := GetUserFromContext(c)
		assert.False(t, ok)
	})
}
