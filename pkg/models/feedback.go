package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TasteRank is one of seven ordered satisfaction levels, index 0..6.
type TasteRank int

const (
	TasteHate TasteRank = iota
	TasteDontLike
	TasteMeh
	TasteLike
	TasteLove
	TasteCrave
	TasteLegendary
)

var tasteRankNames = [...]string{
	"Hate", "Don't Like", "Meh", "Like", "Love", "Crave", "Legendary",
}

// TasteRankDescriptions maps a rank name to the prompt shown when voting.
var TasteRankDescriptions = map[string]string{
	"Hate":       "You couldn't pay me to eat this",
	"Don't Like": "Even though I'm hungry, I won't eat this",
	"Meh":        "I didn't enjoy myself",
	"Like":       "I like this recipe but wouldn't make it again",
	"Love":       "I love this recipe. I'd 100% make/eat it again",
	"Crave":      "This made me melt in my chair. Incredible.",
	"Legendary":  "This is top 5 things I've ever eaten",
}

func (t TasteRank) String() string {
	if t < 0 || int(t) >= len(tasteRankNames) {
		return fmt.Sprintf("TasteRank(%d)", int(t))
	}
	return tasteRankNames[t]
}

func (t TasteRank) Valid() bool {
	return t >= TasteHate && t <= TasteLegendary
}

// ParseTasteRank resolves a rank name as entered by a user.
func ParseTasteRank(s string) (TasteRank, error) {
	for i, name := range tasteRankNames {
		if name == s {
			return TasteRank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown taste rank %q", s)
}

// CleanupRank is one of four ordered mess levels, index 0..3.
type CleanupRank int

const (
	CleanupNone CleanupRank = iota
	CleanupLight
	CleanupModerate
	CleanupHeavy
)

var cleanupRankNames = [...]string{"None", "Light", "Moderate", "Heavy"}

// CleanupRankDescriptions maps a rank name to the prompt shown when voting.
var CleanupRankDescriptions = map[string]string{
	"None":     "Spotless, no cleanup",
	"Light":    "Quick rinse",
	"Moderate": "Some dishes",
	"Heavy":    "Kitchen mess",
}

func (c CleanupRank) String() string {
	if c < 0 || int(c) >= len(cleanupRankNames) {
		return fmt.Sprintf("CleanupRank(%d)", int(c))
	}
	return cleanupRankNames[c]
}

func (c CleanupRank) Valid() bool {
	return c >= CleanupNone && c <= CleanupHeavy
}

// ParseCleanupRank resolves a rank name as entered by a user.
func ParseCleanupRank(s string) (CleanupRank, error) {
	for i, name := range cleanupRankNames {
		if name == s {
			return CleanupRank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cleanup rank %q", s)
}

// FeedbackEvent is one taste/cleanup vote tied to a recipe. Events are
// created once and never mutated or deleted.
type FeedbackEvent struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	RecipeID  uuid.UUID   `json:"recipe_id" db:"recipe_id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	Taste     TasteRank   `json:"taste" db:"taste"`
	Cleanup   CleanupRank `json:"cleanup" db:"cleanup"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

type FeedbackRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Taste   string    `json:"taste" validate:"required"`
	Cleanup string    `json:"cleanup" validate:"required"`
}
