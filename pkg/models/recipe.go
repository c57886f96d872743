package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StringOrNumber accepts either JSON form for a field and keeps the string
// rendering. Scrapers send "serves 6" where manual entry sends 6.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StringOrNumber(n.String())
	return nil
}

// ScrapedRecipe is the raw record handed over by a scraper or manual entry
// form. Ingredients and steps may still contain empty or padded lines; time
// fields may be ISO-8601 durations ("PT1H30M") or free text ("1 hour 30 min").
type ScrapedRecipe struct {
	Name         string         `json:"name"`
	Ingredients  []string       `json:"ingredients"`
	Steps        []string       `json:"steps"`
	PrepTimeRaw  string         `json:"prep_time,omitempty"`
	CookTimeRaw  string         `json:"cook_time,omitempty"`
	TotalTimeRaw string         `json:"total_time,omitempty"`
	ServingsRaw  StringOrNumber `json:"servings,omitempty"`
	Owner        string         `json:"owner,omitempty"`
}

// Recipe is the canonical normalized form of a dish. Identity fields are only
// replaced wholesale through an edit; FeedbackHistory is append-only.
type Recipe struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Ingredients     []string  `json:"ingredients" db:"ingredients"`
	Steps           []string  `json:"steps" db:"steps"`
	PrepTimeMinutes int       `json:"prep_time_minutes" db:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes" db:"cook_time_minutes"`
	// TotalTimeMinutes is the source's claimed total, 0 when none was given.
	// It is kept for the timing plausibility check, not derived.
	TotalTimeMinutes int             `json:"total_time_minutes,omitempty" db:"total_time_minutes"`
	Servings         int             `json:"servings" db:"servings"`
	Owner            string          `json:"owner" db:"owner"`
	Difficulty       float64         `json:"difficulty" db:"difficulty"`
	FeedbackHistory  []FeedbackEvent `json:"feedback_history,omitempty"`
	LastMade         *time.Time      `json:"last_made,omitempty" db:"last_made"`
	MadeCount        int             `json:"made_count" db:"made_count"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// TimePerServing is total hands-on plus cooking minutes divided by servings.
// Servings is guaranteed >= 1 by the normalizer.
func (r *Recipe) TimePerServing() float64 {
	return float64(r.PrepTimeMinutes+r.CookTimeMinutes) / float64(r.Servings)
}

// IngredientsPerServing is the ingredient line count divided by servings.
func (r *Recipe) IngredientsPerServing() float64 {
	return float64(len(r.Ingredients)) / float64(r.Servings)
}

type RecipeResponse struct {
	Recipe  *Recipe        `json:"recipe"`
	Quality QualityMetrics `json:"quality"`
}

type RecommendationResponse struct {
	Recipe *Recipe `json:"recipe,omitempty"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason,omitempty"`
}

type ValueResponse struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	UserID   uuid.UUID `json:"user_id"`
	Value    float64   `json:"value"`
}
