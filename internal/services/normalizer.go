package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/temcen/cravequest/pkg/models"
)

const defaultServings = 4

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	hoursRegex      = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minutesRegex    = regexp.MustCompile(`(?i)(\d+)\s*m`)
	integerRegex    = regexp.MustCompile(`\d+`)
)

// Normalizer converts raw scraped or hand-entered recipe records into
// canonical recipes. It is a pure transformation: no I/O, no retained state.
type Normalizer struct {
	logger *logrus.Logger
}

func NewNormalizer(logger *logrus.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize cleans every text field, parses time and serving counts, and
// builds a Recipe. It fails only when name, ingredients, or steps are empty
// after cleanup; missing times and servings fall back to defaults instead.
func (n *Normalizer) Normalize(raw models.ScrapedRecipe) (*models.Recipe, error) {
	name := cleanLine(raw.Name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name is empty"}
	}

	ingredients := cleanLines(raw.Ingredients)
	if len(ingredients) == 0 {
		return nil, &models.ValidationError{Field: "ingredients", Message: "no ingredient lines after cleanup"}
	}

	steps := cleanLines(raw.Steps)
	if len(steps) == 0 {
		return nil, &models.ValidationError{Field: "steps", Message: "no instruction steps after cleanup"}
	}

	owner := cleanLine(raw.Owner)
	if owner == "" {
		owner = "Unknown"
	}

	now := time.Now()
	recipe := &models.Recipe{
		ID:               uuid.New(),
		Name:             name,
		Ingredients:      ingredients,
		Steps:            steps,
		PrepTimeMinutes:  ParseTimeToMinutes(raw.PrepTimeRaw),
		CookTimeMinutes:  ParseTimeToMinutes(raw.CookTimeRaw),
		TotalTimeMinutes: ParseTimeToMinutes(raw.TotalTimeRaw),
		Servings:         parseServings(string(raw.ServingsRaw)),
		Owner:            owner,
		Difficulty:       float64(len(steps)) / 2,
		FeedbackHistory:  []models.FeedbackEvent{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	n.logger.WithFields(logrus.Fields{
		"recipe_id":   recipe.ID,
		"name":        recipe.Name,
		"ingredients": len(recipe.Ingredients),
		"steps":       len(recipe.Steps),
	}).Debug("Normalized recipe")

	return recipe, nil
}

// ParseTimeToMinutes parses ISO-8601 durations ("PT1H30M") and free text
// ("1 hour 30 minutes") into whole minutes. Hour and minute components are
// matched independently and summed; text with neither yields 0, never an error.
func ParseTimeToMinutes(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	minutes := 0
	if m := hoursRegex.FindStringSubmatch(raw); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			minutes += h * 60
		}
	}
	if m := minutesRegex.FindStringSubmatch(raw); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil {
			minutes += mins
		}
	}
	return minutes
}

// parseServings extracts the first integer from the raw field. Absent or
// unparseable input defaults to 4; anything below 1 is floored to 1.
func parseServings(raw string) int {
	m := integerRegex.FindString(raw)
	if m == "" {
		return defaultServings
	}
	servings, err := strconv.Atoi(m)
	if err != nil {
		return defaultServings
	}
	if servings < 1 {
		return 1
	}
	return servings
}

// cleanLine NFC-normalizes, collapses interior whitespace, and trims.
func cleanLine(s string) string {
	s = norm.NFC.String(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := cleanLine(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
