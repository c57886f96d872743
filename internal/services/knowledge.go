package services

import (
	"strings"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

// KnowledgeBase holds the cooking reference vocabularies and plausible ranges
// the quality analyzer matches recipe text against. All lookups are
// lowercase substring matches, so entries are folded once at construction.
type KnowledgeBase struct {
	ingredients []string
	equipment   []string
	methods     []string
	units       map[string]bool
	limits      config.LimitConfig
}

// unit abbreviations folded to their standard form before lookup
var unitAliases = map[string]string{
	"tbsp": "tablespoon",
	"tbs":  "tablespoon",
	"tsp":  "teaspoon",
	"oz":   "ounce",
	"lb":   "pound",
	"c":    "cup",
	"g":    "gram",
	"kg":   "kilogram",
	"ml":   "milliliter",
	"l":    "liter",
}

func NewKnowledgeBase(cfg *config.KnowledgeConfig) (*KnowledgeBase, error) {
	if len(cfg.Ingredients) == 0 {
		return nil, &models.ConfigurationError{Component: "knowledge", Message: "ingredient vocabulary is empty"}
	}
	if len(cfg.Equipment) == 0 {
		return nil, &models.ConfigurationError{Component: "knowledge", Message: "equipment vocabulary is empty"}
	}
	if len(cfg.CookingMethods) == 0 {
		return nil, &models.ConfigurationError{Component: "knowledge", Message: "cooking method vocabulary is empty"}
	}
	if len(cfg.Units) == 0 {
		return nil, &models.ConfigurationError{Component: "knowledge", Message: "unit vocabulary is empty"}
	}

	kb := &KnowledgeBase{
		ingredients: foldAll(cfg.Ingredients),
		equipment:   foldAll(cfg.Equipment),
		methods:     foldAll(cfg.CookingMethods),
		units:       make(map[string]bool, len(cfg.Units)),
		limits:      cfg.Limits,
	}
	for _, u := range cfg.Units {
		kb.units[normalizeUnit(u)] = true
	}
	return kb, nil
}

func foldAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func normalizeUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	unit = strings.TrimSuffix(unit, ".")
	if std, ok := unitAliases[unit]; ok {
		return std
	}
	return strings.TrimSuffix(unit, "s")
}

// KnownIngredient reports whether text mentions a recognized ingredient.
func (kb *KnowledgeBase) KnownIngredient(text string) bool {
	return containsAny(text, kb.ingredients)
}

// KnownEquipment reports whether text mentions a recognized piece of equipment.
func (kb *KnowledgeBase) KnownEquipment(text string) bool {
	return containsAny(text, kb.equipment)
}

// KnownMethod reports whether text mentions a recognized cooking method.
func (kb *KnowledgeBase) KnownMethod(text string) bool {
	return containsAny(text, kb.methods)
}

// KnownUnit reports whether a token is a recognized measurement unit.
func (kb *KnowledgeBase) KnownUnit(token string) bool {
	return kb.units[normalizeUnit(token)]
}

// PlausibleTime reports whether a duration in minutes is within range.
func (kb *KnowledgeBase) PlausibleTime(minutes int) bool {
	return minutes > 0 && minutes <= kb.limits.MaxTimeMinutes
}

// PlausibleTemperature reports whether a Fahrenheit reading is within range.
func (kb *KnowledgeBase) PlausibleTemperature(tempF int) bool {
	return tempF >= kb.limits.MinTemperatureF && tempF <= kb.limits.MaxTemperatureF
}

// PlausibleServings reports whether a serving count is within range.
func (kb *KnowledgeBase) PlausibleServings(servings int) bool {
	return servings >= kb.limits.MinServings && servings <= kb.limits.MaxServings
}

func containsAny(text string, vocabulary []string) bool {
	text = strings.ToLower(text)
	for _, term := range vocabulary {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
