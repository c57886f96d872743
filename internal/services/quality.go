package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/pkg/models"
)

// Sub-score weights for the overall quality score. Fixed, sums to 1.0.
const (
	weightCompleteness = 0.25
	weightClarity      = 0.25
	weightIngredients  = 0.20
	weightTiming       = 0.10
	weightTemperature  = 0.10
	weightPortions     = 0.10
)

// Completeness component weights: title and yields count as presence checks,
// ingredient and instruction counts scale up to full credit at 3 entries.
const (
	completenessTitle        = 0.1
	completenessIngredients  = 0.4
	completenessInstructions = 0.4
	completenessYields       = 0.1
)

var (
	temperatureRegex = regexp.MustCompile(`(?i)(\d+)\s*(?:degrees?|°|℉|℃|f\b|c\b)`)
	amountRegex      = regexp.MustCompile(`^(\d+(?:[./]\d+)?(?:\s+\d/\d)?)\s+(\S+)`)
)

var timingWords = []string{"minute", "hour", "until", "when"}

// QualityAnalyzer scores how well-formed a recipe's data is. Scoring is a
// pure function of the recipe's current fields: it never fails, missing data
// degrades the relevant sub-score to its documented floor instead.
type QualityAnalyzer struct {
	kb     *KnowledgeBase
	logger *logrus.Logger
}

func NewQualityAnalyzer(kb *KnowledgeBase, logger *logrus.Logger) *QualityAnalyzer {
	return &QualityAnalyzer{kb: kb, logger: logger}
}

func (a *QualityAnalyzer) Analyze(r *models.Recipe) models.QualityMetrics {
	m := models.QualityMetrics{
		Completeness:        a.checkCompleteness(r),
		InstructionClarity:  a.checkInstructionClarity(r),
		IngredientValidity:  a.checkIngredientValidity(r),
		TimingValidity:      a.checkTimingValidity(r),
		TemperatureValidity: a.checkTemperatureValidity(r),
		PortionConsistency:  a.checkPortionConsistency(r),
	}

	m.Overall = weightCompleteness*m.Completeness +
		weightClarity*m.InstructionClarity +
		weightIngredients*m.IngredientValidity +
		weightTiming*m.TimingValidity +
		weightTemperature*m.TemperatureValidity +
		weightPortions*m.PortionConsistency

	return m
}

func (a *QualityAnalyzer) checkCompleteness(r *models.Recipe) float64 {
	score := 0.0
	if r.Name != "" {
		score += completenessTitle
	}
	if len(r.Ingredients) > 0 {
		score += completenessIngredients * minFloat(1.0, float64(len(r.Ingredients))/3)
	}
	if len(r.Steps) > 0 {
		score += completenessInstructions * minFloat(1.0, float64(len(r.Steps))/3)
	}
	if r.Servings > 0 {
		score += completenessYields
	}
	return score
}

// checkInstructionClarity scores each step on three independent signals:
// a recognized cooking method, timing language, and equipment mention.
func (a *QualityAnalyzer) checkInstructionClarity(r *models.Recipe) float64 {
	if len(r.Steps) == 0 {
		return 0.0
	}

	total := 0.0
	for _, step := range r.Steps {
		text := strings.ToLower(step)

		signals := 0
		if a.kb.KnownMethod(text) {
			signals++
		}
		if hasTimingLanguage(text) {
			signals++
		}
		if a.kb.KnownEquipment(text) {
			signals++
		}
		total += float64(signals) / 3
	}

	return minFloat(1.0, total/float64(len(r.Steps)))
}

func hasTimingLanguage(text string) bool {
	for _, word := range timingWords {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// checkIngredientValidity counts lines that name a recognized ingredient and
// carry a parsable amount with a recognized unit.
func (a *QualityAnalyzer) checkIngredientValidity(r *models.Recipe) float64 {
	if len(r.Ingredients) == 0 {
		return 0.0
	}

	valid := 0
	for _, line := range r.Ingredients {
		if a.kb.KnownIngredient(line) && a.hasMeasurement(line) {
			valid++
		}
	}
	return float64(valid) / float64(len(r.Ingredients))
}

func (a *QualityAnalyzer) hasMeasurement(line string) bool {
	m := amountRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}
	return a.kb.KnownUnit(m[2])
}

// checkTimingValidity scores each present timing field against the plausible
// range, plus the claimed-total consistency check when one exists. A recipe
// with no timing data at all scores 0: absence is penalized, not excused.
func (a *QualityAnalyzer) checkTimingValidity(r *models.Recipe) float64 {
	if r.PrepTimeMinutes == 0 && r.CookTimeMinutes == 0 {
		if r.TotalTimeMinutes == 0 {
			return 0.0
		}
		// A lone claimed total has nothing to be consistent with, so only
		// its bounds are checked.
		if a.kb.PlausibleTime(r.TotalTimeMinutes) {
			return 1.0
		}
		return 0.0
	}

	checks, passed := 0, 0
	if r.PrepTimeMinutes > 0 {
		checks++
		if a.kb.PlausibleTime(r.PrepTimeMinutes) {
			passed++
		}
	}
	if r.CookTimeMinutes > 0 {
		checks++
		if a.kb.PlausibleTime(r.CookTimeMinutes) {
			passed++
		}
	}
	if r.TotalTimeMinutes > 0 {
		checks++
		diff := r.TotalTimeMinutes - (r.PrepTimeMinutes + r.CookTimeMinutes)
		if diff < 0 {
			diff = -diff
		}
		if diff <= a.kb.limits.TotalTimeToleranceMins {
			passed++
		}
	}

	return float64(passed) / float64(checks)
}

// checkTemperatureValidity scans step text for numeric temperature mentions.
// Zero mentions score 1.0: there is no claim to invalidate.
func (a *QualityAnalyzer) checkTemperatureValidity(r *models.Recipe) float64 {
	mentions, valid := 0, 0
	for _, step := range r.Steps {
		for _, m := range temperatureRegex.FindAllStringSubmatch(step, -1) {
			mentions++
			if temp, err := strconv.Atoi(m[1]); err == nil && a.kb.PlausibleTemperature(temp) {
				valid++
			}
		}
	}

	if mentions == 0 {
		return 1.0
	}
	return float64(valid) / float64(mentions)
}

// checkPortionConsistency rejects implausible serving counts outright and
// half-credits recipes whose ingredients-per-serving ratio is far from the
// configured expectation.
func (a *QualityAnalyzer) checkPortionConsistency(r *models.Recipe) float64 {
	if !a.kb.PlausibleServings(r.Servings) {
		return 0.0
	}

	expected := a.kb.limits.IngredientsPerServing
	actual := r.IngredientsPerServing()

	if actual < 0.5*expected || actual > 3*expected {
		return 0.5
	}
	return 1.0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
