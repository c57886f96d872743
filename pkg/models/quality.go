package models

// QualityMetrics holds the six structural sub-scores of a recipe plus their
// weighted combination. All values lie in [0, 1]. Metrics are derived from the
// recipe's current fields and recomputed on demand, never a source of truth.
type QualityMetrics struct {
	Completeness        float64 `json:"completeness"`
	InstructionClarity  float64 `json:"instruction_clarity"`
	IngredientValidity  float64 `json:"ingredient_validity"`
	TimingValidity      float64 `json:"timing_validity"`
	TemperatureValidity float64 `json:"temperature_validity"`
	PortionConsistency  float64 `json:"portion_consistency"`
	Overall             float64 `json:"overall"`
}

// IsHighQuality reports whether the recipe clears the publishing bar.
func (m QualityMetrics) IsHighQuality() bool {
	return m.Overall >= 0.6 &&
		m.Completeness >= 0.7 &&
		m.InstructionClarity >= 0.6 &&
		m.IngredientValidity >= 0.6
}
