package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain-level Prometheus instruments. HTTP-level metrics
// come from the router; these track the scoring and learning pipeline.
type Metrics struct {
	RecipesIngested        prometheus.Counter
	QualityScores          prometheus.Histogram
	FeedbackProcessed      *prometheus.CounterVec
	CoefficientAdjustments prometheus.Counter
	ValueComputations      prometheus.Counter
	RecommendationsServed  *prometheus.CounterVec
}

// NewMetrics builds and registers the instrument set. Registration tolerates
// duplicates so tests can construct more than one Metrics against the default
// registry; the first registered collector wins.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecipesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cravequest_recipes_ingested_total",
			Help: "Total number of recipes normalized and stored",
		}),
		QualityScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cravequest_quality_score",
			Help:    "Distribution of overall quality scores at ingestion",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		FeedbackProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cravequest_feedback_processed_total",
			Help: "Feedback events processed, labeled by taste rank",
		}, []string{"taste"}),
		CoefficientAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cravequest_coefficient_adjustments_total",
			Help: "Preference coefficient updates applied",
		}),
		ValueComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cravequest_value_computations_total",
			Help: "Personalized value calculations performed",
		}),
		RecommendationsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cravequest_recommendations_served_total",
			Help: "Recommendation requests served, labeled by outcome",
		}, []string{"outcome"}),
	}

	m.RecipesIngested = registerCounter(m.RecipesIngested)
	m.QualityScores = registerHistogram(m.QualityScores)
	m.FeedbackProcessed = registerCounterVec(m.FeedbackProcessed)
	m.CoefficientAdjustments = registerCounter(m.CoefficientAdjustments)
	m.ValueComputations = registerCounter(m.ValueComputations)
	m.RecommendationsServed = registerCounterVec(m.RecommendationsServed)

	return m
}

func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return c
}

func registerHistogram(h prometheus.Histogram) prometheus.Histogram {
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
	}
	return h
}

func registerCounterVec(cv *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(cv); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return cv
}
