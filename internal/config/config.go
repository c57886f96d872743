package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Knowledge      KnowledgeConfig      `mapstructure:"knowledge"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Hot  RedisInstanceConfig `mapstructure:"hot"`
	Warm RedisInstanceConfig `mapstructure:"warm"`
}

type RedisInstanceConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		RecipeFeedback    string `mapstructure:"recipe_feedback"`
		RecipeFeedbackDLQ string `mapstructure:"recipe_feedback_dlq"`
	} `mapstructure:"topics"`
}

type AuthConfig struct {
	JWTSecret string          `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration   `mapstructure:"token_ttl"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Default int           `mapstructure:"default"`
	Premium int           `mapstructure:"premium"`
	Window  time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// KnowledgeConfig carries the cooking reference data the quality analyzer
// matches recipe text against, plus the plausible ranges for its checks.
type KnowledgeConfig struct {
	Ingredients    []string    `mapstructure:"ingredients"`
	Equipment      []string    `mapstructure:"equipment"`
	CookingMethods []string    `mapstructure:"cooking_methods"`
	Units          []string    `mapstructure:"units"`
	Limits         LimitConfig `mapstructure:"limits"`
}

type LimitConfig struct {
	MaxTimeMinutes         int     `mapstructure:"max_time_minutes"`
	MinTemperatureF        int     `mapstructure:"min_temperature_f"`
	MaxTemperatureF        int     `mapstructure:"max_temperature_f"`
	MinServings            int     `mapstructure:"min_servings"`
	MaxServings            int     `mapstructure:"max_servings"`
	IngredientsPerServing  float64 `mapstructure:"ingredients_per_serving"`
	TotalTimeToleranceMins int     `mapstructure:"total_time_tolerance_minutes"`
}

type RecommendationConfig struct {
	FreshnessDays int           `mapstructure:"freshness_days"`
	Caching       CachingConfig `mapstructure:"caching"`
}

type CachingConfig struct {
	QualityTTL        time.Duration `mapstructure:"quality_ttl"`
	RecommendationTTL time.Duration `mapstructure:"recommendation_ttl"`
	ProfileTTL        time.Duration `mapstructure:"profile_ttl"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.hot.url", "localhost:6379")
	viper.SetDefault("redis.hot.max_retries", 3)
	viper.SetDefault("redis.hot.pool_size", 10)
	viper.SetDefault("redis.hot.timeout", "5s")
	viper.SetDefault("redis.warm.url", "localhost:6380")
	viper.SetDefault("redis.warm.max_retries", 3)
	viper.SetDefault("redis.warm.pool_size", 5)
	viper.SetDefault("redis.warm.timeout", "10s")

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topics.recipe_feedback", "recipe-feedback")
	viper.SetDefault("kafka.topics.recipe_feedback_dlq", "recipe-feedback-dlq")

	// Auth defaults
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.rate_limit.default", 1000)
	viper.SetDefault("auth.rate_limit.premium", 10000)
	viper.SetDefault("auth.rate_limit.window", "1h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Cooking knowledge defaults
	viper.SetDefault("knowledge.ingredients", defaultIngredients)
	viper.SetDefault("knowledge.equipment", defaultEquipment)
	viper.SetDefault("knowledge.cooking_methods", defaultCookingMethods)
	viper.SetDefault("knowledge.units", defaultUnits)
	viper.SetDefault("knowledge.limits.max_time_minutes", 600)
	viper.SetDefault("knowledge.limits.min_temperature_f", 170)
	viper.SetDefault("knowledge.limits.max_temperature_f", 550)
	viper.SetDefault("knowledge.limits.min_servings", 1)
	viper.SetDefault("knowledge.limits.max_servings", 100)
	viper.SetDefault("knowledge.limits.ingredients_per_serving", 2.0)
	viper.SetDefault("knowledge.limits.total_time_tolerance_minutes", 10)

	// Recommendation defaults
	viper.SetDefault("recommendation.freshness_days", 7)
	viper.SetDefault("recommendation.caching.quality_ttl", "1h")
	viper.SetDefault("recommendation.caching.recommendation_ttl", "15m")
	viper.SetDefault("recommendation.caching.profile_ttl", "30m")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
	viper.SetDefault("security.cors.allow_credentials", true)
	viper.SetDefault("security.cors.max_age", "12h")
}
