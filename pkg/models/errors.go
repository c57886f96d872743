package models

import "fmt"

// ValidationError reports that a recipe could not be constructed from its raw
// input. It is fatal to that single ingestion attempt only.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ConfigurationError reports missing or empty reference data at startup.
type ConfigurationError struct {
	Component string
	Message   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}
