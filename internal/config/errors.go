package config

import "fmt"

// ConfigurationError reports a missing or invalid configuration value.
// It is fatal for the transition that needed the value, never for the process.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}
