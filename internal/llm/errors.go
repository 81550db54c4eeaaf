package llm

import "fmt"

// ConfigError reports an unusable provider configuration.
type ConfigError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm config (%s): %s", e.Provider, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// APICallError represents a failed call to a model provider
type APICallError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
