package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) {
	*ve = append(*ve, ValidationError{Field: field, Value: value, Message: message})
}

// Validate checks value ranges and that OutputDir is a valid template.
func (c UITestConfig) Validate() error {
	var errs ValidationErrors

	if c.WaitTimeout <= 0 {
		errs.Add("waitTimeout", "must be positive", c.WaitTimeout)
	}
	if c.PollTicks <= 0 {
		errs.Add("pollTicks", "must be at least 1", c.PollTicks)
	}
	if c.TickInterval <= 0 {
		errs.Add("tickInterval", "must be positive", c.TickInterval)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs.Add("outputDir", "is required", c.OutputDir)
	} else if _, err := c.RenderOutputDir(); err != nil {
		errs.Add("outputDir", err.Error(), c.OutputDir)
	}
	for i, prefix := range c.HostNoise {
		if strings.TrimSpace(prefix) == "" {
			errs.Add(fmt.Sprintf("hostNoise[%d]", i), "must not be blank", prefix)
		}
	}

	if !errs.HasErrors() {
		return nil
	}
	ce := NewConfigurationError("", "validation", "invalid configuration", errs)
	for _, e := range errs {
		ce.Suggestions = append(ce.Suggestions, fmt.Sprintf("fix %s", e.Field))
	}
	return ce
}
