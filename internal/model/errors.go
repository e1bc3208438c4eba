package model

import "fmt"

// LoadError means the survey file is missing, unreadable, or its header is malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DataQualityError means a required analysis column is absent or entirely empty.
type DataQualityError struct {
	Column string
	Reason string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality: column %q %s", e.Column, e.Reason)
}

// ConfigurationError means a grouping, filter, or chart specification is invalid.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}
