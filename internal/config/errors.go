package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrTypeMismatch indicates a setting has the wrong value type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a setting value is out of range.
	ErrValidationFailed = errors.New("validation failed")
)
