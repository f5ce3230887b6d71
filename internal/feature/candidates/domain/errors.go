// Package domain defines domain-level errors for the candidates feature.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCredential is wrapped by ConfigurationError when the credential blob
// parses but lacks the fields a service account needs.
var ErrEmptyCredential = errors.New("credential is missing required fields")

// ConfigurationError reports a missing or malformed service credential.
// It is fatal to the fetch and is not retried automatically.
type ConfigurationError struct {
	Source string // environment variable the credential was read from
	Cause  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Source, e.Cause)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// IntegrationKind categorizes a spreadsheet integration failure.
type IntegrationKind string

const (
	// IntegrationAuth indicates the remote service rejected the credential (HTTP 401/403).
	IntegrationAuth IntegrationKind = "auth"
	// IntegrationNotFound indicates no spreadsheet matched the configured name.
	IntegrationNotFound IntegrationKind = "not_found"
	// IntegrationQuota indicates a quota or rate-limit rejection (HTTP 429, rateLimitExceeded).
	IntegrationQuota IntegrationKind = "quota"
	// IntegrationNetwork indicates a transport-level failure.
	IntegrationNetwork IntegrationKind = "network"
	// IntegrationTimeout indicates the fetch deadline elapsed.
	IntegrationTimeout IntegrationKind = "timeout"
	// IntegrationRemote indicates any other error returned by the remote service.
	IntegrationRemote IntegrationKind = "remote"
)

// IntegrationError reports a failure talking to the spreadsheet service.
type IntegrationError struct {
	Kind       IntegrationKind
	StatusCode int
	Op         string
	Cause      error
}

func (e *IntegrationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s error (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Cause)
}

func (e *IntegrationError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the call may succeed.
func (e *IntegrationError) Retryable() bool {
	switch e.Kind {
	case IntegrationQuota, IntegrationNetwork:
		return true
	case IntegrationRemote:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// SchemaError reports header columns the declared schema requires but the sheet lacks.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "schema mismatch: missing columns " + strings.Join(e.Missing, ", ")
}
