// Package credential loads the Google service-account credential used to read
// the candidate spreadsheet.
package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"

	"stock_dashboard/internal/feature/candidates/domain"
)

// DefaultEnvKey is the environment variable holding the JSON-encoded credential.
const DefaultEnvKey = "GOOGLE_JSON"

// Scopes are the read-only scopes needed to locate and read a spreadsheet by name.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets.readonly",
	"https://www.googleapis.com/auth/drive.readonly",
}

// Credential is a parsed service-account key. It is immutable after Load.
type Credential struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	ClientEmail  string `json:"client_email"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`

	raw []byte
}

// JSON returns a copy of the credential exactly as it was configured.
func (c *Credential) JSON() []byte {
	out := make([]byte, len(c.raw))
	copy(out, c.raw)
	return out
}

// Loader reads the credential from one environment variable.
type Loader struct {
	envKey string
	lookup func(string) (string, bool)
}

// NewLoader creates a Loader for envKey. An empty envKey uses DefaultEnvKey.
func NewLoader(envKey string) *Loader {
	if envKey == "" {
		envKey = DefaultEnvKey
	}
	return &Loader{envKey: envKey, lookup: os.LookupEnv}
}

// EnvKey returns the environment variable the loader reads.
func (l *Loader) EnvKey() string {
	return l.envKey
}

// Configured reports whether the environment variable is set to a non-blank value.
func (l *Loader) Configured() bool {
	v, ok := l.lookup(l.envKey)
	return ok && strings.TrimSpace(v) != ""
}

// Load returns the credential. ok is false, with a nil error, when the variable
// is unset or blank: the integration simply has not been configured yet.
// A value that is present but unusable yields a *domain.ConfigurationError.
func (l *Loader) Load() (cred *Credential, ok bool, err error) {
	v, found := l.lookup(l.envKey)
	if !found || strings.TrimSpace(v) == "" {
		return nil, false, nil
	}

	raw := []byte(v)
	c := &Credential{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, false, &domain.ConfigurationError{Source: l.envKey, Cause: fmt.Errorf("parse credential json: %w", err)}
	}
	if c.Type != "service_account" {
		return nil, false, &domain.ConfigurationError{Source: l.envKey, Cause: fmt.Errorf("credential type %q is not service_account", c.Type)}
	}
	if c.ClientEmail == "" || c.PrivateKey == "" {
		return nil, false, &domain.ConfigurationError{Source: l.envKey, Cause: domain.ErrEmptyCredential}
	}
	if _, err := google.JWTConfigFromJSON(raw, Scopes...); err != nil {
		return nil, false, &domain.ConfigurationError{Source: l.envKey, Cause: err}
	}
	c.raw = raw
	return c, true, nil
}
