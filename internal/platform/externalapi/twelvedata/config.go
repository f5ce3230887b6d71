// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

// DefaultBaseURL is the public Twelve Data REST endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
// Request timeout and retries belong to the resty client passed to
// NewTwelveDataMarket; call rate is limited by the caller.
type Config struct {
	APIKey   string // API key for authentication
	BaseURL  string // Base URL for the API (e.g., "https://api.twelvedata.com")
	Exchange string // Exchange the sheet's symbol codes belong to (e.g., "KRX"); empty omits it
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return c
}
