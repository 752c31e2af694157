package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the application. It is built once at
// process start and passed explicitly to every component that needs it.
type Config struct {
	// Atlassian Cloud credentials
	AtlassianEmail  string // Required: account email for Basic auth
	AtlassianToken  string // Required: API token for Basic auth
	AtlassianDomain string // Required: Atlassian subdomain (e.g. "acme-corp", not the full URL)

	// Derived REST roots
	JiraBaseURL       string // https://{domain}.atlassian.net/rest/api/3
	ConfluenceBaseURL string // https://{domain}.atlassian.net/wiki/rest/api

	// Log level
	LogLevel string // Optional: defaults to "info"
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"ATLASSIAN_EMAIL":  &cfg.AtlassianEmail,
		"ATLASSIAN_TOKEN":  &cfg.AtlassianToken,
		"ATLASSIAN_DOMAIN": &cfg.AtlassianDomain,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.JiraBaseURL = fmt.Sprintf("https://%s.atlassian.net/rest/api/3", cfg.AtlassianDomain)
	cfg.ConfluenceBaseURL = fmt.Sprintf("https://%s.atlassian.net/wiki/rest/api", cfg.AtlassianDomain)

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
