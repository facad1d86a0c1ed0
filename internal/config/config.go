package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envFile = ".env"

// Config holds process-wide settings loaded once at startup and treated as
// read-only for the remainder of execution.
type Config struct {
	JiraBaseURL  string
	JiraUsername string
	JiraAPIToken string

	// Gemini settings are loaded and validated but not consumed by any
	// command yet; they are kept for forward compatibility.
	GeminiAPIKey    string
	GeminiModelName string
}

// String returns a sanitized representation (hides secrets)
func (c Config) String() string {
	return fmt.Sprintf("Config{JiraBaseURL: %s, JiraUsername: %s, JiraAPIToken: %s, GeminiModelName: %s}",
		c.JiraBaseURL, c.JiraUsername, redact(c.JiraAPIToken), c.GeminiModelName)
}

func redact(token string) string {
	if len(token) > 4 {
		return token[:4] + "***"
	}
	return "***REDACTED***"
}

// MissingError reports required configuration values absent at startup.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

var requiredKeys = []string{
	"JIRA_BASE_URL",
	"JIRA_USERNAME",
	"JIRA_API_TOKEN",
	"GEMINI_API_KEY",
	"GEMINI_MODEL_NAME",
}

// Load reads configuration from the process environment, with a .env file in
// the working directory filling in unset values when present. All required
// keys must be non-empty or Load fails with *MissingError.
func Load() (*Config, error) {
	v := viper.New()

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("dotenv")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()

	var missing []string
	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	return &Config{
		JiraBaseURL:     v.GetString("JIRA_BASE_URL"),
		JiraUsername:    v.GetString("JIRA_USERNAME"),
		JiraAPIToken:    v.GetString("JIRA_API_TOKEN"),
		GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
		GeminiModelName: v.GetString("GEMINI_MODEL_NAME"),
	}, nil
}
