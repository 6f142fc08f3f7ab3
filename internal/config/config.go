package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	GoogleCloudProject    string `json:"google_cloud_project"`
	GoogleCloudLocation   string `json:"google_cloud_location"`
	GoogleCredentialsPath string `json:"google_credentials_path"`
	SpreadsheetID         string `json:"spreadsheet_id"`
	SMTPService           string `json:"smtp_service"`
	SMTPUsername          string `json:"smtp_username"`
	ResumesDir            string `json:"resumes_dir"`
	TrackerPath           string `json:"tracker_path"`
	LinkedInURL           string `json:"linkedin_url"`
	GitHubURL             string `json:"github_url"`

	// Secrets come from the environment only, never the config file
	SMTPPassword          string `json:"-"`
	SheetsCredentialsJSON string `json:"-"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		GoogleCloudLocation: "us-central1",
		SMTPService:         "outlook",
		ResumesDir:          "resumes",
		TrackerPath:         "job_application_tracker.xlsx",
	}
}

// GetConfigPath returns the path to the configuration file
// On Windows: %APPDATA%/JobApplyAgent/config.json
// On Unix: ~/.config/JobApplyAgent/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		// Windows
		configDir = filepath.Join(os.Getenv("APPDATA"), "JobApplyAgent")
	} else {
		// Unix-like systems
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "JobApplyAgent")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path, then applies
// environment variable overrides.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadFrom loads configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides lets environment variables (typically from a .env file)
// take precedence over the config file. The variable names follow the
// conventional deployment setup of this tool.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.GoogleCloudProject = v
	}
	if v := os.Getenv("GOOGLE_CLOUD_LOCATION"); v != "" {
		c.GoogleCloudLocation = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS_JSON"); v != "" {
		c.SheetsCredentialsJSON = v
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		c.SpreadsheetID = v
	}
	if v := os.Getenv("SMTP_SERVICE"); v != "" {
		c.SMTPService = v
	}
	if v := os.Getenv("OUTLOOK_EMAIL"); v != "" {
		c.SMTPUsername = v
	}
	if v := os.Getenv("OUTLOOK_PASSWORD"); v != "" {
		c.SMTPPassword = v
	}
	if v := os.Getenv("RESUMES_DIR"); v != "" {
		c.ResumesDir = v
	}
	if v := os.Getenv("TRACKER_PATH"); v != "" {
		c.TrackerPath = v
	}
	if v := os.Getenv("LINKEDIN_URL"); v != "" {
		c.LinkedInURL = v
	}
	if v := os.Getenv("GITHUB_URL"); v != "" {
		c.GitHubURL = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SMTPService != "" && c.SMTPService != "outlook" && c.SMTPService != "gmail" {
		return fmt.Errorf("smtp_service must be \"outlook\" or \"gmail\"")
	}

	if c.TrackerPath == "" {
		return fmt.Errorf("tracker_path is required")
	}

	if c.ResumesDir == "" {
		return fmt.Errorf("resumes_dir is required")
	}

	if c.GoogleCredentialsPath != "" {
		if _, err := os.Stat(c.GoogleCredentialsPath); err != nil {
			return fmt.Errorf("google credentials file not found: %w", err)
		}
	}

	return nil
}

// SheetsCredentials returns the service-account key for the Google Sheets
// mirror: inline JSON from the environment first, then the configured key
// file. Returns nil when neither is configured.
func (c *Config) SheetsCredentials() ([]byte, error) {
	if c.SheetsCredentialsJSON != "" {
		return []byte(c.SheetsCredentialsJSON), nil
	}
	if c.GoogleCredentialsPath != "" {
		data, err := os.ReadFile(c.GoogleCredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read google credentials file: %w", err)
		}
		return data, nil
	}
	return nil, nil
}

// ApplyToEnv applies configuration values to environment variables so that
// clients reading standard Google variables pick them up.
func (c *Config) ApplyToEnv() {
	if c.GoogleCloudProject != "" {
		os.Setenv("GOOGLE_CLOUD_PROJECT", c.GoogleCloudProject)
	}
	if c.GoogleCloudLocation != "" {
		os.Setenv("GOOGLE_CLOUD_LOCATION", c.GoogleCloudLocation)
	}
	if c.GoogleCredentialsPath != "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", c.GoogleCredentialsPath)
	}
}
