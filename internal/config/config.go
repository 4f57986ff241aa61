// Package config loads delivery and default-source settings from an
// optional gitdigest.yaml file and from the environment, with .env
// support for local development. Secrets (webhook URL, API token) come
// from the environment only.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the config file looked up in the working
	// directory when no explicit path is given.
	DefaultFile = "gitdigest.yaml"

	envWebhookURL  = "DISCORD_WEBHOOK_URL"
	envGitHubToken = "GITHUB_TOKEN"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	WebhookURL      string   `yaml:"webhook_url"`
	Username        string   `yaml:"username"`
	AvatarURL       string   `yaml:"avatar_url"`
	Sources         []string `yaml:"sources"`
	Author          string   `yaml:"author"`
	ExcludeWeekends bool     `yaml:"exclude_weekends"`

	GitHubToken string `yaml:"-"`
}

// Load resolves configuration: .env (when present), then the yaml
// file, then environment variables, which win over the file. A missing
// config file is not an error; a missing webhook URL is reported at
// delivery time, not here.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env simply means the variables were set
	// another way.
	_ = godotenv.Load()

	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults only.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if v := os.Getenv(envWebhookURL); v != "" {
		cfg.WebhookURL = v
	}
	cfg.GitHubToken = os.Getenv(envGitHubToken)

	return cfg, nil
}
