package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitdigest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("GITHUB_TOKEN", "")

	path := writeConfig(t, `
webhook_url: https://discord.com/api/webhooks/1/abc
username: Team Bot
avatar_url: https://example.com/avatar.png
sources:
  - /home/dev/widgets
  - https://github.com/acme/widgets
author: devone
exclude_weekends: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.WebhookURL)
	assert.Equal(t, "Team Bot", cfg.Username)
	assert.Equal(t, []string{"/home/dev/widgets", "https://github.com/acme/widgets"}, cfg.Sources)
	assert.Equal(t, "devone", cfg.Author)
	assert.True(t, cfg.ExcludeWeekends)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/2/env")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	path := writeConfig(t, "webhook_url: https://discord.com/api/webhooks/1/file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/2/env", cfg.WebhookURL)
	assert.Equal(t, "ghp_test", cfg.GitHubToken)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("GITHUB_TOKEN", "")
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.WebhookURL)
	assert.Empty(t, cfg.Sources)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "sources: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}
