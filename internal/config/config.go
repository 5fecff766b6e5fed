// Package config builds the immutable runtime configuration for the
// maverick poller. Values come from the environment (the original
// workflow variable names plus MAVERICK_-prefixed equivalents) and an
// optional .maverick/config.yaml file; precedence is env over file.
// Components never read the environment themselves — one Config is
// constructed at process start and passed by parameter.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// v is the package-level viper instance, created by Initialize.
var v *viper.Viper

// ErrMissingInput marks a required configuration value that was not
// provided. Wrapped errors name the offending key.
var ErrMissingInput = errors.New("missing required configuration")

// Initialize sets up viper with env bindings and the optional config
// file. Safe to call repeatedly; each call rebuilds the instance.
func Initialize() error {
	nv := viper.New()

	nv.SetConfigName("config")
	nv.SetConfigType("yaml")
	nv.AddConfigPath(".maverick")

	nv.SetEnvPrefix("MAVERICK")
	nv.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	nv.AutomaticEnv()

	// Bind the workflow-era variable names alongside the prefixed ones.
	// viper uses the first env var in the list that is set, which gives
	// the documented first-present-wins behavior for the token pair.
	_ = nv.BindEnv("org", "MAVERICK_ORG", "ORG")
	_ = nv.BindEnv("project-number", "MAVERICK_PROJECT_NUMBER", "PROJECT_NUMBER")
	_ = nv.BindEnv("status-ready", "MAVERICK_STATUS_READY", "STATUS_READY")
	_ = nv.BindEnv("status-inflight", "MAVERICK_STATUS_INFLIGHT", "STATUS_INFLIGHT")
	_ = nv.BindEnv("repository", "MAVERICK_REPOSITORY", "GITHUB_REPOSITORY")
	_ = nv.BindEnv("kickoff-comment", "MAVERICK_KICKOFF_COMMENT", "COPILOT_KICKOFF")
	_ = nv.BindEnv("token", "GH_TOKEN", "GITHUB_TOKEN")

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v = nv
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// Set sets a config value (primarily for tests).
func Set(key string, value interface{}) {
	if v == nil {
		return
	}
	v.Set(key, value)
}

// Config is the immutable runtime configuration. Constructed once by
// Load and threaded through every component by parameter.
type Config struct {
	Org            string // organization login owning the board
	ProjectNumber  string // board number, kept as text; Int! coercion happens at the transport
	StatusReady    string // human-readable name of the ready status
	StatusInFlight string // human-readable name of the in-flight status
	Owner          string // owning repository: owner login
	Repo           string // owning repository: name
	Token          string // bearer credential (GH_TOKEN or GITHUB_TOKEN, first present wins)
	KickoffComment string // optional comment body posted when work begins
}

// RepoSlug returns "owner/repo".
func (c *Config) RepoSlug() string {
	return c.Owner + "/" + c.Repo
}

// Load validates the viper state into a Config. Every missing required
// input is reported; the first failure aborts so the operator sees one
// actionable message at a time.
func Load() (*Config, error) {
	if v == nil {
		if err := Initialize(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Org:            strings.TrimSpace(GetString("org")),
		ProjectNumber:  strings.TrimSpace(GetString("project-number")),
		StatusReady:    strings.TrimSpace(GetString("status-ready")),
		StatusInFlight: strings.TrimSpace(GetString("status-inflight")),
		Token:          GetString("token"),
		KickoffComment: strings.TrimSpace(GetString("kickoff-comment")),
	}

	required := []struct {
		key   string
		value string
	}{
		{"org (ORG)", cfg.Org},
		{"project-number (PROJECT_NUMBER)", cfg.ProjectNumber},
		{"status-ready (STATUS_READY)", cfg.StatusReady},
		{"status-inflight (STATUS_INFLIGHT)", cfg.StatusInFlight},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, r.key)
		}
	}

	if _, err := strconv.Atoi(cfg.ProjectNumber); err != nil {
		return nil, fmt.Errorf("project-number %q is not an integer", cfg.ProjectNumber)
	}

	repo := strings.TrimSpace(GetString("repository"))
	if repo == "" {
		return nil, fmt.Errorf("%w: repository (GITHUB_REPOSITORY)", ErrMissingInput)
	}
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("repository %q must be in owner/repo form", repo)
	}
	cfg.Owner, cfg.Repo = parts[0], parts[1]

	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: token (GH_TOKEN or GITHUB_TOKEN)", ErrMissingInput)
	}

	return cfg, nil
}
