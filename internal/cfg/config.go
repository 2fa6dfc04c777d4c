// Package cfg contains the configuration file model.
package cfg

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml"

	"github.com/simplesurance/tidegate/internal/tide"
)

const (
	DefGithubWebhookEndpoint = "/listener/github"
	DefMetricsEndpoint       = "/metrics"
	DefLogFormat             = "logfmt"
	DefLogTimeKey            = "time_iso8601"
	DefLogLevel              = "info"
	DefIssueGreeting         = "Thanks for opening this issue!"
	DefPullRequestGreeting   = "Thanks for contributing!"
)

type Config struct {
	HTTPListenAddr            string `toml:"http_server_listen_addr"`
	HTTPSListenAddr           string `toml:"https_server_listen_addr"`
	HTTPSCertFile             string `toml:"https_ssl_cert_file"`
	HTTPSKeyFile              string `toml:"https_ssl_key_file"`
	HTTPGithubWebhookEndpoint string `toml:"github_webhook_endpoint"`
	HTTPMetricsEndpoint       string `toml:"metrics_endpoint"`
	GithubWebHookSecret       string `toml:"github_webhook_secret"`
	GithubAPIToken            string `toml:"github_api_token"`
	GithubAPIURL              string `toml:"github_api_url"`
	LogFormat                 string `toml:"log_format"`
	LogTimeKey                string `toml:"log_time_key"`
	LogLevel                  string `toml:"log_level"`
	EventFilterQuery          string `toml:"event_filter_query"`
	Tide                      Tide   `toml:"tide"`
}

type Tide struct {
	// BotLogin is the login of the identity the automation acts as.
	// Comments authored by it are ignored.
	BotLogin            string  `toml:"bot_login"`
	OwnersFile          string  `toml:"owners_file"`
	MergeMethod         string  `toml:"merge_method"`
	IssueGreeting       *string `toml:"issue_greeting"`
	PullRequestGreeting *string `toml:"pull_request_greeting"`
}

func strPtr(in string) *string {
	return &in
}

// Load reads a TOML configuration from reader and sets defaults for unset
// fields.
func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	result.setDefaults()

	return &result, nil
}

func (r *Config) setDefaults() {
	if r.HTTPGithubWebhookEndpoint == "" {
		r.HTTPGithubWebhookEndpoint = DefGithubWebhookEndpoint
	}

	if r.HTTPMetricsEndpoint == "" {
		r.HTTPMetricsEndpoint = DefMetricsEndpoint
	}

	if r.LogFormat == "" {
		r.LogFormat = DefLogFormat
	}

	if r.LogTimeKey == "" {
		r.LogTimeKey = DefLogTimeKey
	}

	if r.LogLevel == "" {
		r.LogLevel = DefLogLevel
	}

	if r.Tide.OwnersFile == "" {
		r.Tide.OwnersFile = tide.DefOwnersFile
	}

	if r.Tide.MergeMethod == "" {
		r.Tide.MergeMethod = tide.DefMergeMethod
	}

	// an explicitly set empty string disables the greeting
	if r.Tide.IssueGreeting == nil {
		r.Tide.IssueGreeting = strPtr(DefIssueGreeting)
	}

	if r.Tide.PullRequestGreeting == nil {
		r.Tide.PullRequestGreeting = strPtr(DefPullRequestGreeting)
	}
}

// Validate returns an error if the configuration contains invalid or
// conflicting settings.
func (r *Config) Validate() error {
	if r.HTTPListenAddr == "" && r.HTTPSListenAddr == "" {
		return errors.New("https_server_listen_addr or http_server_listen_addr must be defined, both are unset")
	}

	if r.HTTPSListenAddr != "" && (r.HTTPSCertFile == "" || r.HTTPSKeyFile == "") {
		return errors.New("https_server_listen_addr is set but https_ssl_cert_file or https_ssl_key_file is empty")
	}

	if r.HTTPGithubWebhookEndpoint == r.HTTPMetricsEndpoint {
		return fmt.Errorf("github_webhook_endpoint and metrics_endpoint must differ, both are %q", r.HTTPMetricsEndpoint)
	}

	switch r.Tide.MergeMethod {
	case "merge", "squash", "rebase":
	default:
		return fmt.Errorf("tide.merge_method: unsupported value %q, must be one of merge, squash, rebase", r.Tide.MergeMethod)
	}

	return nil
}
