package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/tidegate/internal/tide"
)

func TestLoadSetsDefaults(t *testing.T) {
	config, err := Load(strings.NewReader(`http_server_listen_addr = ":8085"`))
	require.NoError(t, err)

	assert.Equal(t, ":8085", config.HTTPListenAddr)
	assert.Equal(t, DefGithubWebhookEndpoint, config.HTTPGithubWebhookEndpoint)
	assert.Equal(t, DefMetricsEndpoint, config.HTTPMetricsEndpoint)
	assert.Equal(t, DefLogFormat, config.LogFormat)
	assert.Equal(t, DefLogLevel, config.LogLevel)
	assert.Equal(t, tide.DefaultConfig().OwnersFile, config.Tide.OwnersFile)
	assert.Equal(t, tide.DefaultConfig().MergeMethod, config.Tide.MergeMethod)
	require.NotNil(t, config.Tide.IssueGreeting)
	assert.Equal(t, DefIssueGreeting, *config.Tide.IssueGreeting)
	require.NotNil(t, config.Tide.PullRequestGreeting)
	assert.Equal(t, DefPullRequestGreeting, *config.Tide.PullRequestGreeting)

	assert.NoError(t, config.Validate())
}

func TestLoad(t *testing.T) {
	const data = `
http_server_listen_addr = ":8085"
github_webhook_endpoint = "/hook"
github_api_token = "abc"
log_format = "json"
event_filter_query = '.repository.name == "tidegate"'

[tide]
bot_login = "tide-bot"
merge_method = "squash"
owners_file = "OWNERS_ALIASES"
issue_greeting = ""
`
	config, err := Load(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "/hook", config.HTTPGithubWebhookEndpoint)
	assert.Equal(t, "abc", config.GithubAPIToken)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, `.repository.name == "tidegate"`, config.EventFilterQuery)
	assert.Equal(t, "tide-bot", config.Tide.BotLogin)
	assert.Equal(t, "squash", config.Tide.MergeMethod)
	assert.Equal(t, "OWNERS_ALIASES", config.Tide.OwnersFile)
	require.NotNil(t, config.Tide.IssueGreeting)
	assert.Empty(t, *config.Tide.IssueGreeting)
	assert.Equal(t, DefPullRequestGreeting, *config.Tide.PullRequestGreeting)

	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	testcases := []struct {
		name   string
		config string
	}{
		{
			name:   "noListenAddr",
			config: ``,
		},
		{
			name:   "httpsWithoutCert",
			config: `https_server_listen_addr = ":443"`,
		},
		{
			name: "unsupportedMergeMethod",
			config: `
http_server_listen_addr = ":8085"
[tide]
merge_method = "fastforward"
`,
		},
		{
			name: "conflictingEndpoints",
			config: `
http_server_listen_addr = ":8085"
github_webhook_endpoint = "/metrics"
`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := Load(strings.NewReader(tc.config))
			require.NoError(t, err)
			assert.Error(t, config.Validate())
		})
	}
}

func TestLoadInvalidToml(t *testing.T) {
	_, err := Load(strings.NewReader(`http_server_listen_addr = `))
	assert.Error(t, err)
}
